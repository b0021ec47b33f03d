// Package workorder contains the maintenance work-order model: the record a
// crew fills in after a job, the fixed allow-lists its enumerated fields are
// checked against, and the derivation of the printable file name.
//
// A WorkOrder is built once by the application layer from a validated
// payload and is treated as read-only from then on.
package workorder
