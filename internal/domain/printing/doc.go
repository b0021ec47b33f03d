// Package printing holds the page geometry used when laying out printable
// documents: paper sizes, orientation and margins. All lengths are in
// millimeters.
package printing
