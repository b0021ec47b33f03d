package workorder

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical textual form of a work-order date
const DateLayout = "2006-01-02"

// DisplayDateLayout is the day-first form used on the printed sheet
const DisplayDateLayout = "02/01/2006"

// Technician identifies a crew member who took part in the job
type Technician struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// Material is a consumable used during the job
type Material struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// WorkOrder is a completed maintenance record ready to be printed.
// Technicians are kept in display order; the first one is responsible for the job.
type WorkOrder struct {
	Date      time.Time `json:"date"`
	Location  string    `json:"location,omitempty"`
	BoardID   string    `json:"board_id"`
	CircuitID string    `json:"circuit_id"`
	VehicleID string    `json:"vehicle_id,omitempty"`

	OdometerStart *decimal.Decimal `json:"odometer_start,omitempty"`
	OdometerEnd   *decimal.Decimal `json:"odometer_end,omitempty"`

	MaintenanceType string `json:"maintenance_type,omitempty"`
	Priority        string `json:"priority,omitempty"`
	StartTime       string `json:"start_time,omitempty"`
	EndTime         string `json:"end_time,omitempty"`
	CostCenter      string `json:"cost_center,omitempty"`

	Technicians []Technician `json:"technicians"`

	TaskRequested  string `json:"task_requested,omitempty"`
	TaskCompleted  string `json:"task_completed,omitempty"`
	TaskPending    string `json:"task_pending,omitempty"`
	EquipmentNotes string `json:"equipment_notes,omitempty"`

	Materials []Material `json:"materials,omitempty"`
}

// Responsible returns the technician who answers for the job.
// The second return value is false when the order lists no technicians.
func (w *WorkOrder) Responsible() (Technician, bool) {
	if w == nil || len(w.Technicians) == 0 {
		return Technician{}, false
	}
	return w.Technicians[0], true
}

// BoardLabel returns the display label of the board, falling back to its ID
func (w *WorkOrder) BoardLabel() string {
	if label, ok := Boards.Label(w.BoardID); ok {
		return label
	}
	return w.BoardID
}

// VehicleLabel returns the display label of the vehicle, or "" when none was used
func (w *WorkOrder) VehicleLabel() string {
	if w.VehicleID == "" {
		return ""
	}
	if label, ok := Vehicles.Label(w.VehicleID); ok {
		return label
	}
	return w.VehicleID
}

// HasMaterials reports whether any material was recorded
func (w *WorkOrder) HasMaterials() bool {
	return len(w.Materials) > 0
}

// DistanceTravelled returns end - start when both odometer readings are present
func (w *WorkOrder) DistanceTravelled() (decimal.Decimal, bool) {
	if w.OdometerStart == nil || w.OdometerEnd == nil {
		return decimal.Zero, false
	}
	return w.OdometerEnd.Sub(*w.OdometerStart), true
}
