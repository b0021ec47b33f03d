package printing

import (
	"strings"

	"github.com/maintenance/backend/internal/domain/workorder"
	"github.com/shopspring/decimal"
)

// placeholder stands in for empty fields so no section prints blank
const placeholder = "—"

const closingNote = "Document generated automatically by the maintenance system."

var (
	infoGridColumns = []column{
		{width: 28, align: alignLeft, style: styleCellStrong},
		{width: 60, align: alignLeft, style: styleCell},
		{width: 28, align: alignLeft, style: styleCellStrong},
		{width: 45, align: alignLeft, style: styleCell},
	}
	materialColumns = []column{
		{width: 100, align: alignLeft, style: styleCell},
		{width: 25, align: alignCenter, style: styleCell},
		{width: 25, align: alignCenter, style: styleCell},
	}
	materialHeader = []string{"Material", "Quantity", "Unit"}
)

// orPlaceholder judges emptiness on the printable form, so text made only
// of control characters also gets the placeholder
func orPlaceholder(s string) string {
	if strings.TrimSpace(encodeText(s)) == "" {
		return placeholder
	}
	return s
}

func formatDecimal(d *decimal.Decimal) string {
	if d == nil {
		return placeholder
	}
	return d.String()
}

func catalogLabel(c workorder.Catalog, value string) string {
	if value == "" {
		return placeholder
	}
	if label, ok := c.Label(value); ok {
		return label
	}
	return value
}

// buildWorkOrderLayout returns the flowables of a work order in print order:
// logo, title, header grid, technicians, task requested, notes (completed,
// pending, equipment), materials and the closing note.
func buildWorkOrderLayout(order *workorder.WorkOrder, logo *placedLogo) []flowable {
	var flows []flowable

	if logo != nil {
		flows = append(flows, &imageBlock{
			name:      logoImageName,
			imageType: logo.asset.ImageType,
			width:     logo.width,
			height:    logo.height,
			gap:       logoGap,
		})
	}

	date := order.Date.Format(workorder.DisplayDateLayout)
	title := strings.Join([]string{"Work Order", order.BoardLabel(), order.CircuitID, date}, " – ")
	flows = append(flows,
		newParagraph(title, styleTitle),
		newSpacer(4),
		infoGrid(order, date),
		newSpacer(8),
	)

	flows = append(flows,
		newHeading("Technicians", styleHeading),
		newParagraph(technicianLine(order.Technicians), styleBody),
		newSpacer(6),
		newHeading("Task requested", styleHeading),
		newParagraph(orPlaceholder(order.TaskRequested), styleBody),
		newSpacer(6),
		newHeading("Notes", styleHeading),
	)

	for _, section := range []struct{ label, text string }{
		{"Task completed", order.TaskCompleted},
		{"Task pending", order.TaskPending},
		{"Equipment left on", order.EquipmentNotes},
	} {
		flows = append(flows,
			newHeading(section.label, styleLabel),
			newParagraph(orPlaceholder(section.text), styleBody),
			newSpacer(4),
		)
	}
	flows = append(flows, newSpacer(4))

	flows = append(flows, newHeading("Materials", styleHeading))
	if order.HasMaterials() {
		flows = append(flows, materialsTable(order.Materials))
	} else {
		flows = append(flows, newParagraph(placeholder, styleBody))
	}

	return append(flows,
		newSpacer(8),
		newParagraph(closingNote, styleSmall),
	)
}

func technicianLine(techs []workorder.Technician) string {
	parts := make([]string, 0, len(techs))
	for _, t := range techs {
		parts = append(parts, t.EmployeeID+" - "+t.Name)
	}
	return orPlaceholder(strings.Join(parts, ", "))
}

func infoGrid(order *workorder.WorkOrder, date string) *table {
	odometer := formatDecimal(order.OdometerStart) + " / " + formatDecimal(order.OdometerEnd)
	distance := placeholder
	if d, ok := order.DistanceTravelled(); ok {
		distance = d.String() + " km"
	}
	vehicle := order.VehicleLabel()

	t := newTable(infoGridColumns, nil, [][]string{
		{"Location", orPlaceholder(order.Location), "Vehicle", orPlaceholder(vehicle)},
		{"Board", order.BoardID, "Circuit", orPlaceholder(order.CircuitID)},
		{"Date", date, "Odometer", odometer},
		{"Type", catalogLabel(workorder.MaintenanceTypes, order.MaintenanceType), "Priority", catalogLabel(workorder.Priorities, order.Priority)},
		{"Start time", orPlaceholder(order.StartTime), "End time", orPlaceholder(order.EndTime)},
		{"Cost center", orPlaceholder(order.CostCenter), "Distance", distance},
	})
	t.shadeFirstRow = true
	return t
}

func materialsTable(materials []workorder.Material) *table {
	rows := make([][]string, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, []string{
			orPlaceholder(m.Name),
			m.Quantity.String(),
			catalogLabel(workorder.Units, m.Unit),
		})
	}
	return newTable(materialColumns, materialHeader, rows)
}
