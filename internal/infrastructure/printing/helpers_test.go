package printing

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/maintenance/backend/internal/domain/printing"
	"github.com/maintenance/backend/internal/domain/workorder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedClock = func() time.Time {
	return time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleOrder() *workorder.WorkOrder {
	return &workorder.WorkOrder{
		Date:            time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
		Location:        "Av. Costanera 1200",
		BoardID:         "TI 100",
		CircuitID:       "A  B",
		VehicleID:       "MOV-02",
		OdometerStart:   dec("15230.5"),
		OdometerEnd:     dec("15262"),
		MaintenanceType: workorder.MaintenanceCorrective,
		Priority:        workorder.PriorityUrgent,
		StartTime:       "08:15",
		EndTime:         "11:40",
		Technicians: []workorder.Technician{
			{EmployeeID: "1021", Name: "Ana Torres"},
			{EmployeeID: "1034", Name: "Luis Pérez"},
		},
		TaskRequested:  "Replace burnt luminaires on poles 12 to 18.",
		TaskCompleted:  "Replaced 5 luminaires and one photocell.",
		EquipmentNotes: "Poles 12-18 left on for testing.",
		Materials: []workorder.Material{
			{Name: "LED luminaire 100W", Quantity: decimal.NewFromInt(5), Unit: workorder.UnitEach},
			{Name: "Cable 2x2.5mm", Quantity: decimal.RequireFromString("12.5"), Unit: workorder.UnitMeters},
		},
	}
}

func longText(sentences int) string {
	return strings.Repeat("The crew inspected the circuit, cleaned the contacts and measured the insulation resistance of every branch. ", sentences)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var defaultTestMargins = printing.DefaultMargins()

func layoutPages(t *testing.T, order *workorder.WorkOrder, logo *placedLogo) []*PageSnapshot {
	t.Helper()
	engine := newLayoutEngine(newMeasurer(), 210, 297, defaultTestMargins)
	pages, err := engine.layout(t.Context(), buildWorkOrderLayout(order, logo))
	require.NoError(t, err)
	return pages
}

// indexOf returns the position of s in texts, or -1
func indexOf(texts []string, s string) int {
	for i, v := range texts {
		if v == s {
			return i
		}
	}
	return -1
}

func allTexts(pages []*PageSnapshot) []string {
	var out []string
	for _, p := range pages {
		out = append(out, p.texts()...)
	}
	return out
}

type stubLogo struct {
	asset *LogoAsset
	calls int
}

func (s *stubLogo) Logo(_ context.Context) (*LogoAsset, bool) {
	s.calls++
	return s.asset, s.asset != nil
}
