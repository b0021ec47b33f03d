package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/maintenance/backend/internal/domain/workorder"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrderLayout_SectionOrder(t *testing.T) {
	texts := allTexts(layoutPages(t, sampleOrder(), nil))
	require.NotEmpty(t, texts)
	assert.True(t, strings.HasPrefix(texts[0], encodeText("Work Order – ")))

	previous := -1
	for _, section := range []string{
		"Location", "Board", "Date", "Type", "Start time", "Cost center",
		"Technicians", "Task requested", "Notes", "Task completed",
		"Task pending", "Equipment left on", "Materials", closingNote,
	} {
		idx := indexOf(texts, encodeText(section))
		require.NotEqual(t, -1, idx, "missing %q", section)
		assert.Greater(t, idx, previous, "%q is out of order", section)
		previous = idx
	}
}

func TestWorkOrderLayout_Placeholders(t *testing.T) {
	order := sampleOrder()
	order.TaskPending = "   "
	order.EquipmentNotes = "\u0007\x1b\r\n"
	order.Location = ""
	order.CostCenter = "\x00"
	order.VehicleID = ""
	order.OdometerEnd = nil

	texts := allTexts(layoutPages(t, order, nil))
	dash := encodeText(placeholder)

	idx := indexOf(texts, encodeText("Task pending"))
	require.NotEqual(t, -1, idx)
	assert.Equal(t, dash, texts[idx+1])

	idx = indexOf(texts, encodeText("Equipment left on"))
	require.NotEqual(t, -1, idx)
	assert.Equal(t, dash, texts[idx+1])

	idx = indexOf(texts, encodeText("Location"))
	require.NotEqual(t, -1, idx)
	assert.Equal(t, dash, texts[idx+1])

	idx = indexOf(texts, encodeText("Cost center"))
	require.NotEqual(t, -1, idx)
	assert.Equal(t, dash, texts[idx+1])

	assert.Contains(t, texts, "15230.5 / "+dash)
}

func TestWorkOrderLayout_TechniciansLine(t *testing.T) {
	texts := allTexts(layoutPages(t, sampleOrder(), nil))
	assert.Contains(t, texts, encodeText("1021 - Ana Torres, 1034 - Luis Pérez"))
}

func TestWorkOrderLayout_EmptyMaterials(t *testing.T) {
	order := sampleOrder()
	order.Materials = nil

	pages := layoutPages(t, order, nil)
	texts := allTexts(pages)

	idx := indexOf(texts, "Materials")
	require.NotEqual(t, -1, idx)
	assert.Equal(t, encodeText(placeholder), texts[idx+1])
	assert.NotContains(t, texts, "Quantity")

	// only the header grid draws a box
	boxes := 0
	for _, p := range pages {
		for _, op := range p.ops {
			if op.kind == opRect && op.rectStyle == "D" {
				boxes++
			}
		}
	}
	assert.Equal(t, 1, boxes)
}

func TestWorkOrderLayout_MaterialsTable(t *testing.T) {
	texts := allTexts(layoutPages(t, sampleOrder(), nil))

	idx := indexOf(texts, "Materials")
	require.NotEqual(t, -1, idx)
	assert.Equal(t, []string{"Material", "Quantity", "Unit"}, texts[idx+1:idx+4])
	assert.Equal(t, []string{"LED luminaire 100W", "5", "Unit"}, texts[idx+4:idx+7])
	assert.Equal(t, []string{"Cable 2x2.5mm", "12.5", "Meters"}, texts[idx+7:idx+10])
}

func TestWorkOrderLayout_LongTextSpansPages(t *testing.T) {
	order := sampleOrder()
	order.TaskCompleted = longText(120)

	pages := layoutPages(t, order, nil)
	require.Greater(t, len(pages), 1)
	for i, p := range pages {
		assert.Positive(t, p.Len(), "page %d is empty", i+1)
		assert.LessOrEqual(t, p.state.cursorY, 297-defaultTestMargins.Bottom+layoutEpsilon)
	}

	texts := allTexts(pages)
	assert.Equal(t, encodeText(closingNote), texts[len(texts)-1])
}

func TestWorkOrderLayout_TableRowsNeverSplit(t *testing.T) {
	order := sampleOrder()
	order.Materials = nil
	for i := 1; i <= 150; i++ {
		order.Materials = append(order.Materials, workorder.Material{
			Name:     fmt.Sprintf("Item %03d", i),
			Quantity: decimal.NewFromInt(int64(i)),
			Unit:     workorder.UnitEach,
		})
	}

	pages := layoutPages(t, order, nil)
	require.Greater(t, len(pages), 1)

	seen := map[string]int{}
	for n, p := range pages {
		texts := p.texts()
		firstItem := -1
		for i, s := range texts {
			if strings.HasPrefix(s, "Item ") {
				seen[s]++
				if firstItem == -1 {
					firstItem = i
				}
			}
		}
		if firstItem == -1 {
			continue
		}
		header := indexOf(texts, "Quantity")
		require.NotEqual(t, -1, header, "page %d has rows but no header", n+1)
		assert.Less(t, header, firstItem)
	}

	assert.Len(t, seen, 150)
	for name, count := range seen {
		assert.Equal(t, 1, count, "%s drawn %d times", name, count)
	}
}

func TestWorkOrderLayout_Logo(t *testing.T) {
	logo := &placedLogo{asset: &LogoAsset{ImageType: "PNG"}, width: 32, height: 16}
	pages := layoutPages(t, sampleOrder(), logo)

	first := pages[0].ops[0]
	assert.Equal(t, opImage, first.kind)
	assert.Equal(t, logoImageName, first.image)
	assert.Equal(t, defaultTestMargins.Left, first.x)
	assert.Equal(t, defaultTestMargins.Top, first.y)

	for _, p := range layoutPages(t, sampleOrder(), nil) {
		for _, op := range p.ops {
			assert.NotEqual(t, opImage, op.kind)
		}
	}
}

func TestLayoutEngine_HeadingKeptWithNext(t *testing.T) {
	e := newLayoutEngine(newMeasurer(), 210, 297, defaultTestMargins)
	e.y = e.bottom - 8

	pages, err := e.layout(t.Context(), []flowable{
		newHeading("Materials", styleHeading),
		newParagraph("Cable", styleBody),
	})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 0, pages[0].Len())
	assert.Equal(t, []string{"Materials", "Cable"}, pages[1].texts())
}

func TestLayoutEngine_SpacerNeverStartsPage(t *testing.T) {
	e := newLayoutEngine(newMeasurer(), 210, 297, defaultTestMargins)
	e.y = e.bottom - 1

	pages, err := e.layout(t.Context(), []flowable{newSpacer(40)})
	require.NoError(t, err)
	assert.Len(t, pages, 1)
	assert.Equal(t, e.bottom, pages[0].state.cursorY)
}

func TestLayoutEngine_RowTallerThanPage(t *testing.T) {
	e := newLayoutEngine(newMeasurer(), 210, 297, defaultTestMargins)
	tbl := newTable([]column{{width: 30, align: alignLeft, style: styleCell}}, nil,
		[][]string{{longText(40)}})

	_, err := e.layout(t.Context(), []flowable{tbl})
	require.Error(t, err)

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeLayoutOverflow, renderErr.Code)
}

func TestLayoutEngine_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	e := newLayoutEngine(newMeasurer(), 210, 297, defaultTestMargins)
	_, err := e.layout(ctx, []flowable{newParagraph("x", styleBody)})

	var renderErr *RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, ErrCodeRenderCanceled, renderErr.Code)
	assert.ErrorIs(t, err, context.Canceled)
}
