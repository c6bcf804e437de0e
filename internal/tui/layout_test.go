package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/datepick/internal/picker"
)

// testFrame matches a rounded border with one column of padding.
var testFrame = popupFrame{width: 24, height: 11, offX: 2, offY: 1}

func TestMeasurePopup(t *testing.T) {
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	assert.Equal(t, testFrame, measurePopup(style))

	assert.Equal(t, popupFrame{width: popupContentWidth, height: popupContentRows}, measurePopup(lipgloss.NewStyle()))
}

func TestComputeLayout_TwoByTwo(t *testing.T) {
	l := computeLayout(4, 2, picker.Viewport{Width: 80, Height: 24}, testFrame, 0)
	require.Len(t, l.triggers, 4)

	assert.Equal(t, picker.Rect{X: 2, Y: 3, Width: 30, Height: 3}, l.triggers[0])
	assert.Equal(t, picker.Rect{X: 41, Y: 3, Width: 30, Height: 3}, l.triggers[1])
	// Last row sits directly on the footer
	assert.Equal(t, picker.Rect{X: 2, Y: 19, Width: 30, Height: 3}, l.triggers[2])
	assert.Equal(t, 24-footerRows, l.triggers[3].Bottom())
}

func TestComputeLayout_SingleRow(t *testing.T) {
	l := computeLayout(2, 2, picker.Viewport{Width: 80, Height: 24}, testFrame, 0)
	assert.Equal(t, 3, l.triggers[0].Y)
	assert.Equal(t, 3, l.triggers[1].Y)
}

func TestComputeLayout_NarrowWindow(t *testing.T) {
	l := computeLayout(4, 1, picker.Viewport{Width: 12, Height: 40}, testFrame, 0)
	for _, r := range l.triggers {
		assert.Equal(t, minTriggerWidth, r.Width)
		assert.Equal(t, sidePadding, r.X)
	}
	// Rows are spread evenly and never overlap
	for i := 1; i < len(l.triggers); i++ {
		assert.GreaterOrEqual(t, l.triggers[i].Y-l.triggers[i-1].Y, blockRows)
	}
}

func TestPopupRect(t *testing.T) {
	l := computeLayout(4, 2, picker.Viewport{Width: 80, Height: 24}, testFrame, 1)

	below := l.popupRect(0, false)
	assert.Equal(t, picker.Rect{X: 2, Y: 7, Width: 24, Height: 11}, below)

	above := l.popupRect(2, true)
	assert.Equal(t, l.triggers[2].Y-1, above.Bottom())
}

func TestPopupRect_ShiftsIntoViewport(t *testing.T) {
	l := computeLayout(2, 2, picker.Viewport{Width: 46, Height: 24}, testFrame, 0)
	require.Equal(t, 24, l.triggers[1].X)

	r := l.popupRect(1, false)
	assert.Equal(t, 46, r.Right())
	assert.Equal(t, 22, r.X)
}

func TestHitTest(t *testing.T) {
	l := computeLayout(4, 2, picker.Viewport{Width: 80, Height: 24}, testFrame, 0)
	// Popup 0 opens below at (2, 6); content starts at (4, 7).

	tests := []struct {
		name string
		x, y int
		open int
		want hit
	}{
		{"trigger_closed", 5, 4, -1, hit{kind: hitTrigger, index: 0}},
		{"second_trigger", 45, 20, -1, hit{kind: hitTrigger, index: 3}},
		{"empty_space", 70, 15, -1, hit{kind: hitNone, index: -1}},
		{"prev_year", 4, 7, 0, hit{kind: hitNav, index: 0, nav: picker.NavPrevYear}},
		{"next_year", 23, 7, 0, hit{kind: hitNav, index: 0, nav: picker.NavNextYear}},
		{"prev_month", 5, 8, 0, hit{kind: hitNav, index: 0, nav: picker.NavPrevMonth}},
		{"next_month", 22, 8, 0, hit{kind: hitNav, index: 0, nav: picker.NavNextMonth}},
		{"year_title", 12, 7, 0, hit{kind: hitPopup, index: 0}},
		{"weekday_row", 12, 9, 0, hit{kind: hitPopup, index: 0}},
		{"popup_border", 2, 12, 0, hit{kind: hitPopup, index: 0}},
		{"first_cell", 4, 10, 0, hit{kind: hitDay, index: 0, cell: 0}},
		{"cell_separator", 6, 10, 0, hit{kind: hitDay, index: 0, cell: 0}},
		{"last_cell", 23, 15, 0, hit{kind: hitDay, index: 0, cell: 41}},
		{"row_two_col_three", 13, 12, 0, hit{kind: hitDay, index: 0, cell: 17}},
		{"outside_open_popup", 70, 15, 0, hit{kind: hitNone, index: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, l.hitTest(tt.x, tt.y, tt.open, false))
		})
	}
}

func TestHitTest_PopupCoversTrigger(t *testing.T) {
	// A tall popup opening below trigger 0 covers trigger 2.
	l := computeLayout(4, 2, picker.Viewport{Width: 80, Height: 14}, popupFrame{width: 24, height: 20, offX: 2, offY: 1}, 0)
	t2 := l.triggers[2]

	assert.Equal(t, hitTrigger, l.hitTest(t2.X+1, t2.Y+1, -1, false).kind)
	assert.Equal(t, hitPopup, l.hitTest(t2.X+1, t2.Y+1, 0, false).kind)
}

func TestCanvas_Place(t *testing.T) {
	c := newCanvas(10, 3)
	c.place(2, 1, "abc")
	c.place(8, 0, "wxyz")
	c.place(0, 2, "12\n34")
	c.place(20, 0, "off")

	lines := strings.Split(c.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "        wx", lines[0])
	assert.Equal(t, "  abc     ", lines[1])
	assert.Equal(t, "12        ", lines[2])
}

func TestCanvas_Overlap(t *testing.T) {
	c := newCanvas(8, 1)
	c.place(0, 0, "aaaaaaaa")
	c.place(3, 0, "BB")
	assert.Equal(t, "aaaBBaaa", c.String())
}
