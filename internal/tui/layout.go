package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/datepick/internal/calendar"
	"github.com/jmylchreest/datepick/internal/picker"
)

// Page geometry, in cells.
const (
	contentTop      = 2 // title and a blank line
	footerRows      = 2 // status line and keybind bar
	labelRows       = 1
	triggerRows     = 3 // bordered, one line of text
	blockRows       = labelRows + triggerRows
	sidePadding     = 2
	minTriggerWidth = 16
	maxTriggerWidth = 30
)

// Popup content geometry. The content is a year row, a month row, the
// weekday header and six weeks; each day is two cells plus a separator.
const (
	yearRow           = 0
	monthRow          = 1
	gridRow           = 3
	navWidth          = 2
	gridCellWidth     = 3
	popupContentWidth = calendar.DaysPerWeek*gridCellWidth - 1
	popupContentRows  = gridRow + calendar.Weeks
)

// popupFrame is the outer size of a rendered popup and where its content
// starts inside it.
type popupFrame struct {
	width  int
	height int
	offX   int
	offY   int
}

// measurePopup returns the frame a popup rendered with style will have.
func measurePopup(style lipgloss.Style) popupFrame {
	return popupFrame{
		width:  popupContentWidth + style.GetHorizontalFrameSize(),
		height: popupContentRows + style.GetVerticalFrameSize(),
		offX:   style.GetMarginLeft() + style.GetBorderLeftSize() + style.GetPaddingLeft(),
		offY:   style.GetMarginTop() + style.GetBorderTopSize() + style.GetPaddingTop(),
	}
}

// layout is the position of every trigger for one window size.
type layout struct {
	viewport picker.Viewport
	triggers []picker.Rect
	popup    popupFrame
	gap      int
}

// computeLayout places n triggers in a grid of the given columns. The first
// row sits under the title and the last row sits on the footer, so the
// bottom row is where popups run out of room below.
func computeLayout(n, columns int, vp picker.Viewport, popup popupFrame, gap int) layout {
	if columns < 1 {
		columns = 1
	}
	rows := (n + columns - 1) / columns

	colWidth := (vp.Width - sidePadding) / columns
	triggerWidth := min(colWidth-sidePadding, maxTriggerWidth)
	if triggerWidth < minTriggerWidth {
		triggerWidth = minTriggerWidth
	}

	span := max(vp.Height-footerRows-contentTop-blockRows, 0)

	l := layout{
		viewport: vp,
		triggers: make([]picker.Rect, n),
		popup:    popup,
		gap:      gap,
	}
	for i := range l.triggers {
		row, col := i/columns, i%columns
		top := contentTop
		if rows > 1 {
			top += row * span / (rows - 1)
		}
		l.triggers[i] = picker.Rect{
			X:      sidePadding + col*colWidth,
			Y:      top + labelRows,
			Width:  triggerWidth,
			Height: triggerRows,
		}
	}
	return l
}

// popupRect returns where picker i's popup is drawn.
func (l layout) popupRect(i int, above bool) picker.Rect {
	t := l.triggers[i]
	r := picker.Rect{
		X:      t.X,
		Y:      t.Bottom() + l.gap,
		Width:  l.popup.width,
		Height: l.popup.height,
	}
	if above {
		r.Y = t.Y - l.gap - l.popup.height
	}
	if r.Right() > l.viewport.Width {
		r.X = max(l.viewport.Width-r.Width, 0)
	}
	return r
}

// hitKind classifies what a click landed on.
type hitKind int

const (
	hitNone    hitKind = iota // outside every trigger and popup
	hitPopup                  // inside the open popup, not on a control
	hitTrigger                // on trigger index
	hitNav                    // on a navigation arrow of popup index
	hitDay                    // on grid cell of popup index
)

// hit is the single target of a click.
type hit struct {
	kind  hitKind
	index int
	nav   picker.Nav
	cell  int
}

// hitTest resolves the click at (x, y). open is the index of the open
// picker, or -1. The popup is drawn over the triggers, so it is tested
// first.
func (l layout) hitTest(x, y, open int, above bool) hit {
	if open >= 0 && open < len(l.triggers) {
		pr := l.popupRect(open, above)
		if pr.Contains(x, y) {
			return popupHit(open, x-pr.X-l.popup.offX, y-pr.Y-l.popup.offY)
		}
	}
	for i, t := range l.triggers {
		if t.Contains(x, y) {
			return hit{kind: hitTrigger, index: i}
		}
	}
	return hit{kind: hitNone, index: -1}
}

// popupHit resolves a click at content coordinates (cx, cy).
func popupHit(index, cx, cy int) hit {
	h := hit{kind: hitPopup, index: index}
	if cx < 0 || cx >= popupContentWidth {
		return h
	}

	switch {
	case cy == yearRow || cy == monthRow:
		left := cx < navWidth
		right := cx >= popupContentWidth-navWidth
		switch {
		case cy == yearRow && left:
			h.kind, h.nav = hitNav, picker.NavPrevYear
		case cy == yearRow && right:
			h.kind, h.nav = hitNav, picker.NavNextYear
		case left:
			h.kind, h.nav = hitNav, picker.NavPrevMonth
		case right:
			h.kind, h.nav = hitNav, picker.NavNextMonth
		}
	case cy >= gridRow && cy < gridRow+calendar.Weeks:
		h.kind = hitDay
		h.cell = (cy-gridRow)*calendar.DaysPerWeek + cx/gridCellWidth
	}
	return h
}

// canvas is a fixed-size screen that blocks are drawn onto in order, later
// blocks covering earlier ones.
type canvas struct {
	width int
	lines []string
}

func newCanvas(width, height int) *canvas {
	blank := strings.Repeat(" ", max(width, 0))
	lines := make([]string, max(height, 0))
	for i := range lines {
		lines[i] = blank
	}
	return &canvas{width: width, lines: lines}
}

// place draws block with its top-left corner at (x, y), clipped to the
// canvas.
func (c *canvas) place(x, y int, block string) {
	if x < 0 {
		x = 0
	}
	if x >= c.width {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(c.lines) {
			continue
		}
		w := xansi.StringWidth(line)
		if x+w > c.width {
			line = xansi.Truncate(line, c.width-x, "")
			w = xansi.StringWidth(line)
		}
		bg := c.lines[row]
		c.lines[row] = xansi.Cut(bg, 0, x) + line + xansi.Cut(bg, x+w, c.width)
	}
}

func (c *canvas) String() string {
	return strings.Join(c.lines, "\n")
}
