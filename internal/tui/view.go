package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/jmylchreest/datepick/internal/adapter/output"
	"github.com/jmylchreest/datepick/internal/calendar"
	"github.com/jmylchreest/datepick/internal/picker"
)

const pageTitle = "Date Picker"

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.viewHelp()
	}

	snaps, err := m.set.Snapshots(m.cfg.Page.Placeholder)
	if err != nil {
		return m.styles.StatusError.Render(err.Error())
	}

	c := newCanvas(m.width, m.height)
	c.place(sidePadding, 0, m.styles.Title.Render(pageTitle))

	for i, s := range snaps {
		r := m.lay.triggers[i]
		c.place(r.X, r.Y-labelRows, m.renderLabel(i, r.Width))
		c.place(r.X, r.Y, m.renderTrigger(i, s, r.Width))
	}

	mode := "closed"
	if i, ok := m.set.OpenIndex(); ok {
		mode = "open"
		pr := m.lay.popupRect(i, snaps[i].Above)
		c.place(pr.X, pr.Y, m.renderPopup(i, snaps[i]))
	}

	c.place(0, m.height-2, m.renderStatus(snaps))
	c.place(0, m.height-1, m.buildKeybindBar(m.width, mode))

	return c.String()
}

func (m Model) renderLabel(i, width int) string {
	label := ""
	if i < len(m.cfg.Page.Labels) {
		label = m.cfg.Page.Labels[i]
	}
	style := m.styles.Label
	if i == m.focus {
		style = style.Bold(true)
	}
	return style.Render(xansi.Truncate(label, width, "…"))
}

// renderTrigger draws the box showing the picker's date.
func (m Model) renderTrigger(i int, s picker.Snapshot, width int) string {
	style := m.styles.Trigger
	if i == m.focus {
		style = m.styles.TriggerFocused
	}

	indicator := "▾"
	if s.Open {
		indicator = "▴"
	}

	textStyle := m.styles.Value
	if s.Selected == nil {
		textStyle = m.styles.Placeholder
	}

	inner := width - style.GetHorizontalFrameSize()
	text := xansi.Truncate(s.DisplayText, max(inner-2, 1), "…")
	gap := max(inner-xansi.StringWidth(text)-xansi.StringWidth(indicator), 1)

	content := textStyle.Render(text) + strings.Repeat(" ", gap) + m.styles.Nav.Render(indicator)
	return style.Width(width - style.GetHorizontalBorderSize()).Render(content)
}

// renderPopup draws the calendar of picker i.
func (m Model) renderPopup(i int, s picker.Snapshot) string {
	st := m.styles
	month, err := calendar.ParseMonth(s.Month)
	if err != nil {
		return st.Popup.Render(st.StatusError.Render(err.Error()))
	}

	inner := popupContentWidth - 2*navWidth
	header := func(prev, title, next string) string {
		return st.Nav.Render(prev) +
			st.Header.Render(lipgloss.PlaceHorizontal(inner, lipgloss.Center, title)) +
			st.Nav.Render(next)
	}

	lines := make([]string, 0, popupContentRows)
	lines = append(lines,
		header("« ", fmt.Sprintf("%d", month.Year), " »"),
		header("‹ ", month.Month.String(), " ›"),
		st.Weekday.Render(output.WeekdayHeader(gridCellWidth)),
	)

	showCursor := i == m.focus
	for w := 0; w < calendar.Weeks; w++ {
		cells := make([]string, 0, calendar.DaysPerWeek)
		for _, cv := range s.Week(w) {
			cursor := showCursor && cv.Date.Equal(m.cursor)
			cells = append(cells, m.dayStyle(cv, cursor).Render(fmt.Sprintf("%2d", cv.Date.Day)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return st.Popup.Render(strings.Join(lines, "\n"))
}

// dayStyle picks the style of one grid cell.
func (m Model) dayStyle(cv picker.CellView, cursor bool) lipgloss.Style {
	st := m.styles.Day
	switch {
	case cv.Selected:
		st = m.styles.Selected
	case cv.Today:
		st = m.styles.Today
	case !cv.InCurrentMonth:
		st = m.styles.Padding
	}
	if cursor {
		if cv.Selected || cv.Today {
			return st.Underline(true)
		}
		return m.styles.Cursor
	}
	return st
}

// renderStatus shows the status message, or the focused picker's date.
func (m Model) renderStatus(snaps []picker.Snapshot) string {
	if m.statusMsg != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		return style.Render(xansi.Truncate(" "+m.statusMsg, m.width, "…"))
	}

	if m.focus >= len(snaps) {
		return ""
	}
	s := snaps[m.focus]
	text := " " + s.DisplayText
	if i := m.focus; i < len(m.cfg.Page.Labels) {
		text = " " + m.cfg.Page.Labels[i] + ": " + s.DisplayText
	}
	if s.Selected != nil {
		text += " (" + output.RelativeDay(*s.Selected, s.Today) + ")"
	}
	return m.styles.Status.Render(xansi.Truncate(text, m.width, "…"))
}

func (m Model) viewHelp() string {
	s := m.styles.Title.MarginBottom(1).Render("Keyboard Shortcuts") + "\n\n"
	s += m.help.View(m.keys) + "\n\n"

	s += m.styles.Help.Render("Mouse: click a field to open it, a day to pick it, the arrows to change") + "\n"
	s += m.styles.Help.Render("month or year; click anywhere else to close.") + "\n\n"

	s += m.styles.Help.Render("Press ? or esc to return")
	return s
}

// keybind represents a single keybind with priority for the status bar.
type keybind struct {
	key      string
	desc     string
	priority int // lower = more important (shown first)
}

// buildKeybindBar builds a keybind bar that fits within the given width.
// mode determines which keybinds are shown: "closed" or "open".
func (m Model) buildKeybindBar(width int, mode string) string {
	var binds []keybind

	switch mode {
	case "closed":
		// Priority order while closed (most important first)
		binds = []keybind{
			{"q", "quit", 1},
			{"enter", "open", 2},
			{"tab", "next", 3},
			{"?", "help", 4},
			{"y", "copy", 5},
			{"x", "clear", 6},
			{"C", "copy all", 7},
		}
	case "open":
		binds = []keybind{
			{"esc", "close", 1},
			{"enter", "select", 2},
			{"←↑↓→", "move", 3},
			{"h/l", "month", 4},
			{"H/L", "year", 5},
			{"t", "today", 6},
			{"?", "help", 7},
		}
	}

	// Build the bar, adding keybinds until we run out of space
	const separator = "  "
	result := " "
	for _, b := range binds {
		item := m.styles.HelpKey.Render(b.key) + m.styles.Help.Render(" "+b.desc)
		testLen := xansi.StringWidth(result) + len(separator) + xansi.StringWidth(b.key+" "+b.desc)

		if width > 0 && testLen > width {
			break
		}
		if result != " " {
			result += m.styles.Help.Render(separator)
		}
		result += item
	}

	return result
}
