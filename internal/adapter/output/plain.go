package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/datepick/internal/calendar"
	"github.com/jmylchreest/datepick/internal/picker"
)

// Each day occupies cellWidth columns: "[15]" selected, " 15*" today.
const cellWidth = 4

// PlainFormatter formats snapshots as cal(1)-style month grids.
type PlainFormatter struct {
	opts FormatterOptions
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	return &PlainFormatter{opts: opts}
}

// Format writes each snapshot as a month grid, separated by blank lines.
func (f *PlainFormatter) Format(w io.Writer, snaps []picker.Snapshot) error {
	for i, s := range snaps {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := f.formatSnapshot(w, i, s); err != nil {
			return err
		}
	}
	return nil
}

// formatSnapshot formats a single snapshot.
func (f *PlainFormatter) formatSnapshot(w io.Writer, index int, s picker.Snapshot) error {
	var sb strings.Builder

	if label := f.opts.label(index); label != "" {
		sb.WriteString(label + "\n")
	}

	title := center(monthTitle(s.Month), cellWidth*calendar.DaysPerWeek)
	sb.WriteString(strings.TrimRight(title, " ") + "\n")
	sb.WriteString(WeekdayHeader(cellWidth) + "\n")

	for week := 0; week < calendar.Weeks; week++ {
		var line strings.Builder
		for _, cell := range s.Week(week) {
			line.WriteString(f.formatCell(cell))
		}
		sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}

	sb.WriteString("Selected: " + s.DisplayText)
	if f.opts.ShowRelative && s.Selected != nil {
		sb.WriteString(" (" + snapshotRelative(s) + ")")
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (f *PlainFormatter) formatCell(cell picker.CellView) string {
	switch {
	case !cell.InCurrentMonth && !f.opts.ShowPadding:
		return strings.Repeat(" ", cellWidth)
	case cell.Selected:
		return fmt.Sprintf("[%2d]", cell.Date.Day)
	case cell.Today:
		return fmt.Sprintf(" %2d*", cell.Date.Day)
	default:
		return fmt.Sprintf(" %2d ", cell.Date.Day)
	}
}

// WeekdayHeader returns the Sunday-first day abbreviations, each centred
// in width columns.
func WeekdayHeader(width int) string {
	var sb strings.Builder
	for i := 0; i < calendar.DaysPerWeek; i++ {
		sb.WriteString(center(calendar.WeekdayAbbrev(i), width))
	}
	return strings.TrimRight(sb.String(), " ")
}

// monthTitle turns "2024-01" into "January 2024".
func monthTitle(month string) string {
	d, err := calendar.ParseMonth(month)
	if err != nil {
		return month
	}
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
