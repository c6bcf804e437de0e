// Package picker holds the interaction state of date pickers: an open or
// closed popup over a calendar, where that popup opens, and the collection
// that routes UI events to individual pickers.
package picker

import (
	"fmt"

	"github.com/jmylchreest/datepick/internal/calendar"
)

// DefaultPlaceholder is shown when no date is selected.
const DefaultPlaceholder = "Select a date"

// Nav is a calendar navigation step.
type Nav int

const (
	NavPrevMonth Nav = iota
	NavNextMonth
	NavPrevYear
	NavNextYear
)

// NavNames maps navigation steps to their names.
var NavNames = map[Nav]string{
	NavPrevMonth: "prev-month",
	NavNextMonth: "next-month",
	NavPrevYear:  "prev-year",
	NavNextYear:  "next-year",
}

func (n Nav) String() string {
	if name, ok := NavNames[n]; ok {
		return name
	}
	return fmt.Sprintf("nav(%d)", int(n))
}

// Picker is a calendar popup attached to a trigger.
type Picker struct {
	cal   *calendar.Calendar
	open  bool
	above bool
}

// New creates a closed picker over cal.
func New(cal *calendar.Calendar) *Picker {
	if cal == nil {
		cal = calendar.New()
	}
	return &Picker{cal: cal}
}

// Calendar returns the picker's calendar.
func (p *Picker) Calendar() *calendar.Calendar {
	return p.cal
}

// IsOpen reports whether the popup is showing.
func (p *Picker) IsOpen() bool {
	return p.open
}

// ShowAbove reports whether the popup opens above the trigger.
func (p *Picker) ShowAbove() bool {
	return p.above
}

// Toggle opens or closes the popup. On open the placement is decided once
// from pl and kept until the next open.
func (p *Picker) Toggle(pl Placement) {
	if p.open {
		p.open = false
		return
	}
	p.above = pl.Above()
	p.open = true
}

// Select picks d and closes the popup.
func (p *Picker) Select(d calendar.Date) {
	p.cal.SetSelected(d)
	p.open = false
}

// Close closes the popup.
func (p *Picker) Close() {
	p.open = false
}

// Navigate moves the displayed month. On error the calendar is unchanged.
func (p *Picker) Navigate(n Nav) error {
	switch n {
	case NavPrevMonth:
		return p.cal.PrevMonth()
	case NavNextMonth:
		return p.cal.NextMonth()
	case NavPrevYear:
		return p.cal.PrevYear()
	case NavNextYear:
		return p.cal.NextYear()
	default:
		return fmt.Errorf("unknown navigation %v", n)
	}
}

// DisplayText returns the selected date as YYYY-MM-DD, or placeholder.
func (p *Picker) DisplayText(placeholder string) string {
	if d, ok := p.cal.Selected(); ok {
		return d.String()
	}
	return placeholder
}
