package calendar

import (
	"time"
)

// Grid dimensions. Weeks start on Sunday.
const (
	DaysPerWeek = 7
	Weeks       = 6
	GridSize    = DaysPerWeek * Weeks
)

// Cell is one slot of the month grid. Valid is false only if the cell could
// not be filled, which the grid algorithm never does for a supported month.
type Cell struct {
	Date  Date
	Valid bool
}

// Grid is the 6x7 layout of a month, row-major, Sunday first.
type Grid [GridSize]Cell

var weekdayAbbrevs = [DaysPerWeek]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// WeekdayAbbrev returns the two-letter name of grid column col (0 is Sunday).
func WeekdayAbbrev(col int) string {
	if col < 0 || col >= DaysPerWeek {
		return ""
	}
	return weekdayAbbrevs[col]
}

// Clock supplies the current time. Calendars read it on every IsToday call.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Calendar tracks the displayed month and the selected day.
type Calendar struct {
	current  Date
	selected *Date
	clock    Clock
	minYear  int
	maxYear  int
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithClock overrides the clock used for "today".
func WithClock(c Clock) Option {
	return func(cal *Calendar) {
		if c != nil {
			cal.clock = c
		}
	}
}

// WithYearRange narrows navigation to [first, last]. Values outside the
// representable range are ignored.
func WithYearRange(first, last int) Option {
	return func(cal *Calendar) {
		if first >= MinYear && last <= MaxYear && first <= last {
			cal.minYear = first
			cal.maxYear = last
		}
	}
}

// New returns a calendar showing today's month with today selected. When
// today's month cannot be displayed (outside the year range, or its grid
// leaves the representable range) the calendar starts on the nearest month
// that can, with nothing selected.
func New(opts ...Option) *Calendar {
	c := &Calendar{
		clock:   SystemClock,
		minYear: MinYear,
		maxYear: MaxYear,
	}
	for _, opt := range opts {
		opt(c)
	}

	today := c.Today()
	if c.checkMonth("new", today.Year, today.Month) == nil {
		c.current = today
		c.selected = &today
		return c
	}
	c.current = c.nearestMonth(today)
	return c
}

// nearestMonth returns day 1 of the displayable month closest to d.
func (c *Calendar) nearestMonth(d Date) Date {
	year, month, step := d.Year, d.Month, time.Month(1)
	switch {
	case d.Year < c.minYear:
		year, month = c.minYear, time.January
	case d.Year > c.maxYear:
		year, month, step = c.maxYear, time.December, -1
	case d.Month != time.January:
		step = -1
	}
	// Only January of MinYear and December of MaxYear are refused, so at
	// most one step is taken.
	for c.checkMonth("new", year, month) != nil {
		month += step
	}
	return Date{Year: year, Month: month, Day: 1}
}

// Today returns the current day according to the calendar's clock.
func (c *Calendar) Today() Date {
	return DateOf(c.clock.Now())
}

// YearRange returns the navigable year range.
func (c *Calendar) YearRange() (int, int) {
	return c.minYear, c.maxYear
}

// CurrentMonth returns the displayed month. Only Year and Month are
// meaningful.
func (c *Calendar) CurrentMonth() Date {
	return c.current
}

// Selected returns the selected day, if any.
func (c *Calendar) Selected() (Date, bool) {
	if c.selected == nil {
		return Date{}, false
	}
	return *c.selected, true
}

// SetSelected selects d.
func (c *Calendar) SetSelected(d Date) {
	c.selected = &d
}

// ClearSelection removes the selection.
func (c *Calendar) ClearSelection() {
	c.selected = nil
}

// GotoMonth displays the given month.
func (c *Calendar) GotoMonth(year int, month time.Month) error {
	if err := c.checkMonth("goto month", year, month); err != nil {
		return err
	}
	c.current = Date{Year: year, Month: month, Day: 1}
	return nil
}

// PrevMonth moves to the first day of the previous month.
func (c *Calendar) PrevMonth() error {
	year, month := c.current.Year, c.current.Month-1
	if month < time.January {
		year, month = year-1, time.December
	}
	if err := c.checkMonth("previous month", year, month); err != nil {
		return err
	}
	c.current = Date{Year: year, Month: month, Day: 1}
	return nil
}

// NextMonth moves to the first day of the next month.
func (c *Calendar) NextMonth() error {
	year, month := c.current.Year, c.current.Month+1
	if month > time.December {
		year, month = year+1, time.January
	}
	if err := c.checkMonth("next month", year, month); err != nil {
		return err
	}
	c.current = Date{Year: year, Month: month, Day: 1}
	return nil
}

// PrevYear moves back one year, keeping the month. A Feb 29 day is clamped
// to Feb 28.
func (c *Calendar) PrevYear() error {
	return c.shiftYear("previous year", -1)
}

// NextYear moves forward one year, keeping the month. A Feb 29 day is
// clamped to Feb 28.
func (c *Calendar) NextYear() error {
	return c.shiftYear("next year", 1)
}

func (c *Calendar) shiftYear(op string, delta int) error {
	year := c.current.Year + delta
	if err := c.checkMonth(op, year, c.current.Month); err != nil {
		return err
	}
	c.current = ClampDate(year, c.current.Month, c.current.Day)
	return nil
}

// checkMonth refuses months outside the navigable year range and months
// whose grid would need padding days outside the representable range.
func (c *Calendar) checkMonth(op string, year int, month time.Month) error {
	if year < c.minYear || year > c.maxYear {
		return &DateRangeError{Op: op, Year: year, Min: c.minYear, Max: c.maxYear}
	}
	first, last := gridBounds(year, month)
	if first.Year < MinYear {
		return &DateRangeError{Op: op, Year: first.Year, Min: c.minYear, Max: c.maxYear}
	}
	if last.Year > MaxYear {
		return &DateRangeError{Op: op, Year: last.Year, Min: c.minYear, Max: c.maxYear}
	}
	return nil
}

// gridBounds returns the first and last day shown in the grid of a month.
func gridBounds(year int, month time.Month) (Date, Date) {
	first := Date{Year: year, Month: month, Day: 1}
	start := first.AddDays(-int(first.Weekday()))
	return start, start.AddDays(GridSize - 1)
}

// MonthDays lays out the displayed month as 42 consecutive days: the tail
// of the previous month up to the Sunday on or before the 1st, every day
// of the month, then the head of the following month.
func (c *Calendar) MonthDays() (Grid, error) {
	var grid Grid

	year, month := c.current.Year, c.current.Month
	start, end := gridBounds(year, month)
	if start.Year < MinYear {
		return grid, &DateRangeError{Op: "month grid", Year: start.Year, Min: MinYear, Max: MaxYear}
	}
	if end.Year > MaxYear {
		return grid, &DateRangeError{Op: "month grid", Year: end.Year, Min: MinYear, Max: MaxYear}
	}

	first := Date{Year: year, Month: month, Day: 1}
	lead := int(first.Weekday())
	n := 0

	if lead > 0 {
		prev := first.AddDays(-1)
		for day := prev.Day - lead + 1; day <= prev.Day; day++ {
			grid[n] = Cell{Date: ClampDate(prev.Year, prev.Month, day), Valid: true}
			n++
		}
	}

	for day := 1; day <= DaysIn(year, month); day++ {
		grid[n] = Cell{Date: Date{Year: year, Month: month, Day: day}, Valid: true}
		n++
	}

	for ; n < GridSize; n++ {
		grid[n] = Cell{Date: grid[n-1].Date.AddDays(1), Valid: true}
	}

	return grid, nil
}

// IsToday reports whether d is today. The clock is read on every call.
func (c *Calendar) IsToday(d Date) bool {
	return d.Equal(c.Today())
}

// IsSelected reports whether d is the selected day.
func (c *Calendar) IsSelected(d Date) bool {
	return c.selected != nil && c.selected.Equal(d)
}

// IsCurrentMonth reports whether d falls in the displayed month.
func (c *Calendar) IsCurrentMonth(d Date) bool {
	return d.SameMonth(c.current)
}
