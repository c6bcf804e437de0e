package picker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/datepick/internal/calendar"
)

func clockAt(year int, month time.Month, day int) calendar.Option {
	return calendar.WithClock(calendar.ClockFunc(func() time.Time {
		return time.Date(year, month, day, 9, 30, 0, 0, time.Local)
	}))
}

func newPicker(year int, month time.Month, day int) *Picker {
	return New(calendar.New(clockAt(year, month, day)))
}

// roomBelow is a placement with plenty of space under the trigger.
var roomBelow = Placement{
	Trigger:     Rect{X: 0, Y: 2, Width: 20, Height: 3},
	Viewport:    Viewport{Width: 80, Height: 40},
	PopupHeight: 11,
	Margin:      1,
}

func TestNew_StartsClosed(t *testing.T) {
	p := newPicker(2024, time.May, 4)

	assert.False(t, p.IsOpen())
	assert.False(t, p.ShowAbove())
	assert.Equal(t, "2024-05-04", p.DisplayText(DefaultPlaceholder))
}

func TestToggle(t *testing.T) {
	p := newPicker(2024, time.May, 4)

	p.Toggle(roomBelow)
	assert.True(t, p.IsOpen())
	assert.False(t, p.ShowAbove())

	p.Toggle(roomBelow)
	assert.False(t, p.IsOpen())
}

func TestToggle_DecidesPlacementOnlyWhenOpening(t *testing.T) {
	p := newPicker(2024, time.May, 4)

	nearBottom := Placement{
		Trigger:     Rect{X: 0, Y: 30, Width: 20, Height: 3},
		Viewport:    Viewport{Width: 80, Height: 36},
		PopupHeight: 11,
		Margin:      1,
	}
	p.Toggle(nearBottom)
	require.True(t, p.IsOpen())
	assert.True(t, p.ShowAbove())

	// Closing keeps the last decision; reopening re-evaluates it.
	p.Toggle(roomBelow)
	assert.False(t, p.IsOpen())
	assert.True(t, p.ShowAbove())

	p.Toggle(roomBelow)
	assert.True(t, p.IsOpen())
	assert.False(t, p.ShowAbove())
}

func TestSelect_ClosesAndSelects(t *testing.T) {
	p := newPicker(2024, time.May, 4)
	p.Toggle(roomBelow)

	d := calendar.Date{Year: 2024, Month: time.May, Day: 17}
	p.Select(d)

	assert.False(t, p.IsOpen())
	assert.True(t, p.Calendar().IsSelected(d))
	assert.False(t, p.Calendar().IsSelected(calendar.Date{Year: 2024, Month: time.May, Day: 4}))
	assert.False(t, p.Calendar().IsSelected(d.AddDays(1)))
	assert.Equal(t, "2024-05-17", p.DisplayText(DefaultPlaceholder))
}

func TestClose_Unconditional(t *testing.T) {
	p := newPicker(2024, time.May, 4)

	p.Close()
	assert.False(t, p.IsOpen())

	p.Toggle(roomBelow)
	p.Close()
	assert.False(t, p.IsOpen())
}

func TestDisplayText_Placeholder(t *testing.T) {
	p := newPicker(2024, time.January, 3)
	p.Calendar().ClearSelection()

	assert.Equal(t, DefaultPlaceholder, p.DisplayText(DefaultPlaceholder))
	assert.Equal(t, "pick one", p.DisplayText("pick one"))

	p.Select(calendar.Date{Year: 987, Month: time.March, Day: 5})
	assert.Equal(t, "0987-03-05", p.DisplayText(DefaultPlaceholder))
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		name string
		nav  Nav
		want string
	}{
		{"prev_month", NavPrevMonth, "2023-12"},
		{"next_month", NavNextMonth, "2024-02"},
		{"prev_year", NavPrevYear, "2023-01"},
		{"next_year", NavNextYear, "2025-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPicker(2024, time.January, 15)
			require.NoError(t, p.Navigate(tt.nav))
			assert.Equal(t, tt.want, p.Calendar().CurrentMonth().MonthString())
		})
	}
}

func TestNavigate_Unknown(t *testing.T) {
	p := newPicker(2024, time.January, 15)
	assert.Error(t, p.Navigate(Nav(42)))
	assert.Equal(t, "nav(42)", Nav(42).String())
	assert.Equal(t, "next-year", NavNextYear.String())
}

func TestSnapshot(t *testing.T) {
	p := newPicker(2024, time.January, 10)
	p.Select(calendar.Date{Year: 2024, Month: time.January, Day: 20})

	snap, err := p.Snapshot(DefaultPlaceholder)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-20", snap.DisplayText)
	assert.Equal(t, "2024-01", snap.Month)
	assert.Equal(t, calendar.Date{Year: 2024, Month: time.January, Day: 10}, snap.Today)
	assert.False(t, snap.Open)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, calendar.Date{Year: 2024, Month: time.January, Day: 20}, *snap.Selected)

	assert.Equal(t, calendar.Date{Year: 2023, Month: time.December, Day: 31}, snap.Grid[0].Date)
	assert.False(t, snap.Grid[0].InCurrentMonth)

	var today, selected, inMonth int
	for _, cell := range snap.Grid {
		if cell.Today {
			today++
			assert.Equal(t, 10, cell.Date.Day)
		}
		if cell.Selected {
			selected++
			assert.Equal(t, 20, cell.Date.Day)
		}
		if cell.InCurrentMonth {
			inMonth++
		}
	}
	assert.Equal(t, 1, today)
	assert.Equal(t, 1, selected)
	assert.Equal(t, 31, inMonth)

	week := snap.Week(1)
	require.Len(t, week, calendar.DaysPerWeek)
	assert.Equal(t, time.Sunday, week[0].Date.Weekday())
	assert.Equal(t, 7, week[0].Date.Day)

	assert.Len(t, snap.Week(calendar.Weeks-1), calendar.DaysPerWeek)
	assert.Nil(t, snap.Week(-1))
	assert.Nil(t, snap.Week(calendar.Weeks))
}

func TestSnapshot_NoSelection(t *testing.T) {
	p := newPicker(2024, time.January, 10)
	p.Calendar().ClearSelection()

	snap, err := p.Snapshot("none")
	require.NoError(t, err)
	assert.Equal(t, "none", snap.DisplayText)
	assert.Nil(t, snap.Selected)
	for _, cell := range snap.Grid {
		assert.False(t, cell.Selected)
	}
}

func TestSnapshot_RangeError(t *testing.T) {
	p := newPicker(9999, time.December, 1)

	_, err := p.Snapshot(DefaultPlaceholder)
	assert.ErrorIs(t, err, calendar.ErrDateRange)
}
