package picker

import (
	"github.com/jmylchreest/datepick/internal/calendar"
)

// CellView is one grid cell as the renderer sees it.
type CellView struct {
	Date           calendar.Date `json:"date" yaml:"date"`
	InCurrentMonth bool          `json:"in_current_month" yaml:"in_current_month"`
	Today          bool          `json:"today" yaml:"today"`
	Selected       bool          `json:"selected" yaml:"selected"`
}

// Snapshot is a read-only view of a picker.
type Snapshot struct {
	DisplayText string                      `json:"display_text" yaml:"display_text"`
	Open        bool                        `json:"is_open" yaml:"is_open"`
	Above       bool                        `json:"show_above" yaml:"show_above"`
	Month       string                      `json:"month" yaml:"month"`
	Today       calendar.Date               `json:"today" yaml:"today"`
	Selected    *calendar.Date              `json:"selected,omitempty" yaml:"selected,omitempty"`
	Grid        [calendar.GridSize]CellView `json:"grid" yaml:"grid"`
}

// Snapshot captures the picker for rendering. Today is evaluated now.
func (p *Picker) Snapshot(placeholder string) (Snapshot, error) {
	s := Snapshot{
		DisplayText: p.DisplayText(placeholder),
		Open:        p.open,
		Above:       p.above,
		Month:       p.cal.CurrentMonth().MonthString(),
		Today:       p.cal.Today(),
	}
	if d, ok := p.cal.Selected(); ok {
		s.Selected = &d
	}

	grid, err := p.cal.MonthDays()
	if err != nil {
		return s, err
	}

	for i, cell := range grid {
		if !cell.Valid {
			continue
		}
		s.Grid[i] = CellView{
			Date:           cell.Date,
			InCurrentMonth: p.cal.IsCurrentMonth(cell.Date),
			Today:          cell.Date.Equal(s.Today),
			Selected:       p.cal.IsSelected(cell.Date),
		}
	}
	return s, nil
}

// Week returns row w (0-5) of the grid, or nil for any other w.
func (s Snapshot) Week(w int) []CellView {
	if w < 0 || w >= calendar.Weeks {
		return nil
	}
	return s.Grid[w*calendar.DaysPerWeek : (w+1)*calendar.DaysPerWeek]
}
