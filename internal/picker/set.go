package picker

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/datepick/internal/calendar"
)

// ErrNoSuchPicker is returned for events addressed to an unknown index.
var ErrNoSuchPicker = errors.New("no such picker")

// Event is a UI event routed to the picker collection.
type Event interface {
	event()
}

// ToggleEvent opens or closes picker Index. Trigger and Viewport are
// measured by the renderer at the time of the event.
type ToggleEvent struct {
	Index    int
	Trigger  Rect
	Viewport Viewport
}

// NavigateEvent moves the displayed month of picker Index.
type NavigateEvent struct {
	Index int
	Nav   Nav
}

// SelectEvent selects Date on picker Index.
type SelectEvent struct {
	Index int
	Date  calendar.Date
}

// DismissEvent closes every open picker (a click outside any popup).
type DismissEvent struct{}

func (ToggleEvent) event()   {}
func (NavigateEvent) event() {}
func (SelectEvent) event()   {}
func (DismissEvent) event()  {}

// SetOptions configures a Set.
type SetOptions struct {
	PopupHeight int               // rows the popup needs
	Margin      int               // extra rows required beyond the popup
	Calendar    []calendar.Option // applied to every picker's calendar
	Logger      *slog.Logger
}

// Set owns a fixed number of independent pickers and routes events to them
// by index.
type Set struct {
	pickers     []*Picker
	popupHeight int
	margin      int
	logger      *slog.Logger
}

// NewSet creates n closed pickers, each over its own calendar.
func NewSet(n int, opts SetOptions) *Set {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Set{
		pickers:     make([]*Picker, n),
		popupHeight: opts.PopupHeight,
		margin:      opts.Margin,
		logger:      logger,
	}
	for i := range s.pickers {
		s.pickers[i] = New(calendar.New(opts.Calendar...))
	}
	return s
}

// SetPopupGeometry updates the popup height and margin used for placement.
func (s *Set) SetPopupGeometry(height, margin int) {
	s.popupHeight = height
	s.margin = margin
}

// Len returns the number of pickers.
func (s *Set) Len() int {
	return len(s.pickers)
}

// At returns picker i.
func (s *Set) At(i int) (*Picker, error) {
	if i < 0 || i >= len(s.pickers) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchPicker, i)
	}
	return s.pickers[i], nil
}

// OpenIndex returns the index of the open picker, if any.
func (s *Set) OpenIndex() (int, bool) {
	for i, p := range s.pickers {
		if p.IsOpen() {
			return i, true
		}
	}
	return 0, false
}

// Dispatch applies ev. Errors leave every picker unchanged.
func (s *Set) Dispatch(ev Event) error {
	switch ev := ev.(type) {
	case ToggleEvent:
		p, err := s.At(ev.Index)
		if err != nil {
			return err
		}
		if !p.IsOpen() {
			// Only one popup is shown at a time.
			s.closeAll()
		}
		p.Toggle(Placement{
			Trigger:     ev.Trigger,
			Viewport:    ev.Viewport,
			PopupHeight: s.popupHeight,
			Margin:      s.margin,
		})
		s.logger.Debug("picker toggled", "index", ev.Index, "open", p.IsOpen(), "above", p.ShowAbove())
		return nil

	case NavigateEvent:
		p, err := s.At(ev.Index)
		if err != nil {
			return err
		}
		if err := p.Navigate(ev.Nav); err != nil {
			s.logger.Debug("navigation refused", "index", ev.Index, "nav", ev.Nav, "error", err)
			return err
		}
		return nil

	case SelectEvent:
		p, err := s.At(ev.Index)
		if err != nil {
			return err
		}
		// Padding days belong to another month and are not selectable.
		if !p.Calendar().IsCurrentMonth(ev.Date) {
			return nil
		}
		p.Select(ev.Date)
		s.logger.Debug("date selected", "index", ev.Index, "date", ev.Date)
		return nil

	case DismissEvent:
		s.closeAll()
		return nil

	default:
		return fmt.Errorf("unknown event %T", ev)
	}
}

func (s *Set) closeAll() {
	for _, p := range s.pickers {
		p.Close()
	}
}

// Snapshots captures every picker in index order.
func (s *Set) Snapshots(placeholder string) ([]Snapshot, error) {
	out := make([]Snapshot, len(s.pickers))
	for i, p := range s.pickers {
		snap, err := p.Snapshot(placeholder)
		if err != nil {
			return nil, fmt.Errorf("picker %d: %w", i, err)
		}
		out[i] = snap
	}
	return out, nil
}
