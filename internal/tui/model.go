// Package tui provides the Bubble Tea terminal user interface: a page of
// date pickers driven by keyboard and mouse.
package tui

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/datepick/internal/adapter/output"
	"github.com/jmylchreest/datepick/internal/calendar"
	"github.com/jmylchreest/datepick/internal/config"
	"github.com/jmylchreest/datepick/internal/picker"
	"github.com/jmylchreest/datepick/internal/theme"
)

// Options configures a Model.
type Options struct {
	Config *config.Config
	Theme  *theme.Theme
	Logger *slog.Logger

	// Calendar options applied after the ones derived from Config.
	Calendar []calendar.Option

	// ThemeChanges delivers hot-reloaded themes (nil = no hot reload).
	ThemeChanges <-chan *theme.Theme
}

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	set    *picker.Set
	logger *slog.Logger

	// Appearance
	styles theme.Styles
	frame  popupFrame

	// Components
	help help.Model
	keys KeyMap

	// State
	focus    int
	cursor   calendar.Date
	showHelp bool
	width    int
	height   int
	ready    bool
	lay      layout

	// Status message
	statusMsg string
	statusErr bool

	// Theme hot-reload subscription
	themeCh <-chan *theme.Theme
}

// New creates a new TUI model with one picker per configured label.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	th := opts.Theme
	if th == nil {
		th = theme.NewDefaultTheme()
	}

	calOpts := append(cfg.CalendarOptions(), opts.Calendar...)

	m := Model{
		cfg:     cfg,
		logger:  logger,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		themeCh: opts.ThemeChanges,
	}
	m.set = picker.NewSet(len(cfg.Page.Labels), picker.SetOptions{
		Margin:   m.popupMargin(),
		Calendar: calOpts,
		Logger:   logger,
	})
	m.applyTheme(th)

	return m
}

// popupMargin is the room a popup needs beyond its own height.
func (m Model) popupMargin() int {
	return m.cfg.Popup.Margin + m.cfg.Popup.Gap
}

// applyTheme restyles the model and re-measures the popup.
func (m *Model) applyTheme(th *theme.Theme) {
	m.styles = th.Styles()
	m.frame = measurePopup(m.styles.Popup)
	m.set.SetPopupGeometry(m.frame.height, m.popupMargin())

	m.help.ShowAll = true
	m.help.Styles.FullKey = m.styles.HelpKey
	m.help.Styles.FullDesc = m.styles.Help
	m.help.Styles.FullSeparator = m.styles.Help
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.Help
	m.help.Styles.ShortSeparator = m.styles.Help

	m.relayout()
}

// relayout recomputes trigger positions for the current window size.
func (m *Model) relayout() {
	if !m.ready {
		return
	}
	m.lay = computeLayout(m.set.Len(), m.cfg.Columns(),
		picker.Viewport{Width: m.width, Height: m.height}, m.frame, m.cfg.Popup.Gap)
	m.help.Width = m.width
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	if m.themeCh == nil {
		return nil
	}
	return m.watchTheme
}

// watchTheme waits for the next hot-reloaded theme.
func (m Model) watchTheme() tea.Msg {
	th, ok := <-m.themeCh
	if !ok {
		return nil
	}
	return themeChangedMsg{theme: th}
}

type themeChangedMsg struct {
	theme *theme.Theme
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// setStatus shows text in the status line.
func setStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.relayout()
		return m, nil

	case themeChangedMsg:
		m.applyTheme(msg.theme)
		return m, tea.Batch(m.watchTheme, setStatus("Theme reloaded", false))

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, setStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, setStatus("Copied to clipboard", false)
	}

	return m, nil
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Dismiss) {
			m.showHelp = false
		}
		return m, nil
	}

	if !m.ready {
		return m, nil
	}

	if _, open := m.set.OpenIndex(); open {
		return m.handleOpenKey(msg)
	}
	return m.handleClosedKey(msg)
}

// handleClosedKey handles keys while every popup is closed.
func (m Model) handleClosedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.cfg.Columns()

	switch {
	case key.Matches(msg, m.keys.Next):
		m.focus = (m.focus + 1) % m.set.Len()
	case key.Matches(msg, m.keys.Prev):
		m.focus = (m.focus - 1 + m.set.Len()) % m.set.Len()
	case key.Matches(msg, m.keys.Left):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-columns)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(columns)

	case key.Matches(msg, m.keys.Toggle), key.Matches(msg, m.keys.Select):
		return m.toggle(m.focus)

	case key.Matches(msg, m.keys.Clear):
		return m.clearSelection()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyFocused()
	case key.Matches(msg, m.keys.CopyAllJSON):
		return m, m.copyAll(output.FormatJSON)
	case key.Matches(msg, m.keys.CopyAllYAML):
		return m, m.copyAll(output.FormatYAML)
	}

	return m, nil
}

// handleOpenKey handles keys while the focused picker's popup is open.
func (m Model) handleOpenKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Dismiss):
		return m.dispatch(picker.DismissEvent{})

	case key.Matches(msg, m.keys.Toggle):
		return m.toggle(m.focus)

	case key.Matches(msg, m.keys.Select):
		return m.dispatch(picker.SelectEvent{Index: m.focus, Date: m.cursor})

	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		_ = m.set.Dispatch(picker.DismissEvent{})
		return m.handleClosedKey(msg)

	case key.Matches(msg, m.keys.Left):
		return m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		return m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(calendar.DaysPerWeek)

	case key.Matches(msg, m.keys.PrevMonth):
		return m.navigate(picker.NavPrevMonth)
	case key.Matches(msg, m.keys.NextMonth):
		return m.navigate(picker.NavNextMonth)
	case key.Matches(msg, m.keys.PrevYear):
		return m.navigate(picker.NavPrevYear)
	case key.Matches(msg, m.keys.NextYear):
		return m.navigate(picker.NavNextYear)

	case key.Matches(msg, m.keys.Today):
		return m.gotoToday()

	case key.Matches(msg, m.keys.Clear):
		return m.clearSelection()

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyFocused()
	case key.Matches(msg, m.keys.CopyAllJSON):
		return m, m.copyAll(output.FormatJSON)
	case key.Matches(msg, m.keys.CopyAllYAML):
		return m, m.copyAll(output.FormatYAML)
	}

	return m, nil
}

// handleMouse routes a left click to exactly one picker event.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.ready || m.showHelp {
		return m, nil
	}

	open, above := -1, false
	if i, ok := m.set.OpenIndex(); ok {
		open, above = i, m.picker(i).ShowAbove()
	}

	h := m.lay.hitTest(msg.X, msg.Y, open, above)
	switch h.kind {
	case hitTrigger:
		return m.toggle(h.index)
	case hitNav:
		return m.navigate(h.nav)
	case hitDay:
		return m.selectCell(h.index, h.cell)
	case hitPopup:
		return m, nil
	default:
		return m.dispatch(picker.DismissEvent{})
	}
}

// picker returns picker i. Indexes come from the model and are always valid.
func (m Model) picker(i int) *picker.Picker {
	p, err := m.set.At(i)
	if err != nil {
		panic(err)
	}
	return p
}

func (m Model) focused() *picker.Picker {
	return m.picker(m.focus)
}

// dispatch sends ev to the pickers, reporting a failure in the status line.
func (m Model) dispatch(ev picker.Event) (tea.Model, tea.Cmd) {
	if err := m.set.Dispatch(ev); err != nil {
		return m, setStatus(err.Error(), true)
	}
	return m, nil
}

// moveFocus moves focus by delta when the target picker exists.
func (m *Model) moveFocus(delta int) {
	if next := m.focus + delta; next >= 0 && next < m.set.Len() {
		m.focus = next
	}
}

// toggle opens or closes picker i and focuses it.
func (m Model) toggle(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.lay.triggers) {
		return m, nil
	}
	err := m.set.Dispatch(picker.ToggleEvent{
		Index:    i,
		Trigger:  m.lay.triggers[i],
		Viewport: m.lay.viewport,
	})
	if err != nil {
		return m, setStatus(err.Error(), true)
	}
	m.focus = i
	if m.picker(i).IsOpen() {
		m.resetCursor()
	}
	return m, nil
}

// resetCursor puts the day cursor on the selected day, today, or the first
// of the displayed month, whichever is displayed first.
func (m *Model) resetCursor() {
	cal := m.focused().Calendar()
	month := cal.CurrentMonth()
	if d, ok := cal.Selected(); ok && d.SameMonth(month) {
		m.cursor = d
		return
	}
	if today := cal.Today(); today.SameMonth(month) {
		m.cursor = today
		return
	}
	m.cursor = month.FirstOfMonth()
}

// navigate changes the displayed month of the focused picker and keeps the
// cursor on the same day number.
func (m Model) navigate(nav picker.Nav) (tea.Model, tea.Cmd) {
	if err := m.set.Dispatch(picker.NavigateEvent{Index: m.focus, Nav: nav}); err != nil {
		return m, setStatus(err.Error(), true)
	}
	month := m.focused().Calendar().CurrentMonth()
	m.cursor = calendar.ClampDate(month.Year, month.Month, m.cursor.Day)
	return m, nil
}

// moveCursor moves the day cursor, turning the month when it leaves the grid
// month.
func (m Model) moveCursor(days int) (tea.Model, tea.Cmd) {
	next := m.cursor.AddDays(days)
	month := m.focused().Calendar().CurrentMonth()
	if !next.SameMonth(month) {
		nav := picker.NavNextMonth
		if next.Before(month) {
			nav = picker.NavPrevMonth
		}
		if err := m.set.Dispatch(picker.NavigateEvent{Index: m.focus, Nav: nav}); err != nil {
			return m, setStatus(err.Error(), true)
		}
	}
	m.cursor = next
	return m, nil
}

// gotoToday shows today's month in the focused picker.
func (m Model) gotoToday() (tea.Model, tea.Cmd) {
	cal := m.focused().Calendar()
	today := cal.Today()
	if err := cal.GotoMonth(today.Year, today.Month); err != nil {
		return m, setStatus(err.Error(), true)
	}
	m.cursor = today
	return m, nil
}

// selectCell selects grid cell of picker i.
func (m Model) selectCell(i, cell int) (tea.Model, tea.Cmd) {
	grid, err := m.picker(i).Calendar().MonthDays()
	if err != nil {
		return m, setStatus(err.Error(), true)
	}
	d := grid[cell].Date
	if err := m.set.Dispatch(picker.SelectEvent{Index: i, Date: d}); err != nil {
		return m, setStatus(err.Error(), true)
	}
	return m, nil
}

// clearSelection removes the focused picker's date.
func (m Model) clearSelection() (tea.Model, tea.Cmd) {
	m.focused().Calendar().ClearSelection()
	return m, setStatus("Date cleared", false)
}

// copyFocused copies the focused picker's date.
func (m Model) copyFocused() tea.Cmd {
	d, ok := m.focused().Calendar().Selected()
	if !ok {
		return setStatus("No date selected", true)
	}
	return m.copyToClipboard(d.String())
}

// copyAll copies every picker in the given format.
func (m Model) copyAll(format output.FormatType) tea.Cmd {
	snaps, err := m.set.Snapshots(m.cfg.Page.Placeholder)
	if err != nil {
		return setStatus(err.Error(), true)
	}

	opts := output.DefaultFormatterOptions()
	opts.Labels = m.cfg.Page.Labels

	var buf bytes.Buffer
	if err := output.NewFormatter(format, opts).Format(&buf, snaps); err != nil {
		return setStatus("Failed to format "+string(format)+": "+err.Error(), true)
	}
	return m.copyToClipboard(buf.String())
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := copyText(text, m.cfg)
		return copyResultMsg{err: err}
	}
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config    *config.Config
	Logger    *slog.Logger
	ThemesDir string // User themes directory (empty = bundled themes only)
}

// Run starts the TUI with the given options.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	loader := theme.NewLoader(opts.ThemesDir, logger)
	th := loader.LoadTheme(cfg.Theme.Name)

	// Start theme watcher if hot reload is enabled
	var changes chan *theme.Theme
	if cfg.Theme.HotReload {
		changes = make(chan *theme.Theme, 1)
		loader.StartHotReload(ctx, func(t *theme.Theme) {
			// Only the latest theme matters.
			select {
			case <-changes:
			default:
			}
			changes <- t
		})
		defer loader.StopHotReload()
	}

	m := New(Options{
		Config:       cfg,
		Theme:        th,
		Logger:       logger,
		ThemeChanges: changes,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
