package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	Value          lipgloss.Style
	Placeholder    lipgloss.Style
	Popup          lipgloss.Style
	Header         lipgloss.Style
	Nav            lipgloss.Style
	Weekday        lipgloss.Style
	Day            lipgloss.Style
	Padding        lipgloss.Style
	Today          lipgloss.Style
	Selected       lipgloss.Style
	Cursor         lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	Help           lipgloss.Style
	HelpKey        lipgloss.Style
}

func color(c string) lipgloss.TerminalColor {
	if c == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c)
}

// Styles builds the styles for t.
func (t *Theme) Styles() Styles {
	c := t.Colors

	trigger := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color(c.Border)).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Header)),
		Label: lipgloss.NewStyle().
			Foreground(color(c.Label)),
		Trigger: trigger,
		TriggerFocused: trigger.
			BorderForeground(color(c.Focus)),
		Value: lipgloss.NewStyle().
			Foreground(color(c.Text)),
		Placeholder: lipgloss.NewStyle().
			Foreground(color(c.Placeholder)),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color(c.Border)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Header)),
		Nav: lipgloss.NewStyle().
			Foreground(color(c.Nav)),
		Weekday: lipgloss.NewStyle().
			Foreground(color(c.Weekday)),
		Day: lipgloss.NewStyle().
			Foreground(color(c.Text)),
		Padding: lipgloss.NewStyle().
			Foreground(color(c.Padding)),
		Today: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.Today)).
			Background(color(c.TodayBg)),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(color(c.SelectedFg)).
			Background(color(c.SelectedBg)),
		Cursor: lipgloss.NewStyle().
			Underline(true).
			Foreground(color(c.Cursor)),
		Status: lipgloss.NewStyle().
			Foreground(color(c.Muted)),
		StatusError: lipgloss.NewStyle().
			Foreground(color(c.Error)),
		Help: lipgloss.NewStyle().
			Foreground(color(c.Muted)),
		HelpKey: lipgloss.NewStyle().
			Foreground(color(c.Key)),
	}
}
