package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/datepick/internal/calendar"
	"github.com/jmylchreest/datepick/internal/picker"
)

// DatesFormatter writes one line per picker with its selected date.
// Useful for piping to other commands.
type DatesFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewDatesFormatter creates a new dates formatter.
func NewDatesFormatter(opts FormatterOptions) *DatesFormatter {
	f := &DatesFormatter{opts: opts}

	// Parse custom template if provided. Callers that need the parse error
	// check the template with ParseTemplate first.
	if opts.Template != "" {
		tmpl, err := ParseTemplate(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// ParseTemplate parses a dates line template with the helper functions
// available to it.
func ParseTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("dates").Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}
	return tmpl, nil
}

// Format writes snapshots one per line.
func (f *DatesFormatter) Format(w io.Writer, snaps []picker.Snapshot) error {
	for i, s := range snaps {
		line, err := f.formatLine(i, s)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatLine formats a single snapshot line.
func (f *DatesFormatter) formatLine(index int, s picker.Snapshot) (string, error) {
	// Use custom template if available
	if f.template != nil {
		var buf strings.Builder
		data := templateData{
			Index:    index + 1,
			Label:    f.opts.label(index),
			Snapshot: s,
			Relative: snapshotRelative(s),
		}
		if err := f.template.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("template for line %d: %w", index+1, err)
		}
		return buf.String(), nil
	}

	// Default format: label: 2024-01-15 (3 days ago)
	var sb strings.Builder
	if label := f.opts.label(index); f.opts.ShowLabel && label != "" {
		sep := f.opts.Separator
		if sep == "" {
			sep = ": "
		}
		sb.WriteString(label + sep)
	}
	sb.WriteString(s.DisplayText)
	if f.opts.ShowRelative && s.Selected != nil {
		sb.WriteString(" (" + snapshotRelative(s) + ")")
	}
	return sb.String(), nil
}

// templateData provides data for custom templates.
type templateData struct {
	Index    int
	Label    string
	Snapshot picker.Snapshot
	Relative string
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"reldate": RelativeDay,
		"weekday": func(d calendar.Date) string {
			return d.Weekday().String()
		},
		"upper": strings.ToUpper,
	}
}

func snapshotRelative(s picker.Snapshot) string {
	if s.Selected == nil {
		return ""
	}
	return RelativeDay(*s.Selected, s.Today)
}

// RelativeDay describes d relative to today, e.g. "3 days ago".
func RelativeDay(d, today calendar.Date) string {
	if d.Equal(today) {
		return "today"
	}
	return humanize.RelTime(d.In(time.UTC), today.In(time.UTC), "ago", "from now")
}
