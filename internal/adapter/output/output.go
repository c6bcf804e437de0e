// Package output provides output formatters for date picker snapshots.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/datepick/internal/picker"
)

// Formatter formats picker snapshots for output.
type Formatter interface {
	// Format writes formatted snapshots to the writer.
	Format(w io.Writer, snaps []picker.Snapshot) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatDates FormatType = "dates"
)

// FormatTypes lists the supported formats.
var FormatTypes = []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatDates}

// ParseFormatType validates a format name.
func ParseFormatType(s string) (FormatType, error) {
	for _, f := range FormatTypes {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want one of %v)", s, FormatTypes)
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatDates:
		return NewDatesFormatter(opts)
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Labels       []string // Label per snapshot, by index
	Template     string   // Custom template for dates format
	Separator    string   // Field separator for dates format
	ShowLabel    bool     // Prefix dates lines with the label
	ShowPadding  bool     // Print days of adjacent months in plain grids
	ShowRelative bool     // Append "3 days ago" style text
}

// DefaultFormatterOptions returns sensible defaults.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		Separator:    ": ",
		ShowLabel:    true,
		ShowRelative: true,
	}
}

// label returns the label for snapshot i, if any.
func (o FormatterOptions) label(i int) string {
	if i < len(o.Labels) {
		return o.Labels[i]
	}
	return ""
}
