package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/datepick/internal/picker"
)

// JSONFormatter formats snapshots as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes snapshots as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, snaps []picker.Snapshot) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(labelled(snaps, f.opts))
}

// labelledSnapshot is a snapshot with its label, for structured output.
type labelledSnapshot struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`

	picker.Snapshot `yaml:",inline"`
}

func labelled(snaps []picker.Snapshot, opts FormatterOptions) []labelledSnapshot {
	out := make([]labelledSnapshot, len(snaps))
	for i, s := range snaps {
		out[i] = labelledSnapshot{Label: opts.label(i), Snapshot: s}
	}
	return out
}
