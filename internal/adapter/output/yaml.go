package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/datepick/internal/picker"
)

// YAMLFormatter formats snapshots as YAML.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes snapshots as a YAML sequence.
func (f *YAMLFormatter) Format(w io.Writer, snaps []picker.Snapshot) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(labelled(snaps, f.opts)); err != nil {
		return err
	}
	return encoder.Close()
}
