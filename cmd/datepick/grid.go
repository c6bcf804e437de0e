package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/datepick/internal/adapter/output"
	"github.com/jmylchreest/datepick/internal/calendar"
	"github.com/jmylchreest/datepick/internal/picker"
)

var gridOpts struct {
	// Calendar options
	selectDate string
	noSelect   bool
	months     int

	// Output options
	format     string
	template   string
	labels     []string
	padding    bool
	noRelative bool
}

var gridCmd = &cobra.Command{
	Use:   "grid [YYYY-MM...]",
	Short: "Print month calendars",
	Long: `Print one calendar per month without starting the TUI.

Without arguments, prints the current month. Each month is rendered by its
own picker, so the output of the json and yaml formats is the same data the
TUI draws from.

Examples:
  # This month, today selected
  datepick grid

  # Three months starting at March 2024
  datepick grid 2024-03 --months 3

  # A month with a chosen day, as JSON
  datepick grid 2024-02 --select 2024-02-29 --format json

  # Just the selected dates
  datepick grid 2024-01 2024-06 --select 2024-06-01 --format dates`,
	RunE: runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)

	// Calendar flags
	gridCmd.Flags().StringVar(&gridOpts.selectDate, "select", "",
		"Select this day (YYYY-MM-DD) instead of today")
	gridCmd.Flags().BoolVar(&gridOpts.noSelect, "no-select", false,
		"Print the calendars without a selected day")
	gridCmd.Flags().IntVarP(&gridOpts.months, "months", "n", 1,
		"Number of consecutive months to print from each argument")

	// Output flags
	gridCmd.Flags().StringVarP(&gridOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, json, yaml, dates)")
	gridCmd.Flags().StringVar(&gridOpts.template, "template", "",
		"Custom Go template for the dates format")
	gridCmd.Flags().StringSliceVar(&gridOpts.labels, "label", nil,
		"Label for each calendar, in order (repeatable)")
	gridCmd.Flags().BoolVar(&gridOpts.padding, "padding", false,
		"Show days of adjacent months in plain grids")
	gridCmd.Flags().BoolVar(&gridOpts.noRelative, "no-relative", false,
		"Omit relative dates such as \"3 days ago\"")
}

func runGrid(cmd *cobra.Command, args []string) error {
	c := getConfig()

	format, err := output.ParseFormatType(gridOpts.format)
	if err != nil {
		return err
	}
	if gridOpts.noSelect && gridOpts.selectDate != "" {
		return fmt.Errorf("--select and --no-select are mutually exclusive")
	}
	opts, err := gridFormatterOptions()
	if err != nil {
		return err
	}

	calOpts := c.CalendarOptions()
	today := calendar.New(calOpts...).Today()

	months, err := parseMonths(args, today, gridOpts.months)
	if err != nil {
		return err
	}

	sel := gridSelection{keepToday: !gridOpts.noSelect}
	if gridOpts.selectDate != "" {
		d, err := calendar.ParseDate(gridOpts.selectDate)
		if err != nil {
			return err
		}
		sel.date = &d
	}

	snaps, err := gridSnapshots(months, sel, picker.SetOptions{
		Calendar: calOpts,
		Logger:   logger,
	}, c.Page.Placeholder)
	if err != nil {
		return err
	}
	logger.Debug("rendering grids", "months", len(snaps), "format", format)

	return output.NewFormatter(format, opts).Format(os.Stdout, snaps)
}

// gridFormatterOptions builds the formatter options from the flags. A
// template that does not parse is an error rather than silently ignored.
func gridFormatterOptions() (output.FormatterOptions, error) {
	opts := output.DefaultFormatterOptions()
	opts.Labels = gridOpts.labels
	opts.ShowPadding = gridOpts.padding
	opts.ShowRelative = !gridOpts.noRelative

	if gridOpts.template != "" {
		if _, err := output.ParseTemplate(gridOpts.template); err != nil {
			return opts, err
		}
		opts.Template = gridOpts.template
	}
	return opts, nil
}

// parseMonths turns YYYY-MM arguments into the months to print. Each
// argument is expanded to count consecutive months; no arguments means the
// month of today.
func parseMonths(args []string, today calendar.Date, count int) ([]calendar.Date, error) {
	if count < 1 {
		return nil, fmt.Errorf("--months must be at least 1, got %d", count)
	}

	starts := make([]calendar.Date, 0, len(args))
	for _, arg := range args {
		m, err := calendar.ParseMonth(arg)
		if err != nil {
			return nil, err
		}
		starts = append(starts, m)
	}
	if len(starts) == 0 {
		starts = append(starts, today.FirstOfMonth())
	}

	months := make([]calendar.Date, 0, len(starts)*count)
	for _, start := range starts {
		for k := 0; k < count; k++ {
			months = append(months, addMonths(start, k))
		}
	}
	return months, nil
}

// addMonths returns the first of the month k months after m.
func addMonths(m calendar.Date, k int) calendar.Date {
	return calendar.DateOf(time.Date(m.Year, m.Month+time.Month(k), 1, 0, 0, 0, 0, time.UTC))
}

// gridSelection is what each printed calendar has selected.
type gridSelection struct {
	date      *calendar.Date // replaces today when set
	keepToday bool           // leave today selected when date is nil
}

// gridSnapshots builds one picker per month and captures them.
func gridSnapshots(months []calendar.Date, sel gridSelection, opts picker.SetOptions, placeholder string) ([]picker.Snapshot, error) {
	set := picker.NewSet(len(months), opts)
	for i, m := range months {
		p, err := set.At(i)
		if err != nil {
			return nil, err
		}
		cal := p.Calendar()
		if err := cal.GotoMonth(m.Year, m.Month); err != nil {
			return nil, err
		}
		switch {
		case sel.date != nil:
			cal.SetSelected(*sel.date)
		case !sel.keepToday:
			cal.ClearSelection()
		}
	}
	return set.Snapshots(placeholder)
}
