package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/datepick/internal/config"
	"github.com/jmylchreest/datepick/internal/theme"
)

var themesOpts struct {
	format string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the bundled themes and the user themes found in
~/.config/datepick/themes. A user theme with the same name as a bundled
one replaces it.

Select a theme with the [theme] name setting or the --theme flag of the
tui command.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().StringVarP(&themesOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
}

func runThemes(cmd *cobra.Command, args []string) error {
	themes, err := theme.ListAvailableThemes(config.ThemesDir())
	if err != nil {
		// Bundled themes are still listed.
		logger.Warn("failed to read user themes", "dir", config.ThemesDir(), "error", err)
	}

	switch themesOpts.format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(themes)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(themes); err != nil {
			return err
		}
		return enc.Close()
	case "plain":
		return printThemes(themes, getConfig().Theme.Name)
	default:
		return fmt.Errorf("unknown format %q (want plain, json or yaml)", themesOpts.format)
	}
}

// printThemes writes a table of themes, marking the configured one.
func printThemes(themes []theme.ThemeInfo, current string) error {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", bold.Sprint("Theme"), bold.Sprint("Source"))
	for _, t := range themes {
		marker := ""
		if t.Name == current {
			marker = "*"
		}
		source := "bundled"
		if !t.IsBundled {
			source = t.Path
		}
		tbl.AddRow(marker, t.Name, source)
	}

	_, err := fmt.Fprintln(color.Output, tbl)
	return err
}
