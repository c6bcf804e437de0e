package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/datepick/internal/config"
	"github.com/jmylchreest/datepick/internal/tui"
)

var tuiOpts struct {
	theme   string
	noWatch bool
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive date picker page",
	Long: `Launch the interactive date picker page.

Each picker shows its selected date. Opening one closes any other. The
popup opens below its field unless it does not fit there but fits above.

Key bindings:
  tab, arrows   Move between pickers
  enter, space  Open or close the focused picker
  arrows        Move the day cursor (popup open)
  enter         Select the day under the cursor
  h/l           Previous / next month
  H/L           Previous / next year
  t             Jump to today
  x             Clear the selection
  y             Copy the focused date
  C             Copy every picker as JSON
  esc           Close the popup
  ?             Show help
  q             Quit

Logs are written to ~/.local/state/datepick/datepick.log so they do not
disturb the screen.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().StringVar(&tuiOpts.theme, "theme", "",
		"Theme name (overrides the config file)")
	tuiCmd.Flags().BoolVar(&tuiOpts.noWatch, "no-watch", false,
		"Disable theme hot reload")
}

func runTUI(cmd *cobra.Command, args []string) error {
	c := getConfig()
	if tuiOpts.theme != "" {
		c.Theme.Name = tuiOpts.theme
	}
	if tuiOpts.noWatch {
		c.Theme.HotReload = false
	}

	// The TUI owns the terminal, so logs go to a file.
	if err := config.EnsureStateDir(); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	f, err := os.OpenFile(config.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()
	setupLogger(f)

	logger.Info("starting tui", "version", version, "theme", c.Theme.Name, "hot_reload", c.Theme.HotReload)

	return tui.Run(cmd.Context(), tui.RunOptions{
		Config:    c,
		Logger:    logger,
		ThemesDir: config.ThemesDir(),
	})
}
