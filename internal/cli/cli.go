package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
)

const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitNeedsConsent = 3
)

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "club-fixtures",
		Short: "Follow football clubs and put their fixtures in your calendar",
		Long: `A CLI tool to follow football clubs on transfermarkt, list their upcoming
fixtures and publish them to Google Calendar or an iCalendar file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "club-fixtures.yaml", "Path to the YAML config file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory (overrides storage.data_dir)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging and print metrics")

	cmd.AddCommand(
		newSearchCmd(),
		newClubsCmd(),
		newFixturesCmd(),
		newCalendarCmd(),
		newMigrateCmd(),
	)
	return cmd
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var consent *calendar.ConsentRequiredError
	if errors.As(err, &consent) {
		return ExitNeedsConsent
	}
	return ExitError
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().ExecuteContext(context.Background())
	if err != nil {
		var consent *calendar.ConsentRequiredError
		if errors.As(err, &consent) {
			fmt.Fprintln(os.Stderr, "Calendar access has not been granted yet. Open this URL:")
			fmt.Fprintln(os.Stderr, consent.RedirectURL)
			fmt.Fprintln(os.Stderr, "then run: club-fixtures calendar auth --code <code>")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
	os.Exit(exitCode(err))
}
