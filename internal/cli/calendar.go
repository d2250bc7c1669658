package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/club-fixtures/internal/calendar"
	"github.com/pfrederiksen/club-fixtures/internal/tracker"
)

const (
	targetGoogle = "google"
	targetICS    = "ics"

	icsCalendarName = "Club fixtures"
)

var (
	flagAuthCode      string
	flagDryRun        bool
	flagTarget        string
	flagPublishFormat string
)

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Publish fixtures to a calendar",
	}

	auth := &cobra.Command{
		Use:   "auth",
		Short: "Grant access to Google Calendar",
		Long: `Without --code, prints the consent URL (exit status 3) unless access was
already granted. With --code, exchanges the code shown after consent for a
token, which is stored encrypted in the data directory.`,
		Args: cobra.NoArgs,
		RunE: run(runCalendarAuth),
	}
	auth.Flags().StringVar(&flagAuthCode, "code", "", "Authorization code from the consent page")

	publish := &cobra.Command{
		Use:   "publish",
		Short: "Create or update calendar events for upcoming fixtures",
		Args:  cobra.NoArgs,
		RunE:  run(runCalendarPublish),
	}
	publish.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the events instead of writing them")
	publish.Flags().StringVar(&flagTarget, "target", targetGoogle, "Calendar to write: google or ics")
	publish.Flags().IntVar(&flagDays, "days", -1, "Days ahead to include (default: fixtures.days_ahead)")
	publish.Flags().StringVar(&flagPublishFormat, "format", "text", "Report format: text or json")

	cmd.AddCommand(auth, publish)
	return cmd
}

func runCalendarAuth(cmd *cobra.Command, a *app, _ []string) error {
	authorizer, err := a.authorizer()
	if err != nil {
		return err
	}

	if flagAuthCode != "" {
		if err := authorizer.Exchange(cmd.Context(), flagAuthCode); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Calendar access granted.")
		return nil
	}

	auth, err := authorizer.Credentials(cmd.Context())
	if err != nil {
		return err
	}
	if auth.NeedsConsent() {
		return &calendar.ConsentRequiredError{RedirectURL: auth.RedirectURL}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Calendar access already granted.")
	return nil
}

func runCalendarPublish(cmd *cobra.Command, a *app, _ []string) error {
	format, err := parseFormat(flagPublishFormat, FormatText, FormatJSON)
	if err != nil {
		return err
	}

	cfg := tracker.Config{
		Clubs:         a.clubs,
		Source:        a.scraper,
		Metrics:       a.metrics,
		EventDuration: a.cfg.Calendar.EventDuration,
	}

	dryRun := func(store calendar.EventStore) calendar.EventStore {
		if !flagDryRun {
			return store
		}
		return calendar.NewDryRunStore(cmd.OutOrStdout(), store)
	}

	switch flagTarget {
	case targetICS:
		path := a.dataPath(a.cfg.Calendar.ICSFile)
		cfg.Stores = tracker.StoreOpenerFunc(func(context.Context, calendar.Authorization) (calendar.EventStore, error) {
			return dryRun(calendar.NewICSStore(path, icsCalendarName)), nil
		})
	case targetGoogle:
		authorizer, err := a.authorizer()
		if err != nil {
			return err
		}
		cfg.Authorizer = authorizer
		cfg.Stores = tracker.StoreOpenerFunc(func(ctx context.Context, auth calendar.Authorization) (calendar.EventStore, error) {
			store, err := calendar.NewGoogleStore(ctx, auth.Client, a.cfg.Calendar.ID)
			if err != nil {
				return nil, err
			}
			return dryRun(store), nil
		})
	default:
		return fmt.Errorf("invalid target: %s (must be 'google' or 'ics')", flagTarget)
	}

	report, err := tracker.New(cfg).Publish(cmd.Context(), daysAhead(a))
	if err != nil {
		return err
	}

	if err := writePublishReport(cmd.OutOrStdout(), report, format, flagDryRun); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if n := calendar.Summary(report.Outcomes)[calendar.ActionFailed]; n > 0 {
		return fmt.Errorf("%d fixture(s) could not be published", n)
	}
	return nil
}
