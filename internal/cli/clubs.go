package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/club-fixtures/internal/club"
	"github.com/pfrederiksen/club-fixtures/internal/scraper"
)

var (
	flagClubsFormat string
	flagClubURL     string
	flagClubLeague  string
	flagClubLogo    string
	flagClubRefresh bool
)

func newClubsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clubs",
		Short: "Manage followed clubs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List followed clubs",
		Args:  cobra.NoArgs,
		RunE:  run(runClubsList),
	}
	list.Flags().StringVar(&flagClubsFormat, "format", "text", "Output format: text or json")

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Follow a club",
		Long: `Follow a club. The club URL (a transfermarkt profile link, as printed by
'search') is needed to fetch fixtures.`,
		Args: cobra.ExactArgs(1),
		RunE: run(runClubsAdd),
	}
	add.Flags().StringVar(&flagClubURL, "url", "", "Club profile URL")
	add.Flags().StringVar(&flagClubLeague, "league", "", "League name")
	add.Flags().StringVar(&flagClubLogo, "logo", "", "Logo URL")
	add.Flags().BoolVar(&flagClubRefresh, "refresh", false, "Update URL, league and logo if the club is already followed")

	remove := &cobra.Command{
		Use:     "remove <name|url>",
		Aliases: []string{"rm"},
		Short:   "Stop following a club",
		Args:    cobra.ExactArgs(1),
		RunE:    run(runClubsRemove),
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func runClubsList(cmd *cobra.Command, a *app, _ []string) error {
	format, err := parseFormat(flagClubsFormat, FormatText, FormatJSON)
	if err != nil {
		return err
	}

	clubs, err := a.clubs.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing clubs: %w", err)
	}
	return writeClubs(cmd.OutOrStdout(), clubs, format, "No clubs followed yet. Use 'club-fixtures search' and 'clubs add'.")
}

func runClubsAdd(cmd *cobra.Command, a *app, args []string) error {
	c := club.Club{
		Name:    args[0],
		URL:     flagClubURL,
		League:  flagClubLeague,
		LogoURL: flagClubLogo,
	}
	if id, ok := scraper.ResolveID(c.URL); ok {
		c.SourceID = &id
	}

	stored, created, err := a.clubs.Add(cmd.Context(), c)
	if err != nil {
		if errors.Is(err, club.ErrInvalid) {
			return err
		}
		return fmt.Errorf("adding club: %w", err)
	}

	out := cmd.OutOrStdout()
	switch {
	case created:
		fmt.Fprintf(out, "Now following %s.\n", stored.Name)
	case flagClubRefresh:
		refreshed, err := a.clubs.Refresh(cmd.Context(), c)
		if err != nil {
			return fmt.Errorf("refreshing club: %w", err)
		}
		fmt.Fprintf(out, "Updated %s.\n", refreshed.Name)
	default:
		fmt.Fprintf(out, "Already following %s.\n", stored.Name)
	}
	return nil
}

func runClubsRemove(cmd *cobra.Command, a *app, args []string) error {
	if err := a.clubs.Remove(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, club.ErrNotFound) {
			return fmt.Errorf("not following %q", args[0])
		}
		return fmt.Errorf("removing club: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped following %s.\n", args[0])
	return nil
}
