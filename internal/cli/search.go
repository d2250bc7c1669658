package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagSearchMax    int
	flagSearchFormat string
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search transfermarkt for clubs",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run(runSearch),
	}
	cmd.Flags().IntVar(&flagSearchMax, "max", 0, "Maximum results (default: search.max_results)")
	cmd.Flags().StringVar(&flagSearchFormat, "format", "text", "Output format: text or json")
	return cmd
}

func runSearch(cmd *cobra.Command, a *app, args []string) error {
	format, err := parseFormat(flagSearchFormat, FormatText, FormatJSON)
	if err != nil {
		return err
	}

	limit := flagSearchMax
	if limit <= 0 {
		limit = a.cfg.Search.MaxResults
	}

	query := strings.Join(args, " ")
	results, err := a.scraper.Search(cmd.Context(), query, limit)
	if err != nil {
		return fmt.Errorf("searching clubs: %w", err)
	}

	return writeClubs(cmd.OutOrStdout(), results, format, fmt.Sprintf("No clubs found for %q.", query))
}
