// Package search implements the search command.
package search

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/cmd/output"
	"github.com/agentstation/cardmap/internal/cmd/table"
	"github.com/agentstation/cardmap/pkg/cards"
)

// NewCommand creates the search command.
func NewCommand(app application.Application) *cobra.Command {
	var remote, wide bool

	cmd := &cobra.Command{
		Use:     "search <query>",
		GroupID: "core",
		Short:   "Search cards by name",
		Long: `Search fuzzy-matches card names in the local cache, best match first.

With --remote the query runs against the remote catalog's name search
instead. Remote results are printed but not cached.`,
		Example: `  cardmap search pika
  cardmap search --remote "Pikachu"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")

			var results []cards.Card
			if remote {
				results, err = catalog.SearchRemote(cmd.Context(), app.APIKey(), query)
			} else {
				results, err = catalog.SearchCached(cmd.Context(), query)
			}
			if err != nil {
				return err
			}
			if results == nil {
				results = []cards.Card{}
			}

			app.Logger().Debug().Str("query", query).Bool("remote", remote).Int("results", len(results)).Msg("Search complete")
			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				table.CardsToTableData(results, wide), results)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "search the remote catalog instead of the cache")
	cmd.Flags().BoolVar(&wide, "wide", false, "show rarity, set and artist columns")
	return cmd
}
