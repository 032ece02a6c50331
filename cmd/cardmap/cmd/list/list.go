// Package list implements the list command: the card list screen of the
// catalog, rendered once the refresh settles.
package list

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/cmd/output"
	"github.com/agentstation/cardmap/internal/cmd/table"
	"github.com/agentstation/cardmap/pkg/cards"
	"github.com/agentstation/cardmap/pkg/viewmodel"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		offline bool
		wide    bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List cards, refreshing the local cache first",
		Long: `List shows the cached cards and refreshes them from the remote catalog.

If the refresh fails while cached cards exist, the cached cards are shown
and the failure is logged. With an empty cache the failure is returned.`,
		Example: `  cardmap list
  cardmap list --offline --wide
  cardmap list -o json --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}
			logger := app.Logger()

			var shown []cards.Card
			if offline {
				shown, err = catalog.Cached(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				list := viewmodel.New(catalog, app.APIKey(), viewmodel.WithLogger(logger))
				defer list.Close()
				// Interrupting the command abandons the refresh.
				stop := context.AfterFunc(cmd.Context(), list.Close)
				defer stop()

				list.Wait()
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				shown = list.Cards().Get()

				if msg := list.Error().Get(); msg != "" {
					return stderrors.New(msg)
				}
			}

			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}
			if shown == nil {
				shown = []cards.Card{}
			}

			format := output.DetectFormat(app.OutputFormat())
			if format == output.FormatTable && len(shown) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No cards cached. Run 'cardmap refresh' to fetch the catalog.")
				return err
			}
			return output.Render(cmd.OutOrStdout(), format, table.CardsToTableData(shown, wide), shown)
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "show cached cards without refreshing")
	cmd.Flags().BoolVar(&wide, "wide", false, "show rarity, set and artist columns")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of cards to show (0 for all)")

	return cmd
}
