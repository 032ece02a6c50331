// Package show implements the show command, the card detail view.
package show

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/cmd/output"
	"github.com/agentstation/cardmap/internal/cmd/table"
	"github.com/agentstation/cardmap/pkg/errors"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show <card-id>",
		Aliases: []string{"get"},
		GroupID: "core",
		Short:   "Show one cached card",
		Long: `Show prints the detail view of a cached card: name, type, HP, rarity,
set, artist and the large image URL. Absent fields read "Unknown" (HP reads
"N/A"). Only the local cache is consulted.`,
		Example: `  cardmap show base1-4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			card, ok, err := catalog.CachedByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.NewNotFoundError("card", args[0])
			}

			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				table.DetailsToTableData(card), card)
		},
	}
}
