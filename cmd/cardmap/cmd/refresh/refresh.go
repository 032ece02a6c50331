// Package refresh implements the refresh command.
package refresh

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/cmd/output"
	"github.com/agentstation/cardmap/internal/cmd/table"
	"github.com/agentstation/cardmap/pkg/cards"
)

// Result is the structured refresh outcome.
type Result struct {
	Count int          `json:"count" yaml:"count"`
	Cards []cards.Card `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// NewCommand creates the refresh command.
func NewCommand(app application.Application) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:     "refresh",
		Aliases: []string{"update", "sync"},
		GroupID: "core",
		Short:   "Fetch the latest cards and save them to the cache",
		Long: `Refresh fetches the first page of the remote catalog and upserts it into
the local cache. The configured API key is sent as X-Api-Key when set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			fresh, err := catalog.Refresh(cmd.Context(), app.APIKey())
			if err != nil {
				return err
			}

			result := Result{Count: len(fresh)}
			if show {
				result.Cards = fresh
			}

			format := output.DetectFormat(app.OutputFormat())
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), result)
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Refreshed %d cards\n", result.Count); err != nil {
				return err
			}
			if show {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), table.CardsToTableData(fresh, false))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the refreshed cards")
	return cmd
}
