// Package clear implements the clear command.
package clear

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
)

// NewCommand creates the clear command.
func NewCommand(app application.Application) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "clear",
		GroupID: "management",
		Short:   "Delete every cached card",
		Long:    `Clear empties the local card cache. The next list or refresh starts from the remote catalog.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear %s without --yes", app.DatabasePath())
			}

			catalog, err := app.Catalog()
			if err != nil {
				return err
			}
			if err := catalog.Clear(cmd.Context()); err != nil {
				return err
			}

			app.Logger().Info().Str("database", app.DatabasePath()).Msg("Card cache cleared")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Card cache cleared")
			return err
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting the cache")
	return cmd
}
