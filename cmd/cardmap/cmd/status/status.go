// Package status implements the status command.
package status

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/cardmap/cmd/application"
	"github.com/agentstation/cardmap/internal/cmd/output"
	"github.com/agentstation/cardmap/internal/cmd/table"
)

// NewCommand creates the status command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: "management",
		Short:   "Show cache location, size and last refresh",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.Catalog()
			if err != nil {
				return err
			}

			cached, err := catalog.Cached(cmd.Context())
			if err != nil {
				return err
			}

			st := table.Status{
				Database:  app.DatabasePath(),
				Cached:    len(cached),
				HasAPIKey: app.APIKey() != "",
			}
			info, ok, err := catalog.LastSync(cmd.Context())
			if err != nil {
				return err
			}
			if ok {
				st.LastSync = &info
			}

			return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()),
				table.StatusToTableData(st), st)
		},
	}
}
