package app

import (
	"github.com/spf13/cobra"

	clearcmd "github.com/agentstation/cardmap/cmd/cardmap/cmd/clear"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/list"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/refresh"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/search"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/serve"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/show"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/status"
	"github.com/agentstation/cardmap/cmd/cardmap/cmd/version"
)

// registerCommands wires every subcommand to the app.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(search.NewCommand(a))
	rootCmd.AddCommand(refresh.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Management
	rootCmd.AddCommand(status.NewCommand(a))
	rootCmd.AddCommand(clearcmd.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}
