package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

// Execute runs the cardmap CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "cardmap",
		Short:   "Pokémon TCG card catalog",
		Version: a.version,
		Long: `Cardmap keeps a local cache of the Pokémon TCG card catalog.

Cached cards are shown immediately and work offline. A refresh fetches the
latest page from api.pokemontcg.io and saves it, so the next run starts from
the new data. Set CARDMAP_API_KEY (or POKEMONTCG_API_KEY) to send your
catalog API key.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.cardmap.yaml)")
	flags.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("format", "o", "", "output format: table, json, yaml")
	flags.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	flags.String("database", "", "card cache database path")
	flags.String("api-key", "", "catalog API key (overrides CARDMAP_API_KEY)")

	rootCmd.SetVersionTemplate("cardmap {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand runs before every command. It reloads configuration when
// --config is given, applies flag overrides and rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(Flags{
		Verbose:  mustGetBool(cmd, "verbose"),
		Quiet:    mustGetBool(cmd, "quiet"),
		NoColor:  mustGetBool(cmd, "no-color"),
		Format:   mustGetString(cmd, "format"),
		LogLevel: mustGetString(cmd, "log-level"),
		Database: mustGetString(cmd, "database"),
		APIKey:   mustGetString(cmd, "api-key"),
	})
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints err and exits with status 1. It does nothing for a nil
// error.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool panics when the flag is not defined; persistent flags are
// defined above.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
