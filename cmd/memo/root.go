package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/memo"
	"github.com/aretw0/memo/pkg/core"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	verbose bool
	data    string
	config  string
	pretty  bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "memo",
		Short: "Sticky notes kept in a single JSON file",
		Long: `memo manages desktop sticky notes stored in one data file.
Edits are coalesced and written at most once per debounce window; deletes
and new notes from the tray are written immediately.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(logger)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&g.data, "data", "", "Data file (default <user data dir>/mymemo/memos.json)")
	rootCmd.PersistentFlags().StringVar(&g.config, "config", "", "Config file (default <user config dir>/mymemo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&g.pretty, "pretty", false, "Indent the JSON data file")

	rootCmd.AddCommand(
		newListCmd(g),
		newGetCmd(g),
		newCreateCmd(g),
		newUpdateCmd(g),
		newDeleteCmd(g),
		newNewCmd(g),
		newServeCmd(g),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fatal("memo", err)
	}
}

// openService builds the service from the global flags.
func openService(cmd *cobra.Command, g *globalFlags, extra ...memo.Option) (*core.Service, error) {
	configPath := g.config
	if configPath == "" {
		configPath = memo.DefaultConfigPath()
	}

	opts := []memo.Option{memo.WithLogger(slog.Default())}
	if configPath != "" {
		opts = append(opts, memo.WithConfigFile(configPath))
	}
	if cmd.Flags().Changed("pretty") {
		opts = append(opts, memo.WithPretty(g.pretty))
	}
	opts = append(opts, extra...)

	return memo.New(cmd.Context(), g.data, opts...)
}

// closeService writes pending changes before a one-shot command exits.
// Commands that armed no deferred flush leave the data file untouched.
func closeService(cmd *cobra.Command, svc *core.Service) error {
	if svc.Flusher().Stats().Scheduled == 0 {
		return nil
	}
	return svc.Quit(cmd.Context())
}
