package main

import (
	"github.com/spf13/cobra"

	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
)

// commandContext carries the settings shared by all commands.
type commandContext struct {
	apiBase string
	timeout string
}

// configValue returns a copy of the loaded configuration with command-line
// overrides applied.
func (c *commandContext) configValue() *config.Config {
	cfg := *config.GetConfig()
	if c.apiBase != "" {
		cfg.TVMazeBaseURL = c.apiBase
	}
	if c.timeout != "" {
		cfg.ClientTimeout = c.timeout
	}
	return &cfg
}

func (c *commandContext) newClient() client.Client {
	return client.NewClient(c.configValue())
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "showfinder",
		Short:         "Search TV shows and list their episodes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.apiBase, "api-base", "", "Base URL of the show metadata API (overrides tvmaze_base_url)")
	rootCmd.PersistentFlags().StringVar(&ctx.timeout, "timeout", "", "Upstream request timeout, e.g. 10s (overrides client_timeout)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newEpisodesCommand(ctx))

	return rootCmd
}
