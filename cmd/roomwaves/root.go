package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roomwaves/roomwaves/internal/model"
)

func newRootCommand() *cobra.Command {
	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "roomwaves",
		Short:         "Roomwaves acoustic measurement CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("roomwaves %s (commit %s, built %s, %s)\n", version, commit, buildTime, goVersion))

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path (default $HOME/.config/roomwaves/config.yml)")
	flags.String("api-url", model.DefaultAPIURL, "Analysis API base URL")
	flags.Duration("api-timeout", model.DefaultAPITimeout, "Per-request timeout")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console or json)")
	for _, name := range []string{"api-url", "api-timeout", "log-level", "log-format"} {
		_ = ctx.v.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(newAnalyzeCommand(ctx))
	rootCmd.AddCommand(newUploadCommand(ctx))
	rootCmd.AddCommand(newFileURLCommand(ctx))
	rootCmd.AddCommand(newSignalCommand(ctx))
	rootCmd.AddCommand(newIRCommand(ctx))
	rootCmd.AddCommand(newRecordCommand(ctx))
	rootCmd.AddCommand(newReplayCommand(ctx))

	return rootCmd
}
