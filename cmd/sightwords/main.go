package main

import (
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sightwords/internal/cli"
	"codeberg.org/snonux/sightwords/internal/logging"
	"codeberg.org/snonux/sightwords/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	// Config file and environment values fill in flags not given explicitly
	flags.ApplyConfig()

	logger, err := logging.Setup(flags.LogLevel)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("theme", flags.WordTheme).
		Str("difficulty", flags.Difficulty).
		Str("provider", flags.AudioProvider).
		Msg("starting")

	// Errors from here on are runtime failures, not usage mistakes
	cmd.SilenceUsage = true

	return processor.NewProcessor(flags).Run(cmd.Context())
}
