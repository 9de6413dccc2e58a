package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/backbone81/durable-log/internal/config"
)

var (
	configPath string

	// Populated by the persistent pre-run of the root command.
	cfg    config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "durablelog-cli",
	Short: "A tool for exercising fenced in-memory durable logs.",
	Long:  `A tool for exercising fenced in-memory durable logs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = cfg.Logger.NewLogger()
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"durablelog.yaml",
		"The YAML configuration file. Defaults are used when the file does not exist.",
	)
}
