package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"scamquiz/internal/config"
)

const defaultConfigPath = "config/scamquiz.yaml"

var (
	configPath string
	schemaPath string
)

var rootCmd = &cobra.Command{
	Use:           "scamquiz",
	Short:         "Online scam awareness quiz",
	Long:          "scamquiz walks players through simulated emails, chats and dating messages and scores how they react.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to quiz configuration YAML")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to CUE schema for the configuration (embedded when empty)")
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dashboardCmd)
}

// loadConfig reads the configuration. The default config file is optional;
// an explicitly given one must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	return config.Load(path, schemaPath)
}
