package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scamquiz/internal/dashboard"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render Grafana dashboards for the GreptimeDB tables",
	Long:  "dashboard writes Grafana dashboard JSON for the configured result tables. GREPTIMEDB_DATASOURCE_UID must be set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tables := dashboard.Tables{
			Transitions: cfg.Greptime.TransitionsTable,
			Results:     cfg.Greptime.ResultsTable,
		}
		if err := dashboard.Render(dashboardOut, tables); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dashboards written to %s\n", dashboardOut)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardOut, "out", "build", "Output directory")
}
