package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scamquiz/internal/catalog"
)

var validateCatalogSchema string

var validateCmd = &cobra.Command{
	Use:   "validate CATALOG...",
	Short: "Validate scenario catalog files",
	Long:  "validate checks catalog YAML files against the CUE schema and the level rules without starting a session.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			cat, err := catalog.ValidateFile(path, validateCatalogSchema)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			levels := cat.Levels()
			scenarios := 0
			for _, l := range levels {
				scenarios += cat.TotalInLevel(l)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d levels, %d scenarios)\n", path, len(levels), scenarios)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateCatalogSchema, "catalog-schema", "", "Path to a CUE schema for catalogs (embedded when empty)")
}
