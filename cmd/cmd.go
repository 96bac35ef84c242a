// Package cmd defines the command-line interface for repolens.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/huangsam/repolens/internal/contract"
	"github.com/huangsam/repolens/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(localCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("token", "", "GitHub API token (anonymous access when empty)")
	rootCmd.PersistentFlags().String("workdir", "", "Directory for repository clones (default: <tmp>/repolens)")
	rootCmd.PersistentFlags().String("output", string(schema.JSONOut), "Output format: json or yaml or text")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("keep-clone", false, "Keep the cloned working tree after analysis")
	rootCmd.PersistentFlags().String("run-db", "", "Run-tracking SQLite path, or 'none' to disable")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("format", "parquet", "Export dataset format")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}

	// Bind all flags of runsCmd to Viper
	runsCmd.Flags().Int("limit", defaultRunListLimit, "Number of runs to display")
	if err := viper.BindPFlags(runsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs flags", err)
	}
}
