// Package cmd defines the command-line interface for gensight.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gensight/gensight/internal/contract"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().StringP("out-dir", "o", contract.DefaultOutDir, "Root directory for per-month outputs")
	rootCmd.PersistentFlags().StringP("month", "m", "", "Restrict processing to one month label (e.g. JAN2026)")
	rootCmd.PersistentFlags().Bool("strict-sheets", false, "Abort on unrecognized sheet names instead of skipping them")
	rootCmd.PersistentFlags().Bool("log-pretty", false, "Human-readable console logging")
	rootCmd.PersistentFlags().String("ai-endpoint", contract.DefaultAIEndpoint, "Chat-completions endpoint for narrative generation")
	rootCmd.PersistentFlags().String("ai-key", "", "API key for narrative generation (env: GENSIGHT_AI_KEY)")
	rootCmd.PersistentFlags().String("ai-model", contract.DefaultAIModel, "Model identifier for narrative generation")
	rootCmd.PersistentFlags().String("ai-timeout", contract.DefaultAITimeout.String(), "Bounded timeout for the narrative call (e.g. 45s)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Bool("skip-charts", false, "Skip chart rendering")
	reportCmd.Flags().Bool("skip-narrative", false, "Skip the narrative provider call")
	reportCmd.Flags().String("logo", "", "Optional logo image for the PDF cover and title slide")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of exportCmd to Viper
	exportCmd.Flags().String("output-file", "", "Base path for the exported parquet files")
	if err := viper.BindPFlags(exportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding export flags", err)
	}
}
