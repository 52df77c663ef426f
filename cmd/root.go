package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gensight/gensight/internal/contract"
	"github.com/gensight/gensight/internal/logger"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg holds the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "gensight",
	Short:              "Turn monthly IT-support ticket workbooks into charts, narratives and reports.",
	Long:               `Gensight reads an Excel workbook of support tickets (one sheet per month or day), aggregates per-month statistics, and produces charts, an AI narrative, a PDF report and a PPTX deck.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".gensight") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")     // Look in the current directory
		viper.AddConfigPath("$HOME") // Look in the home directory
	}

	// Environment: GENSIGHT_AI_KEY, GENSIGHT_OUT_DIR, ...
	viper.SetEnvPrefix("GENSIGHT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("out-dir", contract.DefaultOutDir)
	viper.SetDefault("ai-endpoint", contract.DefaultAIEndpoint)
	viper.SetDefault("ai-model", contract.DefaultAIModel)
	viper.SetDefault("ai-timeout", contract.DefaultAITimeout.String())
}

// sharedSetup merges config sources, unmarshals into the raw input and
// runs validation. Commands taking a workbook argument use this as
// their PreRunE.
func sharedSetup(_ *cobra.Command, args []string) error {
	// 1. Read config file. Not finding one is fine; defaults, env and
	// flags still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 2. Unmarshal all resolved values into the raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle the positional workbook argument.
	if len(args) >= 1 {
		input.WorkbookPathStr = args[0]
	}

	// 4. Run all validation and complex parsing into the final cfg.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Set up logging once config is known.
	logger.New(cfg.LogPretty)

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
