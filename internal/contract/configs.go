// Package contract holds configuration types and shared helpers used
// across gensight commands.
package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gensight/gensight/schema"
)

// Default values for configuration.
const (
	DefaultOutDir      = "reports"
	DefaultAIEndpoint  = "https://api.openai.com/v1/chat/completions"
	DefaultAIModel     = "gpt-4o-mini"
	DefaultAITimeout   = 45 * time.Second
	MaxNarrativeTokens = 600
)

// Config holds the validated runtime configuration for one run.
// Simple fields are copied straight from flags; fields that need
// parsing (month filter, timeout) are set by ProcessAndValidate.
type Config struct {
	WorkbookPath  string          // Path to the .xlsx workbook (positional arg)
	OutDir        string          // Root directory for per-month outputs
	OutputFile    string          // Destination for parquet export
	MonthFilter   schema.MonthKey // Zero value means "all months"
	LogoPath      string          // Optional logo for PDF cover / title slide
	StrictSheets  bool            // Abort the run on unrecognized sheet names
	SkipCharts    bool
	SkipNarrative bool
	LogPretty     bool

	// Narrative provider settings, passed explicitly into the
	// generator at call time. No package-level provider state.
	AIEndpoint string
	AIKey      string
	AIModel    string
	AITimeout  time.Duration
}

// ConfigRawInput holds the raw values resolved by Viper from defaults,
// config file, environment and flags. Cobra/Viper unmarshal into this
// struct; ProcessAndValidate turns it into a Config.
type ConfigRawInput struct {
	WorkbookPathStr string
	OutDir          string `mapstructure:"out-dir"`
	OutputFile      string `mapstructure:"output-file"`
	Month           string `mapstructure:"month"`
	Logo            string `mapstructure:"logo"`
	StrictSheets    bool   `mapstructure:"strict-sheets"`
	SkipCharts      bool   `mapstructure:"skip-charts"`
	SkipNarrative   bool   `mapstructure:"skip-narrative"`
	LogPretty       bool   `mapstructure:"log-pretty"`
	AIEndpoint      string `mapstructure:"ai-endpoint"`
	AIKey           string `mapstructure:"ai-key"`
	AIModel         string `mapstructure:"ai-model"`
	AITimeout       string `mapstructure:"ai-timeout"`
}

// ProcessAndValidate performs all parsing and validation on the raw
// inputs and populates the final Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Workbook path ---
	if input.WorkbookPathStr == "" {
		return fmt.Errorf("a workbook path is required")
	}
	abs, err := filepath.Abs(input.WorkbookPathStr)
	if err != nil {
		return fmt.Errorf("cannot resolve workbook path %q: %w", input.WorkbookPathStr, err)
	}
	if info, err := os.Stat(abs); err != nil {
		return fmt.Errorf("workbook %q is not readable: %w", abs, err)
	} else if info.IsDir() {
		return fmt.Errorf("workbook %q is a directory", abs)
	}
	cfg.WorkbookPath = abs

	// --- 2. Output directory ---
	cfg.OutDir = input.OutDir
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	cfg.OutputFile = input.OutputFile

	// --- 3. Month filter ---
	if input.Month != "" {
		key, err := schema.ParseMonthLabel(input.Month)
		if err != nil {
			return fmt.Errorf("invalid --month value: %w", err)
		}
		cfg.MonthFilter = key
	}

	// --- 4. Logo ---
	if input.Logo != "" {
		if _, err := os.Stat(input.Logo); err != nil {
			return fmt.Errorf("logo %q is not readable: %w", input.Logo, err)
		}
		cfg.LogoPath = input.Logo
	}

	cfg.StrictSheets = input.StrictSheets
	cfg.SkipCharts = input.SkipCharts
	cfg.SkipNarrative = input.SkipNarrative
	cfg.LogPretty = input.LogPretty

	// --- 5. Narrative provider ---
	cfg.AIEndpoint = strings.TrimSpace(input.AIEndpoint)
	if cfg.AIEndpoint == "" {
		cfg.AIEndpoint = DefaultAIEndpoint
	}
	cfg.AIKey = strings.TrimSpace(input.AIKey)
	cfg.AIModel = strings.TrimSpace(input.AIModel)
	if cfg.AIModel == "" {
		cfg.AIModel = DefaultAIModel
	}
	cfg.AITimeout = DefaultAITimeout
	if input.AITimeout != "" {
		d, err := time.ParseDuration(input.AITimeout)
		if err != nil {
			return fmt.Errorf("invalid ai-timeout %q: %w", input.AITimeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("ai-timeout must be positive (received %s)", d)
		}
		cfg.AITimeout = d
	}

	return nil
}
