// main is the entry point for the gensight CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/unidoc/unioffice/common/license"

	"github.com/gensight/gensight/cmd"
)

func main() {
	// Load a local .env if present so GENSIGHT_AI_KEY can live outside
	// the shell profile. Absence is not an error.
	_ = godotenv.Load()

	// unioffice refuses to save documents without a metered API key, so
	// PPTX assembly needs UNIDOC_LICENSE_API_KEY set. Without it the
	// PPTX write fails per month and shows up in the run summary.
	if key := os.Getenv("UNIDOC_LICENSE_API_KEY"); key != "" {
		if err := license.SetMeteredKey(key); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
