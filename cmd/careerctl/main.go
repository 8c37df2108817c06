// Command careerctl runs operational tasks against the roadmap service's
// database and upstream APIs.
package main

import (
	"fmt"
	"log"
	"os"

	"careerpath/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Operational tooling for the career roadmap service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var logger = log.New(os.Stderr, "", log.LstdFlags)

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
