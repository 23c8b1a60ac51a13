// Package main implements prioritixctl, the operator CLI for the todo API.
package main

import (
	"os"

	"prioritix/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "prioritixctl",
	Short:         "Operator tools for the prioritix API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var envFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
}

// loadConfig reads the same environment the server reads.
func loadConfig() config.AppConfig {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	return config.Load()
}
