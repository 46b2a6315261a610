// Package cmd implements the healthmate CLI: the HTTP server plus a few
// operational helpers (one-shot questions, knowledge base queries).
package cmd

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/healthmate-ai/healthmate/internal/log"
)

var (
	debug   bool
	logJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "healthmate",
	Short: "HealthMate - AI health assistant backend",
	Long: `HealthMate is an AI health assistant backend built on Genkit and Gemini.

It keeps a vector memory of past conversations, retrieves relevant medical
literature from a built-in knowledge base, and streams personalized answers
over an HTTP API.

Run "healthmate serve" to start the API server.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// .env is a local development convenience; missing files are fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log in JSON format")
}

// newLogger builds the process logger from the global flags.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, JSON: logJSON})
}
