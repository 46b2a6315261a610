// HealthMate is an AI health assistant backend with conversation memory.
//
// It combines a pgvector-backed conversation memory, a curated medical
// literature index, and Gemini (via Genkit) streaming generation behind an
// HTTP API and a small CLI.
package main

import (
	"fmt"
	"os"

	"github.com/healthmate-ai/healthmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
