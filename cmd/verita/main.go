// Command verita answers questions from a local document corpus with
// evidence-grounded, cited responses.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/verita-labs/verita-cli/internal/adapters/driving/cli"
)

func main() {
	// API keys may live in a local .env during development.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
