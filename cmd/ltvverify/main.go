package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/gautam-rahul-09/genai-verification-system/internal/cli"
)

func main() {
	// Local .env is optional; the environment itself always wins
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
