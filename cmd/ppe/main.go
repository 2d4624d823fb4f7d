package main

import (
	"os"

	"github.com/saylorsolutions/ppecrypt/cmd/internal"
)

var version = "dev"

func main() {
	if err := internal.LoadDotEnv(); err != nil {
		internal.Fatal("Failed to load .env: %v", err)
	}
	cfg := &config{logOutput: os.Stderr}
	if err := newRootCmd(cfg).Execute(); err != nil {
		internal.Fatal("Error: %v", err)
	}
}
