package main

import (
	"os"

	"github.com/billyblackk/forest-phenology-tracking-system/cmd/phenology-ingest/command"
)

func main() {
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
