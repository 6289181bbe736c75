package main

import (
	"os"

	"github.com/karu-dev/deckhand/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
