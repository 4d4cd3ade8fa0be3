package main

import (
	"errors"
	"os"

	"bytemomo/moray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		if errors.Is(err, cli.ErrTestFailures) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
