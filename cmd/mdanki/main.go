package main

import (
	"os"

	"github.com/dgallion1/mdanki/internal/cli"
)

func main() {
	if err := cli.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
