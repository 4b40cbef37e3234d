package main

import (
	"os"

	"github.com/leffw/torch-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
