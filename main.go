package main

import (
	"os"

	"github.com/ndhai/remixtube/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
