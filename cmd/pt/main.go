package main

import (
	"os"

	"github.com/bnema/parceltrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
