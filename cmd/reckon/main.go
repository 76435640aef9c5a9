package main

import (
	"os"

	"github.com/gnomonic/reckon/cmd/reckon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
