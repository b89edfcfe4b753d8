package main

import (
	"os"

	"github.com/mdpeek/mdpeek/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
