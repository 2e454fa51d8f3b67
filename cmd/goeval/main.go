package main

import (
	"os"

	"github.com/cwbudde/go-eval/cmd/goeval/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
