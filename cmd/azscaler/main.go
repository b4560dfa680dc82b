package main

import (
	"os"

	"github.com/bnema/azdo-agent-scaler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
