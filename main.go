// main is the entry point for the nutriscope CLI.
package main

import (
	"github.com/nutriscope/nutriscope/cmd"
	"github.com/nutriscope/nutriscope/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
