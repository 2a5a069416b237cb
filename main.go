// Package main is the entry point for the tumorscore CLI.
package main

import (
	"github.com/oncolens/tumorscore/cmd"
	"github.com/oncolens/tumorscore/internal/contract"
	"github.com/oncolens/tumorscore/internal/runlog"
)

func main() {
	defer runlog.CloseRunLog()
	cmd.SetRunManager(runlog.Manager)

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		runlog.CloseRunLog()
		contract.LogFatal("Command failed", err)
	}
}
