// Package main is the entry point for the gitbloat CLI.
package main

import (
	"github.com/huangsam/gitbloat/cmd"
	"github.com/huangsam/gitbloat/internal/contract"
	"github.com/huangsam/gitbloat/internal/iostore"
	"go.uber.org/zap"
)

func main() {
	defer iostore.CloseStores()
	defer func() { _ = zap.L().Sync() }()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		iostore.CloseStores()
		contract.LogFatal("Error starting CLI", err)
	}
}
