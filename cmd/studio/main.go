// Mannequin Studio - an ImGui front end for arranging and animating
// mannequins.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Mannequin Studio ===")

	s, err := newStudio(cfg)
	if err != nil {
		logger.Error("failed to start studio", zap.Error(err))
		os.Exit(1)
	}
	defer s.Close()

	s.Run()
}
