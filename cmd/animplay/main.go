// Package main is the entry point for the headless animation player.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/nodeanim/internal/config"
	"github.com/Faultbox/nodeanim/internal/logger"
	"github.com/Faultbox/nodeanim/internal/runner"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== nodeanim player ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	r, err := runner.New(cfg, logger.Named("runner"))
	if err != nil {
		logger.Error("failed to load", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Run(ctx); err != nil {
		logger.Error("playback error", zap.Error(err))
		r.Close()
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("player closed normally", zap.Uint64("frames", r.Frames()))
}
