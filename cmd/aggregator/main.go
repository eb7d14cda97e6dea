package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"resume-match/internal/app"
	"resume-match/internal/config"
	"resume-match/internal/logger"
	"resume-match/internal/usecase"
)

// The aggregator turns accumulated recruiter feedback into pending synonym
// candidates. It runs one batch and exits by default; -follow keeps it
// alive on the configured cron schedule instead.
func main() {
	follow := flag.Bool("follow", false, "keep running on the cron schedule instead of one-shot")
	timeout := flag.Duration("timeout", 5*time.Minute, "one-shot run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	c, err := app.NewContainer(cfg, zl)
	if err != nil {
		zl.Fatal("failed to init container", zap.Error(err))
	}
	defer func() {
		_ = c.Close()
	}()

	if *follow {
		runCtx, cancel := context.WithCancel(context.Background())
		defer cancel()

		if err := c.Scheduler.Start(runCtx); err != nil {
			zl.Fatal("failed to start scheduler", zap.Error(err))
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		zl.Info("stopping", zap.String("signal", sig.String()))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := c.Feedbacks.RunAggregation(ctx)
	if err != nil {
		if errors.Is(err, usecase.ErrAggregationInFlight) {
			zl.Warn("aggregation already running elsewhere")
			return
		}
		zl.Fatal("aggregation failed", zap.Error(err))
	}

	zl.Info("aggregation complete",
		zap.Int("consumed", report.Consumed),
		zap.Int("skipped", report.Skipped),
		zap.Int("proposals", report.Proposals),
	)
}
