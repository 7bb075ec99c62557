// Package worker runs background jobs alongside the HTTP server.
package worker

import (
	"context"
	"log/slog"

	"libreserve/internal/pkg/clock"
	"libreserve/internal/pkg/config"
	"libreserve/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// ExpirySweeper periodically completes reservations whose loan period has
// elapsed and returns their copies to the pool. It stands in for the book
// return flow a circulation desk would normally drive.
type ExpirySweeper struct {
	cron         *cron.Cron
	reservations commands.ReservationCommands
	clk          clock.Clock
	cfg          config.SweeperConfig
}

func NewExpirySweeper(reservations commands.ReservationCommands, clk clock.Clock, cfg config.SweeperConfig) *ExpirySweeper {
	return &ExpirySweeper{
		cron:         cron.New(),
		reservations: reservations,
		clk:          clk,
		cfg:          cfg,
	}
}

func (s *ExpirySweeper) Start() error {
	if !s.cfg.Enabled {
		slog.Info("Expiry sweeper disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.sweep); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("Expiry sweeper started", "schedule", s.cfg.Schedule)
	return nil
}

func (s *ExpirySweeper) Stop() {
	ctx := s.cron.Stop()
	// Wait for an in-flight sweep to finish before shutdown proceeds.
	<-ctx.Done()
}

func (s *ExpirySweeper) sweep() {
	now := s.clk.Now()
	expired, err := s.reservations.ExpireOverdue(context.Background(), now)
	if err != nil {
		slog.Error("Expiry sweep failed", "error", err.Error())
		return
	}
	if expired > 0 {
		slog.Info("Expiry sweep completed", "expired", expired)
	}
}
