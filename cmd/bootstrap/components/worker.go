package components

import (
	"context"

	"libreserve/internal/pkg/clock"
	"libreserve/internal/pkg/config"
	"libreserve/internal/usecase/commands"
	"libreserve/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewExpirySweeper,
	),
	fx.Invoke(registerSweeper),
)

func NewExpirySweeper(reservations commands.ReservationCommands, clk clock.Clock, cfg config.Config) *worker.ExpirySweeper {
	return worker.NewExpirySweeper(reservations, clk, cfg.Sweeper)
}

func registerSweeper(lc fx.Lifecycle, sweeper *worker.ExpirySweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
