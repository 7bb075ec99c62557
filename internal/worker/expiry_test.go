//go:build unit

package worker_test

import (
	"testing"
	"time"

	"libreserve/internal/pkg/clock"
	"libreserve/internal/pkg/config"
	"libreserve/internal/worker"
	commandsmock "libreserve/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestExpirySweeper_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCommands := commandsmock.NewMockReservationCommands(ctrl)
	clk := clock.NewMockClock(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))

	t.Run("disabled sweeper never schedules", func(t *testing.T) {
		sweeper := worker.NewExpirySweeper(mockCommands, clk, config.SweeperConfig{Enabled: false})
		assert.NoError(t, sweeper.Start())
	})

	t.Run("invalid schedule is rejected", func(t *testing.T) {
		sweeper := worker.NewExpirySweeper(mockCommands, clk, config.SweeperConfig{
			Enabled:  true,
			Schedule: "not a cron spec",
		})
		assert.Error(t, sweeper.Start())
	})

	t.Run("valid schedule starts and stops cleanly", func(t *testing.T) {
		sweeper := worker.NewExpirySweeper(mockCommands, clk, config.SweeperConfig{
			Enabled:  true,
			Schedule: "0 0 * * *",
		})
		assert.NoError(t, sweeper.Start())
		sweeper.Stop()
	})
}
