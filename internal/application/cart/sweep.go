package cart

import (
	"context"
	"time"

	"github.com/foodhub/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// SweepJobName is the scheduler job that expires idle carts
const SweepJobName = "cart.sweep"

// NewSweepExecutor returns a job executor that drops idle carts from store
func NewSweepExecutor(store *SessionStore, logger *zap.Logger) scheduler.JobExecutor {
	return scheduler.ExecutorFunc(func(_ context.Context, _ *scheduler.Job) error {
		removed := store.Sweep(time.Now())
		if removed > 0 {
			logger.Info("Expired idle carts",
				zap.Int("removed", removed),
				zap.Int("remaining", store.Len()),
			)
		}
		return nil
	})
}
