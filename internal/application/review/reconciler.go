package review

import (
	"context"

	"github.com/foodhub/backend/internal/domain/ordering"
	"github.com/foodhub/backend/internal/domain/review"
	"github.com/foodhub/backend/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

// ReconcileJobName is the scheduler job that repairs review flags
const ReconcileJobName = "review.reconcile"

// Reconciler sets is_reviewed on orders that have a review but were left
// unflagged by a failed second write
type Reconciler struct {
	reviewRepo review.ReviewRepository
	orderRepo  ordering.OrderRepository
	batch      int
	logger     *zap.Logger
}

// NewReconciler creates a Reconciler handling up to batch orders per run
func NewReconciler(reviewRepo review.ReviewRepository, orderRepo ordering.OrderRepository, batch int, logger *zap.Logger) *Reconciler {
	if batch <= 0 {
		batch = 100
	}
	return &Reconciler{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		batch:      batch,
		logger:     logger,
	}
}

// Run flags one batch of orders and returns how many were repaired. The
// first failure stops the run; the scheduler retries the job.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	ids, err := r.reviewRepo.FindUnflaggedOrderIDs(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	repaired := 0
	for _, id := range ids {
		if err := r.orderRepo.MarkReviewed(ctx, id); err != nil {
			return repaired, err
		}
		repaired++
	}
	if repaired > 0 {
		r.logger.Info("Reconciled review flags", zap.Int("orders", repaired))
	}
	return repaired, nil
}

// Execute implements scheduler.JobExecutor
func (r *Reconciler) Execute(ctx context.Context, _ *scheduler.Job) error {
	_, err := r.Run(ctx)
	return err
}
