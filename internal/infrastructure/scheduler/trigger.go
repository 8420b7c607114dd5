package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PeriodicTrigger submits a named job to a scheduler at a fixed interval
type PeriodicTrigger struct {
	name      string
	interval  time.Duration
	scheduler *Scheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPeriodicTrigger creates a trigger for the job registered under name
func NewPeriodicTrigger(name string, interval time.Duration, scheduler *Scheduler, logger *zap.Logger) *PeriodicTrigger {
	return &PeriodicTrigger{
		name:      name,
		interval:  interval,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start begins ticking
func (t *PeriodicTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info("Periodic trigger started",
		zap.String("job", t.name),
		zap.Duration("interval", t.interval),
	)
	return nil
}

// Stop stops ticking
func (t *PeriodicTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Fire submits one job immediately
func (t *PeriodicTrigger) Fire() error {
	return t.scheduler.SubmitJob(NewJob(t.name, t.scheduler.config.RetryAttempts))
}

func (t *PeriodicTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Fire(); err != nil {
				t.logger.Warn("Failed to submit periodic job", zap.String("job", t.name), zap.Error(err))
			}
		}
	}
}
