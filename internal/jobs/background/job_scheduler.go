package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalogapi/internal/services"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// RetryBatchSize bounds the ledger rows handled by one retry run.
const RetryBatchSize = 100

// OrphanRetrier retries queued blob deletions.
type OrphanRetrier interface {
	RetryPending(ctx context.Context, limit int) (services.RetryResult, error)
}

// JobScheduler runs the periodic maintenance jobs of the catalog.
type JobScheduler struct {
	scheduler gocron.Scheduler
	retrier   OrphanRetrier
	timeout   time.Duration
	log       *zap.SugaredLogger
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler registers the orphan blob retry to run every interval.
// Each run is bounded by timeout. A non-positive interval registers nothing.
func NewJobScheduler(retrier OrphanRetrier, interval, timeout time.Duration, log *zap.SugaredLogger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		retrier:   retrier,
		timeout:   timeout,
		log:       log,
		jobs:      make(map[string]gocron.Job),
	}

	if interval <= 0 {
		log.Info("orphan blob retry disabled")
		return js, nil
	}

	job, err := scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.RetryOrphanedBlobs),
		gocron.WithName("orphan-blob-retry"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create orphan retry job: %w", err)
	}
	js.jobs["orphan-blob-retry"] = job

	log.Infow("registered background jobs", "count", len(js.jobs), "retry_interval", interval)
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

// JobNames lists the registered jobs.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()
	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

// RetryOrphanedBlobs is one run of the retry job.
func (js *JobScheduler) RetryOrphanedBlobs() {
	ctx, cancel := context.WithTimeout(context.Background(), js.timeout)
	defer cancel()

	result, err := js.retrier.RetryPending(ctx, RetryBatchSize)
	if err != nil {
		js.log.Errorw("orphan blob retry failed", "retried", result.Retried, "error", err)
		return
	}
	if result.Retried == 0 {
		js.log.Debug("no orphaned blobs pending")
		return
	}
	js.log.Infow("orphan blob retry finished",
		"retried", result.Retried,
		"cleared", result.Cleared,
		"failed", result.Failed,
	)
}
