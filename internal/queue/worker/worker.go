package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/traveltrack/traveltrack/internal/jobs"
	"github.com/traveltrack/traveltrack/internal/notifications"
	"github.com/traveltrack/traveltrack/internal/observability"
	"github.com/traveltrack/traveltrack/internal/queue"
)

type Config struct {
	DequeueWait time.Duration
	WorkerID    string
}

type Worker struct {
	cfg      Config
	queue    *queue.Queue
	notifier notifications.Notifier
	metrics  *observability.JobMetrics
	logger   *slog.Logger

	readyMu sync.RWMutex
	ready   bool
}

func New(cfg Config, q *queue.Queue, notifier notifications.Notifier, metrics *observability.JobMetrics, logger *slog.Logger) *Worker {
	if cfg.DequeueWait <= 0 {
		cfg.DequeueWait = 5 * time.Second
	}

	return &Worker{
		cfg:      cfg,
		queue:    q,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
	}
}

func (w *Worker) setReady(v bool) {
	w.readyMu.Lock()
	w.ready = v
	w.readyMu.Unlock()
}

func (w *Worker) Run(ctx context.Context) error {
	w.setReady(true)
	defer w.setReady(false)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker received shutdown signal")
			return nil
		default:
		}

		processed, err := w.ProcessOne(ctx)

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			w.logger.Error("dequeue error", "error", err)

			// back off briefly so a broken redis does not spin the loop
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		_ = processed
	}
}

func (w *Worker) handleFailure(ctx context.Context, j jobs.Job, jobErr error) {
	j.Attempts++
	msg := jobErr.Error()
	j.LastError = &msg
	j.UpdatedAt = time.Now().UTC()

	if j.Attempts >= j.MaxTries {
		j.Status = jobs.JobFailed
		w.metrics.IncDeadLettered()
		w.logger.Error("job dead-lettered",
			"job_id", j.ID,
			"type", j.Type,
			"attempts", j.Attempts,
			"error", msg,
		)
		return
	}

	j.Status = jobs.JobPending
	j.RunAt = time.Now().UTC().Add(ExponentialBackoff(j.Attempts))
	w.metrics.IncRetried()

	if err := w.queue.Enqueue(ctx, j); err != nil {
		w.logger.Error("requeue failed", "job_id", j.ID, "error", err)
	}
}
