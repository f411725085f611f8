package worker

import (
	"context"
	"errors"
	"time"

	"github.com/traveltrack/traveltrack/internal/jobs"
	"github.com/traveltrack/traveltrack/internal/notifications"
	"github.com/traveltrack/traveltrack/internal/queue"
)

// ProcessOne claims one job from the queue and executes it. Returns false
// when the queue was empty for the whole wait window.
func (w *Worker) ProcessOne(ctx context.Context) (bool, error) {
	j, err := w.queue.Dequeue(ctx, w.cfg.DequeueWait)

	if err != nil {
		if errors.Is(err, queue.ErrEmpty) {
			return false, nil
		}

		return false, err
	}

	// jobs scheduled for later (retry backoff) go back on the list
	if now := time.Now().UTC(); j.RunAt.After(now) {
		if err := w.queue.Enqueue(ctx, j); err != nil {
			return true, err
		}

		select {
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
		}
		return true, nil
	}

	w.metrics.IncClaimed()
	started := time.Now()

	err = w.execute(ctx, j)

	w.metrics.ObserveDuration(time.Since(started))

	if err != nil {
		w.metrics.IncFailed()
		w.handleFailure(ctx, j, err)
		return true, nil
	}

	w.metrics.IncDone()
	w.logger.Info("job done", "job_id", j.ID, "type", j.Type, "worker_id", w.cfg.WorkerID)

	return true, nil
}

func (w *Worker) execute(ctx context.Context, j jobs.Job) error {
	decoded, err := jobs.DecodePayload(j)

	if err != nil {
		return err
	}

	if err := jobs.ValidatePayload(j.Type, decoded); err != nil {
		return err
	}

	switch p := decoded.(type) {
	case jobs.SendVerificationEmailPayload:
		return w.notifier.SendVerificationEmail(ctx, notifications.VerificationEmailInput{
			Email:     p.Email,
			FirstName: p.FirstName,
			Code:      p.Code,
		})

	case jobs.SendPasswordResetEmailPayload:
		return w.notifier.SendPasswordResetEmail(ctx, notifications.PasswordResetEmailInput{
			Email:     p.Email,
			FirstName: p.FirstName,
			Code:      p.Code,
		})

	case jobs.SendCollaboratorInvitePayload:
		return w.notifier.SendCollaboratorInvite(ctx, notifications.CollaboratorInviteInput{
			Email:       p.Email,
			TripTitle:   p.TripTitle,
			InviterName: p.InviterName,
			Role:        p.Role,
		})

	default:
		return jobs.ErrInvalidJobType
	}
}
