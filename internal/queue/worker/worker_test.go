package worker

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/traveltrack/traveltrack/internal/jobs"
	"github.com/traveltrack/traveltrack/internal/notifications"
	"github.com/traveltrack/traveltrack/internal/observability"
)

type capturingNotifier struct {
	err          error
	verification []notifications.VerificationEmailInput
	resets       []notifications.PasswordResetEmailInput
	invites      []notifications.CollaboratorInviteInput
}

func (c *capturingNotifier) SendVerificationEmail(ctx context.Context, input notifications.VerificationEmailInput) error {
	c.verification = append(c.verification, input)
	return c.err
}

func (c *capturingNotifier) SendPasswordResetEmail(ctx context.Context, input notifications.PasswordResetEmailInput) error {
	c.resets = append(c.resets, input)
	return c.err
}

func (c *capturingNotifier) SendCollaboratorInvite(ctx context.Context, input notifications.CollaboratorInviteInput) error {
	c.invites = append(c.invites, input)
	return c.err
}

func newTestWorker(n notifications.Notifier) *Worker {
	return New(Config{WorkerID: "test-1"}, nil, n, observability.NewJobMetrics(), slog.Default())
}

func mustJob(t *testing.T, jt jobs.JobType, payload any) jobs.Job {
	t.Helper()

	b, err := jobs.EncodePayload(jt, payload)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	j, err := jobs.NewJob(jt, b, time.Time{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	return j
}

func TestExecuteDispatchesByType(t *testing.T) {
	n := &capturingNotifier{}
	w := newTestWorker(n)
	ctx := context.Background()

	verify := mustJob(t, jobs.JobSendVerificationEmail, jobs.SendVerificationEmailPayload{
		UserID:    "u-1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		Code:      "123456",
	})
	if err := w.execute(ctx, verify); err != nil {
		t.Fatalf("verification: %v", err)
	}

	invite := mustJob(t, jobs.JobSendCollaboratorInvite, jobs.SendCollaboratorInvitePayload{
		TripID:      "t-1",
		TripTitle:   "Porto",
		Email:       "friend@example.com",
		InviterName: "Ada Lovelace",
		Role:        "Viewer",
	})
	if err := w.execute(ctx, invite); err != nil {
		t.Fatalf("invite: %v", err)
	}

	if len(n.verification) != 1 || n.verification[0].Code != "123456" {
		t.Fatalf("verification sends = %+v", n.verification)
	}
	if len(n.invites) != 1 || n.invites[0].TripTitle != "Porto" {
		t.Fatalf("invite sends = %+v", n.invites)
	}
	if len(n.resets) != 0 {
		t.Fatalf("unexpected reset sends: %+v", n.resets)
	}
}

func TestExecuteRejectsMalformedPayload(t *testing.T) {
	n := &capturingNotifier{}
	w := newTestWorker(n)

	j, err := jobs.NewJob(jobs.JobSendVerificationEmail, []byte(`{"email":""}`), time.Time{})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	if err := w.execute(context.Background(), j); err == nil {
		t.Fatal("expected validation error for empty email")
	}
	if len(n.verification) != 0 {
		t.Fatalf("notifier called with invalid payload: %+v", n.verification)
	}
}

func TestExecutePropagatesNotifierError(t *testing.T) {
	n := &capturingNotifier{err: errors.New("smtp down")}
	w := newTestWorker(n)

	j := mustJob(t, jobs.JobSendPasswordResetEmail, jobs.SendPasswordResetEmailPayload{
		UserID:    "u-1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		Code:      "654321",
	})

	if err := w.execute(context.Background(), j); err == nil {
		t.Fatal("expected notifier error to surface")
	}
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	prev := time.Duration(0)

	for attempt := 0; attempt < 5; attempt++ {
		d := ExponentialBackoff(attempt)
		if d < prev {
			t.Fatalf("attempt %d: delay %v shrank below %v", attempt, d, prev)
		}
		prev = d
	}

	if d := ExponentialBackoff(30); d > 5*time.Minute+time.Second {
		t.Fatalf("delay %v exceeds cap", d)
	}
}
