package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// LogNotifier stands in for a real email provider. It logs the message and
// honours the same env knobs used to rehearse provider failures.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) simulate(ctx context.Context) error {
	// Optional: simulate slow provider
	if msStr := os.Getenv("NOTIFIER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	// Optional: simulate provider outage
	if os.Getenv("NOTIFIER_FAIL") == "1" {
		return fmt.Errorf("provider down (simulated)")
	}

	return nil
}

func (n *LogNotifier) SendVerificationEmail(ctx context.Context, in VerificationEmailInput) error {
	if err := n.simulate(ctx); err != nil {
		return err
	}

	body, err := RenderVerificationEmail(in)
	if err != nil {
		return err
	}

	log.Printf("notification.verification_email email=%s body=%q", in.Email, body)
	return nil
}

func (n *LogNotifier) SendPasswordResetEmail(ctx context.Context, in PasswordResetEmailInput) error {
	if err := n.simulate(ctx); err != nil {
		return err
	}

	body, err := RenderPasswordResetEmail(in)
	if err != nil {
		return err
	}

	log.Printf("notification.password_reset_email email=%s body=%q", in.Email, body)
	return nil
}

func (n *LogNotifier) SendCollaboratorInvite(ctx context.Context, in CollaboratorInviteInput) error {
	if err := n.simulate(ctx); err != nil {
		return err
	}

	body, err := RenderCollaboratorInvite(in)
	if err != nil {
		return err
	}

	log.Printf("notification.collaborator_invite email=%s trip=%q body=%q", in.Email, in.TripTitle, body)
	return nil
}
