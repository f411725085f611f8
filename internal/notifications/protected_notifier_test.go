package notifications

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyNotifier struct {
	err   error
	calls int
}

func (f *flakyNotifier) SendVerificationEmail(ctx context.Context, input VerificationEmailInput) error {
	f.calls++
	return f.err
}

func (f *flakyNotifier) SendPasswordResetEmail(ctx context.Context, input PasswordResetEmailInput) error {
	f.calls++
	return f.err
}

func (f *flakyNotifier) SendCollaboratorInvite(ctx context.Context, input CollaboratorInviteInput) error {
	f.calls++
	return f.err
}

func TestCircuitOpensAfterThreshold(t *testing.T) {
	inner := &flakyNotifier{err: errors.New("smtp down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 3,
		Cooldown:         time.Hour,
	})

	ctx := context.Background()
	input := VerificationEmailInput{Email: "ada@example.com", Code: "123456"}

	for i := 0; i < 3; i++ {
		if err := n.SendVerificationEmail(ctx, input); err == nil {
			t.Fatalf("send %d: expected error", i)
		}
	}

	err := n.SendVerificationEmail(ctx, input)
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}
	if inner.calls != 3 {
		t.Fatalf("inner called %d times, want 3", inner.calls)
	}
}

func TestCircuitHalfOpensAfterCooldown(t *testing.T) {
	inner := &flakyNotifier{err: errors.New("smtp down")}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{
		FailureThreshold: 1,
		Cooldown:         10 * time.Millisecond,
		HalfOpenMaxCalls: 1,
	})

	ctx := context.Background()
	input := VerificationEmailInput{Email: "ada@example.com", Code: "123456"}

	n.SendVerificationEmail(ctx, input)

	if err := n.SendVerificationEmail(ctx, input); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}

	time.Sleep(20 * time.Millisecond)

	// trial call is allowed through and succeeds, closing the circuit
	inner.err = nil
	if err := n.SendVerificationEmail(ctx, input); err != nil {
		t.Fatalf("half-open trial: %v", err)
	}
	if err := n.SendVerificationEmail(ctx, input); err != nil {
		t.Fatalf("after close: %v", err)
	}
}

func TestClosedCircuitPassesThrough(t *testing.T) {
	inner := &flakyNotifier{}
	n := NewProtectedNotifier(inner, ProtectedNotifierConfig{})

	if err := n.SendCollaboratorInvite(context.Background(), CollaboratorInviteInput{
		Email:     "friend@example.com",
		TripTitle: "Porto",
	}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner called %d times, want 1", inner.calls)
	}
}
