package jobs

import (
	"testing"
	"time"
)

func TestEncodeDecode_VerificationEmail(t *testing.T) {
	payload := SendVerificationEmailPayload{
		UserID: "user-123",
		Email:  "ana@example.com",
		Code:   "482913",
	}

	b, err := EncodePayload(JobSendVerificationEmail, payload)
	if err != nil {
		t.Fatalf("EncodePayload error: %v", err)
	}

	j, err := NewJob(JobSendVerificationEmail, b, time.Time{})
	if err != nil {
		t.Fatalf("NewJob error: %v", err)
	}

	decoded, err := DecodePayload(j)
	if err != nil {
		t.Fatalf("DecodePayload error: %v", err)
	}

	p, ok := decoded.(SendVerificationEmailPayload)
	if !ok {
		t.Fatalf("expected SendVerificationEmailPayload, got %T", decoded)
	}

	if p.Code != payload.Code {
		t.Fatalf("expected code %s, got %s", payload.Code, p.Code)
	}
}

func TestEncodePayload_TypeMismatch(t *testing.T) {
	_, err := EncodePayload(JobSendVerificationEmail, SendCollaboratorInvitePayload{
		TripID: "t1",
		Email:  "ben@example.com",
	})
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err != ErrPayloadTypeMismatch {
		t.Fatalf("expected ErrPayloadTypeMismatch, got %v", err)
	}
}

func TestValidatePayload_RequiredFields(t *testing.T) {
	err := ValidatePayload(JobSendVerificationEmail, SendVerificationEmailPayload{Email: "ana@example.com"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewJob_RejectsUnknownType(t *testing.T) {
	_, err := NewJob(JobType("bogus"), nil, time.Time{})
	if err != ErrInvalidJobType {
		t.Fatalf("expected ErrInvalidJobType, got %v", err)
	}
}
