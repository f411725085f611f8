package notifications

import "context"

type VerificationEmailInput struct {
	Email     string
	FirstName string
	Code      string
}

type PasswordResetEmailInput struct {
	Email     string
	FirstName string
	Code      string
}

type CollaboratorInviteInput struct {
	Email       string
	TripTitle   string
	InviterName string
	Role        string
}

type Notifier interface {
	SendVerificationEmail(ctx context.Context, input VerificationEmailInput) error
	SendPasswordResetEmail(ctx context.Context, input PasswordResetEmailInput) error
	SendCollaboratorInvite(ctx context.Context, input CollaboratorInviteInput) error
}
