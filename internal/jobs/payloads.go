package jobs

// SendVerificationEmailPayload carries the one-time code for a fresh
// registration or a resend. The raw code travels in the job; only its hash
// is stored on the user row.
type SendVerificationEmailPayload struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"` // optional: correlation
}

// SendPasswordResetEmailPayload carries the reset code for a forgot-password
// request.
type SendPasswordResetEmailPayload struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

// SendCollaboratorInvitePayload tells an invited user they were added to a
// trip.
type SendCollaboratorInvitePayload struct {
	TripID      string `json:"tripId"`
	TripTitle   string `json:"tripTitle"`
	Email       string `json:"email"`
	InviterName string `json:"inviterName"`
	Role        string `json:"role"`
	RequestID   string `json:"requestId,omitempty"`
}
