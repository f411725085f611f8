package jobs

import "strings"

// ValidatePayload performs minimal validation on decoded payloads.
func ValidatePayload(t JobType, payload any) error {
	if !t.IsValid() {
		return ErrInvalidJobType
	}

	trim := func(s string) string { return strings.TrimSpace(s) }

	switch t {
	case JobSendVerificationEmail:
		var p SendVerificationEmailPayload
		switch v := payload.(type) {
		case SendVerificationEmailPayload:
			p = v
		case *SendVerificationEmailPayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if trim(p.UserID) == "" || trim(p.Email) == "" || trim(p.Code) == "" {
			return ErrInvalidJobPayload
		}
		return nil

	case JobSendPasswordResetEmail:
		var p SendPasswordResetEmailPayload
		switch v := payload.(type) {
		case SendPasswordResetEmailPayload:
			p = v
		case *SendPasswordResetEmailPayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if trim(p.UserID) == "" || trim(p.Email) == "" || trim(p.Code) == "" {
			return ErrInvalidJobPayload
		}
		return nil

	case JobSendCollaboratorInvite:
		var p SendCollaboratorInvitePayload
		switch v := payload.(type) {
		case SendCollaboratorInvitePayload:
			p = v
		case *SendCollaboratorInvitePayload:
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}
		if trim(p.TripID) == "" || trim(p.Email) == "" {
			return ErrInvalidJobPayload
		}
		return nil

	default:
		return ErrInvalidJobType
	}
}
