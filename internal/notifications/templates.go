package notifications

import (
	"strings"
	"text/template"
)

// Plain-text bodies. Parsed once at init; a bad template is a programmer
// error, not a runtime condition.
var (
	verificationTmpl = template.Must(template.New("verification").Parse(
		`Hi {{.FirstName}},

Your TravelTrack verification code is {{.Code}}. It expires shortly, so
enter it soon. If you did not create an account, ignore this email.
`))

	passwordResetTmpl = template.Must(template.New("password_reset").Parse(
		`Hi {{.FirstName}},

Your TravelTrack password reset code is {{.Code}}. If you did not request a
reset, ignore this email and your password will stay unchanged.
`))

	collaboratorInviteTmpl = template.Must(template.New("collaborator_invite").Parse(
		`{{.InviterName}} added you to the trip "{{.TripTitle}}" as {{.Role}}.

Sign in to TravelTrack to start planning together.
`))
)

func renderBody(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder

	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}

	return b.String(), nil
}

func RenderVerificationEmail(in VerificationEmailInput) (string, error) {
	return renderBody(verificationTmpl, in)
}

func RenderPasswordResetEmail(in PasswordResetEmailInput) (string, error) {
	return renderBody(passwordResetTmpl, in)
}

func RenderCollaboratorInvite(in CollaboratorInviteInput) (string, error) {
	return renderBody(collaboratorInviteTmpl, in)
}
