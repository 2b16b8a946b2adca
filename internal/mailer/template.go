package mailer

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templates embed.FS

var resetTemplate = template.Must(template.ParseFS(templates, "templates/reset_password.html"))

// ResetEmailData feeds the password-recovery template.
type ResetEmailData struct {
	ProjectName string
	Email       string
	Link        string
	ValidHours  int
}

// RenderResetEmail renders the recovery message and returns its subject
// and HTML body.
func RenderResetEmail(data ResetEmailData) (subject string, body string, err error) {
	var sb strings.Builder
	if err := resetTemplate.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("failed to render reset email: %w", err)
	}

	subject = fmt.Sprintf("%s - Password recovery for %s", data.ProjectName, data.Email)
	return subject, sb.String(), nil
}
