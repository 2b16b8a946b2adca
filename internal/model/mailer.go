package model

import "context"

// EmailSender delivers a rendered message. Callers treat delivery as
// fire-and-forget: issuance flows must not block on it.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
