package domain

import "context"

// Notifier is the outbound delivery port for email and SMS. The core never
// blocks on delivery success; adapters decide how (or whether) to send.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}
