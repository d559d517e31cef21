package adapter

import (
	"context"

	"loves-api/internal/domain"
	"loves-api/internal/logger"

	"go.uber.org/zap"
)

// LogNotifier implements domain.Notifier by writing deliveries to the
// application log. Real SMTP/SMS providers plug in behind the same
// interface without touching the services.
type LogNotifier struct{}

// NewLogNotifier creates a notifier that only logs outgoing messages.
func NewLogNotifier() domain.Notifier {
	return &LogNotifier{}
}

// SendEmail logs an outgoing email instead of delivering it.
func (n *LogNotifier) SendEmail(ctx context.Context, to, subject, body string) error {
	logger.Get().Info("email notification",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

// SendSMS logs an outgoing SMS instead of delivering it.
func (n *LogNotifier) SendSMS(ctx context.Context, to, body string) error {
	logger.Get().Info("sms notification",
		zap.String("to", to),
		zap.Int("body_length", len(body)),
	)
	return nil
}
