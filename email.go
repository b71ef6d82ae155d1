package autoscope

import "context"

// EmailService defines operations for delivering inspection reports.
type EmailService interface {
	// SendReport sends a rendered inspection report to recipients.
	SendReport(ctx context.Context, to []string, subject, textBody string) error
}

// EmailConfig holds configuration for email services.
type EmailConfig struct {
	// Provider is the email provider ("mock" or "postmark").
	Provider string

	// FromAddress is the sender email address.
	FromAddress string

	// FromName is the sender display name.
	FromName string

	// Postmark-specific configuration
	PostmarkServerToken  string
	PostmarkAccountToken string
}
