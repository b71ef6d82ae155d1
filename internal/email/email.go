// Package email provides report delivery via Postmark, with a mock
// provider for development.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/keighl/postmark"

	autoscope "github.com/dukerupert/autoscope"
)

// NewEmailService creates an email service based on the provider
// configuration.
func NewEmailService(logger *slog.Logger, config autoscope.EmailConfig) autoscope.EmailService {
	switch config.Provider {
	case "postmark":
		return newPostmarkEmailService(logger, config)
	default:
		return newMockEmailService(logger, config)
	}
}

// mockEmailService logs instead of sending.
type mockEmailService struct {
	logger *slog.Logger
	config autoscope.EmailConfig
}

func newMockEmailService(logger *slog.Logger, config autoscope.EmailConfig) *mockEmailService {
	return &mockEmailService{logger: logger, config: config}
}

func (s *mockEmailService) SendReport(ctx context.Context, to []string, subject, textBody string) error {
	s.logger.Info("MOCK EMAIL: inspection report",
		slog.String("to", strings.Join(to, ", ")),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(textBody)),
	)
	return nil
}

// postmarkEmailService sends via Postmark.
type postmarkEmailService struct {
	client *postmark.Client
	logger *slog.Logger
	config autoscope.EmailConfig
}

func newPostmarkEmailService(logger *slog.Logger, config autoscope.EmailConfig) *postmarkEmailService {
	client := postmark.NewClient(config.PostmarkServerToken, config.PostmarkAccountToken)
	return &postmarkEmailService{client: client, logger: logger, config: config}
}

func (s *postmarkEmailService) SendReport(ctx context.Context, to []string, subject, textBody string) error {
	msg := postmark.Email{
		From:     fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:       strings.Join(to, ","),
		Subject:  subject,
		TextBody: textBody,
		Tag:      "inspection-report",
	}

	_, err := s.client.SendEmail(msg)
	if err != nil {
		s.logger.Error("failed to send report via Postmark",
			slog.String("to", strings.Join(to, ", ")),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to send report: %w", err)
	}

	s.logger.Info("report sent via Postmark",
		slog.String("to", strings.Join(to, ", ")),
		slog.String("subject", subject),
	)
	return nil
}
