package mock

import (
	"context"

	autoscope "github.com/dukerupert/autoscope"
)

// Compile-time interface check
var _ autoscope.EmailService = (*EmailService)(nil)

// EmailService is a mock implementation of autoscope.EmailService.
type EmailService struct {
	SendReportFn func(ctx context.Context, to []string, subject, textBody string) error

	// Tracking sent emails for assertions
	SentEmails []SentEmail
}

// SentEmail records details of a sent email for testing assertions.
type SentEmail struct {
	To       []string
	Subject  string
	TextBody string
}

func (s *EmailService) SendReport(ctx context.Context, to []string, subject, textBody string) error {
	s.SentEmails = append(s.SentEmails, SentEmail{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
	})
	if s.SendReportFn != nil {
		return s.SendReportFn(ctx, to, subject, textBody)
	}
	return nil
}

// LastEmail returns the last sent email, or nil if none.
func (s *EmailService) LastEmail() *SentEmail {
	if len(s.SentEmails) == 0 {
		return nil
	}
	return &s.SentEmails[len(s.SentEmails)-1]
}
