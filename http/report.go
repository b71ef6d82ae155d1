package http

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

func (s *Server) handleGetSummary(c echo.Context) error {
	return RespondOK(c, s.reports.Build().Summary)
}

func (s *Server) handleGetReport(c echo.Context) error {
	report := s.reports.Build()
	if c.QueryParam("format") == "text" {
		return c.String(200, report.RenderText())
	}
	return RespondOK(c, report)
}

// SendReportRequest is the request payload for emailing a report.
type SendReportRequest struct {
	To      []string `json:"to" validate:"required,min=1,dive,email"`
	Subject string   `json:"subject"`
}

func (s *Server) handleSendReport(c echo.Context) error {
	if s.emailService == nil {
		return autoscope.Internal("Email delivery is not configured")
	}

	var req SendReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	report := s.reports.Build()
	subject := req.Subject
	if subject == "" {
		subject = fmt.Sprintf("Inspection report: %s (%d/100)", report.VehicleInfo.Model, report.Summary.Score)
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := s.emailService.SendReport(ctx, req.To, subject, report.RenderText()); err != nil {
		return err
	}

	s.log(c).Info("report emailed",
		slog.String("to", strings.Join(req.To, ", ")),
		slog.Int("score", report.Summary.Score),
	)
	return RespondSuccess(c, "Report sent")
}
