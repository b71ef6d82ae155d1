package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

func (s *Server) handleListIssues(c echo.Context) error {
	severity := autoscope.Severity(c.QueryParam("severity"))
	category := autoscope.PointCategory(c.QueryParam("category"))
	if severity != "" && !severity.IsValid() {
		return autoscope.Invalid("Unknown severity %q", severity)
	}
	if category != "" && !category.IsValid() {
		return autoscope.Invalid("Unknown category %q", category)
	}

	return RespondOK(c, s.reports.Build().FilterIssues(severity, category))
}

// AddIssueRequest is the request payload for recording an issue.
type AddIssueRequest struct {
	Type        string            `json:"type" validate:"required"`
	Severity    string            `json:"severity" validate:"required,oneof=normal minor moderate severe"`
	Description string            `json:"description"`
	Suggestion  string            `json:"suggestion"`
	Cost        int               `json:"cost" validate:"gte=0"`
	Images      []autoscope.Image `json:"images"`
}

func (s *Server) handleAddIssue(c echo.Context) error {
	pointID, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req AddIssueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	issue, err := s.inspectionService.AddIssue(autoscope.IssueInput{
		PointID:     pointID,
		Type:        autoscope.IssueType(req.Type),
		Severity:    autoscope.Severity(req.Severity),
		Description: req.Description,
		Suggestion:  req.Suggestion,
		Cost:        req.Cost,
		Images:      req.Images,
	})
	if err != nil {
		return err
	}

	// The normal type clears the point instead of recording an issue.
	if issue == nil {
		point, err := s.inspectionService.Point(pointID)
		if err != nil {
			return err
		}
		return RespondOK(c, point)
	}

	s.log(c).Info("issue recorded",
		slog.String("point_id", pointID),
		slog.String("issue_id", issue.ID),
	)
	return RespondCreated(c, issue)
}

// UpdateIssueRequest is the request payload for editing an issue. All
// fields are optional; absent fields are left unchanged.
type UpdateIssueRequest struct {
	Type        *string            `json:"type"`
	Severity    *string            `json:"severity" validate:"omitempty,oneof=normal minor moderate severe"`
	Description *string            `json:"description"`
	Suggestion  *string            `json:"suggestion"`
	Cost        *int               `json:"cost" validate:"omitempty,gte=0"`
	Images      *[]autoscope.Image `json:"images"`
}

func (s *Server) handleUpdateIssue(c echo.Context) error {
	pointID, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	issueID, err := requireParam(c, "issueId")
	if err != nil {
		return err
	}

	var req UpdateIssueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := autoscope.IssueUpdate{
		Description: req.Description,
		Suggestion:  req.Suggestion,
		Cost:        req.Cost,
		Images:      req.Images,
	}
	if req.Type != nil {
		t := autoscope.IssueType(*req.Type)
		upd.Type = &t
	}
	if req.Severity != nil {
		sev := autoscope.Severity(*req.Severity)
		upd.Severity = &sev
	}

	issue, err := s.inspectionService.UpdateIssue(pointID, issueID, upd)
	if err != nil {
		return err
	}
	return RespondOK(c, issue)
}

func (s *Server) handleRemoveIssue(c echo.Context) error {
	pointID, err := requireParam(c, "id")
	if err != nil {
		return err
	}
	issueID, err := requireParam(c, "issueId")
	if err != nil {
		return err
	}

	if err := s.inspectionService.RemoveIssue(pointID, issueID); err != nil {
		return err
	}

	s.log(c).Info("issue removed",
		slog.String("point_id", pointID),
		slog.String("issue_id", issueID),
	)
	return RespondNoContent(c)
}
