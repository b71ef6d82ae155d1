package http

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

func (s *Server) handleListPoints(c echo.Context) error {
	if category := c.QueryParam("category"); category != "" {
		cat := autoscope.PointCategory(category)
		if !cat.IsValid() {
			return autoscope.Invalid("Unknown category %q", category)
		}
		return RespondOK(c, s.inspectionService.PointsByCategory(cat))
	}
	return RespondOK(c, s.inspectionService.PointsByOrder())
}

func (s *Server) handleGetPoint(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	point, err := s.inspectionService.Point(id)
	if err != nil {
		return err
	}
	return RespondOK(c, point)
}

func (s *Server) handleMarkPointNormal(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	if err := s.inspectionService.MarkPointNormal(id); err != nil {
		return err
	}

	s.log(c).Info("point marked normal", slog.String("point_id", id))

	point, err := s.inspectionService.Point(id)
	if err != nil {
		return err
	}
	return RespondOK(c, point)
}

// SetJudgmentRequest is the request payload for a structure judgment.
type SetJudgmentRequest struct {
	Judgment string `json:"judgment" validate:"required,oneof=normal abnormal repaired"`
}

func (s *Server) handleSetStructureJudgment(c echo.Context) error {
	id, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	var req SetJudgmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := s.inspectionService.SetStructureJudgment(id, autoscope.StructureJudgment(req.Judgment)); err != nil {
		return err
	}

	s.log(c).Info("structure judgment set",
		slog.String("point_id", id),
		slog.String("judgment", req.Judgment),
	)

	point, err := s.inspectionService.Point(id)
	if err != nil {
		return err
	}
	return RespondOK(c, point)
}
