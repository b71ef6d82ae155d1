package http

import (
	"github.com/labstack/echo/v4"

	autoscope "github.com/dukerupert/autoscope"
)

// FlowResponse pairs the flow state with the point for the current step.
type FlowResponse struct {
	Flow         autoscope.FlowState        `json:"flow"`
	CurrentPoint *autoscope.InspectionPoint `json:"currentPoint,omitempty"`
}

func (s *Server) flowResponse() FlowResponse {
	return FlowResponse{
		Flow:         s.inspectionService.FlowState(),
		CurrentPoint: s.inspectionService.CurrentFlowPoint(),
	}
}

func (s *Server) handleGetFlow(c echo.Context) error {
	return RespondOK(c, s.flowResponse())
}

func (s *Server) handleFlowStart(c echo.Context) error {
	s.inspectionService.StartFlow()
	return RespondOK(c, s.flowResponse())
}

func (s *Server) handleFlowNext(c echo.Context) error {
	s.inspectionService.NextStep()
	return RespondOK(c, s.flowResponse())
}

func (s *Server) handleFlowPrev(c echo.Context) error {
	s.inspectionService.PrevStep()
	return RespondOK(c, s.flowResponse())
}

// FlowStepRequest addresses a flow step by number.
type FlowStepRequest struct {
	Step int `json:"step" validate:"required,gte=1"`
}

func (s *Server) handleFlowJump(c echo.Context) error {
	var req FlowStepRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	s.inspectionService.JumpTo(req.Step)
	return RespondOK(c, s.flowResponse())
}

func (s *Server) handleFlowCompleteStep(c echo.Context) error {
	var req FlowStepRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := s.inspectionService.CompleteStep(req.Step); err != nil {
		return err
	}
	return RespondOK(c, s.flowResponse())
}

func (s *Server) handleFlowReset(c echo.Context) error {
	s.inspectionService.ResetFlow()
	return RespondOK(c, s.flowResponse())
}
