package mock

import (
	autoscope "github.com/dukerupert/autoscope"
)

// Compile-time interface check
var _ autoscope.InspectionService = (*InspectionService)(nil)

// InspectionService is a mock implementation of autoscope.InspectionService.
type InspectionService struct {
	InitDefaultDataFn      func()
	PointFn                func(id string) (*autoscope.InspectionPoint, error)
	AllPointsFn            func() map[string]*autoscope.InspectionPoint
	PointsByCategoryFn     func(category autoscope.PointCategory) []*autoscope.InspectionPoint
	PointsByOrderFn        func() []*autoscope.InspectionPoint
	CurrentFlowPointFn     func() *autoscope.InspectionPoint
	FlowStateFn            func() autoscope.FlowState
	StartFlowFn            func()
	NextStepFn             func()
	PrevStepFn             func()
	JumpToFn               func(step int)
	CompleteStepFn         func(step int) error
	ResetFlowFn            func()
	AddIssueFn             func(input autoscope.IssueInput) (*autoscope.Issue, error)
	UpdateIssueFn          func(pointID, issueID string, upd autoscope.IssueUpdate) (*autoscope.Issue, error)
	RemoveIssueFn          func(pointID, issueID string) error
	MarkPointNormalFn      func(pointID string) error
	SetStructureJudgmentFn func(pointID string, judgment autoscope.StructureJudgment) error
	VehicleInfoFn          func() autoscope.VehicleInfo
	UpdateVehicleInfoFn    func(upd autoscope.VehicleInfoUpdate) autoscope.VehicleInfo
	ExportFn               func() *autoscope.Snapshot
	ImportFn               func(snapshot *autoscope.Snapshot) error
	ResetFn                func()
}

func (s *InspectionService) InitDefaultData() {
	if s.InitDefaultDataFn != nil {
		s.InitDefaultDataFn()
	}
}

func (s *InspectionService) Point(id string) (*autoscope.InspectionPoint, error) {
	if s.PointFn != nil {
		return s.PointFn(id)
	}
	return nil, autoscope.NotFound("Inspection point %q not found", id)
}

func (s *InspectionService) AllPoints() map[string]*autoscope.InspectionPoint {
	if s.AllPointsFn != nil {
		return s.AllPointsFn()
	}
	return map[string]*autoscope.InspectionPoint{}
}

func (s *InspectionService) PointsByCategory(category autoscope.PointCategory) []*autoscope.InspectionPoint {
	if s.PointsByCategoryFn != nil {
		return s.PointsByCategoryFn(category)
	}
	return nil
}

func (s *InspectionService) PointsByOrder() []*autoscope.InspectionPoint {
	if s.PointsByOrderFn != nil {
		return s.PointsByOrderFn()
	}
	return nil
}

func (s *InspectionService) CurrentFlowPoint() *autoscope.InspectionPoint {
	if s.CurrentFlowPointFn != nil {
		return s.CurrentFlowPointFn()
	}
	return nil
}

func (s *InspectionService) FlowState() autoscope.FlowState {
	if s.FlowStateFn != nil {
		return s.FlowStateFn()
	}
	return autoscope.FlowState{}
}

func (s *InspectionService) StartFlow() {
	if s.StartFlowFn != nil {
		s.StartFlowFn()
	}
}

func (s *InspectionService) NextStep() {
	if s.NextStepFn != nil {
		s.NextStepFn()
	}
}

func (s *InspectionService) PrevStep() {
	if s.PrevStepFn != nil {
		s.PrevStepFn()
	}
}

func (s *InspectionService) JumpTo(step int) {
	if s.JumpToFn != nil {
		s.JumpToFn(step)
	}
}

func (s *InspectionService) CompleteStep(step int) error {
	if s.CompleteStepFn != nil {
		return s.CompleteStepFn(step)
	}
	return autoscope.Internal("CompleteStepFn not set")
}

func (s *InspectionService) ResetFlow() {
	if s.ResetFlowFn != nil {
		s.ResetFlowFn()
	}
}

func (s *InspectionService) AddIssue(input autoscope.IssueInput) (*autoscope.Issue, error) {
	if s.AddIssueFn != nil {
		return s.AddIssueFn(input)
	}
	return nil, autoscope.Internal("AddIssueFn not set")
}

func (s *InspectionService) UpdateIssue(pointID, issueID string, upd autoscope.IssueUpdate) (*autoscope.Issue, error) {
	if s.UpdateIssueFn != nil {
		return s.UpdateIssueFn(pointID, issueID, upd)
	}
	return nil, autoscope.Internal("UpdateIssueFn not set")
}

func (s *InspectionService) RemoveIssue(pointID, issueID string) error {
	if s.RemoveIssueFn != nil {
		return s.RemoveIssueFn(pointID, issueID)
	}
	return autoscope.Internal("RemoveIssueFn not set")
}

func (s *InspectionService) MarkPointNormal(pointID string) error {
	if s.MarkPointNormalFn != nil {
		return s.MarkPointNormalFn(pointID)
	}
	return autoscope.Internal("MarkPointNormalFn not set")
}

func (s *InspectionService) SetStructureJudgment(pointID string, judgment autoscope.StructureJudgment) error {
	if s.SetStructureJudgmentFn != nil {
		return s.SetStructureJudgmentFn(pointID, judgment)
	}
	return autoscope.Internal("SetStructureJudgmentFn not set")
}

func (s *InspectionService) VehicleInfo() autoscope.VehicleInfo {
	if s.VehicleInfoFn != nil {
		return s.VehicleInfoFn()
	}
	return autoscope.VehicleInfo{}
}

func (s *InspectionService) UpdateVehicleInfo(upd autoscope.VehicleInfoUpdate) autoscope.VehicleInfo {
	if s.UpdateVehicleInfoFn != nil {
		return s.UpdateVehicleInfoFn(upd)
	}
	return autoscope.VehicleInfo{}
}

func (s *InspectionService) Export() *autoscope.Snapshot {
	if s.ExportFn != nil {
		return s.ExportFn()
	}
	return &autoscope.Snapshot{Version: autoscope.SnapshotVersion}
}

func (s *InspectionService) Import(snapshot *autoscope.Snapshot) error {
	if s.ImportFn != nil {
		return s.ImportFn(snapshot)
	}
	return nil
}

func (s *InspectionService) Reset() {
	if s.ResetFn != nil {
		s.ResetFn()
	}
}
