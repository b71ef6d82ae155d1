package inspection

import (
	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/store"
)

// FlowState returns the guided flow state.
func (s *Service) FlowState() autoscope.FlowState {
	return s.store.GetState().Flow
}

// StartFlow activates the guided flow at step 1.
func (s *Service) StartFlow() {
	s.store.Dispatch(store.FlowStart{})
	s.logger.Info("inspection flow started")
}

// NextStep advances one step, saturating at the last step.
func (s *Service) NextStep() {
	s.store.Dispatch(store.FlowNext{})
}

// PrevStep moves back one step, saturating at step 1.
func (s *Service) PrevStep() {
	s.store.Dispatch(store.FlowPrev{})
}

// JumpTo moves to an arbitrary step, clamped to the valid range.
func (s *Service) JumpTo(step int) {
	s.store.Dispatch(store.FlowJump{Step: step})
}

// CompleteStep marks a step as completed.
func (s *Service) CompleteStep(step int) error {
	total := s.store.GetState().Flow.TotalSteps
	if step < 1 || step > total {
		return autoscope.Invalid("Step %d is out of range (1-%d)", step, total)
	}
	s.store.Dispatch(store.FlowCompleteStep{Step: step})
	return nil
}

// ResetFlow deactivates the flow and clears progress.
func (s *Service) ResetFlow() {
	s.store.Dispatch(store.FlowReset{})
	s.logger.Info("inspection flow reset")
}
