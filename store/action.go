package store

import autoscope "github.com/dukerupert/autoscope"

// Action is the closed set of state transitions the store accepts. Each
// slice reducer switches over its own action group and passes everything
// else through untouched, so dispatching any Action is always safe and
// never errors.
type Action interface {
	isAction()
}

// UI actions.

// SetMerchantMode toggles the customer-facing presentation mode.
type SetMerchantMode struct{ Enabled bool }

// SelectPoint marks a point as selected in the UI. An empty ID clears the
// selection.
type SelectPoint struct{ PointID string }

// SetLoading updates the loading overlay. Empty text and zero progress
// keep their current values.
type SetLoading struct {
	Loading  bool
	Text     string
	Progress int
}

// OpenModal records the active modal.
type OpenModal struct{ ID string }

// CloseModal clears the active modal.
type CloseModal struct{}

// SetCameraView records the current 3D camera view.
type SetCameraView struct{ View string }

// SetInspectionType filters the UI to one point category. Empty means
// all.
type SetInspectionType struct{ Category autoscope.PointCategory }

// Flow actions.

// FlowStart activates the guided flow at step 1 with an empty completed
// set.
type FlowStart struct{}

// FlowNext advances one step, saturating at the last step.
type FlowNext struct{}

// FlowPrev moves back one step, saturating at step 1.
type FlowPrev struct{}

// FlowJump moves to an arbitrary step, clamped to the valid range.
type FlowJump struct{ Step int }

// FlowCompleteStep marks a step as completed. Idempotent.
type FlowCompleteStep struct{ Step int }

// FlowReset deactivates the flow and clears progress.
type FlowReset struct{}

// Filter actions.

// SetSeverityFilter restricts issue listings to one severity.
type SetSeverityFilter struct{ Severity autoscope.Severity }

// SetCategoryFilter restricts issue listings to one point category.
type SetCategoryFilter struct{ Category autoscope.PointCategory }

// ClearFilter removes all listing filters.
type ClearFilter struct{}

// Data actions.

// SetPoints replaces the full point map.
type SetPoints struct{ Points map[string]*autoscope.InspectionPoint }

// SetVehicleInfo replaces the vehicle record.
type SetVehicleInfo struct{ Info autoscope.VehicleInfo }

// ResetData clears all inspection data.
type ResetData struct{}

func (SetMerchantMode) isAction()   {}
func (SelectPoint) isAction()       {}
func (SetLoading) isAction()        {}
func (OpenModal) isAction()         {}
func (CloseModal) isAction()        {}
func (SetCameraView) isAction()     {}
func (SetInspectionType) isAction() {}
func (FlowStart) isAction()         {}
func (FlowNext) isAction()          {}
func (FlowPrev) isAction()          {}
func (FlowJump) isAction()          {}
func (FlowCompleteStep) isAction()  {}
func (FlowReset) isAction()         {}
func (SetSeverityFilter) isAction() {}
func (SetCategoryFilter) isAction() {}
func (ClearFilter) isAction()       {}
func (SetPoints) isAction()         {}
func (SetVehicleInfo) isAction()    {}
func (ResetData) isAction()         {}
