package autoscope

// InspectionService owns the inspection-point catalog and is the only
// writer of point and issue values. All mutations validate first, commit
// through the store, then publish the matching event. The core is
// synchronous and in-memory, so these methods take no context; persistence
// (SnapshotStore) is where deadlines live.
type InspectionService interface {
	// InitDefaultData seeds the full point map from the catalog and resets
	// the vehicle record to its defaults.
	InitDefaultData()

	// Point retrieves a point by ID. Returns ENOTFOUND if unknown.
	Point(id string) (*InspectionPoint, error)

	// AllPoints returns the full point map. The result is shared state and
	// must not be mutated.
	AllPoints() map[string]*InspectionPoint

	// PointsByCategory returns points of one category, in catalog order.
	PointsByCategory(category PointCategory) []*InspectionPoint

	// PointsByOrder returns all points sorted by inspection order.
	PointsByOrder() []*InspectionPoint

	// CurrentFlowPoint resolves the point for the active flow step, or nil
	// when the flow is inactive.
	CurrentFlowPoint() *InspectionPoint

	// FlowState returns the guided flow state.
	FlowState() FlowState

	// StartFlow activates the guided flow at step 1 with no completed
	// steps.
	StartFlow()

	// NextStep advances one step, saturating at the last step.
	NextStep()

	// PrevStep moves back one step, saturating at step 1.
	PrevStep()

	// JumpTo moves to an arbitrary step, clamped to the valid range.
	JumpTo(step int)

	// CompleteStep marks a step as completed. Idempotent. Returns
	// EINVALID when the step is out of range.
	CompleteStep(step int) error

	// ResetFlow deactivates the flow and clears progress.
	ResetFlow()

	// AddIssue records a new issue on a point. Returns EINVALID when the
	// input is malformed (missing point/type/severity, or blank description
	// with a non-normal severity), ENOTFOUND for an unknown point.
	// A TypeNormal input clears all issues on the point instead of
	// recording one and returns (nil, nil).
	AddIssue(input IssueInput) (*Issue, error)

	// UpdateIssue merges updates into an existing issue and recomputes the
	// point status. Returns ENOTFOUND if the point or issue is unknown.
	UpdateIssue(pointID, issueID string, upd IssueUpdate) (*Issue, error)

	// RemoveIssue deletes one issue and recomputes the point status.
	// Returns ENOTFOUND if the point or issue is unknown.
	RemoveIssue(pointID, issueID string) error

	// MarkPointNormal clears every issue on the point, forces status good
	// and, for structure points, judgment normal.
	MarkPointNormal(pointID string) error

	// SetStructureJudgment records the inspector's judgment on a structure
	// point. Returns EINVALID for paint points or unknown judgments.
	SetStructureJudgment(pointID string, judgment StructureJudgment) error

	// VehicleInfo returns the current vehicle record.
	VehicleInfo() VehicleInfo

	// UpdateVehicleInfo merges the update into the vehicle record.
	UpdateVehicleInfo(upd VehicleInfoUpdate) VehicleInfo

	// Export produces a point-in-time snapshot for persistence or report
	// generation. The result is a deep copy and safe to hold.
	Export() *Snapshot

	// Import merges a snapshot against the catalog, preserving
	// catalog-owned identity fields. Returns EINVALID for snapshots
	// without points.
	Import(snap *Snapshot) error

	// Reset restores the catalog defaults and publishes data:reset.
	Reset()
}
