package autoscope

// EventBus topics published by the core. Observers (UI, 3D viewer,
// exporters) subscribe to these; none of them is a source of truth — state
// is always read back from the store.
const (
	EventIssueAdded         = "issue:added"
	EventIssueUpdated       = "issue:updated"
	EventIssueDeleted       = "issue:deleted"
	EventPointStatusChanged = "point:status:changed"

	EventFlowStarted     = "flow:started"
	EventFlowStepChanged = "flow:step:changed"
	EventFlowCompleted   = "flow:completed"

	EventDataLoaded = "data:loaded"
	EventDataSaved  = "data:saved"
	EventDataReset  = "data:reset"
)
