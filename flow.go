package autoscope

// FlowState tracks the guided walk through the ordered inspection points.
// CurrentStep is 0 while inactive and clamped to [1, TotalSteps] while
// active.
type FlowState struct {
	IsActive       bool         `json:"isActive"`
	CurrentStep    int          `json:"currentStep"`
	TotalSteps     int          `json:"totalSteps"`
	CompletedSteps map[int]bool `json:"completedSteps"`
}
