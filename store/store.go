// Package store is the single source of truth for UI, flow, filter and
// inspection data state. All writes go through Dispatch; reducers are
// pure and return fresh values for changed slices while untouched slices
// keep their identity, so observers can use cheap reference checks to
// skip redundant work.
package store

import (
	"log/slog"
	"sort"
	"sync"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
)

// State is the full state tree. Slices are value types; the only shared
// reference is the points map, which reducers replace wholesale and never
// mutate in place.
type State struct {
	UI     UIState
	Flow   autoscope.FlowState
	Filter FilterState
	Data   DataState
}

// UIState holds presentation state owned by the (external) UI layer.
type UIState struct {
	MerchantMode    bool
	CurrentView     string
	SelectedPointID string
	IsLoading       bool
	LoadingText     string
	LoadingProgress int
	ActiveModal     string
	InspectionType  autoscope.PointCategory
}

// FilterState restricts issue listings. Zero values mean no filter.
type FilterState struct {
	Severity autoscope.Severity
	Category autoscope.PointCategory
}

// DataState holds the inspection data proper.
type DataState struct {
	VehicleInfo autoscope.VehicleInfo
	Points      map[string]*autoscope.InspectionPoint
}

// Listener observes committed state transitions. Listeners run
// synchronously, in registration order, after the new state is committed.
type Listener func(state, prev State, action Action)

type registration struct {
	id int
	fn Listener
}

// Store applies actions and caches derived aggregates. It is safe for
// concurrent use; dispatches are serialized so back-to-back mutations are
// strictly ordered.
type Store struct {
	mu         sync.Mutex
	state      State
	generation uint64

	listeners  []registration
	nextListID int

	// Generation-tagged computed cache. A computed value is valid only
	// for the generation it was built from; every dispatch bumps the
	// generation, which invalidates both entries at once.
	issuesGen  uint64
	allIssues  []autoscope.IssueRecord
	summaryGen uint64
	summary    autoscope.Summary

	bus    *eventbus.Bus
	logger *slog.Logger
}

// New creates a store with the initial state. The bus may be nil; flow
// events are then not re-published.
func New(bus *eventbus.Bus, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		state: State{
			UI: UIState{
				CurrentView:    "inspection",
				IsLoading:      true,
				InspectionType: autoscope.CategoryPaint,
			},
			Flow: autoscope.FlowState{
				TotalSteps:     autoscope.TotalSteps(),
				CompletedSteps: map[int]bool{},
			},
			Data: DataState{
				Points: map[string]*autoscope.InspectionPoint{},
			},
		},
		// Generation starts at 1 so zero-valued cache tags are stale.
		generation: 1,
		bus:        bus,
		logger:     logger,
	}
}

// GetState returns the current state. The tree is treated as immutable;
// callers must not modify the points map or the points it holds.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation returns a counter that increases on every dispatch. Derived
// values tagged with an older generation are stale.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Subscribe registers a listener and returns an unsubscribe func.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextListID++
	id := s.nextListID
	s.listeners = append(s.listeners, registration{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, reg := range s.listeners {
			if reg.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies an action and returns it. Dispatch always succeeds:
// reducers ignore actions that do not concern their slice. After the new
// state is committed, flow actions are re-published on the event bus and
// listeners are notified with panic isolation.
func (s *Store) Dispatch(action Action) Action {
	s.mu.Lock()
	prev := s.state
	s.state = State{
		UI:     reduceUI(prev.UI, action),
		Flow:   reduceFlow(prev.Flow, action),
		Filter: reduceFilter(prev.Filter, action),
		Data:   reduceData(prev.Data, action),
	}
	s.generation++
	state := s.state
	listeners := make([]registration, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	s.publishFlowEvent(action, state)

	for _, reg := range listeners {
		s.notify(reg.fn, state, prev, action)
	}
	return action
}

func (s *Store) notify(fn Listener, state, prev State, action Action) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store listener panicked", slog.Any("panic", r))
		}
	}()
	fn(state, prev, action)
}

// publishFlowEvent mirrors flow transitions onto the event bus. These are
// notifications only; observers read state back from the store.
func (s *Store) publishFlowEvent(action Action, state State) {
	if s.bus == nil {
		return
	}
	switch action.(type) {
	case FlowStart:
		s.bus.Publish(autoscope.EventFlowStarted)
	case FlowNext, FlowPrev, FlowJump:
		s.bus.Publish(autoscope.EventFlowStepChanged, state.Flow.CurrentStep)
	case FlowReset:
		s.bus.Publish(autoscope.EventFlowCompleted)
	}
}

func reduceUI(ui UIState, action Action) UIState {
	switch a := action.(type) {
	case SetMerchantMode:
		ui.MerchantMode = a.Enabled
	case SelectPoint:
		ui.SelectedPointID = a.PointID
	case SetLoading:
		ui.IsLoading = a.Loading
		if a.Text != "" {
			ui.LoadingText = a.Text
		}
		ui.LoadingProgress = a.Progress
	case OpenModal:
		ui.ActiveModal = a.ID
	case CloseModal:
		ui.ActiveModal = ""
	case SetCameraView:
		ui.CurrentView = a.View
	case SetInspectionType:
		ui.InspectionType = a.Category
	}
	return ui
}

func reduceFlow(flow autoscope.FlowState, action Action) autoscope.FlowState {
	switch a := action.(type) {
	case FlowStart:
		flow.IsActive = true
		flow.CurrentStep = 1
		flow.CompletedSteps = map[int]bool{}
	case FlowNext:
		flow.CurrentStep = clampStep(flow.CurrentStep+1, flow.TotalSteps)
	case FlowPrev:
		flow.CurrentStep = clampStep(flow.CurrentStep-1, flow.TotalSteps)
	case FlowJump:
		flow.CurrentStep = clampStep(a.Step, flow.TotalSteps)
	case FlowCompleteStep:
		completed := make(map[int]bool, len(flow.CompletedSteps)+1)
		for step := range flow.CompletedSteps {
			completed[step] = true
		}
		completed[a.Step] = true
		flow.CompletedSteps = completed
	case FlowReset:
		flow.IsActive = false
		flow.CurrentStep = 0
		flow.CompletedSteps = map[int]bool{}
	}
	return flow
}

func clampStep(step, total int) int {
	if step < 1 {
		return 1
	}
	if step > total {
		return total
	}
	return step
}

func reduceFilter(filter FilterState, action Action) FilterState {
	switch a := action.(type) {
	case SetSeverityFilter:
		filter.Severity = a.Severity
	case SetCategoryFilter:
		filter.Category = a.Category
	case ClearFilter:
		filter = FilterState{}
	}
	return filter
}

func reduceData(data DataState, action Action) DataState {
	switch a := action.(type) {
	case SetPoints:
		data.Points = a.Points
	case SetVehicleInfo:
		data.VehicleInfo = a.Info
	case ResetData:
		data = DataState{Points: map[string]*autoscope.InspectionPoint{}}
	}
	return data
}

// AllIssues returns every issue across all points, flattened with point
// identity, ordered by inspection order then discovery order. Computed
// lazily and cached per generation.
func (s *Store) AllIssues() []autoscope.IssueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.issuesGen == s.generation {
		return s.allIssues
	}
	s.allIssues = computeAllIssues(s.state.Data.Points)
	s.issuesGen = s.generation
	return s.allIssues
}

// Summary returns the vehicle-level aggregate. Computed lazily and cached
// per generation.
func (s *Store) Summary() autoscope.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summaryGen == s.generation {
		return s.summary
	}
	s.summary = autoscope.Summarize(s.state.Data.Points)
	s.summaryGen = s.generation
	return s.summary
}

func computeAllIssues(points map[string]*autoscope.InspectionPoint) []autoscope.IssueRecord {
	ordered := make([]*autoscope.InspectionPoint, 0, len(points))
	for _, point := range points {
		ordered = append(ordered, point)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].InspectionOrder < ordered[j].InspectionOrder
	})

	records := []autoscope.IssueRecord{}
	for _, point := range ordered {
		for _, issue := range point.Issues {
			records = append(records, autoscope.IssueRecord{
				Issue:         issue,
				PointID:       point.ID,
				PointName:     point.Name,
				PointCategory: point.Category,
				PointLocation: point.Location,
			})
		}
	}
	return records
}
