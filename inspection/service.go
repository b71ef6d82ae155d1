// Package inspection implements the domain service over the store: it is
// the only writer that constructs point and issue values, and every write
// is committed through a single store dispatch.
package inspection

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
	"github.com/dukerupert/autoscope/store"
)

// Compile-time interface check
var _ autoscope.InspectionService = (*Service)(nil)

// Service validates and applies inspection mutations.
type Service struct {
	store  *store.Store
	bus    *eventbus.Bus
	logger *slog.Logger
}

// NewService creates the domain service. Call InitDefaultData before
// serving traffic; the service does not seed implicitly so tests can
// control the starting state.
func NewService(st *store.Store, bus *eventbus.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, bus: bus, logger: logger}
}

// InitDefaultData seeds the point map from the catalog and resets the
// vehicle record.
func (s *Service) InitDefaultData() {
	points := make(map[string]*autoscope.InspectionPoint, len(autoscope.Catalog()))
	for _, cfg := range autoscope.Catalog() {
		points[cfg.ID] = autoscope.NewPointFromConfig(cfg)
	}
	s.store.Dispatch(store.SetPoints{Points: points})

	info := autoscope.DefaultVehicleInfo()
	info.InspectionDate = time.Now().Format("2006-01-02")
	s.store.Dispatch(store.SetVehicleInfo{Info: info})
}

// Point retrieves a point by ID.
func (s *Service) Point(id string) (*autoscope.InspectionPoint, error) {
	point, ok := s.store.GetState().Data.Points[id]
	if !ok {
		return nil, autoscope.NotFound("Inspection point %q not found", id)
	}
	return point, nil
}

// AllPoints returns the committed point map. Treat as read-only.
func (s *Service) AllPoints() map[string]*autoscope.InspectionPoint {
	return s.store.GetState().Data.Points
}

// PointsByCategory returns points of one category in inspection order.
func (s *Service) PointsByCategory(category autoscope.PointCategory) []*autoscope.InspectionPoint {
	var points []*autoscope.InspectionPoint
	for _, point := range s.store.GetState().Data.Points {
		if point.Category == category {
			points = append(points, point)
		}
	}
	sortByOrder(points)
	return points
}

// PointsByOrder returns all points sorted by inspection order.
func (s *Service) PointsByOrder() []*autoscope.InspectionPoint {
	state := s.store.GetState()
	points := make([]*autoscope.InspectionPoint, 0, len(state.Data.Points))
	for _, point := range state.Data.Points {
		points = append(points, point)
	}
	sortByOrder(points)
	return points
}

// CurrentFlowPoint resolves the point for the active flow step. Returns
// nil while the flow is inactive.
func (s *Service) CurrentFlowPoint() *autoscope.InspectionPoint {
	state := s.store.GetState()
	if !state.Flow.IsActive || state.Flow.CurrentStep == 0 {
		return nil
	}
	points := s.PointsByOrder()
	idx := state.Flow.CurrentStep - 1
	if idx < 0 || idx >= len(points) {
		return nil
	}
	return points[idx]
}

// AddIssue validates and records a new issue, recomputes the point status
// and publishes issue:added. A TypeNormal input clears the point instead.
func (s *Service) AddIssue(input autoscope.IssueInput) (*autoscope.Issue, error) {
	if input.PointID == "" || input.Type == "" || input.Severity == "" {
		return nil, autoscope.Invalid("pointId, type and severity are required")
	}
	if input.Severity != autoscope.SeverityNormal && strings.TrimSpace(input.Description) == "" {
		return nil, autoscope.Invalid("Description is required for severity %q", input.Severity)
	}

	point, err := s.Point(input.PointID)
	if err != nil {
		return nil, err
	}

	// The "normal" type is a control signal: clear everything on the point.
	if input.Type.IsNormal() {
		return nil, s.MarkPointNormal(input.PointID)
	}

	// Invalid images are dropped with a warning; the issue itself still
	// commits with the valid subset.
	images, warnings := ValidateImages(input.Images)
	s.logImageWarnings(input.PointID, warnings)

	cost := input.Cost
	if cost < 0 {
		cost = 0
	}
	if input.Severity == autoscope.SeverityNormal {
		cost = 0
	}

	issue := autoscope.Issue{
		ID:          uuid.New().String(),
		Type:        input.Type,
		Severity:    input.Severity,
		Description: strings.TrimSpace(input.Description),
		Suggestion:  strings.TrimSpace(input.Suggestion),
		Cost:        cost,
		Images:      images,
		CreatedAt:   time.Now(),
	}

	updated := point.Clone()
	updated.Issues = append(updated.Issues, issue)
	updated.Status = autoscope.PointStatusFor(updated.Issues)
	s.commitPoint(updated)

	s.publish(autoscope.EventIssueAdded, issue, updated)
	s.logger.Info("issue added",
		slog.String("point_id", updated.ID),
		slog.String("issue_id", issue.ID),
		slog.String("severity", string(issue.Severity)),
	)
	return &issue, nil
}

// UpdateIssue merges updates into an existing issue and publishes
// issue:updated.
func (s *Service) UpdateIssue(pointID, issueID string, upd autoscope.IssueUpdate) (*autoscope.Issue, error) {
	point, err := s.Point(pointID)
	if err != nil {
		return nil, err
	}
	idx := point.FindIssue(issueID)
	if idx < 0 {
		return nil, autoscope.NotFound("Issue %q not found on point %q", issueID, pointID)
	}

	updated := point.Clone()
	issue := &updated.Issues[idx]
	if upd.Type != nil {
		issue.Type = *upd.Type
	}
	if upd.Severity != nil {
		issue.Severity = *upd.Severity
	}
	if upd.Description != nil {
		issue.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Suggestion != nil {
		issue.Suggestion = strings.TrimSpace(*upd.Suggestion)
	}
	if upd.Cost != nil {
		issue.Cost = *upd.Cost
		if issue.Cost < 0 {
			issue.Cost = 0
		}
	}
	if upd.Images != nil {
		images, warnings := ValidateImages(*upd.Images)
		s.logImageWarnings(pointID, warnings)
		issue.Images = images
	}
	issue.UpdatedAt = time.Now()

	updated.Status = autoscope.PointStatusFor(updated.Issues)
	s.commitPoint(updated)

	s.publish(autoscope.EventIssueUpdated, *issue, updated)
	return issue, nil
}

// RemoveIssue deletes one issue and publishes issue:deleted.
func (s *Service) RemoveIssue(pointID, issueID string) error {
	point, err := s.Point(pointID)
	if err != nil {
		return err
	}
	idx := point.FindIssue(issueID)
	if idx < 0 {
		return autoscope.NotFound("Issue %q not found on point %q", issueID, pointID)
	}

	updated := point.Clone()
	removed := updated.Issues[idx]
	updated.Issues = append(updated.Issues[:idx], updated.Issues[idx+1:]...)
	updated.Status = autoscope.PointStatusFor(updated.Issues)
	s.commitPoint(updated)

	s.publish(autoscope.EventIssueDeleted, removed, updated)
	return nil
}

// MarkPointNormal clears the point back to a clean state and publishes
// issue:deleted with a normal-type marker payload.
func (s *Service) MarkPointNormal(pointID string) error {
	point, err := s.Point(pointID)
	if err != nil {
		return err
	}

	updated := point.Clone()
	updated.Issues = []autoscope.Issue{}
	updated.Status = autoscope.StatusGood
	if updated.Category == autoscope.CategoryStructure {
		updated.Judgment = autoscope.JudgmentNormal
	}
	s.commitPoint(updated)

	s.publish(autoscope.EventIssueDeleted, autoscope.Issue{Type: autoscope.TypeNormal}, updated)
	return nil
}

// SetStructureJudgment records the inspector's call on a structure point
// and publishes point:status:changed.
func (s *Service) SetStructureJudgment(pointID string, judgment autoscope.StructureJudgment) error {
	point, err := s.Point(pointID)
	if err != nil {
		return err
	}
	if point.Category != autoscope.CategoryStructure {
		return autoscope.Invalid("Point %q is not a structure point", pointID)
	}
	if !judgment.IsValid() {
		return autoscope.Invalid("Unknown judgment %q", judgment)
	}

	updated := point.Clone()
	updated.Judgment = judgment
	updated.Status = judgment.Status()
	s.commitPoint(updated)

	s.publish(autoscope.EventPointStatusChanged, updated)
	return nil
}

// VehicleInfo returns the current vehicle record.
func (s *Service) VehicleInfo() autoscope.VehicleInfo {
	return s.store.GetState().Data.VehicleInfo
}

// UpdateVehicleInfo merges the update and publishes data:saved.
func (s *Service) UpdateVehicleInfo(upd autoscope.VehicleInfoUpdate) autoscope.VehicleInfo {
	info := upd.Apply(s.store.GetState().Data.VehicleInfo)
	s.store.Dispatch(store.SetVehicleInfo{Info: info})
	s.publish(autoscope.EventDataSaved)
	return info
}

// commitPoint replaces one point in a fresh copy of the point map. The
// previous map is never mutated.
func (s *Service) commitPoint(point *autoscope.InspectionPoint) {
	current := s.store.GetState().Data.Points
	points := make(map[string]*autoscope.InspectionPoint, len(current))
	for id, p := range current {
		points[id] = p
	}
	points[point.ID] = point
	s.store.Dispatch(store.SetPoints{Points: points})
}

func (s *Service) publish(event string, args ...any) {
	if s.bus != nil {
		s.bus.Publish(event, args...)
	}
}

func (s *Service) logImageWarnings(pointID string, warnings []string) {
	for _, warning := range warnings {
		s.logger.Warn("image rejected",
			slog.String("point_id", pointID),
			slog.String("reason", warning),
		)
	}
}

func sortByOrder(points []*autoscope.InspectionPoint) {
	sort.Slice(points, func(i, j int) bool {
		return points[i].InspectionOrder < points[j].InspectionOrder
	})
}
