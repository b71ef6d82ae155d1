package inspection

import (
	"log/slog"
	"time"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/store"
)

// Export captures the full inspection as a portable snapshot. The point
// map is deep-copied so the snapshot is stable even if the store keeps
// changing.
func (s *Service) Export() *autoscope.Snapshot {
	state := s.store.GetState()

	points := make(map[string]*autoscope.InspectionPoint, len(state.Data.Points))
	for id, point := range state.Data.Points {
		points[id] = point.Clone()
	}

	return &autoscope.Snapshot{
		Version:     autoscope.SnapshotVersion,
		ExportDate:  time.Now(),
		VehicleInfo: state.Data.VehicleInfo,
		Points:      points,
	}
}

// Import replaces the inspection state with a snapshot. Snapshot points
// are merged over the catalog: points the snapshot lacks come back as
// clean defaults, and snapshot entries for unknown IDs are dropped. This
// keeps snapshots from older catalogs loadable.
func (s *Service) Import(snapshot *autoscope.Snapshot) error {
	if snapshot == nil {
		return autoscope.Invalid("Snapshot is required")
	}
	if snapshot.Version == "" {
		return autoscope.Invalid("Snapshot has no version")
	}
	if len(snapshot.Points) == 0 {
		return autoscope.Invalid("Snapshot has no points")
	}

	points := make(map[string]*autoscope.InspectionPoint, len(autoscope.Catalog()))
	var dropped int
	for _, cfg := range autoscope.Catalog() {
		if imported, ok := snapshot.Points[cfg.ID]; ok && imported != nil {
			point := imported.Clone()
			// Catalog identity wins over whatever the snapshot carried.
			point.ID = cfg.ID
			point.Name = cfg.Name
			point.Category = cfg.Category
			point.InspectionOrder = cfg.Order
			if point.Issues == nil {
				point.Issues = []autoscope.Issue{}
			}
			point.Status = statusFor(point)
			points[cfg.ID] = point
		} else {
			points[cfg.ID] = autoscope.NewPointFromConfig(cfg)
		}
	}
	for id := range snapshot.Points {
		if _, ok := points[id]; !ok {
			dropped++
			s.logger.Warn("snapshot point not in catalog, dropped", slog.String("point_id", id))
		}
	}

	s.store.Dispatch(store.SetPoints{Points: points})
	s.store.Dispatch(store.SetVehicleInfo{Info: snapshot.VehicleInfo})

	s.publish(autoscope.EventDataLoaded)
	s.logger.Info("snapshot imported",
		slog.String("version", snapshot.Version),
		slog.Int("points", len(snapshot.Points)),
		slog.Int("dropped", dropped),
	)
	return nil
}

// Reset wipes all inspection data back to defaults and publishes
// data:reset.
func (s *Service) Reset() {
	s.store.Dispatch(store.ResetData{})
	s.store.Dispatch(store.FlowReset{})
	s.InitDefaultData()
	s.publish(autoscope.EventDataReset)
}

// statusFor recomputes a point's status from its own records rather than
// trusting the snapshot field.
func statusFor(point *autoscope.InspectionPoint) autoscope.PointStatus {
	if point.Category == autoscope.CategoryStructure && point.Judgment != "" {
		if len(point.Issues) == 0 {
			return point.Judgment.Status()
		}
	}
	return autoscope.PointStatusFor(point.Issues)
}
