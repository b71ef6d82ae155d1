// Package report assembles vehicle condition reports from committed
// store state.
package report

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/store"
)

// Report is a point-in-time view of the inspection, suitable for JSON
// responses and text rendering.
type Report struct {
	GeneratedAt    time.Time                     `json:"generatedAt"`
	VehicleInfo    autoscope.VehicleInfo         `json:"vehicleInfo"`
	Summary        autoscope.Summary             `json:"summary"`
	Issues         []autoscope.IssueRecord       `json:"issues"`
	PointsByStatus map[autoscope.PointStatus]int `json:"pointsByStatus"`
}

// Builder builds reports and caches them keyed by store generation, so
// repeated requests against unchanged data reuse the same report.
type Builder struct {
	store  *store.Store
	cache  *gocache.Cache
	logger *slog.Logger
}

func NewBuilder(st *store.Store, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		store:  st,
		cache:  gocache.New(5*time.Minute, 10*time.Minute),
		logger: logger,
	}
}

// Build returns the report for the current store generation.
func (b *Builder) Build() *Report {
	key := strconv.FormatUint(b.store.Generation(), 10)
	if cached, ok := b.cache.Get(key); ok {
		return cached.(*Report)
	}

	state := b.store.GetState()
	report := &Report{
		GeneratedAt:    time.Now(),
		VehicleInfo:    state.Data.VehicleInfo,
		Summary:        b.store.Summary(),
		Issues:         b.store.AllIssues(),
		PointsByStatus: countByStatus(state.Data.Points),
	}

	b.cache.Set(key, report, gocache.DefaultExpiration)
	b.logger.Debug("report built",
		slog.String("generation", key),
		slog.Int("issues", len(report.Issues)),
	)
	return report
}

// FilterIssues returns the report's issues restricted by severity and
// category. Zero values match everything.
func (r *Report) FilterIssues(severity autoscope.Severity, category autoscope.PointCategory) []autoscope.IssueRecord {
	filtered := []autoscope.IssueRecord{}
	for _, record := range r.Issues {
		if severity != "" && record.Severity != severity {
			continue
		}
		if category != "" && record.PointCategory != category {
			continue
		}
		filtered = append(filtered, record)
	}
	return filtered
}

// RenderText formats the report as plain text for email delivery.
func (r *Report) RenderText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Vehicle Inspection Report\n")
	fmt.Fprintf(&b, "=========================\n\n")
	fmt.Fprintf(&b, "Vehicle:    %s\n", r.VehicleInfo.Model)
	if r.VehicleInfo.VIN != "" {
		fmt.Fprintf(&b, "VIN:        %s\n", r.VehicleInfo.VIN)
	}
	if r.VehicleInfo.Mileage > 0 {
		fmt.Fprintf(&b, "Mileage:    %d km\n", r.VehicleInfo.Mileage)
	}
	if r.VehicleInfo.Inspector != "" {
		fmt.Fprintf(&b, "Inspector:  %s\n", r.VehicleInfo.Inspector)
	}
	fmt.Fprintf(&b, "Date:       %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "Score: %d/100 (%s)\n", r.Summary.Score, r.Summary.Grade.Label)
	fmt.Fprintf(&b, "Issues: %d, estimated repair cost: %d\n\n", r.Summary.TotalIssues, r.Summary.TotalCost)

	if len(r.Issues) == 0 {
		fmt.Fprintf(&b, "No issues recorded.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Findings\n--------\n")
	for i, record := range r.Issues {
		fmt.Fprintf(&b, "%d. [%s] %s: %s", i+1, record.Severity, record.PointName, record.Description)
		if record.Cost > 0 {
			fmt.Fprintf(&b, " (est. %d)", record.Cost)
		}
		b.WriteByte('\n')
		if record.Suggestion != "" {
			fmt.Fprintf(&b, "   Suggested: %s\n", record.Suggestion)
		}
	}
	return b.String()
}

func countByStatus(points map[string]*autoscope.InspectionPoint) map[autoscope.PointStatus]int {
	counts := map[autoscope.PointStatus]int{}
	for _, point := range points {
		counts[point.Status]++
	}
	return counts
}
