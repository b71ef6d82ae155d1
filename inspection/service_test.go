package inspection

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
	"github.com/dukerupert/autoscope/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) (*Service, *store.Store, *eventbus.Bus) {
	t.Helper()
	bus := eventbus.New(discard())
	st := store.New(bus, discard())
	svc := NewService(st, bus, discard())
	svc.InitDefaultData()
	return svc, st, bus
}

func scratchInput(pointID string) autoscope.IssueInput {
	return autoscope.IssueInput{
		PointID:     pointID,
		Type:        autoscope.TypeScratch,
		Severity:    autoscope.SeverityMinor,
		Description: "Light scratch near the door handle",
		Cost:        200,
	}
}

func TestInitDefaultDataSeedsCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)

	points := svc.AllPoints()
	assert.Len(t, points, 18)
	for _, point := range points {
		assert.Equal(t, autoscope.StatusGood, point.Status)
		assert.Empty(t, point.Issues)
	}

	info := svc.VehicleInfo()
	assert.Equal(t, "BYD Qin Pro DM 2019", info.Model)
	assert.NotEmpty(t, info.InspectionDate)
}

func TestAddIssueRecordsAndRecomputesStatus(t *testing.T) {
	svc, _, bus := newTestService(t)

	var added int
	bus.Subscribe(autoscope.EventIssueAdded, func(args ...any) { added++ })

	issue, err := svc.AddIssue(scratchInput("leftAPillar"))
	require.NoError(t, err)
	require.NotNil(t, issue)
	assert.NotEmpty(t, issue.ID)
	assert.False(t, issue.CreatedAt.IsZero())

	point, err := svc.Point("leftAPillar")
	require.NoError(t, err)
	assert.Len(t, point.Issues, 1)
	assert.Equal(t, autoscope.StatusGood, point.Status, "a single minor issue keeps the point good")
	assert.Equal(t, 1, added)
}

func TestAddIssueSeverityEscalatesStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := scratchInput("leftAPillar")
	input.Severity = autoscope.SeverityModerate
	_, err := svc.AddIssue(input)
	require.NoError(t, err)

	point, _ := svc.Point("leftAPillar")
	assert.Equal(t, autoscope.StatusWarning, point.Status)

	input.Type = autoscope.TypeDent
	input.Severity = autoscope.SeveritySevere
	input.Description = "Deep dent with exposed metal"
	_, err = svc.AddIssue(input)
	require.NoError(t, err)

	point, _ = svc.Point("leftAPillar")
	assert.Len(t, point.Issues, 2)
	assert.Equal(t, autoscope.StatusDanger, point.Status)
}

func TestAddIssueValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.AddIssue(autoscope.IssueInput{Type: autoscope.TypeScratch, Severity: autoscope.SeverityMinor})
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err))

	_, err = svc.AddIssue(autoscope.IssueInput{
		PointID:  "leftAPillar",
		Type:     autoscope.TypeScratch,
		Severity: autoscope.SeverityMinor,
	})
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err), "blank description must be rejected")

	_, err = svc.AddIssue(scratchInput("noSuchPoint"))
	assert.Equal(t, autoscope.ENOTFOUND, autoscope.ErrorCode(err))
}

func TestAddIssueNormalTypeClearsPoint(t *testing.T) {
	svc, _, bus := newTestService(t)

	var deleted int
	bus.Subscribe(autoscope.EventIssueDeleted, func(args ...any) { deleted++ })

	_, err := svc.AddIssue(scratchInput("leftAPillar"))
	require.NoError(t, err)

	issue, err := svc.AddIssue(autoscope.IssueInput{
		PointID:  "leftAPillar",
		Type:     autoscope.TypeNormal,
		Severity: autoscope.SeverityNormal,
	})
	require.NoError(t, err)
	assert.Nil(t, issue, "the normal sentinel records no issue")

	point, _ := svc.Point("leftAPillar")
	assert.Empty(t, point.Issues)
	assert.Equal(t, autoscope.StatusGood, point.Status)
	assert.Equal(t, 1, deleted)

	// Idempotent on an already-clean point.
	issue, err = svc.AddIssue(autoscope.IssueInput{
		PointID:  "leftAPillar",
		Type:     autoscope.TypeNormal,
		Severity: autoscope.SeverityNormal,
	})
	require.NoError(t, err)
	assert.Nil(t, issue)
	point, _ = svc.Point("leftAPillar")
	assert.Empty(t, point.Issues)
}

func TestAddIssueDropsInvalidImages(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := scratchInput("leftAPillar")
	input.Images = []autoscope.Image{
		{ID: "ok", Name: "door.jpg", DataURL: "data:image/jpeg;base64,/9j/4AAQ", Size: 1024},
		{ID: "bad", Name: "notes.txt", DataURL: "data:text/plain;base64,aGVsbG8=", Size: 10},
	}

	issue, err := svc.AddIssue(input)
	require.NoError(t, err, "invalid images are dropped, not fatal")
	require.Len(t, issue.Images, 1)
	assert.Equal(t, "ok", issue.Images[0].ID)
}

func TestUpdateIssue(t *testing.T) {
	svc, _, bus := newTestService(t)

	var updated int
	bus.Subscribe(autoscope.EventIssueUpdated, func(args ...any) { updated++ })

	issue, err := svc.AddIssue(scratchInput("rightBPillar"))
	require.NoError(t, err)

	severity := autoscope.SeveritySevere
	cost := 1500
	got, err := svc.UpdateIssue("rightBPillar", issue.ID, autoscope.IssueUpdate{
		Severity: &severity,
		Cost:     &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, autoscope.SeveritySevere, got.Severity)
	assert.Equal(t, 1500, got.Cost)
	assert.False(t, got.UpdatedAt.IsZero())
	assert.Equal(t, 1, updated)

	point, _ := svc.Point("rightBPillar")
	assert.Equal(t, autoscope.StatusDanger, point.Status)
}

func TestUpdateIssueNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateIssue("leftAPillar", "nope", autoscope.IssueUpdate{})
	assert.Equal(t, autoscope.ENOTFOUND, autoscope.ErrorCode(err))
}

func TestRemoveIssueRestoresStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	input := scratchInput("leftAPillar")
	input.Severity = autoscope.SeveritySevere
	issue, err := svc.AddIssue(input)
	require.NoError(t, err)

	point, _ := svc.Point("leftAPillar")
	require.Equal(t, autoscope.StatusDanger, point.Status)

	require.NoError(t, svc.RemoveIssue("leftAPillar", issue.ID))
	point, _ = svc.Point("leftAPillar")
	assert.Empty(t, point.Issues)
	assert.Equal(t, autoscope.StatusGood, point.Status)
}

func TestSetStructureJudgment(t *testing.T) {
	svc, _, bus := newTestService(t)

	var changed int
	bus.Subscribe(autoscope.EventPointStatusChanged, func(args ...any) { changed++ })

	require.NoError(t, svc.SetStructureJudgment("vehicleSymmetry", autoscope.JudgmentRepaired))
	point, _ := svc.Point("vehicleSymmetry")
	assert.Equal(t, autoscope.JudgmentRepaired, point.Judgment)
	assert.Equal(t, autoscope.StatusDanger, point.Status)
	assert.Equal(t, 1, changed)

	err := svc.SetStructureJudgment("leftAPillar", autoscope.JudgmentAbnormal)
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err), "paint points have no judgment")

	err = svc.SetStructureJudgment("vehicleSymmetry", autoscope.StructureJudgment("fine"))
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err))
}

func TestUpdateVehicleInfoMerges(t *testing.T) {
	svc, _, _ := newTestService(t)

	mileage := 61000
	info := svc.UpdateVehicleInfo(autoscope.VehicleInfoUpdate{Mileage: &mileage})
	assert.Equal(t, 61000, info.Mileage)
	assert.Equal(t, "BYD Qin Pro DM 2019", info.Model, "unset fields keep their value")
}

func TestCurrentFlowPointFollowsSteps(t *testing.T) {
	svc, st, _ := newTestService(t)

	assert.Nil(t, svc.CurrentFlowPoint(), "inactive flow has no current point")

	st.Dispatch(store.FlowStart{})
	first := svc.CurrentFlowPoint()
	require.NotNil(t, first)
	assert.Equal(t, 1, first.InspectionOrder)

	st.Dispatch(store.FlowJump{Step: 4})
	fourth := svc.CurrentFlowPoint()
	require.NotNil(t, fourth)
	assert.Equal(t, 4, fourth.InspectionOrder)
}

func TestFlowOperations(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.False(t, svc.FlowState().IsActive)

	svc.StartFlow()
	flow := svc.FlowState()
	assert.True(t, flow.IsActive)
	assert.Equal(t, 1, flow.CurrentStep)

	svc.NextStep()
	assert.Equal(t, 2, svc.FlowState().CurrentStep)

	svc.PrevStep()
	assert.Equal(t, 1, svc.FlowState().CurrentStep)

	svc.JumpTo(5)
	assert.Equal(t, 5, svc.FlowState().CurrentStep)

	require.NoError(t, svc.CompleteStep(5))
	assert.True(t, svc.FlowState().CompletedSteps[5])

	err := svc.CompleteStep(svc.FlowState().TotalSteps + 1)
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err))
	err = svc.CompleteStep(0)
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(err))

	svc.ResetFlow()
	flow = svc.FlowState()
	assert.False(t, flow.IsActive)
	assert.Empty(t, flow.CompletedSteps)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, _, bus := newTestService(t)

	var loaded int
	bus.Subscribe(autoscope.EventDataLoaded, func(args ...any) { loaded++ })

	_, err := svc.AddIssue(scratchInput("leftAPillar"))
	require.NoError(t, err)
	mileage := 72000
	svc.UpdateVehicleInfo(autoscope.VehicleInfoUpdate{Mileage: &mileage})

	snapshot := svc.Export()
	assert.Equal(t, autoscope.SnapshotVersion, snapshot.Version)
	assert.Len(t, snapshot.Points, 18)

	// Exported points are detached from live state.
	_, err = svc.AddIssue(scratchInput("rightCPillar"))
	require.NoError(t, err)
	assert.Empty(t, snapshot.Points["rightCPillar"].Issues)

	svc.Reset()
	point, _ := svc.Point("leftAPillar")
	require.Empty(t, point.Issues)

	require.NoError(t, svc.Import(snapshot))
	assert.Equal(t, 1, loaded)

	point, _ = svc.Point("leftAPillar")
	assert.Len(t, point.Issues, 1)
	assert.Equal(t, 72000, svc.VehicleInfo().Mileage)
}

func TestImportMergesOverCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)

	snapshot := &autoscope.Snapshot{
		Version:     autoscope.SnapshotVersion,
		VehicleInfo: autoscope.DefaultVehicleInfo(),
		Points: map[string]*autoscope.InspectionPoint{
			// Partial snapshot: one known point with an issue, one unknown.
			"leftAPillar": {
				ID:     "leftAPillar",
				Issues: []autoscope.Issue{{ID: "i1", Type: autoscope.TypeRust, Severity: autoscope.SeveritySevere, Description: "Rust along the seam"}},
			},
			"retiredPoint": {ID: "retiredPoint"},
		},
	}

	require.NoError(t, svc.Import(snapshot))

	points := svc.AllPoints()
	assert.Len(t, points, 18, "unknown snapshot points are dropped")
	assert.NotContains(t, points, "retiredPoint")

	point := points["leftAPillar"]
	assert.Len(t, point.Issues, 1)
	assert.Equal(t, autoscope.StatusDanger, point.Status, "status is recomputed on import")
	assert.Equal(t, "Left A-pillar paint", point.Name, "catalog identity wins")

	// Points missing from the snapshot come back clean.
	assert.Empty(t, points["rightBPillar"].Issues)
}

func TestImportRejectsBadSnapshots(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(svc.Import(nil)))
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(svc.Import(&autoscope.Snapshot{})))
	assert.Equal(t, autoscope.EINVALID, autoscope.ErrorCode(svc.Import(&autoscope.Snapshot{
		Version: autoscope.SnapshotVersion,
	})))
}

func TestResetRestoresDefaults(t *testing.T) {
	svc, st, bus := newTestService(t)

	var resets int
	bus.Subscribe(autoscope.EventDataReset, func(args ...any) { resets++ })

	_, err := svc.AddIssue(scratchInput("leftAPillar"))
	require.NoError(t, err)
	st.Dispatch(store.FlowStart{})

	svc.Reset()

	point, _ := svc.Point("leftAPillar")
	assert.Empty(t, point.Issues)
	assert.False(t, st.GetState().Flow.IsActive)
	assert.Equal(t, "BYD Qin Pro DM 2019", svc.VehicleInfo().Model)
	assert.Equal(t, 1, resets)
}
