package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autoscope "github.com/dukerupert/autoscope"
	"github.com/dukerupert/autoscope/eventbus"
	"github.com/dukerupert/autoscope/inspection"
	"github.com/dukerupert/autoscope/mock"
	"github.com/dukerupert/autoscope/report"
	"github.com/dukerupert/autoscope/store"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	*Server
	service   *inspection.Service
	snapshots *mock.SnapshotStore
	emails    *mock.EmailService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	bus := eventbus.New(discard())
	st := store.New(bus, discard())
	svc := inspection.NewService(st, bus, discard())
	svc.InitDefaultData()

	snapshots := &mock.SnapshotStore{}
	emails := &mock.EmailService{}

	server := NewServer(Config{
		Addr:              "127.0.0.1:0",
		Logger:            discard(),
		InspectionService: svc,
		SnapshotStore:     snapshots,
		EmailService:      emails,
		Reports:           report.NewBuilder(st, discard()),
	})
	return &testServer{Server: server, service: svc, snapshots: snapshots, emails: emails}
}

func (ts *testServer) request(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListPoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/points", "")
	require.Equal(t, http.StatusOK, rec.Code)
	points := decode[[]*autoscope.InspectionPoint](t, rec)
	assert.Len(t, points, 18)
	assert.Equal(t, 1, points[0].InspectionOrder)

	rec = ts.request(t, http.MethodGet, "/api/points?category=paint", "")
	require.Equal(t, http.StatusOK, rec.Code)
	paint := decode[[]*autoscope.InspectionPoint](t, rec)
	assert.Len(t, paint, 6)

	rec = ts.request(t, http.MethodGet, "/api/points?category=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/points/leftAPillar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	point := decode[autoscope.InspectionPoint](t, rec)
	assert.Equal(t, "Left A-pillar paint", point.Name)

	rec = ts.request(t, http.MethodGet, "/api/points/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddIssue(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"scratch","severity":"moderate","description":"Deep scratch","cost":500}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	issue := decode[autoscope.Issue](t, rec)
	assert.NotEmpty(t, issue.ID)
	assert.Equal(t, autoscope.SeverityModerate, issue.Severity)

	point, err := ts.service.Point("leftAPillar")
	require.NoError(t, err)
	assert.Equal(t, autoscope.StatusWarning, point.Status)
}

func TestAddIssueValidation(t *testing.T) {
	ts := newTestServer(t)

	// Unknown severity fails request validation.
	rec := ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"scratch","severity":"catastrophic","description":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Blank description is rejected by the domain service.
	rec = ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"scratch","severity":"minor"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/points/nope/issues",
		`{"type":"scratch","severity":"minor","description":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddIssueNormalTypeReturnsClearedPoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"scratch","severity":"minor","description":"Scratch"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"normal","severity":"normal"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	point := decode[autoscope.InspectionPoint](t, rec)
	assert.Empty(t, point.Issues)
	assert.Equal(t, autoscope.StatusGood, point.Status)
}

func TestUpdateAndRemoveIssue(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/points/rightBPillar/issues",
		`{"type":"dent","severity":"minor","description":"Dent"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	issue := decode[autoscope.Issue](t, rec)

	rec = ts.request(t, http.MethodPut, "/api/points/rightBPillar/issues/"+issue.ID,
		`{"severity":"severe","cost":2000}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[autoscope.Issue](t, rec)
	assert.Equal(t, autoscope.SeveritySevere, updated.Severity)
	assert.Equal(t, 2000, updated.Cost)

	rec = ts.request(t, http.MethodDelete, "/api/points/rightBPillar/issues/"+issue.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.request(t, http.MethodDelete, "/api/points/rightBPillar/issues/"+issue.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStructureJudgment(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPut, "/api/points/vehicleSymmetry/judgment",
		`{"judgment":"abnormal"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	point := decode[autoscope.InspectionPoint](t, rec)
	assert.Equal(t, autoscope.JudgmentAbnormal, point.Judgment)
	assert.Equal(t, autoscope.StatusWarning, point.Status)

	rec = ts.request(t, http.MethodPut, "/api/points/vehicleSymmetry/judgment",
		`{"judgment":"fine"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Paint points have no judgment.
	rec = ts.request(t, http.MethodPut, "/api/points/leftAPillar/judgment",
		`{"judgment":"normal"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFlowLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/flow/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	flow := decode[FlowResponse](t, rec)
	assert.True(t, flow.Flow.IsActive)
	assert.Equal(t, 1, flow.Flow.CurrentStep)
	require.NotNil(t, flow.CurrentPoint)
	assert.Equal(t, 1, flow.CurrentPoint.InspectionOrder)

	rec = ts.request(t, http.MethodPost, "/api/flow/next", "")
	flow = decode[FlowResponse](t, rec)
	assert.Equal(t, 2, flow.Flow.CurrentStep)

	rec = ts.request(t, http.MethodPost, "/api/flow/jump", `{"step":7}`)
	flow = decode[FlowResponse](t, rec)
	assert.Equal(t, 7, flow.Flow.CurrentStep)

	rec = ts.request(t, http.MethodPost, "/api/flow/complete", `{"step":7}`)
	flow = decode[FlowResponse](t, rec)
	assert.True(t, flow.Flow.CompletedSteps[7])

	rec = ts.request(t, http.MethodPost, "/api/flow/complete", `{"step":99}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/flow/reset", "")
	flow = decode[FlowResponse](t, rec)
	assert.False(t, flow.Flow.IsActive)
	assert.Nil(t, flow.CurrentPoint)
}

func TestVehicleInfo(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/vehicle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[autoscope.VehicleInfo](t, rec)
	assert.Equal(t, "BYD Qin Pro DM 2019", info.Model)

	rec = ts.request(t, http.MethodPut, "/api/vehicle", `{"mileage":61000,"inspector":"Wang"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	info = decode[autoscope.VehicleInfo](t, rec)
	assert.Equal(t, 61000, info.Mileage)
	assert.Equal(t, "Wang", info.Inspector)
	assert.Equal(t, "BYD Qin Pro DM 2019", info.Model)

	rec = ts.request(t, http.MethodPut, "/api/vehicle", `{"mileage":-5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryAndReport(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"scratch","severity":"severe","description":"Scratch","cost":1500}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[autoscope.Summary](t, rec)
	assert.Equal(t, 1, summary.TotalIssues)
	assert.Equal(t, 1500, summary.TotalCost)

	rec = ts.request(t, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rep := decode[report.Report](t, rec)
	assert.Len(t, rep.Issues, 1)

	rec = ts.request(t, http.MethodGet, "/api/report?format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vehicle Inspection Report")
}

func TestSendReport(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/report/send",
		`{"to":["buyer@example.com"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, ts.emails.LastEmail())
	assert.Equal(t, []string{"buyer@example.com"}, ts.emails.LastEmail().To)
	assert.Contains(t, ts.emails.LastEmail().Subject, "BYD Qin Pro DM 2019")

	rec = ts.request(t, http.MethodPost, "/api/report/send", `{"to":["not-an-email"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotEndpoints(t *testing.T) {
	ts := newTestServer(t)

	saved := map[string]*autoscope.Snapshot{}
	ts.snapshots.SaveFn = func(ctx context.Context, snapshot *autoscope.Snapshot) (string, error) {
		saved["snapshot_1"] = snapshot
		return "snapshot_1", nil
	}
	ts.snapshots.LoadFn = func(ctx context.Context, key string) (*autoscope.Snapshot, error) {
		if snapshot, ok := saved[key]; ok {
			return snapshot, nil
		}
		return nil, autoscope.NotFound("Snapshot %q not found", key)
	}
	ts.snapshots.ListFn = func(ctx context.Context) ([]string, error) {
		keys := make([]string, 0, len(saved))
		for key := range saved {
			keys = append(keys, key)
		}
		return keys, nil
	}

	rec := ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"rust","severity":"severe","description":"Rust"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/snapshots", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[SaveSnapshotResponse](t, rec)
	assert.Equal(t, "snapshot_1", resp.Key)

	rec = ts.request(t, http.MethodGet, "/api/snapshots", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	point, err := ts.service.Point("leftAPillar")
	require.NoError(t, err)
	assert.Empty(t, point.Issues)

	rec = ts.request(t, http.MethodPost, "/api/snapshots/snapshot_1/restore", "")
	require.Equal(t, http.StatusOK, rec.Code)
	point, err = ts.service.Point("leftAPillar")
	require.NoError(t, err)
	assert.Len(t, point.Issues, 1)

	rec = ts.request(t, http.MethodGet, "/api/snapshots/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportImportEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/points/leftAPillar/issues",
		`{"type":"scratch","severity":"minor","description":"Scratch"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	exported := rec.Body.String()

	rec = ts.request(t, http.MethodPost, "/api/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodPost, "/api/import", exported)
	require.Equal(t, http.StatusOK, rec.Code)

	point, err := ts.service.Point("leftAPillar")
	require.NoError(t, err)
	assert.Len(t, point.Issues, 1)
}
