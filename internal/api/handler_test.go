package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrsumitborade/safe-earth-response/internal/chat"
	"github.com/Mrsumitborade/safe-earth-response/internal/dashboard"
	"github.com/Mrsumitborade/safe-earth-response/internal/events"
	"github.com/Mrsumitborade/safe-earth-response/internal/fixtures"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/repository"
	"github.com/Mrsumitborade/safe-earth-response/internal/simulation"
)

type fakeCompleter struct {
	mu    sync.Mutex
	reply string
	err   error
}

func (f *fakeCompleter) Complete(ctx context.Context, apiKey string, msgs []chat.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reply, f.err
}

type testServer struct {
	router      *gin.Engine
	store       *repository.Store
	broadcaster *events.Broadcaster
	completer   *fakeCompleter
	creds       *chat.SessionCredentials
	handler     *Handler
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewStore(fixtures.Default())
	b := events.NewBroadcaster()
	t.Cleanup(b.Close)
	pub := events.NewPublisher(b, nil, events.PublisherConfig{})
	sim := simulation.New(simulation.NewRand(11), simulation.WithDelay(0))
	svc := dashboard.NewService(store, sim, pub, dashboard.Delays{})

	fc := &fakeCompleter{reply: "Head to the nearest shelter."}
	creds := chat.NewSessionCredentials()
	mgr := chat.NewManager(fc, creds, chat.ManagerConfig{Fallback: true})

	router := gin.New()
	router.Use(RequestLogger(), Metrics())
	handler := NewHandler(svc, mgr, b)
	handler.RegisterRoutes(router)
	router.GET("/metrics", MetricsHandler())

	return &testServer{
		router:      router,
		store:       store,
		broadcaster: b,
		completer:   fc,
		creds:       creds,
		handler:     handler,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type validationBody struct {
	Error   string                 `json:"error"`
	Details []dashboard.FieldError `json:"details"`
}

func TestHealth(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, w))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	req.Header.Set(requestIDHeader, "req-123")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(requestIDHeader))
	assert.Contains(t, w.Body.String(), `"version"`)
}

func TestListAlerts(t *testing.T) {
	s := setupTestServer(t)

	type body struct {
		Alerts  []models.Alert        `json:"alerts"`
		Count   int                   `json:"count"`
		Filters []models.DisasterType `json:"filters"`
	}

	w := s.do(t, http.MethodGet, "/api/alerts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decode[body](t, w)
	assert.Equal(t, 5, all.Count)
	assert.Empty(t, all.Filters)

	w = s.do(t, http.MethodGet, "/api/alerts?type=flood&type=TORNADO", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[body](t, w)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, []models.DisasterType{models.DisasterTypeFlood, models.DisasterTypeTornado}, got.Filters)

	w = s.do(t, http.MethodGet, "/api/alerts?type=earthquake,hurricane&severity=high", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[body](t, w).Count)
}

func TestListAlerts_InvalidFilter(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/alerts?type=meteor&severity=extreme", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[validationBody](t, w)
	assert.Equal(t, "validation error", got.Error)
	require.Len(t, got.Details, 2)
	assert.Equal(t, "type", got.Details[0].Field)
	assert.Equal(t, "severity", got.Details[1].Field)
}

func TestRecentAlerts(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/alerts/recent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string][]models.Alert](t, w)
	require.Len(t, got["alerts"], 3)
	assert.Equal(t, "San Francisco, CA", got["alerts"][0].Location)

	w = s.do(t, http.MethodGet, "/api/alerts/recent?limit=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAlert(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/alerts/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	alert := decode[models.Alert](t, w)
	assert.Equal(t, "Miami, FL", alert.Location)
	assert.Equal(t, "2025-05-13 09:15", alert.Time.String())

	w = s.do(t, http.MethodGet, "/api/alerts/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]string{"error": "not found"}, decode[map[string]string](t, w))

	w = s.do(t, http.MethodGet, "/api/alerts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAlertsGeoJSON(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/alerts/geojson", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))

	fc := decode[FeatureCollection](t, w)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 8)

	sf := fc.Features[0]
	assert.Equal(t, "alert", sf.Properties["kind"])
	assert.Equal(t, []float64{-122.4194, 37.7749}, sf.Geometry.Coordinates)

	houston := fc.Features[5]
	assert.Equal(t, "incident", houston.Properties["kind"])
	assert.Equal(t, []float64{-95.3698, 29.7604}, houston.Geometry.Coordinates)
}

func TestGenerateAlert(t *testing.T) {
	s := setupTestServer(t)
	id, ch := s.broadcaster.Subscribe()
	defer s.broadcaster.Unsubscribe(id)

	w := s.do(t, http.MethodPost, "/api/alerts/generate", map[string]string{
		"type": "hurricane", "location": "Savannah, GA", "severity": "High",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Savannah, GA")

	require.Len(t, ch, 1)
	assert.Equal(t, models.EventAlertGenerated, (<-ch).Type)

	alerts, _ := s.store.ListAlerts(context.Background())
	assert.Len(t, alerts, 5)

	w = s.do(t, http.MethodPost, "/api/alerts/generate", map[string]string{"type": "hurricane"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMapView(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/map", nil)
	require.Equal(t, http.StatusOK, w.Code)

	view := decode[MapView](t, w)
	assert.Equal(t, 5, view.Count)
	assert.Equal(t, 2, view.More)
	assert.Equal(t, []string{
		"Earthquake in San Francisco, CA",
		"Flood in New Orleans, LA",
		"Hurricane in Miami, FL",
	}, view.Preview)
	require.Len(t, view.Markers, 5)
	assert.Equal(t, Marker{AlertID: 5, Top: 20 + 60%60, Left: 15 + 68%70, Severity: models.SeverityLow}, view.Markers[4])
}

func TestResources(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodGet, "/api/resources", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[map[string][]models.Resource](t, w)["resources"], 5)

	w = s.do(t, http.MethodGet, "/api/resources/recommendation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(decode[map[string]string](t, w)["recommendation"], "RECOMMENDATION: Deploy "))
}

func TestRequestResource(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/resources/4/requests", map[string]any{
		"quantity": 60, "location": "Boulder, CO", "priority": "High",
	})
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[dashboard.RequestResult](t, w)
	assert.Equal(t, 60, got.Requested)
	assert.Equal(t, 45, got.Transferred)
	assert.Equal(t, 0, got.Resource.Available)
	assert.Equal(t, 60, got.Resource.Allocated)
	assert.Equal(t, "Resource request submitted: 60 Emergency Vehicles for Boulder, CO", got.Message)
}

func TestRequestResource_Errors(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/resources/1/requests", map[string]any{"quantity": 0, "location": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	got := decode[validationBody](t, w)
	assert.ElementsMatch(t, []string{"quantity", "location"}, []string{got.Details[0].Field, got.Details[1].Field})

	w = s.do(t, http.MethodPost, "/api/resources/42/requests", map[string]any{"quantity": 1, "location": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/resources/x/requests", map[string]any{"quantity": 1, "location": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/resources/1/requests", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resources, _ := s.store.ListResources(context.Background())
	assert.Equal(t, fixtures.Default().Resources, resources)
}

func TestReportIncident(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/incidents", map[string]any{
		"location":      "Tulsa, OK",
		"description":   "Tree down across power lines",
		"urgency":       "Moderate",
		"contact_phone": "555-000-1111",
		"coordinates":   []float64{36.154, -95.9928},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	inc := decode[models.Incident](t, w)
	assert.Equal(t, models.IncidentStatusNew, inc.Status)
	assert.Equal(t, "555-000-1111", inc.ContactPhone)
	require.NotNil(t, inc.Coordinates)

	w = s.do(t, http.MethodGet, "/api/incidents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	incidents := decode[map[string][]models.Incident](t, w)["incidents"]
	require.Len(t, incidents, 4)
	assert.Equal(t, inc.ID, incidents[3].ID)
}

func TestReportIncident_Invalid(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/incidents", map[string]any{"location": "Tulsa, OK", "urgency": "High"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	got := decode[validationBody](t, w)
	assert.Equal(t, "validation error", got.Error)
	require.Len(t, got.Details, 1)
	assert.Equal(t, dashboard.FieldError{Field: "description", Message: "required"}, got.Details[0])

	incidents, _ := s.store.ListIncidents(context.Background())
	assert.Len(t, incidents, 3)
}

func TestInsights(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/insights", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	insight := decode[models.AIInsight](t, w)
	assert.Equal(t, models.InsightTypeAnalysis, insight.Type)
	assert.Equal(t, models.InsightSubjectIncidents, insight.RelatedTo)

	w = s.do(t, http.MethodGet, "/api/insights", nil)
	require.Equal(t, http.StatusOK, w.Code)
	insights := decode[map[string][]models.AIInsight](t, w)["insights"]
	require.Len(t, insights, 4)
	assert.Equal(t, insight.ID, insights[0].ID)
}

func TestStatsAndReset(t *testing.T) {
	s := setupTestServer(t)

	s.do(t, http.MethodPost, "/api/resources/1/requests", map[string]any{"quantity": 10, "location": "x"})

	w := s.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decode[dashboard.Stats](t, w)
	assert.Equal(t, 5340, st.AvailableResources)
	assert.Equal(t, 2, st.HighSeverityAlerts)

	w = s.do(t, http.MethodPost, "/api/admin/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/dashboard/stats", nil)
	assert.Equal(t, 5350, decode[dashboard.Stats](t, w).AvailableResources)
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupTestServer(t)
	s.do(t, http.MethodGet, "/health", nil)

	w := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "safe_earth_http_request_duration_seconds")
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(2))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}
