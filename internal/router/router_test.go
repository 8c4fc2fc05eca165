package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project-config-api/internal/database"
	"project-config-api/internal/domain"
	"project-config-api/internal/metrics"
)

const testBasePath = "/api/configurator"

// setupTestRouter creates a test router config backed by a migrated in-memory sqlite database
func setupTestRouter(t *testing.T, basePath string, m *metrics.Metrics) (Config, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	return Config{
		DB:            db,
		Logger:        zap.NewNop(),
		BasePath:      basePath,
		Metrics:       m,
		AutosaveDelay: time.Hour,
	}, db
}

func newTestRouter(t *testing.T, basePath string) (*Router, *gorm.DB) {
	t.Helper()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	cfg, db := setupTestRouter(t, basePath, m)
	r := Setup(cfg)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })
	return r, db
}

// TestMetricsEndpoint_RootPath tests /metrics endpoint at root path
func TestMetricsEndpoint_RootPath(t *testing.T) {
	router, _ := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200")
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
	// Go runtime metrics are always part of the default registry
	assert.Contains(t, body, "go_goroutines")
}

// TestMetricsEndpoint_WithBasePath tests /metrics endpoint with base path configured
func TestMetricsEndpoint_WithBasePath(t *testing.T) {
	router, _ := newTestRouter(t, testBasePath)

	for _, path := range []string{"/metrics", testBasePath + "/metrics"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		})
	}
}

// TestMetricsEndpoint_ContainsAllMetrics tests that gauges and plain counters are registered up front
func TestMetricsEndpoint_ContainsAllMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	_ = metrics.NewWithRegistry(registry, zap.NewNop())

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	metricNames := make(map[string]bool)
	for _, mf := range metricFamilies {
		metricNames[mf.GetName()] = true
	}

	expected := []string{
		"configurator_service_db_connections_open",
		"configurator_service_db_connections_in_use",
		"configurator_service_db_connections_idle",
		"configurator_service_db_connections_max",
		"configurator_service_db_connection_wait_total",
		"configurator_service_configurations_total",
		"configurator_service_configurations_locked",
		"configurator_service_orphaned_selections",
		"configurator_service_configuration_created_total",
		"configurator_service_configuration_locked_total",
	}
	for _, metric := range expected {
		assert.True(t, metricNames[metric], "Registry should contain metric: %s", metric)
	}
}

// TestMetricsEndpoint_PrometheusFormat tests Prometheus format validation
func TestMetricsEndpoint_PrometheusFormat(t *testing.T) {
	router, _ := newTestRouter(t, "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	hasHelpLine, hasTypeLine, hasMetricLine := false, false, false
	for _, line := range strings.Split(w.Body.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "# HELP"):
			hasHelpLine = true
		case strings.HasPrefix(line, "# TYPE"):
			hasTypeLine = true
		case line != "" && !strings.HasPrefix(line, "#") && strings.Contains(line, " "):
			hasMetricLine = true
		}
	}

	assert.True(t, hasHelpLine, "Should have at least one HELP line")
	assert.True(t, hasTypeLine, "Should have at least one TYPE line")
	assert.True(t, hasMetricLine, "Should have at least one metric line with value")
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, testBasePath)

	for _, path := range []string{"/health", "/ready", testBasePath + "/health", testBasePath + "/ready"} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	router, _ := newTestRouter(t, testBasePath)

	req := httptest.NewRequest(http.MethodGet, testBasePath+"/configurations/not-a-uuid", nil)
	req.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	var body struct {
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "req-42", body.RequestID)
}

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func (c apiClient) do(method, path string, payload interface{}) (int, map[string]interface{}) {
	c.t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, testBasePath+path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &decoded), w.Body.String())
	return w.Code, decoded
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return d
}

func TestConfigurationFlow(t *testing.T) {
	router, db := newTestRouter(t, testBasePath)
	api := apiClient{t: t, router: router}

	project := &domain.ConstructionProject{
		Name:       "Family house",
		FacadeArea: decimal.NewFromInt(120),
		Rooms:      []domain.ProjectRoom{{Name: "Bedroom", FloorSpace: decimal.NewFromInt(20)}},
	}
	require.NoError(t, db.Create(project).Error)
	bedroom := project.Rooms[0]

	// catalog authoring
	status, body := api.do(http.MethodPost, "/categories", map[string]interface{}{
		"name": "Flooring", "order": 1, "scope": "room", "pricingRule": "floor",
	})
	require.Equal(t, http.StatusCreated, status, body)
	flooringID := uuid.MustParse(data(t, body)["categoryId"].(string))

	parquet := &domain.Item{CategoryID: flooringID, Name: "Oak parquet", AdditionalCost: decimal.NewFromInt(10)}
	require.NoError(t, db.Create(parquet).Error)

	// configuration lifecycle
	status, body = api.do(http.MethodPost, "/projects/"+project.ID.String()+"/configurations", map[string]string{"name": "Variant A"})
	require.Equal(t, http.StatusCreated, status, body)
	configPath := "/configurations/" + data(t, body)["configurationId"].(string)

	status, body = api.do(http.MethodGet, configPath+"/wizard", nil)
	require.Equal(t, http.StatusOK, status, body)
	step := data(t, body)["step"].(map[string]interface{})
	assert.Equal(t, "Flooring", step["category"].(map[string]interface{})["name"])

	status, body = api.do(http.MethodPost, configPath+"/wizard/toggle", map[string]interface{}{
		"itemId": parquet.ID, "roomId": bedroom.ID,
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "200.00", data(t, body)["total"])

	status, body = api.do(http.MethodPut, configPath+"/selections", map[string]interface{}{
		"selections": []map[string]interface{}{{"itemId": parquet.ID, "roomId": bedroom.ID}},
		"categoryId": flooringID,
		"autosave":   true,
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, false, data(t, body)["saved"], "unchanged selections are a no-op")

	status, body = api.do(http.MethodGet, configPath+"/export", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "200.00", data(t, body)["breakdown"].(map[string]interface{})["total"])

	status, _ = api.do(http.MethodPost, configPath+"/lock", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = api.do(http.MethodPut, configPath+"/selections", map[string]interface{}{"selections": []interface{}{}})
	assert.Equal(t, http.StatusLocked, status)
	assert.Equal(t, "CONFIGURATION_LOCKED", body["error"].(map[string]interface{})["code"])

	status, body = api.do(http.MethodPost, configPath+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, false, data(t, body)["isLocked"])
	assert.Len(t, data(t, body)["selections"], 1)

	status, _ = api.do(http.MethodDelete, configPath, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = api.do(http.MethodGet, configPath, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
