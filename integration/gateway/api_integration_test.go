package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Aleksandr-Gamble/scale-serp/api"
	"github.com/Aleksandr-Gamble/scale-serp/api/types"
	"github.com/Aleksandr-Gamble/scale-serp/internal/database"
	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	"github.com/Aleksandr-Gamble/scale-serp/pkg/config"
)

// stubUpstream fakes the upstream API so the full gateway can be
// exercised without network access.
type stubUpstream struct {
	searchCalls    int
	locationsCalls int
}

func (s *stubUpstream) Search(ctx context.Context, params scaleserp.SearchParams) (*scaleserp.SearchResponse, error) {
	s.searchCalls++
	return &scaleserp.SearchResponse{
		RequestInfo: scaleserp.RequestInfo{
			Success:                true,
			CreditsUsed:            uint(s.searchCalls),
			CreditsUsedThisRequest: 1,
			CreditsRemaining:       1000 - uint(s.searchCalls),
		},
		RelatedSearches: []scaleserp.RelatedSearch{},
		OrganicResults: []scaleserp.OrganicResult{
			{Position: 1, Title: "Result for " + params.Query, Link: "https://example.com", Domain: "example.com"},
		},
	}, nil
}

func (s *stubUpstream) Locations(ctx context.Context, params scaleserp.LocationParams) (*scaleserp.LocationsResponse, error) {
	s.locationsCalls++
	return &scaleserp.LocationsResponse{
		RequestInfo: scaleserp.LocationsRequestInfo{Success: true},
		Locations: []scaleserp.Location{
			{ID: 1014044, Name: "Chicago", Type: "City", FullName: "Chicago,Illinois,United States", CountryCode: "US"},
		},
	}, nil
}

type testSuite struct {
	t        *testing.T
	router   *gin.Engine
	upstream *stubUpstream
}

func setupSuite(t *testing.T) *testSuite {
	gin.SetMode(gin.TestMode)

	require.NoError(t, config.Init())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(&models.UsageRecord{}), "Failed to migrate test database")

	upstream := &stubUpstream{}
	deps := &types.Dependencies{
		DB:         &database.DB{DB: db},
		SerpClient: upstream,
		APIKey:     "integration-test-key",
	}

	router := gin.New()
	router.Use(gin.Recovery())

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	cleanupInitialized := &sync.Once{}

	err = api.RegisterRoutes(router, deps, rateLimiters, cleanupStop, cleanupInitialized)
	require.NoError(t, err, "Failed to register routes")

	t.Cleanup(func() { close(cleanupStop) })

	return &testSuite{t: t, router: router, upstream: upstream}
}

func (suite *testSuite) get(target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	suite.t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(suite.t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestSearchToUsageWorkflow(t *testing.T) {
	suite := setupSuite(t)

	// Step 1: Run two searches
	w, body := suite.get("/api/v1/search?q=anionic+surfactants&location=United+States")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	w, _ = suite.get("/api/v1/search?q=pigments")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, suite.upstream.searchCalls)

	// Step 2: Run a location lookup
	w, body = suite.get("/api/v1/locations?q=chicago")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	// Step 3: Usage summary reflects the latest search balance
	w, body = suite.get("/api/v1/usage")
	require.Equal(t, http.StatusOK, w.Code)
	summary, ok := body["summary"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), summary["total_requests"])
	assert.Equal(t, float64(998), summary["credits_remaining"])
	assert.Equal(t, "locations", summary["last_endpoint"])

	// Step 4: Recent records include all three requests
	w, body = suite.get("/api/v1/usage/recent")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["count"])
}

func TestNotFoundRoute(t *testing.T) {
	suite := setupSuite(t)

	w, body := suite.get("/api/v1/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", body["status"])
}

func TestHealthEndpoint(t *testing.T) {
	suite := setupSuite(t)

	w, body := suite.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}
