package usage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleksandr-Gamble/scale-serp/api/types"
	"github.com/Aleksandr-Gamble/scale-serp/internal/database"
	"github.com/Aleksandr-Gamble/scale-serp/internal/models"
	usageService "github.com/Aleksandr-Gamble/scale-serp/internal/services/usage"
)

func setupDeps(t *testing.T) *types.Dependencies {
	t.Helper()

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.AutoMigrate(&models.UsageRecord{}))

	return &types.Dependencies{
		DB:           db,
		UsageService: usageService.NewService(usageService.NewRepository(db.DB)),
	}
}

func performGet(t *testing.T, handler gin.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var err error
	c.Request, err = http.NewRequest(http.MethodGet, target, nil)
	require.NoError(t, err)

	handler(c)
	return w
}

func TestGetSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty database", func(t *testing.T) {
		deps := setupDeps(t)

		w := performGet(t, GetSummary(deps), "/api/v1/usage")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		summary, ok := resp["summary"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(0), summary["total_requests"])
	})

	t.Run("reflects recorded searches", func(t *testing.T) {
		deps := setupDeps(t)
		err := deps.UsageService.RecordSearch(context.Background(), "pigments", "", usageService.SearchAccounting{
			Success:          true,
			CreditsUsed:      42,
			CreditsRemaining: 958,
		})
		require.NoError(t, err)

		w := performGet(t, GetSummary(deps), "/api/v1/usage")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		summary := resp["summary"].(map[string]interface{})
		assert.Equal(t, float64(1), summary["total_requests"])
		assert.Equal(t, float64(958), summary["credits_remaining"])
	})

	t.Run("service not configured", func(t *testing.T) {
		w := performGet(t, GetSummary(&types.Dependencies{}), "/api/v1/usage")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetRecent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns records", func(t *testing.T) {
		deps := setupDeps(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, deps.UsageService.RecordLocations(context.Background(), "chicago", true))
		}

		w := performGet(t, GetRecent(deps), "/api/v1/usage/recent?limit=2")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(2), resp["count"])
	})

	t.Run("invalid limit", func(t *testing.T) {
		deps := setupDeps(t)

		w := performGet(t, GetRecent(deps), "/api/v1/usage/recent?limit=nope")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("limit out of range", func(t *testing.T) {
		deps := setupDeps(t)

		w := performGet(t, GetRecent(deps), "/api/v1/usage/recent?limit=1000")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
