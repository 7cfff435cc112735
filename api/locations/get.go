package locations

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aleksandr-Gamble/scale-serp/api/types"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
)

// Get handles location lookup requests
// @Summary      Look up supported locations
// @Description  Search the upstream location database by name, optionally filtered by type and country
// @Tags         locations
// @Produce      json
// @Param        q            query string true  "Location name to match"
// @Param        type         query string false "Location type filter (e.g. city, state, country)"
// @Param        country_code query string false "Two-letter country code filter"
// @Success      200 {object} types.LocationsListResponse "Matching locations"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing query"
// @Failure      429 {object} types.ErrorResponse "Upstream rate limit exceeded"
// @Failure      502 {object} types.ErrorResponse "Upstream error or invalid upstream response"
// @Failure      504 {object} types.ErrorResponse "Gateway timeout"
// @Router       /api/v1/locations [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Location query is required",
			})
			return
		}

		if deps.SerpClient == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Location service not available",
			})
			return
		}

		params := scaleserp.NewLocationParams(deps.APIKey, query)
		params.Type = c.Query("type")
		params.CountryCode = c.Query("country_code")

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		results, err := deps.SerpClient.Locations(ctx, params)
		if err != nil {
			status, body := types.UpstreamErrorResponse(err)
			c.JSON(status, body)
			return
		}

		if deps.UsageService != nil {
			if err := deps.UsageService.RecordLocations(c.Request.Context(), query, results.RequestInfo.Success); err != nil {
				log.Printf("[WARN] Failed to record locations usage: %v", err)
			}
		}

		c.JSON(http.StatusOK, types.LocationsListResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Locations retrieved successfully",
			},
			Query:       query,
			Count:       len(results.Locations),
			Locations:   results.Locations,
			RequestInfo: results.RequestInfo,
		})
	}
}
