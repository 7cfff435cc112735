package search

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aleksandr-Gamble/scale-serp/api/types"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/scaleserp"
	"github.com/Aleksandr-Gamble/scale-serp/internal/services/usage"
)

// Get handles web search requests
// @Summary      Run a web search
// @Description  Proxy a search to the upstream SERP API and return the strictly validated result set
// @Tags         search
// @Produce      json
// @Param        q        query string true  "Search query"
// @Param        location query string false "Geographic location to search from"
// @Success      200 {object} types.SearchResultsResponse "Search results"
// @Failure      400 {object} types.ErrorResponse "Bad request - missing query"
// @Failure      429 {object} types.ErrorResponse "Upstream rate limit exceeded"
// @Failure      502 {object} types.ErrorResponse "Upstream error or invalid upstream response"
// @Failure      504 {object} types.ErrorResponse "Gateway timeout"
// @Router       /api/v1/search [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search query is required",
			})
			return
		}
		location := c.Query("location")

		if deps.SerpClient == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Search service not available",
			})
			return
		}

		params := scaleserp.NewSearchParams(deps.APIKey, location, query)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		results, err := deps.SerpClient.Search(ctx, params)
		if err != nil {
			status, body := types.UpstreamErrorResponse(err)
			c.JSON(status, body)
			return
		}

		recordUsage(c.Request.Context(), deps, query, location, results)

		c.JSON(http.StatusOK, types.SearchResultsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Search results retrieved successfully",
			},
			Query:    query,
			Location: location,
			Results:  results,
		})
	}
}

// recordUsage persists the credit counters from the response. Failures
// are logged but never surfaced to the caller.
func recordUsage(ctx context.Context, deps *types.Dependencies, query, location string, results *scaleserp.SearchResponse) {
	if deps.UsageService == nil {
		return
	}
	info := results.RequestInfo
	err := deps.UsageService.RecordSearch(ctx, query, location, usage.SearchAccounting{
		Success:                info.Success,
		CreditsUsed:            info.CreditsUsed,
		CreditsUsedThisRequest: info.CreditsUsedThisRequest,
		CreditsRemaining:       info.CreditsRemaining,
		CreditsResetAt:         info.CreditsResetAt,
	})
	if err != nil {
		log.Printf("[WARN] Failed to record search usage: %v", err)
	}
}
