package usage

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aleksandr-Gamble/scale-serp/api/types"
)

// GetSummary handles usage summary requests
// @Summary      Get credit usage summary
// @Description  Return the latest account credit balance snapshot and total recorded requests
// @Tags         usage
// @Produce      json
// @Success      200 {object} types.UsageSummaryResponse "Usage summary"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/usage [get]
func GetSummary(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.UsageService == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Usage accounting not available",
			})
			return
		}

		summary, err := deps.UsageService.Summary(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load usage summary",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.UsageSummaryResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Usage summary retrieved successfully",
			},
			Summary: summary,
		})
	}
}

// GetRecent handles recent usage record requests
// @Summary      List recent requests
// @Description  Return the most recent recorded upstream requests with their credit counters
// @Tags         usage
// @Produce      json
// @Param        limit query int false "Maximum number of records to return"
// @Success      200 {object} types.UsageRecordsResponse "Recent usage records"
// @Failure      400 {object} types.ErrorResponse "Bad request - invalid limit"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/usage/recent [get]
func GetRecent(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.UsageService == nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Usage accounting not available",
			})
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 500 {
				c.JSON(http.StatusBadRequest, types.ErrorResponse{
					Status:  types.StatusError,
					Message: "Limit must be an integer between 1 and 500",
				})
				return
			}
			limit = parsed
		}

		records, err := deps.UsageService.Recent(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Failed to load usage records",
				Details: err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, types.UsageRecordsResponse{
			BaseResponse: types.BaseResponse{
				Status:  types.StatusOK,
				Message: "Usage records retrieved successfully",
			},
			Records: records,
			Count:   len(records),
		})
	}
}
