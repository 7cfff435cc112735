package usage

import (
	"github.com/gin-gonic/gin"

	"github.com/Aleksandr-Gamble/scale-serp/api/types"
)

// RegisterRoutes registers usage accounting routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/usage (router already includes /usage prefix)
	router.GET("", GetSummary(deps))
	// GET /api/v1/usage/recent
	router.GET("/recent", GetRecent(deps))
}
