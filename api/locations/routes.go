package locations

import (
	"github.com/gin-gonic/gin"

	"github.com/Aleksandr-Gamble/scale-serp/api/types"
)

// RegisterRoutes registers location lookup routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/locations (router already includes /locations prefix)
	router.GET("", Get(deps))
}
