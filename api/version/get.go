package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Scale SERP API",
			"version":     "1.0.0",
			"description": "Strictly typed gateway for the ScaleSERP search API",
			"status":      "running",
		})
	}
}
