package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicelink-server/middleware"
)

// RegisterStatsRoutes registers the dashboard stats route (protected)
func RegisterStatsRoutes(router *gin.RouterGroup) {
	router.GET("/stats", getStats)
}

// getStats returns the dashboard counters for the authenticated user, shaped
// by their profile type
func getStats(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if user.IsProvider() {
		stats, err := statsService.GetProviderStats(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user_type": user.UserType, "stats": stats}})
		return
	}

	stats, err := statsService.GetClientStats(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"user_type": user.UserType, "stats": stats}})
}
