package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterFavoriteRoutes registers the favorites routes (protected)
func RegisterFavoriteRoutes(router *gin.RouterGroup) {
	router.GET("/favorites", listFavorites)
	router.POST("/favorites/toggle", toggleFavorite)
}

func listFavorites(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var favorites []models.Favorite
	err := database.DB.
		Preload("Service").
		Preload("Service.Provider").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"favorites": favorites}})
}

// toggleFavorite adds the service to the user's favorites, or removes it if
// already present
func toggleFavorite(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req struct {
		ServiceID uint `json:"service_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	var service models.Service
	if err := database.DB.First(&service, req.ServiceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return
	}

	var existing models.Favorite
	err := database.DB.Where("user_id = ? AND service_id = ?", user.ID, req.ServiceID).First(&existing).Error
	switch err {
	case nil:
		if err := database.DB.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"favorited": false}})
	case gorm.ErrRecordNotFound:
		favorite := models.Favorite{UserID: user.ID, ServiceID: req.ServiceID}
		if err := database.DB.Create(&favorite).Error; err != nil {
			log.Printf("❌ Failed to add favorite for user %d service %d: %v", user.ID, req.ServiceID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"favorited": true, "favorite": favorite}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
	}
}
