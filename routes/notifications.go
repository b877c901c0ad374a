package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterNotificationRoutes registers the notification routes (protected)
func RegisterNotificationRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", listNotifications)
	router.GET("/notifications/unread-count", unreadNotificationCount)
	router.POST("/notifications/read/:id", markNotificationRead)
	router.POST("/notifications/read-all", markAllNotificationsRead)
}

// listNotifications returns the user's 50 most recent notifications
func listNotifications(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var notifications []models.Notification
	err := database.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"notifications": notifications}})
}

func unreadNotificationCount(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var count int64
	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"count": count}})
}

func markNotificationRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Update("read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func markAllNotificationsRead(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Update("read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
