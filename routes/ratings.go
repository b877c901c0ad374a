package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterRatingRoutes registers the rating routes (protected)
func RegisterRatingRoutes(router *gin.RouterGroup) {
	router.POST("/ratings", createRating)
}

// RegisterPublicRatingRoutes registers the public rating lookup routes
func RegisterPublicRatingRoutes(router *gin.RouterGroup) {
	router.GET("/providers/:id/ratings", listProviderRatings)
	router.GET("/providers/:id/ratings/summary", getProviderRatingSummary)
}

// createRating rates a provider for a completed booking. Only the booking's
// client may rate, and each booking takes exactly one rating.
func createRating(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.ProviderRatingCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, req.BookingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		}
		return
	}

	if booking.ClientID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only rate your own bookings"})
		return
	}
	if booking.Status != models.BookingStatusCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "Only completed bookings can be rated"})
		return
	}

	var existing int64
	if err := database.DB.Model(&models.ProviderRating{}).
		Where("booking_id = ?", req.BookingID).
		Count(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify rating"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "This booking has already been rated"})
		return
	}

	rating := models.ProviderRating{
		BookingID:  req.BookingID,
		ClientID:   user.ID,
		ProviderID: booking.ProviderID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := database.DB.Create(&rating).Error; err != nil {
		log.Printf("❌ Rating creation failed for booking %d: %v", req.BookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rating"})
		return
	}

	if _, err := notificationService.Create(
		booking.ProviderID,
		"Nouvelle évaluation",
		fmt.Sprintf("%s vous a attribué %d étoile(s)", user.FullName, rating.Rating),
		models.NotificationTypeRatingReceived,
		&rating.ID,
	); err != nil {
		log.Printf("⚠️ Failed to notify provider %d about rating %d: %v", booking.ProviderID, rating.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"rating": rating}})
}

func listProviderRatings(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	var ratings []models.ProviderRating
	err = database.DB.
		Preload("Client").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Limit(50).
		Find(&ratings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"ratings": ratings}})
}

func getProviderRatingSummary(c *gin.Context) {
	providerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID"})
		return
	}

	summary := models.ProviderRatingSummary{ProviderID: uint(providerID)}

	if err := database.DB.Model(&models.ProviderRating{}).
		Where("provider_id = ?", providerID).
		Count(&summary.TotalRatings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	if err := database.DB.Model(&models.ProviderRating{}).
		Where("provider_id = ?", providerID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&summary.AverageRating).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"summary": summary}})
}
