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

// RegisterBookingRoutes registers the booking routes (protected)
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.GET("/bookings", listBookings)
	router.GET("/bookings/:id", getBooking)
	router.POST("/bookings/:id/cancel", cancelBooking)
	router.POST("/bookings/:id/complete", completeBooking)
}

// listBookings lists bookings where the user is client or provider
func listBookings(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	query := database.DB.
		Preload("Client").
		Preload("Provider").
		Preload("Service").
		Preload("Transaction").
		Where("client_id = ? OR provider_id = ?", user.ID, user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("scheduled_date DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookings": bookings}})
}

func getBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingForParticipant(c, user.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"booking": booking}})
}

// cancelBooking cancels a confirmed booking; either side may cancel
func cancelBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingForParticipant(c, user.ID)
	if !ok {
		return
	}

	if !booking.CanCancel() {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Booking is %s and cannot be cancelled", booking.Status)})
		return
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
		Update("status", models.BookingStatusCancelled)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is no longer confirmed"})
		return
	}

	// Tell the other side
	otherID := booking.ProviderID
	if user.ID == booking.ProviderID {
		otherID = booking.ClientID
	}
	if _, err := notificationService.Create(
		otherID,
		"Réservation annulée",
		fmt.Sprintf("%s a annulé la réservation du %s", user.FullName, booking.ScheduledDate.Format("02/01/2006")),
		models.NotificationTypeSystem,
		&booking.ID,
	); err != nil {
		log.Printf("⚠️ Failed to notify user %d about cancelled booking %d: %v", otherID, booking.ID, err)
	}

	booking.Status = models.BookingStatusCancelled
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"booking": booking}})
}

// completeBooking marks a confirmed booking completed; provider only
func completeBooking(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	booking, ok := loadBookingForParticipant(c, user.ID)
	if !ok {
		return
	}

	if booking.ProviderID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the provider can complete a booking"})
		return
	}

	if !booking.CanComplete() {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Booking is %s and cannot be completed", booking.Status)})
		return
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusConfirmed).
		Update("status", models.BookingStatusCompleted)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete booking"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Booking is no longer confirmed"})
		return
	}

	booking.Status = models.BookingStatusCompleted
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"booking": booking}})
}

func loadBookingForParticipant(c *gin.Context, userID uint) (models.Booking, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return models.Booking{}, false
	}

	var booking models.Booking
	if err := database.DB.Preload("Client").Preload("Provider").Preload("Service").First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		}
		return models.Booking{}, false
	}

	if booking.ClientID != userID && booking.ProviderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this booking"})
		return models.Booking{}, false
	}

	return booking, true
}
