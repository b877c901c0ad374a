package routes

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterServiceRequestRoutes registers the request lifecycle routes (protected)
func RegisterServiceRequestRoutes(router *gin.RouterGroup) {
	router.POST("/requests", createServiceRequest)
	router.GET("/requests/mine", listMyRequests)
	router.GET("/requests/incoming", listIncomingRequests)
	router.GET("/requests/:id", getServiceRequest)
	router.POST("/requests/:id/accept", acceptServiceRequest)
	router.POST("/requests/:id/reject", rejectServiceRequest)
	router.POST("/requests/:id/complete", completeServiceRequest)
}

// createServiceRequest submits a client request to a provider and notifies them
func createServiceRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.ServiceRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	if req.ProviderID == user.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a request to yourself"})
		return
	}

	var provider models.Profile
	if err := database.DB.First(&provider, req.ProviderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify provider"})
		}
		return
	}
	if !provider.IsProvider() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient is not a provider"})
		return
	}

	if req.ServiceID != nil {
		var service models.Service
		if err := database.DB.First(&service, *req.ServiceID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service not found"})
			return
		}
		if service.ProviderID != req.ProviderID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Service does not belong to this provider"})
			return
		}
	}

	if req.Budget != nil && *req.Budget <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Budget must be greater than zero"})
		return
	}

	var preferredDate *time.Time
	if req.PreferredDate != nil && *req.PreferredDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.PreferredDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferred_date, expected ISO8601"})
			return
		}
		preferredDate = &parsed
	}

	request := models.ServiceRequest{
		ClientID:      user.ID,
		ProviderID:    req.ProviderID,
		ServiceID:     req.ServiceID,
		Title:         middleware.SanitizeInput(req.Title),
		Description:   req.Description,
		Budget:        req.Budget,
		PreferredDate: preferredDate,
		Status:        models.RequestStatusPending,
	}

	if err := database.DB.Create(&request).Error; err != nil {
		log.Printf("❌ Service request creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create request"})
		return
	}

	if _, err := notificationService.Create(
		provider.ID,
		"Nouvelle demande de service",
		fmt.Sprintf("%s vous a envoyé une demande : %s", user.FullName, request.Title),
		models.NotificationTypeServiceRequest,
		&request.ID,
	); err != nil {
		log.Printf("⚠️ Failed to notify provider %d about request %d: %v", provider.ID, request.ID, err)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"request": request}})
}

// listMyRequests lists requests the authenticated user sent as a client
func listMyRequests(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var requests []models.ServiceRequest
	err := database.DB.
		Preload("Provider").
		Preload("Service").
		Where("client_id = ?", user.ID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"requests": requests}})
}

// listIncomingRequests lists requests addressed to the authenticated provider
func listIncomingRequests(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	query := database.DB.
		Preload("Client").
		Preload("Service").
		Where("provider_id = ?", user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.ServiceRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"requests": requests}})
}

func getServiceRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	request, ok := loadRequestForParticipant(c, user.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"request": request}})
}

// acceptServiceRequest moves a pending request to accepted and creates the
// booking plus its payment transaction in one database transaction
func acceptServiceRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	request, ok := loadRequestForProvider(c, user.ID)
	if !ok {
		return
	}

	if !request.CanAccept() {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Request is %s and can no longer be accepted", request.Status)})
		return
	}

	amount := 0.0
	if request.Budget != nil {
		amount = *request.Budget
	}

	scheduledDate := time.Now()
	if request.PreferredDate != nil {
		scheduledDate = *request.PreferredDate
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
			Update("status", models.RequestStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		serviceID := uint(0)
		if request.ServiceID != nil {
			serviceID = *request.ServiceID
		} else {
			// Requests without a catalog service get a placeholder entry so
			// the booking keeps a consistent shape
			service := models.Service{
				ProviderID:  request.ProviderID,
				Title:       request.Title,
				Description: request.Description,
				Category:    "custom",
				Price:       amount,
				IsActive:    false,
			}
			if err := tx.Create(&service).Error; err != nil {
				return err
			}
			serviceID = service.ID
		}

		transaction := models.Transaction{
			ClientID:        request.ClientID,
			ProviderID:      request.ProviderID,
			ServiceID:       &serviceID,
			Amount:          amount,
			TransactionType: "service_payment",
			Status:          models.TransactionStatusConfirmed,
			Description:     request.Title,
			ScheduledDate:   &scheduledDate,
		}
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		booking = models.Booking{
			ClientID:      request.ClientID,
			ProviderID:    request.ProviderID,
			ServiceID:     serviceID,
			ScheduledDate: scheduledDate,
			Status:        models.BookingStatusConfirmed,
			TransactionID: &transaction.ID,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		// Link the booking back so completion can target it precisely
		return tx.Model(&models.ServiceRequest{}).
			Where("id = ?", request.ID).
			Update("booking_id", booking.ID).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusConflict, gin.H{"error": "Request is no longer pending"})
			return
		}
		log.Printf("❌ Failed to accept request %d: %v", request.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	if _, err := notificationService.Create(
		request.ClientID,
		"Demande acceptée",
		fmt.Sprintf("%s a accepté votre demande : %s", user.FullName, request.Title),
		models.NotificationTypeRequestAccepted,
		&request.ID,
	); err != nil {
		log.Printf("⚠️ Failed to notify client %d about accepted request %d: %v", request.ClientID, request.ID, err)
	}

	request.Status = models.RequestStatusAccepted
	request.BookingID = &booking.ID
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"request": request, "booking": booking}})
}

// rejectServiceRequest moves a pending request to rejected
func rejectServiceRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	request, ok := loadRequestForProvider(c, user.ID)
	if !ok {
		return
	}

	if !request.CanReject() {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Request is %s and can no longer be rejected", request.Status)})
		return
	}

	result := database.DB.Model(&models.ServiceRequest{}).
		Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
		Update("status", models.RequestStatusRejected)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Request is no longer pending"})
		return
	}

	if _, err := notificationService.Create(
		request.ClientID,
		"Demande refusée",
		fmt.Sprintf("%s a refusé votre demande : %s", user.FullName, request.Title),
		models.NotificationTypeRequestRejected,
		&request.ID,
	); err != nil {
		log.Printf("⚠️ Failed to notify client %d about rejected request %d: %v", request.ClientID, request.ID, err)
	}

	request.Status = models.RequestStatusRejected
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"request": request}})
}

// completeServiceRequest moves an accepted request to completed and closes
// the matching booking
func completeServiceRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	request, ok := loadRequestForProvider(c, user.ID)
	if !ok {
		return
	}

	if !request.CanComplete() {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Request is %s and cannot be completed", request.Status)})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ServiceRequest{}).
			Where("id = ? AND status = ?", request.ID, models.RequestStatusAccepted).
			Update("status", models.RequestStatusCompleted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// Close only the booking created when this request was accepted;
		// other engagements between the same pair stay untouched
		if request.BookingID == nil {
			return nil
		}
		return tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", *request.BookingID, models.BookingStatusConfirmed).
			Update("status", models.BookingStatusCompleted).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusConflict, gin.H{"error": "Request is no longer accepted"})
			return
		}
		log.Printf("❌ Failed to complete request %d: %v", request.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete request"})
		return
	}

	if _, err := notificationService.Create(
		request.ClientID,
		"Demande terminée",
		fmt.Sprintf("%s a marqué votre demande comme terminée : %s", user.FullName, request.Title),
		models.NotificationTypeRequestCompleted,
		&request.ID,
	); err != nil {
		log.Printf("⚠️ Failed to notify client %d about completed request %d: %v", request.ClientID, request.ID, err)
	}

	request.Status = models.RequestStatusCompleted
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"request": request}})
}

func loadRequestForProvider(c *gin.Context, providerID uint) (models.ServiceRequest, bool) {
	request, ok := loadRequest(c)
	if !ok {
		return models.ServiceRequest{}, false
	}
	if request.ProviderID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage requests addressed to you"})
		return models.ServiceRequest{}, false
	}
	return request, true
}

func loadRequestForParticipant(c *gin.Context, userID uint) (models.ServiceRequest, bool) {
	request, ok := loadRequest(c)
	if !ok {
		return models.ServiceRequest{}, false
	}
	if request.ClientID != userID && request.ProviderID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this request"})
		return models.ServiceRequest{}, false
	}
	return request, true
}

func loadRequest(c *gin.Context) (models.ServiceRequest, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return models.ServiceRequest{}, false
	}

	var request models.ServiceRequest
	if err := database.DB.Preload("Client").Preload("Provider").Preload("Service").First(&request, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch request"})
		}
		return models.ServiceRequest{}, false
	}

	return request, true
}
