package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterServiceRoutes registers the public catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", listServices)
	router.GET("/", listServices)
	router.GET("/:id", getService)
}

// RegisterProviderServiceRoutes registers the provider-owned catalog routes (protected)
func RegisterProviderServiceRoutes(router *gin.RouterGroup) {
	router.GET("/services/mine", listMyServices)
	router.POST("/services", createService)
	router.PUT("/services/:id", updateService)
	router.DELETE("/services/:id", deleteService)
}

// listServices lists active services with server-side filtering and pagination
func listServices(c *gin.Context) {
	query := database.DB.Model(&models.Service{}).
		Preload("Provider").
		Where("is_active = ?", true)

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("price >= ?", v)
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("price <= ?", v)
		}
	}

	limit := 20
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil && v >= 0 {
		offset = v
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	var services []models.Service
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"services": services,
			"total":    total,
			"limit":    limit,
			"offset":   offset,
		},
	})
}

func getService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var service models.Service
	if err := database.DB.Preload("Provider").First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"service": service}})
}

func listMyServices(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var services []models.Service
	if err := database.DB.Where("provider_id = ?", user.ID).Order("created_at DESC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"services": services}})
}

func createService(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	if !user.IsProvider() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only providers can publish services"})
		return
	}

	var req models.ServiceCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	service := models.Service{
		ProviderID:  user.ID,
		Title:       middleware.SanitizeInput(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		IsActive:    true,
	}

	if err := database.DB.Create(&service).Error; err != nil {
		log.Printf("❌ Service creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"service": service}})
}

func updateService(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	service, ok := loadOwnedService(c, user.ID)
	if !ok {
		return
	}

	var req models.ServiceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = middleware.SanitizeInput(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be greater than zero"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&service).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"service": service}})
}

// deleteService deactivates instead of removing: requests and bookings may
// still reference the row
func deleteService(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	service, ok := loadOwnedService(c, user.ID)
	if !ok {
		return
	}

	if err := database.DB.Model(&service).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deactivated"})
}

func loadOwnedService(c *gin.Context, providerID uint) (models.Service, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return models.Service{}, false
	}

	var service models.Service
	if err := database.DB.First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service"})
		}
		return models.Service{}, false
	}

	if service.ProviderID != providerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own services"})
		return models.Service{}, false
	}

	return service, true
}
