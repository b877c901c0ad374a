package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterTransactionRoutes registers the service-payment transaction routes (protected)
func RegisterTransactionRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", listTransactions)
	router.GET("/transactions/:id", getTransaction)
}

// listTransactions lists service-payment transactions where the user is
// client or provider
func listTransactions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	query := database.DB.
		Preload("Client").
		Preload("Provider").
		Preload("Service").
		Where("client_id = ? OR provider_id = ?", user.ID, user.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"transactions": transactions}})
}

func getTransaction(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction ID"})
		return
	}

	var transaction models.Transaction
	if err := database.DB.Preload("Client").Preload("Provider").Preload("Service").First(&transaction, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
		}
		return
	}

	if transaction.ClientID != user.ID && transaction.ProviderID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not part of this transaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"transaction": transaction}})
}
