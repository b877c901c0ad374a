package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
	"servicelink-server/services"
)

// RegisterWalletRoutes registers the wallet routes (protected)
func RegisterWalletRoutes(router *gin.RouterGroup) {
	router.GET("/wallet", getWallet)
	router.GET("/wallet/transactions", listWalletTransactions)
	router.POST("/wallet/send", sendTransfer)
	router.POST("/wallet/claim/:reference", claimTransfer)
}

func getWallet(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	wallet, err := walletService.GetOrCreateWallet(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"wallet": wallet}})
}

// walletTransactionView is a transfer with the counterpart's display name
// resolved for the history screen
type walletTransactionView struct {
	models.InternalTransaction
	Direction        string `json:"direction"`
	CounterpartyName string `json:"counterparty_name,omitempty"`
}

// listWalletTransactions returns the user's 20 most recent transfers
func listWalletTransactions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var transfers []models.InternalTransaction
	err := database.DB.
		Preload("Sender").
		Preload("Receiver").
		Where("sender_id = ? OR receiver_id = ?", user.ID, user.ID).
		Order("created_at DESC").
		Limit(20).
		Find(&transfers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	views := make([]walletTransactionView, 0, len(transfers))
	for _, t := range transfers {
		view := walletTransactionView{InternalTransaction: t}
		if t.SenderID != nil && *t.SenderID == user.ID {
			view.Direction = "sent"
			if t.Receiver != nil {
				view.CounterpartyName = t.Receiver.FullName
			}
		} else {
			view.Direction = "received"
			if t.Sender != nil {
				view.CounterpartyName = t.Sender.FullName
			}
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"transactions": views}})
}

// sendTransfer moves money out of the user's wallet via phone number, link
// or QR code
func sendTransfer(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.TransferCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	transfer, err := walletService.Transfer(user, req)
	if err != nil {
		respondWalletError(c, err)
		return
	}

	data := gin.H{"transfer": transfer}
	if transfer.Method == models.TransferMethodLink || transfer.Method == models.TransferMethodQRCode {
		data["payment_url"] = buildPaymentURL(c, transfer.ReferenceData)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

// claimTransfer redeems a pending link or qr_code transfer for the caller
func claimTransfer(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	reference := c.Param("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Référence manquante"})
		return
	}

	transfer, err := walletService.Claim(user, reference)
	if err != nil {
		respondWalletError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"transfer": transfer}})
}

// respondWalletError maps wallet service errors to the messages the app shows
func respondWalletError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant invalide"})
	case errors.Is(err, services.ErrDescriptionRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description requise"})
	case errors.Is(err, services.ErrInsufficientBalance):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Solde insuffisant"})
	case errors.Is(err, services.ErrRecipientRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Numéro de téléphone du destinataire requis"})
	case errors.Is(err, services.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Destinataire introuvable"})
	case errors.Is(err, services.ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vous ne pouvez pas vous envoyer de l'argent"})
	case errors.Is(err, services.ErrTransferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transfert introuvable"})
	case errors.Is(err, services.ErrTransferClaimed):
		c.JSON(http.StatusConflict, gin.H{"error": "Ce transfert a déjà été réclamé"})
	case errors.Is(err, services.ErrSelfClaim):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vous ne pouvez pas réclamer votre propre transfert"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de la transaction"})
	}
}

func buildPaymentURL(c *gin.Context, reference string) string {
	scheme := "https"
	if c.Request.TLS == nil {
		scheme = "http"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return fmt.Sprintf("%s://%s/payment?ref=%s", scheme, c.Request.Host, reference)
}
