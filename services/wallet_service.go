package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"servicelink-server/config"
	"servicelink-server/database"
	"servicelink-server/models"
)

// Wallet errors surfaced to handlers
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrRecipientNotFound   = errors.New("recipient not found")
	ErrRecipientRequired   = errors.New("recipient phone number is required")
	ErrSelfTransfer        = errors.New("cannot transfer to yourself")
	ErrTransferNotFound    = errors.New("transfer not found")
	ErrTransferClaimed     = errors.New("transfer has already been claimed")
	ErrSelfClaim           = errors.New("cannot claim your own transfer")
)

// WalletService performs wallet transfers. All balance movements run inside
// a database transaction with a conditional debit, so a wallet can never go
// negative even under concurrent transfers.
type WalletService struct {
	notifications *NotificationService
}

// NewWalletService creates a new wallet service
func NewWalletService(notifications *NotificationService) *WalletService {
	return &WalletService{notifications: notifications}
}

// GetOrCreateWallet returns the user's wallet, provisioning an empty one if
// signup predates wallet provisioning
func (ws *WalletService) GetOrCreateWallet(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := database.DB.Where(models.Wallet{UserID: userID}).
		Attrs(models.Wallet{Currency: config.AppConfig.Wallet.DefaultCurrency}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// Transfer moves money out of the sender's wallet. The phone_number method
// settles immediately against the recipient's wallet; link and qr_code hold
// the funds under a claim reference until redeemed or expired.
func (ws *WalletService) Transfer(sender models.Profile, req models.TransferCreate) (*models.InternalTransaction, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Description == "" {
		return nil, ErrDescriptionRequired
	}

	wallet, err := ws.GetOrCreateWallet(sender.ID)
	if err != nil {
		return nil, err
	}
	if req.Amount > wallet.Balance {
		return nil, ErrInsufficientBalance
	}

	var receiver *models.Profile
	var reference string

	switch req.Method {
	case models.TransferMethodPhoneNumber:
		if req.Recipient == "" {
			return nil, ErrRecipientRequired
		}
		var p models.Profile
		if err := database.DB.Where("phone = ?", req.Recipient).First(&p).Error; err != nil {
			return nil, ErrRecipientNotFound
		}
		if p.ID == sender.ID {
			return nil, ErrSelfTransfer
		}
		receiver = &p
		reference = req.Recipient
	case models.TransferMethodLink:
		reference = "payment-link-" + uuid.New().String()
	case models.TransferMethodQRCode:
		reference = "qr-" + uuid.New().String()
	default:
		return nil, fmt.Errorf("unsupported transfer method: %s", req.Method)
	}

	transfer := &models.InternalTransaction{
		SenderID:        &sender.ID,
		Amount:          req.Amount,
		Currency:        wallet.Currency,
		TransactionType: "transfer",
		Method:          req.Method,
		ReferenceData:   reference,
		Description:     req.Description,
		Status:          models.TransferStatusPending,
	}
	if receiver != nil {
		transfer.ReceiverID = &receiver.ID
		transfer.Status = models.TransferStatusCompleted
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Conditional debit: rejects concurrent overdraws without locks
		res := tx.Model(&models.Wallet{}).
			Where("user_id = ? AND balance >= ?", sender.ID, req.Amount).
			Update("balance", gorm.Expr("balance - ?", req.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		if receiver != nil {
			if err := creditWallet(tx, receiver.ID, req.Amount); err != nil {
				return err
			}
		}

		return tx.Create(transfer).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Transfer %d created: %.2f %s from user %d via %s", transfer.ID, transfer.Amount, transfer.Currency, sender.ID, transfer.Method)

	ws.notifications.CreateWithTransactionEmail(sender,
		"Transaction envoyée",
		fmt.Sprintf("Vous avez envoyé %.2f€ : %s", req.Amount, req.Description),
		models.NotificationTypeTransferSent, &transfer.ID,
		req.Amount, req.Description, TransactionEmailSent)

	if receiver != nil {
		ws.notifications.CreateWithTransactionEmail(*receiver,
			"Transaction reçue",
			fmt.Sprintf("Vous avez reçu %.2f€ de %s : %s", req.Amount, sender.FullName, req.Description),
			models.NotificationTypeTransferReceived, &transfer.ID,
			req.Amount, req.Description, TransactionEmailReceived)
	}

	return transfer, nil
}

// Claim redeems a pending link or qr_code transfer for the claimer.
// Exactly-once: the status flips pending→completed in a conditional update.
func (ws *WalletService) Claim(claimer models.Profile, reference string) (*models.InternalTransaction, error) {
	var transfer models.InternalTransaction
	if err := database.DB.Where("reference_data = ?", reference).First(&transfer).Error; err != nil {
		return nil, ErrTransferNotFound
	}

	if transfer.Status != models.TransferStatusPending || transfer.ReceiverID != nil {
		return nil, ErrTransferClaimed
	}
	if transfer.SenderID != nil && *transfer.SenderID == claimer.ID {
		return nil, ErrSelfClaim
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InternalTransaction{}).
			Where("id = ? AND status = ? AND receiver_id IS NULL", transfer.ID, models.TransferStatusPending).
			Updates(map[string]interface{}{
				"receiver_id": claimer.ID,
				"status":      models.TransferStatusCompleted,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTransferClaimed
		}

		return creditWallet(tx, claimer.ID, transfer.Amount)
	})
	if err != nil {
		return nil, err
	}

	transfer.ReceiverID = &claimer.ID
	transfer.Status = models.TransferStatusCompleted

	log.Printf("✅ Transfer %d claimed by user %d", transfer.ID, claimer.ID)

	ws.notifications.CreateWithTransactionEmail(claimer,
		"Transaction reçue",
		fmt.Sprintf("Vous avez reçu %.2f€ : %s", transfer.Amount, transfer.Description),
		models.NotificationTypeTransferReceived, &transfer.ID,
		transfer.Amount, transfer.Description, TransactionEmailReceived)

	if transfer.SenderID != nil {
		ws.notifications.Create(*transfer.SenderID,
			"Transfert réclamé",
			fmt.Sprintf("Votre transfert de %.2f€ a été réclamé par %s.", transfer.Amount, claimer.FullName),
			models.NotificationTypeSystem, &transfer.ID)
	}

	return &transfer, nil
}

// RefundExpired returns unclaimed link/qr transfers older than ttl to their
// senders. Returns the number of refunded transfers.
func (ws *WalletService) RefundExpired(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	var expired []models.InternalTransaction
	err := database.DB.
		Where("status = ? AND receiver_id IS NULL AND method IN ? AND created_at <= ?",
			models.TransferStatusPending,
			[]models.TransferMethod{models.TransferMethodLink, models.TransferMethodQRCode},
			cutoff).
		Find(&expired).Error
	if err != nil {
		log.Printf("❌ Error checking expired transfers: %v", err)
		return 0
	}

	refunded := 0
	for _, transfer := range expired {
		if ws.refund(transfer) {
			refunded++
		}
	}
	return refunded
}

// refund flips one pending transfer to refunded and returns the held funds
func (ws *WalletService) refund(transfer models.InternalTransaction) bool {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.InternalTransaction{}).
			Where("id = ? AND status = ? AND receiver_id IS NULL", transfer.ID, models.TransferStatusPending).
			Update("status", models.TransferStatusRefunded)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTransferClaimed
		}

		if transfer.SenderID == nil {
			return nil
		}
		return creditWallet(tx, *transfer.SenderID, transfer.Amount)
	})
	if err != nil {
		log.Printf("❌ Failed to refund transfer %d: %v", transfer.ID, err)
		return false
	}

	log.Printf("✅ Transfer %d refunded", transfer.ID)

	if transfer.SenderID != nil {
		ws.notifications.Create(*transfer.SenderID,
			"Transfert expiré",
			fmt.Sprintf("Votre transfert de %.2f€ n'a pas été réclamé et a été remboursé.", transfer.Amount),
			models.NotificationTypeSystem, &transfer.ID)
	}
	return true
}

// creditWallet adds amount to the user's wallet, creating it if missing
func creditWallet(tx *gorm.DB, userID uint, amount float64) error {
	var wallet models.Wallet
	err := tx.Where(models.Wallet{UserID: userID}).
		Attrs(models.Wallet{Currency: config.AppConfig.Wallet.DefaultCurrency}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", amount)).Error
}
