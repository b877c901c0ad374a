package models

import (
	"time"
)

// TransferMethod is how a peer transfer is addressed
type TransferMethod string

const (
	TransferMethodLink        TransferMethod = "link"
	TransferMethodQRCode      TransferMethod = "qr_code"
	TransferMethodPhoneNumber TransferMethod = "phone_number"
)

// InternalTransactionStatus represents the settlement state of a wallet transfer
type InternalTransactionStatus string

const (
	// TransferStatusPending means funds are held and waiting to be claimed
	TransferStatusPending InternalTransactionStatus = "pending"
	// TransferStatusCompleted means the receiver has been credited
	TransferStatusCompleted InternalTransactionStatus = "completed"
	// TransferStatusRefunded means an unclaimed transfer was returned to the sender
	TransferStatusRefunded InternalTransactionStatus = "refunded"
)

// InternalTransaction is a peer-to-peer wallet movement, distinct from a
// service-payment transaction
type InternalTransaction struct {
	ID               uint                      `json:"id" gorm:"primaryKey"`
	SenderID         *uint                     `json:"sender_id" gorm:"index"`
	Sender           *Profile                  `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	ReceiverID       *uint                     `json:"receiver_id" gorm:"index"`
	Receiver         *Profile                  `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Amount           float64                   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency         string                    `json:"currency" gorm:"size:3;not null;default:'EUR'"`
	TransactionType  string                    `json:"transaction_type" gorm:"size:50;not null"` // transfer
	Method           TransferMethod            `json:"method" gorm:"type:varchar(20);not null;check:method IN ('link','qr_code','phone_number')"`
	ReferenceData    string                    `json:"reference_data" gorm:"size:255;index"`
	Status           InternalTransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Description      string                    `json:"description" gorm:"type:text"`
	ServiceRequestID *uint                     `json:"service_request_id"`
	CreatedAt        time.Time                 `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time                 `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the InternalTransaction model
func (InternalTransaction) TableName() string {
	return "internal_transactions"
}

// IsClaimable reports whether the transfer is still waiting for a receiver
func (t *InternalTransaction) IsClaimable() bool {
	return t.Status == TransferStatusPending && t.ReceiverID == nil
}

// TransferCreate represents the request structure for sending money
type TransferCreate struct {
	Amount      float64        `json:"amount" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Method      TransferMethod `json:"method" binding:"required,oneof=link qr_code phone_number"`
	Recipient   string         `json:"recipient"` // phone number for the phone_number method
}
