package models

import (
	"time"
)

// Wallet is a per-user stored balance used for peer transfers.
// One wallet per profile, created at signup.
type Wallet struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Balance   float64   `json:"balance" gorm:"type:decimal(12,2);not null;default:0"`
	Currency  string    `json:"currency" gorm:"size:3;not null;default:'EUR'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Wallet model
func (Wallet) TableName() string {
	return "wallets"
}
