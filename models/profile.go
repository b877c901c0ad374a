package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeClient   UserType = "client"
	UserTypeProvider UserType = "provider"
)

// Profile is the application-level user record. The authentication
// identity (email + password hash) lives on the same row.
type Profile struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" gorm:"size:255;uniqueIndex;not null"`
	FullName     string   `json:"full_name" gorm:"size:255;not null"`
	Phone        *string  `json:"phone" gorm:"size:20"`
	PasswordHash string   `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	UserType     UserType `json:"user_type" gorm:"type:varchar(20);not null;default:'client';check:user_type IN ('client','provider')"`
	AvatarURL    *string  `json:"avatar_url" gorm:"size:255"`
	IsActive     bool     `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Services []Service `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
	Wallet   *Wallet   `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the Profile model
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate is a GORM hook that runs before creating a profile
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.UserType == "" {
		p.UserType = UserTypeClient
	}
	return nil
}

// IsValidUserType checks if the user type is valid
func (p *Profile) IsValidUserType() bool {
	switch p.UserType {
	case UserTypeClient, UserTypeProvider:
		return true
	default:
		return false
	}
}

// IsProvider checks if the profile belongs to a service provider
func (p *Profile) IsProvider() bool {
	return p.UserType == UserTypeProvider
}

// IsClient checks if the profile belongs to a service client
func (p *Profile) IsClient() bool {
	return p.UserType == UserTypeClient
}

// ProfileUpdate represents the request structure for patching a profile
type ProfileUpdate struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}
