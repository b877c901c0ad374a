package routes

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"servicelink-server/config"
	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterAuthRoutes registers the public authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/signup", signUp)
	router.POST("/signin", signIn)
	router.POST("/refresh", refreshToken)
	router.POST("/signout", signOut)
}

// RegisterAuthProtectedRoutes registers authenticated session routes
func RegisterAuthProtectedRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", getCurrentUser)
}

func signUp(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8,max=128"`
		FullName string `json:"full_name" binding:"required,min=2,max=100"`
		UserType string `json:"user_type" binding:"required,oneof=client provider"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = middleware.SanitizeInput(req.FullName)
	req.Phone = strings.TrimSpace(req.Phone)

	if req.Phone != "" && !middleware.ValidatePhoneNumber(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid phone number",
			"message": "Phone number must be in international format, e.g. +33612345678",
		})
		return
	}

	if req.Phone != "" {
		var phoneOwner models.Profile
		if err := database.DB.Where("phone = ?", req.Phone).First(&phoneOwner).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Phone number already in use",
				"message": "Another account already uses this phone number",
			})
			return
		}
	}

	isStrong, details := middleware.ValidatePasswordStrength(req.Password)
	if !isStrong {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Weak password",
			"message": "Password does not meet security requirements",
			"details": details,
		})
		return
	}

	var existing models.Profile
	if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "User already exists",
			"message": "An account with this email already exists",
		})
		return
	}

	hashedPassword, err := jwtService.HashPassword(req.Password)
	if err != nil {
		log.Printf("❌ Password hashing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to process password",
		})
		return
	}

	user := models.Profile{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hashedPassword,
		UserType:     models.UserType(req.UserType),
		IsActive:     true,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	// Profile and wallet are provisioned together
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.Wallet{
			UserID:   user.ID,
			Currency: config.AppConfig.Wallet.DefaultCurrency,
		}
		return tx.Create(&wallet).Error
	})
	if err != nil {
		// A concurrent signup can slip past the existence check and land
		// on the unique index; report it the same way
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "User already exists",
				"message": "An account with this email already exists",
			})
			return
		}
		log.Printf("❌ User creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create account",
		})
		return
	}

	tokenPair, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		log.Printf("❌ Token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to generate authentication tokens",
		})
		return
	}

	log.Printf("✅ User created successfully: %d", user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Account created successfully",
		"data": gin.H{
			"user":   user,
			"tokens": tokenPair,
		},
	})
}

func signIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.Profile
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Same response as a bad password, no account enumeration
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if !jwtService.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "User inactive",
			"message": "User account is deactivated",
		})
		return
	}

	tokenPair, err := jwtService.GenerateTokenPair(user.ID, c.GetHeader("X-Device-ID"), c.GetHeader("User-Agent"), c.ClientIP())
	if err != nil {
		log.Printf("❌ Token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to generate authentication tokens",
		})
		return
	}

	log.Printf("✅ User signed in: %d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":   user,
			"tokens": tokenPair,
		},
	})
}

func refreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid refresh token",
			"message": "Refresh token is invalid or expired",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"tokens": tokenPair},
	})
}

func signOut(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid refresh token",
			"message": "Refresh token is invalid or already revoked",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Signed out successfully",
	})
}

func getCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": user},
	})
}

// isUniqueViolation reports whether err comes from a unique index, across
// the postgres and sqlite drivers
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
