package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"

	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// RegisterProfileRoutes registers profile management routes (protected)
func RegisterProfileRoutes(router *gin.RouterGroup) {
	router.PUT("/profile", updateProfile)
	router.POST("/profile/avatar", uploadAvatar)
}

func updateProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "message": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		name := middleware.SanitizeInput(*req.FullName)
		if len(name) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name", "message": "Full name must be at least 2 characters"})
			return
		}
		updates["full_name"] = name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone != "" && !middleware.ValidatePhoneNumber(phone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number", "message": "Phone number must be in international format"})
			return
		}
		if phone != "" {
			var other models.Profile
			if err := database.DB.Where("phone = ? AND id <> ?", phone, user.ID).First(&other).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Phone number already in use", "message": "Another account already uses this phone number"})
				return
			}
		}
		updates["phone"] = phone
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := database.DB.Model(&models.Profile{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Phone number already in use", "message": "Another account already uses this phone number"})
			return
		}
		log.Printf("❌ Profile update failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var updated models.Profile
	if err := database.DB.First(&updated, user.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"user": updated},
	})
}

// validateImageFile validates mimetype and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

func uploadAvatar(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file provided"})
		return
	}

	if !validateImageFile(header) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid avatar image"})
		return
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		log.Printf("❌ Cloudinary environment variables not set")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media storage not configured"})
		return
	}

	cld, err := cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", apiKey, apiSecret, cloudName))
	if err != nil {
		log.Printf("❌ Failed to initialize Cloudinary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Media storage initialization failed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Could not read file"})
		return
	}
	defer file.Close()

	overwrite := true
	unique := true
	up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:         "avatars/" + strconv.Itoa(int(user.ID)),
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		log.Printf("❌ Avatar upload failed for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}

	if err := database.DB.Model(&models.Profile{}).Where("id = ?", user.ID).Update("avatar_url", up.SecureURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store avatar URL"})
		return
	}

	log.Printf("✅ Avatar updated for user %d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"avatar_url": up.SecureURL},
	})
}
