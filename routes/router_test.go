package routes

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"servicelink-server/config"
	"servicelink-server/database"
	"servicelink-server/middleware"
	"servicelink-server/models"
)

// setupTestRouter builds the full API router against an in-memory database
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.Load()
	database.DB = db
	InitServices(nil)

	router := gin.New()
	api := router.Group("/api/v1")

	authRoutes := api.Group("/auth")
	RegisterAuthRoutes(authRoutes)

	serviceRoutes := api.Group("/services")
	RegisterServiceRoutes(serviceRoutes)
	RegisterPublicRatingRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	RegisterAuthProtectedRoutes(protected)
	RegisterProfileRoutes(protected)
	RegisterProviderServiceRoutes(protected)
	RegisterServiceRequestRoutes(protected)
	RegisterBookingRoutes(protected)
	RegisterWalletRoutes(protected)
	RegisterTransactionRoutes(protected)
	RegisterFavoriteRoutes(protected)
	RegisterNotificationRoutes(protected)
	RegisterStatsRoutes(protected)
	RegisterRatingRoutes(protected)

	return router
}

// createUser inserts a profile with a zero-balance wallet and returns it with
// a valid access token
func createUser(t *testing.T, email, fullName string, userType models.UserType, phone string) (models.Profile, string) {
	t.Helper()

	hash, err := jwtService.HashPassword("Passw0rd123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.Profile{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		UserType:     userType,
		IsActive:     true,
	}
	if phone != "" {
		user.Phone = &phone
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}

	wallet := models.Wallet{UserID: user.ID, Currency: "EUR"}
	if err := database.DB.Create(&wallet).Error; err != nil {
		t.Fatalf("create wallet: %v", err)
	}

	pair, err := jwtService.GenerateTokenPair(user.ID, "test-device", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("generate tokens: %v", err)
	}

	return user, pair.AccessToken
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
