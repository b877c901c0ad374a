package routes

import (
	"net/http"
	"testing"

	"servicelink-server/database"
	"servicelink-server/models"
)

func TestToggleFavorite(t *testing.T) {
	router := setupTestRouter(t)
	client, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")
	provider, _ := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")

	service := models.Service{ProviderID: provider.ID, Title: "Jardinage", Description: "d", Category: "garden", Price: 30, IsActive: true}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}

	countFavorites := func() int64 {
		var n int64
		database.DB.Model(&models.Favorite{}).
			Where("user_id = ? AND service_id = ?", client.ID, service.ID).
			Count(&n)
		return n
	}

	// First toggle adds
	w := doJSON(t, router, http.MethodPost, "/api/v1/favorites/toggle", clientToken, map[string]interface{}{"service_id": service.ID})
	assertStatus(t, w, http.StatusOK)
	body := decodeResponse(t, w)
	data := body["data"].(map[string]interface{})
	if data["favorited"] != true {
		t.Errorf("favorited = %v, want true", data["favorited"])
	}
	if got := countFavorites(); got != 1 {
		t.Errorf("favorites = %d, want 1", got)
	}

	// Second toggle removes, leaving exactly zero rows
	w = doJSON(t, router, http.MethodPost, "/api/v1/favorites/toggle", clientToken, map[string]interface{}{"service_id": service.ID})
	assertStatus(t, w, http.StatusOK)
	body = decodeResponse(t, w)
	data = body["data"].(map[string]interface{})
	if data["favorited"] != false {
		t.Errorf("favorited = %v, want false", data["favorited"])
	}
	if got := countFavorites(); got != 0 {
		t.Errorf("favorites = %d, want 0", got)
	}

	// Third toggle adds again, never more than one row
	w = doJSON(t, router, http.MethodPost, "/api/v1/favorites/toggle", clientToken, map[string]interface{}{"service_id": service.ID})
	assertStatus(t, w, http.StatusOK)
	if got := countFavorites(); got != 1 {
		t.Errorf("favorites = %d, want 1", got)
	}
}

func TestToggleFavoriteUnknownService(t *testing.T) {
	router := setupTestRouter(t)
	_, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")

	w := doJSON(t, router, http.MethodPost, "/api/v1/favorites/toggle", clientToken, map[string]interface{}{"service_id": 4242})
	assertStatus(t, w, http.StatusNotFound)
}

func TestListFavorites(t *testing.T) {
	router := setupTestRouter(t)
	client, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")
	provider, _ := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")

	service := models.Service{ProviderID: provider.ID, Title: "Peinture", Description: "d", Category: "paint", Price: 90, IsActive: true}
	if err := database.DB.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	favorite := models.Favorite{UserID: client.ID, ServiceID: service.ID}
	if err := database.DB.Create(&favorite).Error; err != nil {
		t.Fatalf("create favorite: %v", err)
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/favorites", clientToken, nil)
	assertStatus(t, w, http.StatusOK)

	body := decodeResponse(t, w)
	data := body["data"].(map[string]interface{})
	favorites := data["favorites"].([]interface{})
	if len(favorites) != 1 {
		t.Fatalf("favorites = %d, want 1", len(favorites))
	}
}
