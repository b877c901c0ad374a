package routes

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"servicelink-server/database"
	"servicelink-server/models"
)

func seedCatalog(t *testing.T, providerID uint) {
	t.Helper()

	catalog := []models.Service{
		{ProviderID: providerID, Title: "Réparation plomberie", Description: "Fuites et canalisations", Category: "plumbing", Price: 60, IsActive: true},
		{ProviderID: providerID, Title: "Installation électrique", Description: "Tableaux et prises", Category: "electric", Price: 120, IsActive: true},
		{ProviderID: providerID, Title: "Jardinage", Description: "Tonte et taille", Category: "garden", Price: 35, IsActive: true},
		{ProviderID: providerID, Title: "Ancien service", Description: "Retiré du catalogue", Category: "plumbing", Price: 40, IsActive: false},
	}
	for i := range catalog {
		if err := database.DB.Create(&catalog[i]).Error; err != nil {
			t.Fatalf("create service: %v", err)
		}
	}
}

func listServicesWith(t *testing.T, router *gin.Engine, query string) []interface{} {
	t.Helper()

	w := doJSON(t, router, http.MethodGet, "/api/v1/services"+query, "", nil)
	assertStatus(t, w, http.StatusOK)
	body := decodeResponse(t, w)
	data := body["data"].(map[string]interface{})
	return data["services"].([]interface{})
}

func TestListServicesFilters(t *testing.T) {
	router := setupTestRouter(t)
	provider, _ := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")
	seedCatalog(t, provider.ID)

	// Inactive services never show up
	all := listServicesWith(t, router, "")
	if len(all) != 3 {
		t.Errorf("all services = %d, want 3", len(all))
	}

	byCategory := listServicesWith(t, router, "?category=plumbing")
	if len(byCategory) != 1 {
		t.Errorf("plumbing services = %d, want 1", len(byCategory))
	}

	byText := listServicesWith(t, router, "?q=électrique")
	if len(byText) != 1 {
		t.Errorf("text match = %d, want 1", len(byText))
	}

	byPrice := listServicesWith(t, router, "?min_price=50&max_price=100")
	if len(byPrice) != 1 {
		t.Errorf("price range = %d, want 1", len(byPrice))
	}

	paged := listServicesWith(t, router, "?limit=2")
	if len(paged) != 2 {
		t.Errorf("paged = %d, want 2", len(paged))
	}
}

func TestProviderServiceOwnership(t *testing.T) {
	router := setupTestRouter(t)
	provider, providerToken := createUser(t, "provider@test.dev", "Paul", models.UserTypeProvider, "")
	_, intruderToken := createUser(t, "intruder@test.dev", "Iris", models.UserTypeProvider, "")
	_, clientToken := createUser(t, "client@test.dev", "Claire", models.UserTypeClient, "")

	// Clients cannot publish services
	w := doJSON(t, router, http.MethodPost, "/api/v1/services", clientToken, map[string]interface{}{
		"title":       "Bricolage",
		"description": "Petits travaux",
		"category":    "handyman",
		"price":       25.0,
	})
	assertStatus(t, w, http.StatusForbidden)

	// Providers can
	w = doJSON(t, router, http.MethodPost, "/api/v1/services", providerToken, map[string]interface{}{
		"title":       "Bricolage",
		"description": "Petits travaux",
		"category":    "handyman",
		"price":       25.0,
	})
	assertStatus(t, w, http.StatusCreated)

	var service models.Service
	if err := database.DB.Where("provider_id = ?", provider.ID).First(&service).Error; err != nil {
		t.Fatalf("service not created: %v", err)
	}

	// Only the owner can update or delete
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/services/%d", service.ID), intruderToken, map[string]interface{}{"price": 99.0})
	assertStatus(t, w, http.StatusForbidden)
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/services/%d", service.ID), intruderToken, nil)
	assertStatus(t, w, http.StatusForbidden)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/services/%d", service.ID), providerToken, map[string]interface{}{"price": 30.0})
	assertStatus(t, w, http.StatusOK)

	// Delete is a soft deactivate
	w = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/services/%d", service.ID), providerToken, nil)
	assertStatus(t, w, http.StatusOK)

	if err := database.DB.First(&service, service.ID).Error; err != nil {
		t.Fatalf("service row removed: %v", err)
	}
	if service.IsActive {
		t.Errorf("service still active after delete")
	}
	if service.Price != 30 {
		t.Errorf("price = %.2f, want 30.00", service.Price)
	}
}
