package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/config"
	"github.com/jmlee/fantasy-shop-backend/internal/app/controller"
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
	"github.com/jmlee/fantasy-shop-backend/internal/router"
	"github.com/jmlee/fantasy-shop-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryTokenStore replaces the Redis-backed refresh token store in tests
type memoryTokenStore struct {
	mu      sync.Mutex
	records map[string]bool
}

func newMemoryTokenStore() *memoryTokenStore {
	return &memoryTokenStore{records: make(map[string]bool)}
}

func (s *memoryTokenStore) key(userID uint, token string) string {
	return fmt.Sprintf("%d:%s", userID, token)
}

func (s *memoryTokenStore) Save(_ context.Context, userID uint, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[s.key(userID, token)] = true
	return nil
}

func (s *memoryTokenStore) Exists(_ context.Context, userID uint, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[s.key(userID, token)], nil
}

func (s *memoryTokenStore) Delete(_ context.Context, userID uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, s.key(userID, token))
	return nil
}

func (s *memoryTokenStore) DeleteAll(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := fmt.Sprintf("%d:", userID)
	for k := range s.records {
		if strings.HasPrefix(k, prefix) {
			delete(s.records, k)
		}
	}
	return nil
}

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
		JWT: config.JWTConfig{
			AccessSecret:       "test-access-secret",
			RefreshSecret:      "test-refresh-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	inventoryRepo := repository.NewInventoryRepository(testDB)

	// No Kakao/Firebase clients and no Redis in the integration stack.
	// Social login responds as unconfigured and the rate limiter passes through.
	authService := service.NewAuthService(userRepo, newMemoryTokenStore(), nil, nil, cfg.JWT)
	itemService := service.NewItemService(itemRepo, categoryRepo, orderRepo, nil, time.Hour)
	cartService := service.NewCartService(cartRepo, itemRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, testDB)
	inventoryService := service.NewInventoryService(inventoryRepo)
	adminService := service.NewAdminService(itemRepo, orderRepo)

	r := router.NewRouter(
		controller.NewAuthController(authService, nil),
		controller.NewItemController(itemService),
		controller.NewCartController(cartService),
		controller.NewOrderController(orderService),
		controller.NewInventoryController(inventoryService),
		controller.NewAdminController(adminService),
		middleware.NewAuthMiddleware(cfg.JWT.AccessSecret),
		middleware.NewRateLimitMiddleware(nil, 0, 0),
		cfg,
	)

	return &TestServer{Router: r.Setup(), DB: testDB}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

// seedAdmin inserts an admin account directly so admin routes can be exercised
func seedAdmin(t *testing.T, testDB *gorm.DB) {
	hash, err := util.HashPassword("admin-password")
	require.NoError(t, err)
	admin := &model.User{
		Email:        "admin@example.com",
		PasswordHash: hash,
		Nickname:     "운영자",
		Role:         model.RoleAdmin,
		Provider:     model.ProviderLocal,
	}
	require.NoError(t, testDB.Create(admin).Error)
}

func login(t *testing.T, ts *TestServer, email, password string) (accessToken, refreshToken string) {
	w := ts.request(t, "POST", "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	return data["accessToken"].(string), data["refreshToken"].(string)
}

func TestCompleteShopperJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)
	seedAdmin(t, ts.DB)

	// 1. Register a shopper
	t.Log("Step 1: Register")
	w := ts.request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
		"nickname": "용감한구매자",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 2. Login
	t.Log("Step 2: Login")
	accessToken, refreshToken := login(t, ts, "buyer@example.com", "password123")

	// 3. Admin stocks the shop through the admin API
	t.Log("Step 3: Admin creates items")
	adminToken, _ := login(t, ts, "admin@example.com", "admin-password")

	w = ts.request(t, "POST", "/api/admin/items", adminToken, map[string]interface{}{
		"name":    "마법 포인터 검",
		"price":   5000,
		"rarity":  "COMMON",
		"statInt": 5,
		"csTag":   "pointer",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	sword := decodeData(t, w)
	swordID := uint(sword["id"].(float64))

	w = ts.request(t, "POST", "/api/admin/items", adminToken, map[string]interface{}{
		"name":   "강화 메모리 방패",
		"price":  8000,
		"rarity": "RARE",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	shield := decodeData(t, w)
	shieldID := uint(shield["id"].(float64))

	w = ts.request(t, "POST", "/api/admin/items", adminToken, map[string]interface{}{
		"name":     "비매품 디버거 부적",
		"price":    30000,
		"rarity":   "EPIC",
		"isActive": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 4. Browse the catalog; shoppers never see the inactive item but the
	// admin listing still does
	t.Log("Step 4: Browse items")
	w = ts.request(t, "GET", "/api/items?sort=price&order=asc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeData(t, w)
	assert.EqualValues(t, 2, page["totalElements"])

	w = ts.request(t, "GET", "/api/admin/items", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminPage := decodeData(t, w)
	assert.EqualValues(t, 3, adminPage["totalElements"])

	// 5. Fill the cart; re-adding the same item merges quantities
	t.Log("Step 5: Add to cart")
	w = ts.request(t, "POST", "/api/cart", accessToken, map[string]interface{}{
		"itemId":   swordID,
		"quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.request(t, "POST", "/api/cart", accessToken, map[string]interface{}{
		"itemId":   swordID,
		"quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	merged := decodeData(t, w)
	assert.EqualValues(t, 2, merged["quantity"])

	w = ts.request(t, "POST", "/api/cart", accessToken, map[string]interface{}{
		"itemId":   shieldID,
		"quantity": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// 6. Checkout
	t.Log("Step 6: Checkout")
	w = ts.request(t, "POST", "/api/orders", accessToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	order := decodeData(t, w)
	assert.EqualValues(t, 2*5000+8000, order["totalPrice"])
	assert.Equal(t, "PAID", order["status"])

	// 7. Cart is empty, purchases are in the inventory
	t.Log("Step 7: Verify cart and inventory")
	w = ts.request(t, "GET", "/api/cart", accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cartCount int64
	ts.DB.Model(&model.CartItem{}).Count(&cartCount)
	assert.Zero(t, cartCount)

	w = ts.request(t, "GET", "/api/inventory", accessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var inventoryCount int64
	ts.DB.Model(&model.Inventory{}).Count(&inventoryCount)
	assert.EqualValues(t, 2, inventoryCount)

	// 8. Refresh rotates the token pair; the old refresh token dies
	t.Log("Step 8: Refresh tokens")
	w = ts.request(t, "POST", "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, "POST", "/api/auth/refresh", "", map[string]string{
		"refreshToken": refreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_REFRESH_INVALID")
}

func TestAdminRoutesRejectShoppers(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	w := ts.request(t, "POST", "/api/auth/register", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "password123",
		"nickname": "일반유저",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	accessToken, _ := login(t, ts, "buyer@example.com", "password123")

	// No token at all
	w = ts.request(t, "GET", "/api/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_NO_TOKEN")

	// Valid token, wrong role
	w = ts.request(t, "GET", "/api/admin/orders", accessToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_FORBIDDEN")

	w = ts.request(t, "POST", "/api/admin/items", accessToken, map[string]interface{}{
		"name":   "해킹된 아이템",
		"price":  1,
		"rarity": "COMMON",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	for _, path := range []string{"/api/cart", "/api/orders", "/api/inventory"} {
		w := ts.request(t, "GET", path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	// Garbage token
	w := ts.request(t, "GET", "/api/cart", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_INVALID")
}

func TestSocialLoginUnconfigured(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	// Without configured providers the endpoints degrade to 422
	w := ts.request(t, "GET", "/api/auth/kakao/login", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "SOCIAL_LOGIN_FAILED")

	w = ts.request(t, "POST", "/api/auth/firebase", "", map[string]string{
		"idToken": "some-token",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	w := ts.request(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
