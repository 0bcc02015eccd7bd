package service

import (
	"testing"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*gorm.DB, CartService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	cartRepo := repository.NewCartRepository(testDB)
	itemRepo := repository.NewItemRepository(testDB)
	return testDB, NewCartService(cartRepo, itemRepo)
}

func TestCartService_AddToCart_MergesOnReAdd(t *testing.T) {
	testDB, svc := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "cart@example.com")
	item := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)

	first, err := svc.AddToCart(user.ID, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	merged, err := svc.AddToCart(user.ID, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, merged.Quantity)
	assert.Equal(t, first.ID, merged.ID)

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
}

func TestCartService_AddToCart_Rejections(t *testing.T) {
	testDB, svc := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "cart@example.com")
	inactive := &model.Item{Name: "판매 중지 아이템", Price: 100, Rarity: model.RarityCommon, IsActive: false}
	require.NoError(t, testDB.Create(inactive).Error)

	_, err := svc.AddToCart(user.ID, 99999, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)

	// Inactive items read as missing for shoppers
	_, err = svc.AddToCart(user.ID, inactive.ID, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)

	item := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)
	_, err = svc.AddToCart(user.ID, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.AddToCart(user.ID, item.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	testDB, svc := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "cart@example.com")
	other := createOrderTestUser(t, testDB, "other@example.com")
	item := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)

	row, err := svc.AddToCart(user.ID, item.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateQuantity(user.ID, row.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	// Someone else's row reads as missing
	_, err = svc.UpdateQuantity(other.ID, row.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	_, err = svc.UpdateQuantity(user.ID, row.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.UpdateQuantity(user.ID, 99999, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	testDB, svc := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "cart@example.com")
	other := createOrderTestUser(t, testDB, "other@example.com")
	item := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)

	row, err := svc.AddToCart(user.ID, item.ID, 1)
	require.NoError(t, err)

	err = svc.RemoveFromCart(other.ID, row.ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	require.NoError(t, svc.RemoveFromCart(user.ID, row.ID))

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCartService_ClearCart(t *testing.T) {
	testDB, svc := setupCartServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "cart@example.com")
	sword := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)
	shield := createOrderTestItem(t, testDB, "강화 메모리 방패", 8000)

	_, err := svc.AddToCart(user.ID, sword.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(user.ID, shield.ID, 2)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(user.ID))

	cart, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)

	// Clearing an already empty cart is fine
	assert.NoError(t, svc.ClearCart(user.ID))
}
