package service

import (
	"context"
	"testing"
	"time"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupItemServiceTest(t *testing.T) (*gorm.DB, ItemService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	itemRepo := repository.NewItemRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	// nil cache: popular items always take the live-query path
	svc := NewItemService(itemRepo, categoryRepo, orderRepo, nil, time.Hour)
	return testDB, svc
}

func seedServiceCatalog(t *testing.T, testDB *gorm.DB) []*model.Item {
	items := []*model.Item{
		{Name: "마법 포인터 검", Price: 5000, Rarity: model.RarityCommon, StatInt: 5, IsActive: true},
		{Name: "강화 메모리 방패", Price: 12000, Rarity: model.RarityRare, StatInt: 12, IsActive: true},
		{Name: "숨겨진 아이템", Price: 7000, Rarity: model.RarityEpic, StatInt: 20, IsActive: false},
	}
	for _, item := range items {
		require.NoError(t, testDB.Create(item).Error)
	}
	return items
}

func TestItemService_ListItems_HidesInactive(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)
	seedServiceCatalog(t, testDB)

	page, err := svc.ListItems(ListOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalElements)
	for _, item := range page.Content {
		assert.True(t, item.IsActive)
	}
}

func TestItemService_ListItems_IncludeInactive(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)
	seedServiceCatalog(t, testDB)

	// The admin listing must keep showing items taken off sale
	page, err := svc.ListItems(ListOptions{IncludeInactive: true})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalElements)

	inactive := 0
	for _, item := range page.Content {
		if !item.IsActive {
			inactive++
		}
	}
	assert.Equal(t, 1, inactive)
}

func TestItemService_ListItems_SortWhitelist(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)
	seedServiceCatalog(t, testDB)

	page, err := svc.ListItems(ListOptions{Sort: "price", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "price ASC", page.Sort)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "마법 포인터 검", page.Content[0].Name)

	// Anything outside the whitelist is rejected, never passed into SQL
	_, err = svc.ListItems(ListOptions{Sort: "password_hash"})
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = svc.ListItems(ListOptions{Sort: "price; DROP TABLE items"})
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = svc.ListItems(ListOptions{Sort: "price", Order: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidSort)

	_, err = svc.ListItems(ListOptions{Rarity: "MYTHIC"})
	assert.ErrorIs(t, err, ErrInvalidSort)
}

func TestItemService_ListItems_PaginationClamps(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)
	seedServiceCatalog(t, testDB)

	page, err := svc.ListItems(ListOptions{Page: -5, Size: 500})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, MaxPageSize, page.Size)

	page, err = svc.ListItems(ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.Equal(t, 1, page.TotalPages)
}

func TestItemService_GetItem(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)
	items := seedServiceCatalog(t, testDB)

	found, err := svc.GetItem(items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "마법 포인터 검", found.Name)

	// Inactive and missing items are indistinguishable to shoppers
	_, err = svc.GetItem(items[2].ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.GetItem(99999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemService_GetPopularItems_LiveFallback(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)
	items := seedServiceCatalog(t, testDB)

	user := createOrderTestUser(t, testDB, "popular@example.com")
	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusPaid,
		TotalPrice: 24000,
		OrderItems: []model.OrderItem{
			{ItemID: items[1].ID, Quantity: 2, Price: 12000},
		},
	}
	require.NoError(t, testDB.Create(order).Error)

	rows, err := svc.GetPopularItems(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, items[1].ID, rows[0].ItemID)
	assert.EqualValues(t, 2, rows[0].TotalSold)
}

func TestItemService_GetCategories(t *testing.T) {
	testDB, svc := setupItemServiceTest(t)
	defer db.CleanupTestDB(testDB)

	parent := &model.Category{Name: "전공 기초"}
	require.NoError(t, testDB.Create(parent).Error)
	child := &model.Category{Name: "자료구조", ParentID: &parent.ID}
	require.NoError(t, testDB.Create(child).Error)

	categories, err := svc.GetCategories()
	require.NoError(t, err)

	// Roots only, children preloaded underneath
	require.Len(t, categories, 1)
	assert.Equal(t, "전공 기초", categories[0].Name)
	require.Len(t, categories[0].Children, 1)
	assert.Equal(t, "자료구조", categories[0].Children[0].Name)
}
