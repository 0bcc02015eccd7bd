package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupAdminServiceTest(t *testing.T) (*gorm.DB, AdminService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	itemRepo := repository.NewItemRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	return testDB, NewAdminService(itemRepo, orderRepo)
}

func TestAdminService_CreateItem(t *testing.T) {
	testDB, svc := setupAdminServiceTest(t)
	defer db.CleanupTestDB(testDB)

	item, err := svc.CreateItem(ItemInput{
		Name:          "전설의 컴파일러 지팡이",
		Description:   "한 번에 빌드된다",
		Price:         150000,
		Rarity:        model.RarityLegendary,
		StatInt:       30,
		CsTag:         "compiler",
		StockQuantity: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.True(t, item.IsActive)

	inactive := false
	hidden, err := svc.CreateItem(ItemInput{
		Name:     "비공개 아이템",
		Price:    100,
		Rarity:   model.RarityCommon,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)

	// The inactive flag must survive the insert, not just the returned struct
	var stored model.Item
	require.NoError(t, testDB.First(&stored, hidden.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestAdminService_UpdateItem(t *testing.T) {
	testDB, svc := setupAdminServiceTest(t)
	defer db.CleanupTestDB(testDB)

	item, err := svc.CreateItem(ItemInput{
		Name:   "마법 포인터 검",
		Price:  5000,
		Rarity: model.RarityCommon,
	})
	require.NoError(t, err)

	newPrice := 7500
	newRarity := model.RarityRare
	updated, err := svc.UpdateItem(item.ID, ItemUpdate{
		Price:  &newPrice,
		Rarity: &newRarity,
	})
	require.NoError(t, err)
	assert.Equal(t, 7500, updated.Price)
	assert.Equal(t, model.RarityRare, updated.Rarity)
	// Untouched fields survive the patch
	assert.Equal(t, "마법 포인터 검", updated.Name)

	_, err = svc.UpdateItem(99999, ItemUpdate{Price: &newPrice})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAdminService_DeleteItem(t *testing.T) {
	testDB, svc := setupAdminServiceTest(t)
	defer db.CleanupTestDB(testDB)

	item, err := svc.CreateItem(ItemInput{
		Name:   "삭제될 아이템",
		Price:  100,
		Rarity: model.RarityCommon,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(item.ID))
	assert.ErrorIs(t, svc.DeleteItem(item.ID), ErrItemNotFound)
	assert.ErrorIs(t, svc.DeleteItem(99999), ErrItemNotFound)
}

func TestAdminService_Stats(t *testing.T) {
	testDB, svc := setupAdminServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "stats@example.com")
	item := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusPaid,
		TotalPrice: 15000,
		OrderItems: []model.OrderItem{
			{ItemID: item.ID, Quantity: 3, Price: 5000},
		},
	}
	require.NoError(t, testDB.Create(order).Error)

	orders, err := svc.GetAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "stats@example.com", orders[0].User.Email)

	popular, err := svc.GetPopularItems(0)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.EqualValues(t, 3, popular[0].TotalSold)

	top, err := svc.GetTopUsers(0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.EqualValues(t, 15000, top[0].TotalSpent)
}

func TestAdminService_ExportOrdersSummary(t *testing.T) {
	testDB, svc := setupAdminServiceTest(t)
	defer db.CleanupTestDB(testDB)

	user := createOrderTestUser(t, testDB, "export@example.com")
	item := createOrderTestItem(t, testDB, "마법 포인터 검", 5000)

	order := &model.Order{
		UserID:     user.ID,
		Status:     model.OrderStatusPaid,
		TotalPrice: 10000,
		OrderItems: []model.OrderItem{
			{ItemID: item.ID, Quantity: 2, Price: 5000},
		},
	}
	require.NoError(t, testDB.Create(order).Error)

	now := time.Now()
	payload, err := svc.ExportOrdersSummary(now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	// The payload must round-trip as a workbook with the summary rows
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Orders Summary")
	require.NoError(t, err)
	// Header, one data row, totals row
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Date", "Order Count", "Total Sales"}, rows[0])
	assert.Equal(t, "Total", rows[2][0])
	assert.Equal(t, "10000", rows[2][2])
}
