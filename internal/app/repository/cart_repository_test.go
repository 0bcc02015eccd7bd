package repository

import (
	"testing"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)
	return testDB, repo
}

func createTestUser(t *testing.T, testDB *gorm.DB, email string) *model.User {
	user := &model.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Nickname:     "tester",
		Role:         model.RoleUser,
		Provider:     model.ProviderLocal,
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestItem(t *testing.T, testDB *gorm.DB, name string, price int) *model.Item {
	item := &model.Item{
		Name:     name,
		Price:    price,
		Rarity:   model.RarityCommon,
		IsActive: true,
	}
	require.NoError(t, testDB.Create(item).Error)
	return item
}

func TestCartRepository_Upsert_MergesQuantity(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	item := createTestItem(t, testDB, "마법 포인터 검", 5000)

	require.NoError(t, repo.Upsert(&model.CartItem{
		UserID:   user.ID,
		ItemID:   item.ID,
		Quantity: 2,
	}))
	require.NoError(t, repo.Upsert(&model.CartItem{
		UserID:   user.ID,
		ItemID:   item.ID,
		Quantity: 3,
	}))

	rows, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)

	// Re-adding the same item merges into one row instead of duplicating
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Quantity)
	assert.Equal(t, item.ID, rows[0].ItemID)
}

func TestCartRepository_Upsert_DistinctItems(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	sword := createTestItem(t, testDB, "마법 포인터 검", 5000)
	shield := createTestItem(t, testDB, "강화 메모리 방패", 8000)

	require.NoError(t, repo.Upsert(&model.CartItem{UserID: user.ID, ItemID: sword.ID, Quantity: 1}))
	require.NoError(t, repo.Upsert(&model.CartItem{UserID: user.ID, ItemID: shield.ID, Quantity: 2}))

	rows, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestCartRepository_FindByUserID_PreloadsItem(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	item := createTestItem(t, testDB, "마법 포인터 검", 5000)

	require.NoError(t, repo.Upsert(&model.CartItem{UserID: user.ID, ItemID: item.ID, Quantity: 1}))

	rows, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "마법 포인터 검", rows[0].Item.Name)
	assert.Equal(t, 5000, rows[0].Item.Price)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	testDB, repo := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	user := createTestUser(t, testDB, "cart@example.com")
	other := createTestUser(t, testDB, "other@example.com")
	item := createTestItem(t, testDB, "마법 포인터 검", 5000)

	require.NoError(t, repo.Upsert(&model.CartItem{UserID: user.ID, ItemID: item.ID, Quantity: 1}))
	require.NoError(t, repo.Upsert(&model.CartItem{UserID: other.ID, ItemID: item.ID, Quantity: 4}))

	require.NoError(t, repo.DeleteByUserID(user.ID))

	rows, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// Other carts are untouched
	otherRows, err := repo.FindByUserID(other.ID)
	require.NoError(t, err)
	assert.Len(t, otherRows, 1)
}
