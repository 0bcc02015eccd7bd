package repository

import (
	"testing"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupItemTest(t *testing.T) (*gorm.DB, ItemRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewItemRepository(testDB)
	return testDB, repo
}

func seedCatalog(t *testing.T, repo ItemRepository) {
	items := []*model.Item{
		{Name: "마법 포인터 검", Description: "포인터 연산 강화", Price: 5000, Rarity: model.RarityCommon, StatInt: 5, CsTag: "c-language", IsActive: true},
		{Name: "강화 메모리 방패", Description: "세그폴트 방어", Price: 12000, Rarity: model.RarityRare, StatInt: 12, CsTag: "operating-system", IsActive: true},
		{Name: "전설의 스케줄러 망토", Description: "컨텍스트 스위칭 가속", Price: 90000, Rarity: model.RarityLegendary, StatInt: 28, CsTag: "operating-system", IsActive: true},
		{Name: "낡은 해시 장갑", Description: "충돌 주의", Price: 2000, Rarity: model.RarityCommon, StatInt: 2, CsTag: "data-structure", IsActive: false},
	}
	for _, item := range items {
		require.NoError(t, repo.Create(item))
	}
}

func TestItemRepository_Search_ActiveOnly(t *testing.T) {
	testDB, repo := setupItemTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	items, total, err := repo.Search(ItemFilter{
		OnlyActive: true,
		Sort:       "created_at DESC",
		Page:       0,
		Size:       20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, item := range items {
		assert.True(t, item.IsActive)
	}
}

func TestItemRepository_Search_Keyword(t *testing.T) {
	testDB, repo := setupItemTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	items, total, err := repo.Search(ItemFilter{
		Keyword:    "메모리",
		OnlyActive: true,
		Sort:       "created_at DESC",
		Page:       0,
		Size:       20,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "강화 메모리 방패", items[0].Name)
}

func TestItemRepository_Search_RarityAndPriceRange(t *testing.T) {
	testDB, repo := setupItemTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	minPrice := 10000
	items, total, err := repo.Search(ItemFilter{
		Rarity:     string(model.RarityRare),
		MinPrice:   &minPrice,
		OnlyActive: true,
		Sort:       "price ASC",
		Page:       0,
		Size:       20,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "강화 메모리 방패", items[0].Name)
}

func TestItemRepository_Search_CsTagAndStatRange(t *testing.T) {
	testDB, repo := setupItemTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	minInt := 20
	items, total, err := repo.Search(ItemFilter{
		CsTag:      "operating-system",
		MinStatInt: &minInt,
		OnlyActive: true,
		Sort:       "stat_int DESC",
		Page:       0,
		Size:       20,
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, "전설의 스케줄러 망토", items[0].Name)
}

func TestItemRepository_Search_Pagination(t *testing.T) {
	testDB, repo := setupItemTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	first, total, err := repo.Search(ItemFilter{
		OnlyActive: true,
		Sort:       "price ASC",
		Page:       0,
		Size:       2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, first, 2)
	assert.Equal(t, "마법 포인터 검", first[0].Name)

	second, _, err := repo.Search(ItemFilter{
		OnlyActive: true,
		Sort:       "price ASC",
		Page:       1,
		Size:       2,
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "전설의 스케줄러 망토", second[0].Name)
}

func TestItemRepository_Delete(t *testing.T) {
	testDB, repo := setupItemTest(t)
	defer db.CleanupTestDB(testDB)

	item := &model.Item{Name: "삭제될 아이템", Price: 100, Rarity: model.RarityCommon, IsActive: true}
	require.NoError(t, repo.Create(item))

	require.NoError(t, repo.Delete(item.ID))
	_, err := repo.FindByID(item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting a missing id reports not found
	err = repo.Delete(99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
