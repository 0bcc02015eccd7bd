package repository

import (
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"gorm.io/gorm"
)

// ItemFilter carries the catalog search parameters. Range bounds are
// pointers so zero is a usable bound. Sort must already be validated
// against the whitelist before it reaches the repository.
type ItemFilter struct {
	Keyword    string
	CategoryID *uint
	Rarity     string
	CsTag      string
	MinPrice   *int
	MaxPrice   *int
	MinStatInt *int
	MaxStatInt *int
	MinStatStr *int
	MaxStatStr *int
	MinStatDex *int
	MaxStatDex *int
	MinStatLck *int
	MaxStatLck *int
	OnlyActive bool
	Sort       string
	Page       int
	Size       int
}

type ItemRepository interface {
	Create(item *model.Item) error
	FindByID(id uint) (*model.Item, error)
	Search(filter ItemFilter) ([]model.Item, int64, error)
	Update(item *model.Item) error
	Delete(id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *model.Item) error {
	logger.Debug("Creating item in database", map[string]interface{}{
		"name":   item.Name,
		"rarity": item.Rarity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create item in database", err, map[string]interface{}{
			"name": item.Name,
		})
		return err
	}

	logger.Debug("Item created in database", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
	return nil
}

func (r *itemRepository) FindByID(id uint) (*model.Item, error) {
	var item model.Item
	err := r.db.Preload("Category").First(&item, id).Error
	if err != nil {
		logger.Error("Failed to find item by ID in database", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Search(filter ItemFilter) ([]model.Item, int64, error) {
	query := r.db.Model(&model.Item{})

	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(r.db.Where("name LIKE ?", kw).Or("description LIKE ?", kw))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Rarity != "" {
		query = query.Where("rarity = ?", filter.Rarity)
	}
	if filter.CsTag != "" {
		query = query.Where("cs_tag LIKE ?", "%"+filter.CsTag+"%")
	}
	query = applyRange(query, "price", filter.MinPrice, filter.MaxPrice)
	query = applyRange(query, "stat_int", filter.MinStatInt, filter.MaxStatInt)
	query = applyRange(query, "stat_str", filter.MinStatStr, filter.MaxStatStr)
	query = applyRange(query, "stat_dex", filter.MinStatDex, filter.MaxStatDex)
	query = applyRange(query, "stat_lck", filter.MinStatLck, filter.MaxStatLck)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count items in database", err)
		return nil, 0, err
	}

	var items []model.Item
	err := query.
		Preload("Category").
		Order(filter.Sort).
		Offset(filter.Page * filter.Size).
		Limit(filter.Size).
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to search items in database", err, map[string]interface{}{
			"keyword": filter.Keyword,
			"page":    filter.Page,
		})
		return nil, 0, err
	}

	logger.Debug("Items searched in database", map[string]interface{}{
		"count": len(items),
		"total": total,
		"page":  filter.Page,
	})
	return items, total, nil
}

func (r *itemRepository) Update(item *model.Item) error {
	logger.Debug("Updating item in database", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update item in database", err, map[string]interface{}{
			"item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *itemRepository) Delete(id uint) error {
	logger.Debug("Deleting item from database", map[string]interface{}{
		"item_id": id,
	})

	result := r.db.Delete(&model.Item{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete item from database", result.Error, map[string]interface{}{
			"item_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func applyRange(query *gorm.DB, column string, min, max *int) *gorm.DB {
	if min != nil {
		query = query.Where(column+" >= ?", *min)
	}
	if max != nil {
		query = query.Where(column+" <= ?", *max)
	}
	return query
}
