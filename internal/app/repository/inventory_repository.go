package repository

import (
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	FindByUserID(userID uint) ([]model.Inventory, error)
	FindByUserAndItem(userID, itemID uint) (*model.Inventory, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) FindByUserID(userID uint) ([]model.Inventory, error) {
	var rows []model.Inventory
	err := r.db.Where("user_id = ?", userID).
		Preload("Item").
		Order("updated_at DESC").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to find inventory by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Inventory found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(rows),
	})
	return rows, nil
}

func (r *inventoryRepository) FindByUserAndItem(userID, itemID uint) (*model.Inventory, error) {
	var row model.Inventory
	err := r.db.Where("user_id = ? AND item_id = ?", userID, itemID).First(&row).Error
	if err != nil {
		logger.Error("Failed to find inventory row in database", err, map[string]interface{}{
			"user_id": userID,
			"item_id": itemID,
		})
		return nil, err
	}
	return &row, nil
}
