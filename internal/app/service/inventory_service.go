package service

import (
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
)

type InventoryService interface {
	GetMyInventory(userID uint) ([]model.Inventory, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) GetMyInventory(userID uint) ([]model.Inventory, error) {
	rows, err := s.inventoryRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch inventory", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return rows, nil
}
