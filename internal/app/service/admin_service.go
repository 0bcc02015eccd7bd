package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const defaultStatsLimit = 10

// ItemInput carries admin item create parameters
type ItemInput struct {
	Name          string
	Description   string
	Price         int
	Rarity        model.Rarity
	StatInt       int
	StatStr       int
	StatDex       int
	StatLck       int
	CsTag         string
	StockQuantity int
	IsActive      *bool
	CategoryID    *uint
}

// ItemUpdate carries admin item patch parameters; nil fields stay unchanged
type ItemUpdate struct {
	Name          *string
	Description   *string
	Price         *int
	Rarity        *model.Rarity
	StatInt       *int
	StatStr       *int
	StatDex       *int
	StatLck       *int
	CsTag         *string
	StockQuantity *int
	IsActive      *bool
	CategoryID    *uint
}

type AdminService interface {
	CreateItem(input ItemInput) (*model.Item, error)
	UpdateItem(id uint, update ItemUpdate) (*model.Item, error)
	DeleteItem(id uint) error
	GetAllOrders() ([]model.Order, error)
	GetPopularItems(limit int) ([]repository.PopularItem, error)
	GetTopUsers(limit int) ([]repository.TopUser, error)
	GetOrdersSummary(from, to time.Time) ([]repository.DailySummary, error)
	ExportOrdersSummary(from, to time.Time) ([]byte, error)
}

type adminService struct {
	itemRepo  repository.ItemRepository
	orderRepo repository.OrderRepository
}

func NewAdminService(itemRepo repository.ItemRepository, orderRepo repository.OrderRepository) AdminService {
	return &adminService{
		itemRepo:  itemRepo,
		orderRepo: orderRepo,
	}
}

func (s *adminService) CreateItem(input ItemInput) (*model.Item, error) {
	logger.Info("Admin creating item", map[string]interface{}{
		"name":   input.Name,
		"rarity": input.Rarity,
	})

	item := &model.Item{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Rarity:        input.Rarity,
		StatInt:       input.StatInt,
		StatStr:       input.StatStr,
		StatDex:       input.StatDex,
		StatLck:       input.StatLck,
		CsTag:         input.CsTag,
		StockQuantity: input.StockQuantity,
		IsActive:      true,
		CategoryID:    input.CategoryID,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	if err := s.itemRepo.Create(item); err != nil {
		logger.Error("Failed to create item", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Item created", map[string]interface{}{
		"item_id": item.ID,
		"name":    item.Name,
	})
	return item, nil
}

func (s *adminService) UpdateItem(id uint, update ItemUpdate) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Item not found for update", map[string]interface{}{
				"item_id": id,
			})
			return nil, ErrItemNotFound
		}
		logger.Error("Failed to fetch item for update", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}

	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.Rarity != nil {
		item.Rarity = *update.Rarity
	}
	if update.StatInt != nil {
		item.StatInt = *update.StatInt
	}
	if update.StatStr != nil {
		item.StatStr = *update.StatStr
	}
	if update.StatDex != nil {
		item.StatDex = *update.StatDex
	}
	if update.StatLck != nil {
		item.StatLck = *update.StatLck
	}
	if update.CsTag != nil {
		item.CsTag = *update.CsTag
	}
	if update.StockQuantity != nil {
		item.StockQuantity = *update.StockQuantity
	}
	if update.IsActive != nil {
		item.IsActive = *update.IsActive
	}
	if update.CategoryID != nil {
		item.CategoryID = update.CategoryID
	}

	if err := s.itemRepo.Update(item); err != nil {
		logger.Error("Failed to update item", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}

	logger.Info("Item updated", map[string]interface{}{
		"item_id": id,
	})
	return item, nil
}

// DeleteItem soft-deletes an item. Order lines keep referencing it, so
// sales history stays intact.
func (s *adminService) DeleteItem(id uint) error {
	if err := s.itemRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Item not found for deletion", map[string]interface{}{
				"item_id": id,
			})
			return ErrItemNotFound
		}
		logger.Error("Failed to delete item", err, map[string]interface{}{
			"item_id": id,
		})
		return err
	}

	logger.Info("Item deleted", map[string]interface{}{
		"item_id": id,
	})
	return nil
}

func (s *adminService) GetAllOrders() ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch all orders", err)
		return nil, err
	}
	return orders, nil
}

func (s *adminService) GetPopularItems(limit int) ([]repository.PopularItem, error) {
	if limit <= 0 {
		limit = defaultStatsLimit
	}
	rows, err := s.orderRepo.PopularItems(limit)
	if err != nil {
		logger.Error("Failed to fetch popular items stats", err)
		return nil, err
	}
	return rows, nil
}

func (s *adminService) GetTopUsers(limit int) ([]repository.TopUser, error) {
	if limit <= 0 {
		limit = defaultStatsLimit
	}
	rows, err := s.orderRepo.TopUsers(limit)
	if err != nil {
		logger.Error("Failed to fetch top users stats", err)
		return nil, err
	}
	return rows, nil
}

func (s *adminService) GetOrdersSummary(from, to time.Time) ([]repository.DailySummary, error) {
	rows, err := s.orderRepo.SummaryBetween(from, to)
	if err != nil {
		logger.Error("Failed to fetch orders summary", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}
	return rows, nil
}

// ExportOrdersSummary renders the daily summary as an XLSX workbook
func (s *adminService) ExportOrdersSummary(from, to time.Time) ([]byte, error) {
	rows, err := s.GetOrdersSummary(from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders Summary"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Date", "Order Count", "Total Sales"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{row.Date, row.OrderCount, row.TotalSales}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(rows) + 2
	var orderTotal, salesTotal int64
	for _, row := range rows {
		orderTotal += row.OrderCount
		salesTotal += row.TotalSales
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), orderTotal); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), salesTotal); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write orders summary workbook", err)
		return nil, err
	}

	logger.Info("Orders summary exported", map[string]interface{}{
		"rows": len(rows),
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	})
	return buf.Bytes(), nil
}
