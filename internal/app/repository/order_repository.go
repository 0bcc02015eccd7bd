package repository

import (
	"time"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"gorm.io/gorm"
)

// PopularItem is an aggregated sales row for one item
type PopularItem struct {
	ItemID       uint   `json:"itemId"`
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
	TotalSold    int64  `json:"totalSold"`
	TotalRevenue int64  `json:"totalRevenue"`
}

// TopUser is an aggregated spending row for one user
type TopUser struct {
	UserID     uint   `json:"userId"`
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	OrderCount int64  `json:"orderCount"`
	TotalSpent int64  `json:"totalSpent"`
}

// DailySummary aggregates orders for one calendar day
type DailySummary struct {
	Date       string `json:"date"`
	OrderCount int64  `json:"orderCount"`
	TotalSales int64  `json:"totalSales"`
}

type OrderRepository interface {
	FindByID(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindAll() ([]model.Order, error)
	PopularItems(limit int) ([]PopularItem, error)
	TopUsers(limit int) ([]TopUser, error)
	SummaryBetween(from, to time.Time) ([]DailySummary, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.
		Preload("OrderItems").
		Preload("OrderItems.Item").
		First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Where("user_id = ?", userID).
		Preload("OrderItems").
		Preload("OrderItems.Item").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Orders found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.
		Preload("User").
		Preload("OrderItems").
		Preload("OrderItems.Item").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find all orders in database", err)
		return nil, err
	}
	return orders, nil
}

// PopularItems ranks items by total quantity sold across all orders
func (r *orderRepository) PopularItems(limit int) ([]PopularItem, error) {
	var rows []PopularItem
	err := r.db.Model(&model.OrderItem{}).
		Select("order_items.item_id AS item_id, items.name AS name, items.rarity AS rarity, SUM(order_items.quantity) AS total_sold, SUM(order_items.quantity * order_items.price) AS total_revenue").
		Joins("JOIN items ON items.id = order_items.item_id").
		Group("order_items.item_id, items.name, items.rarity").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate popular items in database", err)
		return nil, err
	}
	return rows, nil
}

// TopUsers ranks users by total order spend
func (r *orderRepository) TopUsers(limit int) ([]TopUser, error) {
	var rows []TopUser
	err := r.db.Model(&model.Order{}).
		Select("orders.user_id AS user_id, users.email AS email, users.nickname AS nickname, COUNT(orders.id) AS order_count, SUM(orders.total_price) AS total_spent").
		Joins("JOIN users ON users.id = orders.user_id").
		Group("orders.user_id, users.email, users.nickname").
		Order("total_spent DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate top users in database", err)
		return nil, err
	}
	return rows, nil
}

// SummaryBetween aggregates order counts and sales per day in [from, to)
func (r *orderRepository) SummaryBetween(from, to time.Time) ([]DailySummary, error) {
	var rows []DailySummary
	err := r.db.Model(&model.Order{}).
		Select("DATE(orders.created_at) AS date, COUNT(orders.id) AS order_count, SUM(orders.total_price) AS total_sales").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Group("DATE(orders.created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate order summary in database", err, map[string]interface{}{
			"from": from,
			"to":   to,
		})
		return nil, err
	}
	return rows, nil
}
