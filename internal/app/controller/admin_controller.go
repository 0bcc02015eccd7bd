package controller

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	apperrors "github.com/jmlee/fantasy-shop-backend/internal/errors"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

type CreateItemRequest struct {
	Name          string       `json:"name" binding:"required"`
	Description   string       `json:"description"`
	Price         int          `json:"price" binding:"min=0"`
	Rarity        model.Rarity `json:"rarity" binding:"required"`
	StatInt       int          `json:"statInt" binding:"min=0"`
	StatStr       int          `json:"statStr" binding:"min=0"`
	StatDex       int          `json:"statDex" binding:"min=0"`
	StatLck       int          `json:"statLck" binding:"min=0"`
	CsTag         string       `json:"csTag"`
	StockQuantity int          `json:"stockQuantity" binding:"min=0"`
	IsActive      *bool        `json:"isActive"`
	CategoryID    *uint        `json:"categoryId"`
}

type UpdateItemRequest struct {
	Name          *string       `json:"name"`
	Description   *string       `json:"description"`
	Price         *int          `json:"price"`
	Rarity        *model.Rarity `json:"rarity"`
	StatInt       *int          `json:"statInt"`
	StatStr       *int          `json:"statStr"`
	StatDex       *int          `json:"statDex"`
	StatLck       *int          `json:"statLck"`
	CsTag         *string       `json:"csTag"`
	StockQuantity *int          `json:"stockQuantity"`
	IsActive      *bool         `json:"isActive"`
	CategoryID    *uint         `json:"categoryId"`
}

// CreateItem adds a catalog item
// POST /api/admin/items
func (ctrl *AdminController) CreateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create item request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}
	if !model.ValidRarity(string(req.Rarity)) {
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	item, err := ctrl.adminService.CreateItem(service.ItemInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Rarity:        req.Rarity,
		StatInt:       req.StatInt,
		StatStr:       req.StatStr,
		StatDex:       req.StatDex,
		StatLck:       req.StatLck,
		CsTag:         req.CsTag,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		log.Error("Failed to create item", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondCreated(c, item)
}

// UpdateItem patches a catalog item
// PATCH /api/admin/items/:id
func (ctrl *AdminController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update item request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}
	if req.Rarity != nil && !model.ValidRarity(string(*req.Rarity)) {
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}
	if req.Price != nil && *req.Price < 0 {
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	item, err := ctrl.adminService.UpdateItem(uint(id), service.ItemUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Rarity:        req.Rarity,
		StatInt:       req.StatInt,
		StatStr:       req.StatStr,
		StatDex:       req.StatDex,
		StatLck:       req.StatLck,
		CsTag:         req.CsTag,
		StockQuantity: req.StockQuantity,
		IsActive:      req.IsActive,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.Respond(c, apperrors.ItemNotFound)
			return
		}
		log.Error("Failed to update item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, item)
}

// DeleteItem soft-deletes a catalog item
// DELETE /api/admin/items/:id
func (ctrl *AdminController) DeleteItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	if err := ctrl.adminService.DeleteItem(uint(id)); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.Respond(c, apperrors.ItemNotFound)
			return
		}
		log.Error("Failed to delete item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"deleted": true,
	})
}

// GetAllOrders lists every order, latest first
// GET /api/admin/orders
func (ctrl *AdminController) GetAllOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.adminService.GetAllOrders()
	if err != nil {
		log.Error("Failed to fetch all orders", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, orders)
}

// GetPopularItems ranks items by total quantity sold
// GET /api/admin/stats/popular-items
func (ctrl *AdminController) GetPopularItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var parseErr error
	limit := parseIntParamDefault(c, "limit", 0, &parseErr)
	if parseErr != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	rows, err := ctrl.adminService.GetPopularItems(limit)
	if err != nil {
		log.Error("Failed to fetch popular items stats", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, rows)
}

// GetTopUsers ranks users by total spend
// GET /api/admin/stats/top-users
func (ctrl *AdminController) GetTopUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var parseErr error
	limit := parseIntParamDefault(c, "limit", 0, &parseErr)
	if parseErr != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	rows, err := ctrl.adminService.GetTopUsers(limit)
	if err != nil {
		log.Error("Failed to fetch top users stats", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, rows)
}

// GetOrdersSummary returns daily order counts and sales in a date range
// GET /api/admin/stats/orders-summary?from=2026-01-01&to=2026-01-31
func (ctrl *AdminController) GetOrdersSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, err := parseSummaryRange(c)
	if err != nil {
		log.Warn("Invalid summary range", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	rows, err := ctrl.adminService.GetOrdersSummary(from, to)
	if err != nil {
		log.Error("Failed to fetch orders summary", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, rows)
}

// ExportOrdersSummary downloads the summary as an XLSX workbook
// GET /api/admin/stats/orders-summary/export
func (ctrl *AdminController) ExportOrdersSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, to, err := parseSummaryRange(c)
	if err != nil {
		log.Warn("Invalid summary range", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	workbook, err := ctrl.adminService.ExportOrdersSummary(from, to)
	if err != nil {
		log.Error("Failed to export orders summary", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	filename := fmt.Sprintf("orders-summary_%s_%s.xlsx",
		from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, xlsxContentType, workbook)
}

// parseSummaryRange reads inclusive from/to dates and returns a half-open
// [from, to) window. Defaults to the last 30 days.
func parseSummaryRange(c *gin.Context) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	to = to.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to %s precedes from %s", to.Format(layout), from.Format(layout))
	}
	return from, to, nil
}
