package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	apperrors "github.com/jmlee/fantasy-shop-backend/internal/errors"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
)

type ItemController struct {
	itemService service.ItemService
}

func NewItemController(itemService service.ItemService) *ItemController {
	return &ItemController{
		itemService: itemService,
	}
}

// ListItems returns the paginated public catalog
// GET /api/items
func (ctrl *ItemController) ListItems(c *gin.Context) {
	ctrl.listItems(c, false)
}

// ListAllItems returns the catalog including inactive items, so admins can
// still reach items they have taken off sale
// GET /api/admin/items
func (ctrl *ItemController) ListAllItems(c *gin.Context) {
	ctrl.listItems(c, true)
}

func (ctrl *ItemController) listItems(c *gin.Context, includeInactive bool) {
	log := middleware.GetLoggerFromContext(c)

	opts := service.ListOptions{
		Keyword:         c.Query("keyword"),
		Rarity:          c.Query("rarity"),
		CsTag:           c.Query("csTag"),
		Sort:            c.Query("sort"),
		Order:           c.Query("order"),
		IncludeInactive: includeInactive,
	}

	var parseErr error
	opts.CategoryID = parseUintParam(c, "categoryId", &parseErr)
	opts.MinPrice = parseIntParam(c, "minPrice", &parseErr)
	opts.MaxPrice = parseIntParam(c, "maxPrice", &parseErr)
	opts.MinStatInt = parseIntParam(c, "minStatInt", &parseErr)
	opts.MaxStatInt = parseIntParam(c, "maxStatInt", &parseErr)
	opts.MinStatStr = parseIntParam(c, "minStatStr", &parseErr)
	opts.MaxStatStr = parseIntParam(c, "maxStatStr", &parseErr)
	opts.MinStatDex = parseIntParam(c, "minStatDex", &parseErr)
	opts.MaxStatDex = parseIntParam(c, "maxStatDex", &parseErr)
	opts.MinStatLck = parseIntParam(c, "minStatLck", &parseErr)
	opts.MaxStatLck = parseIntParam(c, "maxStatLck", &parseErr)
	opts.Page = parseIntParamDefault(c, "page", 0, &parseErr)
	opts.Size = parseIntParamDefault(c, "size", 0, &parseErr)
	if parseErr != nil {
		log.Warn("Invalid catalog query parameter", map[string]interface{}{
			"error": parseErr.Error(),
		})
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	page, err := ctrl.itemService.ListItems(opts)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSort) {
			log.Warn("Invalid sort parameter", map[string]interface{}{
				"sort":  opts.Sort,
				"order": opts.Order,
			})
			apperrors.Respond(c, apperrors.InvalidQueryParam)
			return
		}
		log.Error("Failed to list items", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, page)
}

// GetPopularItems returns the sales ranking
// GET /api/items/popular
func (ctrl *ItemController) GetPopularItems(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var parseErr error
	limit := parseIntParamDefault(c, "limit", 0, &parseErr)
	if parseErr != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	rows, err := ctrl.itemService.GetPopularItems(c.Request.Context(), limit)
	if err != nil {
		log.Error("Failed to fetch popular items", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, rows)
}

// GetItem returns a single active item
// GET /api/items/:id
func (ctrl *ItemController) GetItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.Respond(c, apperrors.InvalidQueryParam)
		return
	}

	item, err := ctrl.itemService.GetItem(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			apperrors.Respond(c, apperrors.ItemNotFound)
			return
		}
		log.Error("Failed to fetch item", err, map[string]interface{}{
			"item_id": id,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, item)
}

// GetCategories returns the category tree, parents first
// GET /api/categories
func (ctrl *ItemController) GetCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.itemService.GetCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, categories)
}

// parseIntParam reads an optional integer query parameter. A missing
// parameter yields nil; a malformed one records the error.
func parseIntParam(c *gin.Context, name string, parseErr *error) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		if *parseErr == nil {
			*parseErr = err
		}
		return nil
	}
	return &v
}

func parseIntParamDefault(c *gin.Context, name string, def int, parseErr *error) int {
	if v := parseIntParam(c, name, parseErr); v != nil {
		return *v
	}
	return def
}

func parseUintParam(c *gin.Context, name string, parseErr *error) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		if *parseErr == nil {
			*parseErr = err
		}
		return nil
	}
	u := uint(v)
	return &u
}
