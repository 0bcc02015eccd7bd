package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrInvalidSort  = errors.New("invalid sort parameter")
)

// PopularItemsCacheKey holds the cached popular-items ranking in Redis.
// The scheduler refreshes it; reads fall back to a live query on miss.
const PopularItemsCacheKey = "popular:items"

const (
	DefaultPageSize = 20
	MaxPageSize     = 50

	defaultPopularLimit = 10
)

// sortColumns whitelists the public sort keys. Anything else is rejected,
// never passed into SQL.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"name":      "name",
	"rarity":    "rarity",
	"statInt":   "stat_int",
	"statStr":   "stat_str",
	"statDex":   "stat_dex",
	"statLck":   "stat_lck",
}

// ItemPage is the paginated catalog response envelope
type ItemPage struct {
	Content       []model.Item `json:"content"`
	Page          int          `json:"page"`
	Size          int          `json:"size"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	Sort          string       `json:"sort"`
}

// ListOptions carries the public catalog query before validation
type ListOptions struct {
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
	Sort       string
	Order      string
	Page       int
	Size       int

	// IncludeInactive lifts the active-only filter. Only the admin listing
	// sets it; the public catalog never sees inactive items.
	IncludeInactive bool
}

type ItemService interface {
	ListItems(opts ListOptions) (*ItemPage, error)
	GetItem(id uint) (*model.Item, error)
	GetPopularItems(ctx context.Context, limit int) ([]repository.PopularItem, error)
	GetCategories() ([]model.Category, error)
}

type itemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	orderRepo    repository.OrderRepository
	cache        *redis.Client
	cacheTTL     time.Duration
}

func NewItemService(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	orderRepo repository.OrderRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func (s *itemService) ListItems(opts ListOptions) (*ItemPage, error) {
	sort, err := buildSort(opts.Sort, opts.Order)
	if err != nil {
		return nil, err
	}
	if opts.Rarity != "" && !model.ValidRarity(opts.Rarity) {
		return nil, ErrInvalidSort
	}

	page := opts.Page
	if page < 0 {
		page = 0
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	filter := repository.ItemFilter{
		Keyword:    opts.Keyword,
		CategoryID: opts.CategoryID,
		Rarity:     opts.Rarity,
		CsTag:      opts.CsTag,
		MinPrice:   opts.MinPrice,
		MaxPrice:   opts.MaxPrice,
		MinStatInt: opts.MinStatInt,
		MaxStatInt: opts.MaxStatInt,
		MinStatStr: opts.MinStatStr,
		MaxStatStr: opts.MaxStatStr,
		MinStatDex: opts.MinStatDex,
		MaxStatDex: opts.MaxStatDex,
		MinStatLck: opts.MinStatLck,
		MaxStatLck: opts.MaxStatLck,
		OnlyActive: !opts.IncludeInactive,
		Sort:       sort,
		Page:       page,
		Size:       size,
	}

	items, total, err := s.itemRepo.Search(filter)
	if err != nil {
		logger.Error("Failed to list items", err, map[string]interface{}{
			"keyword": opts.Keyword,
			"page":    page,
		})
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size > 0 {
		totalPages++
	}

	return &ItemPage{
		Content:       items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
		Sort:          sort,
	}, nil
}

// GetItem returns a publicly visible item. Inactive and deleted items are
// both reported as not found.
func (s *itemService) GetItem(id uint) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Item not found", map[string]interface{}{
				"item_id": id,
			})
			return nil, ErrItemNotFound
		}
		logger.Error("Failed to fetch item", err, map[string]interface{}{
			"item_id": id,
		})
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (s *itemService) GetPopularItems(ctx context.Context, limit int) ([]repository.PopularItem, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, PopularItemsCacheKey).Result()
		if err == nil {
			var rows []repository.PopularItem
			if err := json.Unmarshal([]byte(cached), &rows); err == nil {
				if len(rows) > limit {
					rows = rows[:limit]
				}
				logger.Debug("Popular items served from cache", map[string]interface{}{
					"count": len(rows),
				})
				return rows, nil
			}
			logger.Warn("Failed to decode popular items cache, falling back", map[string]interface{}{
				"error": err.Error(),
			})
		} else if err != redis.Nil {
			logger.Warn("Popular items cache unavailable, falling back", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	rows, err := s.orderRepo.PopularItems(limit)
	if err != nil {
		logger.Error("Failed to fetch popular items", err)
		return nil, err
	}
	return rows, nil
}

func (s *itemService) GetCategories() ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch categories", err)
		return nil, err
	}
	return categories, nil
}

// RefreshPopularItemsCache recomputes the ranking and stores it in Redis.
// Called by the scheduler.
func RefreshPopularItemsCache(ctx context.Context, orderRepo repository.OrderRepository, cache *redis.Client, limit int, ttl time.Duration) error {
	if limit <= 0 {
		limit = defaultPopularLimit
	}

	rows, err := orderRepo.PopularItems(limit)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	if err := cache.Set(ctx, PopularItemsCacheKey, payload, ttl).Err(); err != nil {
		return err
	}

	logger.Info("Popular items cache refreshed", map[string]interface{}{
		"count": len(rows),
		"ttl":   ttl.String(),
	})
	return nil
}

func buildSort(sort, order string) (string, error) {
	if sort == "" {
		sort = "createdAt"
	}
	column, ok := sortColumns[sort]
	if !ok {
		return "", ErrInvalidSort
	}

	switch order {
	case "":
		order = "DESC"
	case "asc", "ASC":
		order = "ASC"
	case "desc", "DESC":
		order = "DESC"
	default:
		return "", ErrInvalidSort
	}

	return column + " " + order, nil
}
