package scheduler

import (
	"context"
	"time"

	"github.com/jmlee/fantasy-shop-backend/internal/app/repository"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// PopularItemsScheduler 인기 상품 랭킹 캐시 갱신 스케줄러
type PopularItemsScheduler struct {
	cron      *cron.Cron
	orderRepo repository.OrderRepository
	cache     *redis.Client
	spec      string
	ttl       time.Duration
}

// NewPopularItemsScheduler 인기 상품 스케줄러 생성
func NewPopularItemsScheduler(
	orderRepo repository.OrderRepository,
	cache *redis.Client,
	spec string,
	ttl time.Duration,
) *PopularItemsScheduler {
	return &PopularItemsScheduler{
		cron:      cron.New(),
		orderRepo: orderRepo,
		cache:     cache,
		spec:      spec,
		ttl:       ttl,
	}
}

// Start 스케줄러 시작
func (s *PopularItemsScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.refresh)
	if err != nil {
		logger.Error("Failed to add cron job for popular items refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Popular items scheduler started", map[string]interface{}{
		"spec": s.spec,
		"ttl":  s.ttl.String(),
	})

	// Warm the cache so the first reads after boot do not all fall back
	// to the live query.
	go s.refresh()

	return nil
}

// Stop 스케줄러 중지
func (s *PopularItemsScheduler) Stop() {
	logger.Info("Stopping popular items scheduler...", nil)
	s.cron.Stop()
	logger.Info("Popular items scheduler stopped", nil)
}

func (s *PopularItemsScheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := service.RefreshPopularItemsCache(ctx, s.orderRepo, s.cache, 0, s.ttl); err != nil {
		logger.Error("Failed to refresh popular items cache", err)
		return
	}
}
