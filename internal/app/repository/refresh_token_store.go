package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmlee/fantasy-shop-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore tracks which refresh tokens are currently valid.
// A signed token is only honored while its record exists here, so deleting
// the record revokes the token before it expires.
type RefreshTokenStore interface {
	Save(ctx context.Context, userID uint, token string, ttl time.Duration) error
	Exists(ctx context.Context, userID uint, token string) (bool, error)
	Delete(ctx context.Context, userID uint, token string) error
	DeleteAll(ctx context.Context, userID uint) error
}

type redisRefreshTokenStore struct {
	client *redis.Client
}

func NewRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	return &redisRefreshTokenStore{client: client}
}

func refreshKey(userID uint, token string) string {
	return fmt.Sprintf("refresh:%d:%s", userID, token)
}

func (s *redisRefreshTokenStore) Save(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	logger.Debug("Saving refresh token record", map[string]interface{}{
		"user_id": userID,
		"ttl":     ttl.String(),
	})

	if err := s.client.Set(ctx, refreshKey(userID, token), "1", ttl).Err(); err != nil {
		logger.Error("Failed to save refresh token record", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

func (s *redisRefreshTokenStore) Exists(ctx context.Context, userID uint, token string) (bool, error) {
	err := s.client.Get(ctx, refreshKey(userID, token)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check refresh token record", err, map[string]interface{}{
			"user_id": userID,
		})
		return false, err
	}
	return true, nil
}

func (s *redisRefreshTokenStore) Delete(ctx context.Context, userID uint, token string) error {
	logger.Debug("Deleting refresh token record", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.client.Del(ctx, refreshKey(userID, token)).Err(); err != nil {
		logger.Error("Failed to delete refresh token record", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// DeleteAll revokes every refresh token of one user. Backs the logout-all
// path, where no single token is named.
func (s *redisRefreshTokenStore) DeleteAll(ctx context.Context, userID uint) error {
	pattern := fmt.Sprintf("refresh:%d:*", userID)

	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Error("Failed to scan refresh token records", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Failed to delete refresh token records", err, map[string]interface{}{
			"user_id": userID,
			"count":   len(keys),
		})
		return err
	}

	logger.Debug("Refresh token records deleted", map[string]interface{}{
		"user_id": userID,
		"count":   len(keys),
	})
	return nil
}
