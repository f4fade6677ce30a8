package caching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryNameCache holds resolved category display names keyed by category id.
type CategoryNameCache interface {
	// GetCategoryName reports ok=false on a miss.
	GetCategoryName(ctx context.Context, categoryID primitive.ObjectID) (name string, ok bool, err error)
	SetCategoryName(ctx context.Context, categoryID primitive.ObjectID, name string) error
	DeleteCategoryName(ctx context.Context, categoryID primitive.ObjectID) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCacheService wraps an opened client. Every entry expires after ttl.
func NewRedisCacheService(client *redis.Client, ttl time.Duration) CategoryNameCache {
	return &redisCacheService{client: client, ttl: ttl}
}

func categoryNameKey(categoryID primitive.ObjectID) string {
	return fmt.Sprintf("catalog:category-name:%s", categoryID.Hex())
}

func (r *redisCacheService) GetCategoryName(ctx context.Context, categoryID primitive.ObjectID) (string, bool, error) {
	name, err := r.client.Get(ctx, categoryNameKey(categoryID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (r *redisCacheService) SetCategoryName(ctx context.Context, categoryID primitive.ObjectID, name string) error {
	return r.client.Set(ctx, categoryNameKey(categoryID), name, r.ttl).Err()
}

func (r *redisCacheService) DeleteCategoryName(ctx context.Context, categoryID primitive.ObjectID) error {
	return r.client.Del(ctx, categoryNameKey(categoryID)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type noopCache struct{}

// NewNoopCache is used when the category cache is disabled; every read misses.
func NewNoopCache() CategoryNameCache {
	return noopCache{}
}

func (noopCache) GetCategoryName(context.Context, primitive.ObjectID) (string, bool, error) {
	return "", false, nil
}

func (noopCache) SetCategoryName(context.Context, primitive.ObjectID, string) error { return nil }

func (noopCache) DeleteCategoryName(context.Context, primitive.ObjectID) error { return nil }

func (noopCache) Ping(context.Context) error { return nil }
