package services

import (
	"context"

	"catalogapi/internal/caching"
	"catalogapi/internal/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const UnknownCategory = "Unknown"

// CategoryResolver turns a product's category reference into a display name.
// It never fails: any lookup problem yields UnknownCategory.
type CategoryResolver interface {
	CategoryName(ctx context.Context, categoryID primitive.ObjectID) string
}

type categoryResolver struct {
	categories repositories.CategoryRepository
	log        *zap.SugaredLogger
}

// NewCategoryResolver does a point lookup per call, without caching.
func NewCategoryResolver(categories repositories.CategoryRepository, log *zap.SugaredLogger) CategoryResolver {
	return &categoryResolver{categories: categories, log: log}
}

func (r *categoryResolver) CategoryName(ctx context.Context, categoryID primitive.ObjectID) string {
	if categoryID.IsZero() {
		return UnknownCategory
	}
	category, err := r.categories.GetByID(ctx, categoryID)
	if err != nil {
		r.log.Debugw("category reference unresolved", "category_id", categoryID.Hex(), "error", err)
		return UnknownCategory
	}
	return category.Name
}

type cachedCategoryResolver struct {
	next  CategoryResolver
	cache caching.CategoryNameCache
	log   *zap.SugaredLogger
}

// NewCachedCategoryResolver consults cache before next. Misses and cache
// errors fall through to next; UnknownCategory is never stored.
func NewCachedCategoryResolver(next CategoryResolver, cache caching.CategoryNameCache, log *zap.SugaredLogger) CategoryResolver {
	return &cachedCategoryResolver{next: next, cache: cache, log: log}
}

func (r *cachedCategoryResolver) CategoryName(ctx context.Context, categoryID primitive.ObjectID) string {
	name, ok, err := r.cache.GetCategoryName(ctx, categoryID)
	if err != nil {
		r.log.Warnw("category cache read failed", "category_id", categoryID.Hex(), "error", err)
	} else if ok {
		return name
	}

	name = r.next.CategoryName(ctx, categoryID)
	if name == UnknownCategory {
		return name
	}
	if err := r.cache.SetCategoryName(ctx, categoryID, name); err != nil {
		r.log.Warnw("category cache write failed", "category_id", categoryID.Hex(), "error", err)
	}
	return name
}
