package services

import (
	"context"
	"errors"
	"testing"

	"catalogapi/internal/common"
	"catalogapi/internal/logger"
	"catalogapi/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCategoryResolver(t *testing.T) {
	chairs := testhelpers.NewCategory("Chairs")
	missing := primitive.NewObjectID()
	broken := primitive.NewObjectID()

	repo := &MockCategoryRepository{}
	repo.On("GetByID", mock.Anything, chairs.ID).Return(chairs, nil)
	repo.On("GetByID", mock.Anything, missing).Return(nil, common.NotFound("category"))
	repo.On("GetByID", mock.Anything, broken).Return(nil, common.ErrStoreUnavailable)

	r := NewCategoryResolver(repo, logger.Nop())
	ctx := context.Background()

	assert.Equal(t, "Chairs", r.CategoryName(ctx, chairs.ID))
	assert.Equal(t, UnknownCategory, r.CategoryName(ctx, missing))
	assert.Equal(t, UnknownCategory, r.CategoryName(ctx, broken))
	assert.Equal(t, UnknownCategory, r.CategoryName(ctx, primitive.NilObjectID))
	repo.AssertNumberOfCalls(t, "GetByID", 3)
}

func TestCachedCategoryResolver_Hit(t *testing.T) {
	id := primitive.NewObjectID()
	cache := &MockCategoryNameCache{}
	cache.On("GetCategoryName", mock.Anything, id).Return("Chairs", true, nil).Once()

	r := NewCachedCategoryResolver(staticResolver{}, cache, logger.Nop())

	assert.Equal(t, "Chairs", r.CategoryName(context.Background(), id))
	cache.AssertExpectations(t)
}

func TestCachedCategoryResolver_MissStoresName(t *testing.T) {
	id := primitive.NewObjectID()
	cache := &MockCategoryNameCache{}
	cache.On("GetCategoryName", mock.Anything, id).Return("", false, nil).Once()
	cache.On("SetCategoryName", mock.Anything, id, "Tables").Return(nil).Once()

	r := NewCachedCategoryResolver(staticResolver{id: "Tables"}, cache, logger.Nop())

	assert.Equal(t, "Tables", r.CategoryName(context.Background(), id))
	cache.AssertExpectations(t)
}

func TestCachedCategoryResolver_UnknownIsNotCached(t *testing.T) {
	id := primitive.NewObjectID()
	cache := &MockCategoryNameCache{}
	cache.On("GetCategoryName", mock.Anything, id).Return("", false, nil).Once()

	r := NewCachedCategoryResolver(staticResolver{}, cache, logger.Nop())

	assert.Equal(t, UnknownCategory, r.CategoryName(context.Background(), id))
	cache.AssertNotCalled(t, "SetCategoryName", mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedCategoryResolver_CacheErrorsFallThrough(t *testing.T) {
	id := primitive.NewObjectID()
	cache := &MockCategoryNameCache{}
	cache.On("GetCategoryName", mock.Anything, id).Return("", false, errors.New("connection refused")).Once()
	cache.On("SetCategoryName", mock.Anything, id, "Beds").Return(errors.New("connection refused")).Once()

	r := NewCachedCategoryResolver(staticResolver{id: "Beds"}, cache, logger.Nop())

	assert.Equal(t, "Beds", r.CategoryName(context.Background(), id))
	cache.AssertExpectations(t)
}
