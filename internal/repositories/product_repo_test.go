package repositories

import (
	"context"
	"testing"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestProductRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := func(mt *mtest.T) string { return mt.DB.Name() + "." + models.ProductCollection }

	mt.Run("summaries project listing fields", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		categoryID := primitive.NewObjectID()
		imageID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "title", Value: "Armchair"},
				{Key: "subtitle", Value: "Velvet"},
				{Key: "variant", Value: "Red"},
				{Key: "category", Value: categoryID},
				{Key: "images", Value: bson.A{bson.D{{Key: "id", Value: "Image01"}, {Key: "image_src", Value: imageID}}}},
			},
		))

		summaries, err := repo.ListSummaries(ctx, ProductFilter{CategoryID: &categoryID})
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Armchair", summaries[0].Title)
		assert.Equal(t, imageID, summaries[0].Images[0].ImageSrc)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(t, categoryID, cmd.Lookup("filter", "category").ObjectID())
		assert.Equal(t, int32(1), cmd.Lookup("projection", "images", "$slice").Int32())
		_, hasPrice := cmd.Lookup("projection").Document().LookupErr("price")
		assert.Error(t, hasPrice)
	})

	mt.Run("variant filter is case-insensitive exact", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		summaries, err := repo.ListSummaries(ctx, ProductFilter{Variant: "Red"})
		require.NoError(t, err)
		assert.Empty(t, summaries)

		pattern, opts, ok := mt.GetStartedEvent().Command.Lookup("filter", "variant").RegexOK()
		require.True(t, ok)
		assert.Equal(t, "^Red$", pattern)
		assert.Equal(t, "i", opts)
	})

	mt.Run("bestsellers filter and project", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		price, err := primitive.ParseDecimal128("249.00")
		require.NoError(t, err)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Sofa"}, {Key: "price", Value: price}},
		))

		bestSellers, err := repo.ListBestSellers(ctx)
		require.NoError(t, err)
		require.Len(t, bestSellers, 1)
		assert.Equal(t, 249.0, bestSellers[0].Price.Float64())

		cmd := mt.GetStartedEvent().Command
		assert.True(t, cmd.Lookup("filter", "best_seller").Boolean())
		assert.Equal(t, int32(1), cmd.Lookup("projection", "price").Int32())
	})

	mt.Run("get by title missing", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch))

		_, err := repo.GetByTitle(ctx, "Nothing")
		assert.True(t, common.IsNotFound(err, "product"))
	})

	mt.Run("create stamps created_at and numbers images", func(mt *mtest.T) {
		fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		repo := &productRepo{coll: mt.DB.Collection(models.ProductCollection), now: func() time.Time { return fixed }}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		product := &models.Product{
			Title:    "Stool",
			Price:    models.MustPrice("35.00"),
			Category: primitive.NewObjectID(),
			Images:   []models.Image{{ID: "x", ImageSrc: primitive.NewObjectID()}},
		}
		require.NoError(t, repo.Create(ctx, product))

		assert.Equal(t, fixed, product.CreatedAt)
		assert.Equal(t, "Image01", product.Images[0].ID)
	})

	mt.Run("update never rewrites created_at", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		product := &models.Product{
			ID:        primitive.NewObjectID(),
			Title:     "Stool",
			Price:     models.MustPrice("39.00"),
			Category:  primitive.NewObjectID(),
			CreatedAt: time.Now(),
			Images: []models.Image{
				{ImageSrc: primitive.NewObjectID()},
				{ImageSrc: primitive.NewObjectID()},
			},
		}
		require.NoError(t, repo.Update(ctx, product))

		update := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Document().Lookup("u").Document()
		set := update.Lookup("$set").Document()
		_, err := set.LookupErr("created_at")
		assert.Error(t, err)
		assert.Equal(t, "Image02", set.Lookup("images", "1", "id").StringValue())
		_, err = update.Lookup("$unset").Document().LookupErr("variant")
		assert.NoError(t, err)
	})

	mt.Run("delete missing product", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Delete(ctx, primitive.NewObjectID())
		assert.True(t, common.IsNotFound(err, "product"))
	})

	mt.Run("count by category", func(mt *mtest.T) {
		repo := NewProductRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.CountByCategory(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
	})
}

func TestStoreErr(t *testing.T) {
	assert.NoError(t, storeErr("op", nil))
	assert.ErrorIs(t, storeErr("op", context.DeadlineExceeded), common.ErrStoreUnavailable)
	assert.NotErrorIs(t, storeErr("op", assert.AnError), common.ErrStoreUnavailable)
}
