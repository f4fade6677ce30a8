package repositories

import (
	"context"
	"errors"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductFilter narrows summary listings. Zero values mean no constraint.
type ProductFilter struct {
	CategoryID *primitive.ObjectID
	// Variant is matched exactly, ignoring case.
	Variant string
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// GetByTitle is an exact match ignoring case.
	GetByTitle(ctx context.Context, title string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	ListSummaries(ctx context.Context, filter ProductFilter) ([]*models.ProductSummaryDoc, error)
	ListBestSellers(ctx context.Context) ([]*models.BestSellerDoc, error)
	CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var (
	summaryProjection = bson.D{
		{Key: "title", Value: 1},
		{Key: "subtitle", Value: 1},
		{Key: "images", Value: bson.D{{Key: "$slice", Value: 1}}},
		{Key: "variant", Value: 1},
		{Key: "category", Value: 1},
	}
	bestSellerProjection = bson.D{
		{Key: "title", Value: 1},
		{Key: "price", Value: 1},
		{Key: "images", Value: bson.D{{Key: "$slice", Value: 1}}},
	}
)

type productRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewProductRepo(db *mongo.Database) ProductRepository {
	return &productRepo{
		coll: db.Collection(models.ProductCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	product.CreatedAt = r.now().Truncate(time.Millisecond)
	normalizeProduct(product)

	_, err := r.coll.InsertOne(ctx, product)
	return storeErr("create product", err)
}

func (r *productRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *productRepo) GetByTitle(ctx context.Context, title string) (*models.Product, error) {
	return r.findOne(ctx, bson.M{"title": exactInsensitive(title)})
}

func (r *productRepo) findOne(ctx context.Context, filter bson.M) (*models.Product, error) {
	product := &models.Product{}
	err := r.coll.FindOne(ctx, filter).Decode(product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NotFound("product")
	}
	if err != nil {
		return nil, storeErr("find product", err)
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context) ([]*models.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list products", err)
	}
	products := []*models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeErr("decode products", err)
	}
	return products, nil
}

func (r *productRepo) ListSummaries(ctx context.Context, filter ProductFilter) ([]*models.ProductSummaryDoc, error) {
	query := bson.M{}
	if filter.CategoryID != nil {
		query["category"] = *filter.CategoryID
	}
	if filter.Variant != "" {
		query["variant"] = exactInsensitive(filter.Variant)
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, storeErr("list product summaries", err)
	}
	summaries := []*models.ProductSummaryDoc{}
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, storeErr("decode product summaries", err)
	}
	return summaries, nil
}

func (r *productRepo) ListBestSellers(ctx context.Context) ([]*models.BestSellerDoc, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"best_seller": true}, options.Find().SetProjection(bestSellerProjection))
	if err != nil {
		return nil, storeErr("list bestsellers", err)
	}
	bestSellers := []*models.BestSellerDoc{}
	if err := cursor.All(ctx, &bestSellers); err != nil {
		return nil, storeErr("decode bestsellers", err)
	}
	return bestSellers, nil
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"category": categoryID})
	return n, storeErr("count products", err)
}

// Update replaces every mutable field; created_at is never rewritten.
func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	normalizeProduct(product)

	set := bson.M{
		"title":       product.Title,
		"subtitle":    product.Subtitle,
		"description": product.Description,
		"color":       product.Color,
		"price":       product.Price,
		"best_seller": product.BestSeller,
		"images":      product.Images,
		"category":    product.Category,
	}
	unset := bson.M{}
	if product.Dimension != nil {
		set["dimension"] = product.Dimension
	} else {
		unset["dimension"] = ""
	}
	if product.Weight != nil {
		set["weight"] = product.Weight
	} else {
		unset["weight"] = ""
	}
	if product.Variant != "" {
		set["variant"] = product.Variant
	} else {
		unset["variant"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.coll.UpdateByID(ctx, product.ID, update)
	if err != nil {
		return storeErr("update product", err)
	}
	if res.MatchedCount == 0 {
		return common.NotFound("product")
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete product", err)
	}
	if res.DeletedCount == 0 {
		return common.NotFound("product")
	}
	return nil
}

func normalizeProduct(product *models.Product) {
	if product.Images == nil {
		product.Images = []models.Image{}
	}
	if product.Description == nil {
		product.Description = []string{}
	}
	models.NumberImages(product.Images)
}
