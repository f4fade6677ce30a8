package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	// GetByName is an exact, case-sensitive match.
	GetByName(ctx context.Context, name string) (*models.Category, error)
	// FindByName is an exact match ignoring case.
	FindByName(ctx context.Context, name string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type categoryRepo struct {
	coll *mongo.Collection
}

func NewCategoryRepo(db *mongo.Database) CategoryRepository {
	return &categoryRepo{coll: db.Collection(models.CategoryCollection)}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	normalizeCategory(category)

	_, err := r.coll.InsertOne(ctx, category)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("category %q already exists: %w", category.Name, common.ErrConflict)
	}
	return storeErr("create category", err)
}

func (r *categoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *categoryRepo) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return r.findOne(ctx, bson.M{"name": exactInsensitive(name)})
}

func (r *categoryRepo) findOne(ctx context.Context, filter bson.M) (*models.Category, error) {
	category := &models.Category{}
	err := r.coll.FindOne(ctx, filter).Decode(category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, common.NotFound("category")
	}
	if err != nil {
		return nil, storeErr("find category", err)
	}
	return category, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	categories := []*models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, storeErr("decode categories", err)
	}
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	normalizeCategory(category)

	update := bson.M{"$set": bson.M{
		"name":        category.Name,
		"description": category.Description,
		"images":      category.Images,
		"variants":    category.Variants,
	}}
	res, err := r.coll.UpdateByID(ctx, category.ID, update)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("category %q already exists: %w", category.Name, common.ErrConflict)
	}
	if err != nil {
		return storeErr("update category", err)
	}
	if res.MatchedCount == 0 {
		return common.NotFound("category")
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete category", err)
	}
	if res.DeletedCount == 0 {
		return common.NotFound("category")
	}
	return nil
}

func normalizeCategory(category *models.Category) {
	if category.Images == nil {
		category.Images = []models.Image{}
	}
	if category.Variants == nil {
		category.Variants = []models.Variant{}
	}
	models.NumberImages(category.Images)
}
