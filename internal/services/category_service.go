package services

import (
	"context"
	"fmt"

	"catalogapi/internal/caching"
	"catalogapi/internal/common"
	"catalogapi/internal/config"
	"catalogapi/internal/models"
	"catalogapi/internal/repositories"
	"catalogapi/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CategoryService interface {
	ListCategories(ctx context.Context, baseURL string) ([]CategoryRecord, error)
	// GetCategoryByName is an exact, case-sensitive match.
	GetCategoryByName(ctx context.Context, name, baseURL string) (*CategoryRecord, error)

	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category, uploads []ImageUpload) error
	Update(ctx context.Context, category *models.Category, uploads []ImageUpload) (*SweepReport, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*SweepReport, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	blobs        storage.BlobStore
	cascade      *CascadeController
	cache        caching.CategoryNameCache
	serializer   *Serializer
	deletePolicy string
	log          *zap.SugaredLogger
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, blobs storage.BlobStore, cascade *CascadeController, cache caching.CategoryNameCache, serializer *Serializer, deletePolicy string, log *zap.SugaredLogger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		blobs:        blobs,
		cascade:      cascade,
		cache:        cache,
		serializer:   serializer,
		deletePolicy: deletePolicy,
		log:          log,
	}
}

func (s *categoryService) ListCategories(ctx context.Context, baseURL string) ([]CategoryRecord, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.serializer.Categories(categories, baseURL), nil
}

func (s *categoryService) GetCategoryByName(ctx context.Context, name, baseURL string) (*CategoryRecord, error) {
	category, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	record := s.serializer.Category(category, baseURL)
	return &record, nil
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, category *models.Category, uploads []ImageUpload) error {
	category.Images = make([]models.Image, len(uploads))
	if err := validateCategory(category); err != nil {
		return err
	}

	images, err := storeUploads(ctx, s.blobs, uploads, s.log)
	if err != nil {
		return err
	}
	category.Images = images

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		s.cascade.Sweep(ctx, models.OwnerKindCategory, category.ID, images)
		return err
	}
	s.log.Infow("category created", "category_id", category.ID.Hex(), "name", category.Name)
	return nil
}

func (s *categoryService) Update(ctx context.Context, category *models.Category, uploads []ImageUpload) (*SweepReport, error) {
	existing, err := s.categoryRepo.GetByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	category.Images = existing.Images
	if len(uploads) > 0 {
		category.Images = make([]models.Image, len(uploads))
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if len(uploads) > 0 {
		images, err := storeUploads(ctx, s.blobs, uploads, s.log)
		if err != nil {
			return nil, err
		}
		category.Images = images
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if len(uploads) > 0 {
			s.cascade.Sweep(ctx, models.OwnerKindCategory, category.ID, category.Images)
		}
		return nil, err
	}
	s.invalidate(ctx, category.ID)

	return s.cascade.Sweep(ctx, models.OwnerKindCategory, category.ID, removedImages(existing.Images, category.Images)), nil
}

// Delete honours the configured policy. Under "cascade" a category still
// referenced by products is refused; otherwise its image blobs are swept and
// the document removed.
func (s *categoryService) Delete(ctx context.Context, id primitive.ObjectID) (*SweepReport, error) {
	if s.deletePolicy != config.CategoryDeleteCascade {
		return nil, common.ErrCategoryDeletionDisabled
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: %d products", common.ErrCategoryInUse, n)
	}

	report := s.cascade.Sweep(ctx, models.OwnerKindCategory, category.ID, category.Images)
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return report, err
	}
	s.invalidate(ctx, id)

	s.log.Infow("category deleted", "category_id", id.Hex(), "blobs_deleted", len(report.Deleted), "blob_failures", len(report.Failures))
	return report, nil
}

func (s *categoryService) invalidate(ctx context.Context, id primitive.ObjectID) {
	if err := s.cache.DeleteCategoryName(ctx, id); err != nil {
		s.log.Warnw("category cache invalidation failed", "category_id", id.Hex(), "error", err)
	}
}

func validateCategory(category *models.Category) error {
	if err := models.Validate.Struct(category); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}
	return nil
}
