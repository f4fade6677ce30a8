package services

import (
	"context"
	"fmt"
	"sort"

	"catalogapi/internal/common"
	"catalogapi/internal/models"
	"catalogapi/internal/repositories"
	"catalogapi/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductQuery are the listing parameters; empty strings mean unset.
type ProductQuery struct {
	CategoryName string
	Variant      string
	BaseURL      string
}

type ProductService interface {
	ListProducts(ctx context.Context, q ProductQuery) ([]ProductSummary, error)
	GetProductByTitle(ctx context.Context, title, baseURL string) (*ProductRecord, error)
	ListBestSellers(ctx context.Context, baseURL string) ([]BestSeller, error)

	List(ctx context.Context) ([]*models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product, uploads []ImageUpload) error
	Update(ctx context.Context, product *models.Product, uploads []ImageUpload) (*SweepReport, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*SweepReport, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	blobs        storage.BlobStore
	cascade      *CascadeController
	serializer   *Serializer
	log          *zap.SugaredLogger
}

func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, blobs storage.BlobStore, cascade *CascadeController, serializer *Serializer, log *zap.SugaredLogger) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		blobs:        blobs,
		cascade:      cascade,
		serializer:   serializer,
		log:          log,
	}
}

// ListProducts filters by category and variant. Listings scoped to a category
// without a variant filter are ordered by the category's variant priorities.
func (s *productService) ListProducts(ctx context.Context, q ProductQuery) ([]ProductSummary, error) {
	var (
		filter   repositories.ProductFilter
		category *models.Category
	)

	if q.CategoryName != "" {
		c, err := s.categoryRepo.FindByName(ctx, q.CategoryName)
		if err != nil {
			return nil, err
		}
		category = c
		filter.CategoryID = &c.ID

		if q.Variant != "" {
			v, ok := c.FindVariant(q.Variant)
			if !ok {
				return nil, common.NotFound("variant")
			}
			filter.Variant = v.Variant
		}
	} else if q.Variant != "" {
		filter.Variant = q.Variant
	}

	docs, err := s.productRepo.ListSummaries(ctx, filter)
	if err != nil {
		return nil, err
	}
	summaries := s.serializer.Summaries(ctx, docs, q.BaseURL)

	if category != nil && filter.Variant == "" && len(category.Variants) > 0 {
		SortByVariantPriority(category, summaries)
	}
	return summaries, nil
}

// SortByVariantPriority attaches each summary's variant priority (0 when
// unmatched) and stably sorts ascending, keeping query order on ties.
func SortByVariantPriority(category *models.Category, summaries []ProductSummary) {
	for i := range summaries {
		p := category.VariantPriority(summaries[i].Variant)
		summaries[i].Priority = &p
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return *summaries[i].Priority < *summaries[j].Priority
	})
}

func (s *productService) GetProductByTitle(ctx context.Context, title, baseURL string) (*ProductRecord, error) {
	product, err := s.productRepo.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	record := s.serializer.Product(ctx, product, baseURL)
	return &record, nil
}

func (s *productService) ListBestSellers(ctx context.Context, baseURL string) ([]BestSeller, error) {
	docs, err := s.productRepo.ListBestSellers(ctx)
	if err != nil {
		return nil, err
	}
	return s.serializer.BestSellers(docs, baseURL), nil
}

func (s *productService) List(ctx context.Context) ([]*models.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *productService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, product *models.Product, uploads []ImageUpload) error {
	product.Images = nil
	if err := s.validate(ctx, product); err != nil {
		return err
	}

	images, err := storeUploads(ctx, s.blobs, uploads, s.log)
	if err != nil {
		return err
	}
	product.Images = images

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.cascade.Sweep(ctx, models.OwnerKindProduct, product.ID, images)
		return err
	}
	s.log.Infow("product created", "product_id", product.ID.Hex(), "images", len(images))
	return nil
}

// Update keeps the stored images unless new uploads are given; replaced
// images have their blobs swept after the document is saved.
func (s *productService) Update(ctx context.Context, product *models.Product, uploads []ImageUpload) (*SweepReport, error) {
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	product.CreatedAt = existing.CreatedAt
	product.Images = existing.Images
	if err := s.validate(ctx, product); err != nil {
		return nil, err
	}

	if len(uploads) > 0 {
		images, err := storeUploads(ctx, s.blobs, uploads, s.log)
		if err != nil {
			return nil, err
		}
		product.Images = images
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if len(uploads) > 0 {
			s.cascade.Sweep(ctx, models.OwnerKindProduct, product.ID, product.Images)
		}
		return nil, err
	}

	report := s.cascade.Sweep(ctx, models.OwnerKindProduct, product.ID, removedImages(existing.Images, product.Images))
	return report, nil
}

// Delete sweeps every image blob and then removes the document. Blob
// failures are reported, never returned as an error.
func (s *productService) Delete(ctx context.Context, id primitive.ObjectID) (*SweepReport, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	report := s.cascade.Sweep(ctx, models.OwnerKindProduct, product.ID, product.Images)
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return report, err
	}

	s.log.Infow("product deleted", "product_id", id.Hex(), "blobs_deleted", len(report.Deleted), "blob_failures", len(report.Failures))
	return report, nil
}

// validate checks field constraints and that a non-empty variant belongs to
// the referenced category. The variant is stored with the category's spelling.
func (s *productService) validate(ctx context.Context, product *models.Product) error {
	if err := models.Validate.Struct(product); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	category, err := s.categoryRepo.GetByID(ctx, product.Category)
	if err != nil {
		return err
	}
	if product.Variant == "" {
		return nil
	}
	v, ok := category.FindVariant(product.Variant)
	if !ok {
		return common.NotFound("variant")
	}
	product.Variant = v.Variant
	return nil
}
