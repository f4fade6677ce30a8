package services

import (
	"context"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"
)

type ImageRecord struct {
	ID       string `json:"id"`
	ImageSrc string `json:"image_src"`
}

type ProductRecord struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Subtitle    string            `json:"subtitle"`
	Description []string          `json:"description"`
	Color       string            `json:"color"`
	Price       models.Price      `json:"price"`
	BestSeller  bool              `json:"best_seller"`
	Images      []ImageRecord     `json:"images"`
	Dimension   *models.Dimension `json:"dimension,omitempty"`
	Weight      *models.Weight    `json:"weight,omitempty"`
	Variant     string            `json:"variant,omitempty"`
	Category    string            `json:"category"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ProductSummary is the listing view. Priority is only set when the listing
// was ordered by category variant priority.
type ProductSummary struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Images   []ImageRecord `json:"images"`
	Variant  string        `json:"variant,omitempty"`
	Category string        `json:"category"`
	Priority *int          `json:"priority,omitempty"`
}

type BestSeller struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Price  models.Price  `json:"price"`
	Images []ImageRecord `json:"images"`
}

type CategoryRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Images      []ImageRecord    `json:"images"`
	Variants    []models.Variant `json:"variants"`
}

// Serializer maps stored documents to response records. It has no side
// effects beyond the category lookups done through the resolver.
type Serializer struct {
	resolver CategoryResolver
}

func NewSerializer(resolver CategoryResolver) *Serializer {
	return &Serializer{resolver: resolver}
}

func (s *Serializer) Product(ctx context.Context, p *models.Product, baseURL string) ProductRecord {
	description := p.Description
	if description == nil {
		description = []string{}
	}
	return ProductRecord{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Subtitle:    p.Subtitle,
		Description: description,
		Color:       p.Color,
		Price:       p.Price,
		BestSeller:  p.BestSeller,
		Images:      imageRecords(p.Images, baseURL),
		Dimension:   p.Dimension,
		Weight:      p.Weight,
		Variant:     p.Variant,
		Category:    s.resolver.CategoryName(ctx, p.Category),
		CreatedAt:   p.CreatedAt,
	}
}

func (s *Serializer) Products(ctx context.Context, products []*models.Product, baseURL string) []ProductRecord {
	out := make([]ProductRecord, 0, len(products))
	for _, p := range products {
		out = append(out, s.Product(ctx, p, baseURL))
	}
	return out
}

func (s *Serializer) Summary(ctx context.Context, d *models.ProductSummaryDoc, baseURL string) ProductSummary {
	return ProductSummary{
		ID:       d.ID.Hex(),
		Title:    d.Title,
		Subtitle: d.Subtitle,
		Images:   imageRecords(firstImage(d.Images), baseURL),
		Variant:  d.Variant,
		Category: s.resolver.CategoryName(ctx, d.Category),
	}
}

func (s *Serializer) Summaries(ctx context.Context, docs []*models.ProductSummaryDoc, baseURL string) []ProductSummary {
	out := make([]ProductSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.Summary(ctx, d, baseURL))
	}
	return out
}

func (s *Serializer) BestSeller(d *models.BestSellerDoc, baseURL string) BestSeller {
	return BestSeller{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Price:  d.Price,
		Images: imageRecords(firstImage(d.Images), baseURL),
	}
}

func (s *Serializer) BestSellers(docs []*models.BestSellerDoc, baseURL string) []BestSeller {
	out := make([]BestSeller, 0, len(docs))
	for _, d := range docs {
		out = append(out, s.BestSeller(d, baseURL))
	}
	return out
}

func (s *Serializer) Category(c *models.Category, baseURL string) CategoryRecord {
	variants := c.Variants
	if variants == nil {
		variants = []models.Variant{}
	}
	return CategoryRecord{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Description: c.Description,
		Images:      imageRecords(c.Images, baseURL),
		Variants:    variants,
	}
}

func (s *Serializer) Categories(categories []*models.Category, baseURL string) []CategoryRecord {
	out := make([]CategoryRecord, 0, len(categories))
	for _, c := range categories {
		out = append(out, s.Category(c, baseURL))
	}
	return out
}

func imageRecords(images []models.Image, baseURL string) []ImageRecord {
	out := make([]ImageRecord, 0, len(images))
	for _, img := range images {
		out = append(out, ImageRecord{ID: img.ID, ImageSrc: common.ImageURL(baseURL, img.ImageSrc)})
	}
	return out
}

func firstImage(images []models.Image) []models.Image {
	if len(images) > 1 {
		return images[:1]
	}
	return images
}
