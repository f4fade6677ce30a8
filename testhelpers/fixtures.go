package testhelpers

import (
	"time"

	"catalogapi/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewImage returns a numbered image with fresh primary and thumbnail blob ids.
func NewImage(index int) models.Image {
	thumb := primitive.NewObjectID()
	return models.Image{ID: models.ImageLabel(index), ImageSrc: primitive.NewObjectID(), ThumbnailSrc: &thumb}
}

// NewImages returns n numbered images.
func NewImages(n int) []models.Image {
	images := make([]models.Image, 0, n)
	for i := 1; i <= n; i++ {
		images = append(images, NewImage(i))
	}
	return images
}

// NewCategory builds a valid category named name with no images or variants.
func NewCategory(name string, opts ...func(*models.Category)) *models.Category {
	c := &models.Category{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: name + " collection",
		Images:      []models.Image{},
		Variants:    []models.Variant{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithVariant(name string, priority int) func(*models.Category) {
	return func(c *models.Category) {
		c.Variants = append(c.Variants, models.Variant{Variant: name, Priority: priority})
	}
}

func WithCategoryImages(n int) func(*models.Category) {
	return func(c *models.Category) {
		c.Images = NewImages(n)
	}
}

// NewProduct builds a valid product belonging to category.
func NewProduct(title string, category primitive.ObjectID, opts ...func(*models.Product)) *models.Product {
	p := &models.Product{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Subtitle:    title + " subtitle",
		Description: []string{"first line", "second line"},
		Color:       "black",
		Price:       models.MustPrice("19.99"),
		Images:      []models.Image{},
		Category:    category,
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithProductVariant(variant string) func(*models.Product) {
	return func(p *models.Product) {
		p.Variant = variant
	}
}

func WithProductImages(n int) func(*models.Product) {
	return func(p *models.Product) {
		p.Images = NewImages(n)
	}
}

func WithBestSeller() func(*models.Product) {
	return func(p *models.Product) {
		p.BestSeller = true
	}
}

// SummaryOf projects p the way listing queries do.
func SummaryOf(p *models.Product) *models.ProductSummaryDoc {
	images := p.Images
	if len(images) > 1 {
		images = images[:1]
	}
	return &models.ProductSummaryDoc{
		ID:       p.ID,
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Images:   images,
		Variant:  p.Variant,
		Category: p.Category,
	}
}
