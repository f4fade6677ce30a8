package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const CategoryCollection = "category"

// Variant is a category-scoped product attribute with a listing priority.
type Variant struct {
	Variant  string `json:"variant" bson:"variant" validate:"required"`
	Priority int    `json:"priority" bson:"priority"`
}

type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required,min=3"`
	Description string             `json:"description" bson:"description" validate:"required,min=3"`
	Images      []Image            `json:"images" bson:"images" validate:"max=3,dive"`
	Variants    []Variant          `json:"variants" bson:"variants" validate:"dive"`
}

// FindVariant returns the variant whose name matches name case-insensitively.
func (c *Category) FindVariant(name string) (Variant, bool) {
	for _, v := range c.Variants {
		if strings.EqualFold(v.Variant, name) {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantPriority returns the configured priority for name, or 0 when the
// name is blank or not listed.
func (c *Category) VariantPriority(name string) int {
	if name == "" {
		return 0
	}
	if v, ok := c.FindVariant(name); ok {
		return v.Priority
	}
	return 0
}
