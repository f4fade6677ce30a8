package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ProductCollection = "product"

type Dimension struct {
	Width  int    `json:"width" bson:"width" validate:"min=10,max=100"`
	Height int    `json:"height" bson:"height" validate:"min=10,max=100"`
	Unit   string `json:"unit" bson:"unit" validate:"oneof=m cm mm"`
}

type Weight struct {
	Weight int    `json:"weight" bson:"weight" validate:"min=1"`
	Unit   string `json:"unit" bson:"unit" validate:"oneof=kg g"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" validate:"required,min=3"`
	Subtitle    string             `json:"subtitle" bson:"subtitle"`
	Description []string           `json:"description" bson:"description"`
	Color       string             `json:"color" bson:"color"`
	Price       Price              `json:"price" bson:"price" validate:"gte=0.01"`
	BestSeller  bool               `json:"best_seller" bson:"best_seller"`
	Images      []Image            `json:"images" bson:"images" validate:"dive"`
	Dimension   *Dimension         `json:"dimension,omitempty" bson:"dimension,omitempty"`
	Weight      *Weight            `json:"weight,omitempty" bson:"weight,omitempty"`
	Variant     string             `json:"variant,omitempty" bson:"variant,omitempty"`
	Category    primitive.ObjectID `json:"category" bson:"category" validate:"required"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// ProductSummaryDoc is the projection read by listing queries.
type ProductSummaryDoc struct {
	ID       primitive.ObjectID `bson:"_id"`
	Title    string             `bson:"title"`
	Subtitle string             `bson:"subtitle"`
	Images   []Image            `bson:"images"`
	Variant  string             `bson:"variant"`
	Category primitive.ObjectID `bson:"category"`
}

// BestSellerDoc is the projection read by the bestseller listing.
type BestSellerDoc struct {
	ID     primitive.ObjectID `bson:"_id"`
	Title  string             `bson:"title"`
	Price  Price              `bson:"price"`
	Images []Image            `bson:"images"`
}
