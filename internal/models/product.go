package models

import (
	"time"

	"github.com/google/uuid"
)

type ProductCategory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Product struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CategoryID  *uuid.UUID `json:"category_id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	Price       float64    `json:"price" db:"price"`
	ImageKey    *string    `json:"image_key" db:"image_key"`
	Special     bool       `json:"special" db:"special"`
	Description *string    `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// ProductListing is the public menu entry: a product joined with its category
// and a short-lived image URL resolved from object storage.
type ProductListing struct {
	Product
	Category *ProductCategory `json:"category"`
	ImageURL *string          `json:"image_url"`
}
