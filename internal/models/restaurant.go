package models

import (
	"time"

	"github.com/google/uuid"
)

type Restaurant struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Address      string    `json:"address" db:"address"`
	ContactPhone *string   `json:"contact_phone" db:"contact_phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RestaurantMenuItem marks whether a restaurant currently offers a product.
// Unique per (restaurant_id, product_id).
type RestaurantMenuItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id" db:"restaurant_id"`
	ProductID    uuid.UUID `json:"product_id" db:"product_id"`
	Availability bool      `json:"availability" db:"availability"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
