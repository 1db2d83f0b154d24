package models

import "time"

// Place memoizes a geocoded address. Addresses are unique; rows are upserted
// on re-resolution and never written for failed lookups.
type Place struct {
	Address     string    `json:"address" db:"address"`
	Latitude    float64   `json:"latitude" db:"latitude"`
	Longitude   float64   `json:"longitude" db:"longitude"`
	LastRequest time.Time `json:"last_request" db:"last_request"`
}
