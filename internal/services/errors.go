package services

import "errors"

var (
	// ErrCoordinatesNotFound means the geocoder had no candidate for an
	// address. Non-fatal for ranking: the restaurant keeps a nil distance.
	ErrCoordinatesNotFound = errors.New("coordinates not found for address")

	// ErrEmptyOrder flags an order that reached processing with zero lines.
	// That is an upstream defect, not a runtime case.
	ErrEmptyOrder = errors.New("order has no product lines")

	ErrProductNotFound     = errors.New("product not found")
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUsernameTaken       = errors.New("username already taken")
)
