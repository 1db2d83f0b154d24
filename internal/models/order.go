package models

import (
	"time"

	"github.com/google/uuid"
)

// Order lifecycle statuses, in dispatch priority order.
const (
	OrderStatusNew        = "new"
	OrderStatusPreparing  = "preparing"
	OrderStatusInDelivery = "in_delivery"
	OrderStatusCompleted  = "completed"
)

// Payment methods accepted on order registration.
const (
	PaymentPaidOnline     = "paid_online"
	PaymentUnpaidOnline   = "unpaid_online"
	PaymentCashOnDelivery = "cash_on_delivery"
	PaymentCardOnDelivery = "card_on_delivery"
)

// StatusPriority orders open orders for the dispatch console: fresh orders
// first, completed ones last.
func StatusPriority(status string) int {
	switch status {
	case OrderStatusNew:
		return 1
	case OrderStatusPreparing:
		return 2
	case OrderStatusInDelivery:
		return 3
	case OrderStatusCompleted:
		return 4
	}
	return 5
}

type Order struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Firstname     string     `json:"firstname" db:"firstname"`
	Lastname      string     `json:"lastname" db:"lastname"`
	Phonenumber   string     `json:"phonenumber" db:"phonenumber"`
	Address       string     `json:"address" db:"address"`
	Status        string     `json:"status" db:"status"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	Comment       *string    `json:"comment" db:"comment"`
	RestaurantID  *uuid.UUID `json:"restaurant_id" db:"restaurant_id"`
	RegisteredAt  time.Time  `json:"registered_at" db:"registered_at"`
	CalledAt      *time.Time `json:"called_at" db:"called_at"`
	DeliveredAt   *time.Time `json:"delivered_at" db:"delivered_at"`

	Items []*OrderItem `json:"items,omitempty"`
}

// TotalPrice sums the captured line prices.
func (o *Order) TotalPrice() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Price
	}
	return total
}

// ProductSet returns the distinct products ordered.
func (o *Order) ProductSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(o.Items))
	for _, item := range o.Items {
		set[item.ProductID] = struct{}{}
	}
	return set
}

// OrderItem is a line of an order. Price is captured as product price times
// quantity at creation time and never follows later product price changes.
type OrderItem struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
