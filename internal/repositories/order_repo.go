package repositories

import (
	"context"

	"starburger/internal/models"

	"github.com/google/uuid"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOpen(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AssignRestaurant(ctx context.Context, id, restaurantID uuid.UUID) error
	SetCalledAt(ctx context.Context, id uuid.UUID) error
	SetDeliveredAt(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

// Create inserts the order and its items in one transaction so a half-written
// order is never visible to the dispatch console.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (id, firstname, lastname, phonenumber, address, status, payment_method, comment, restaurant_id, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := tx.Exec(ctx, orderQuery, order.ID, order.Firstname, order.Lastname, order.Phonenumber, order.Address, order.Status, order.PaymentMethod, order.Comment, order.RestaurantID, order.RegisteredAt); err != nil {
		return err
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery, item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, firstname, lastname, phonenumber, address, status, payment_method, comment, restaurant_id, registered_at, called_at, delivered_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.Firstname, &order.Lastname, &order.Phonenumber, &order.Address, &order.Status, &order.PaymentMethod, &order.Comment, &order.RestaurantID, &order.RegisteredAt, &order.CalledAt, &order.DeliveredAt)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	order.Items = items[id]
	return order, nil
}

// ListOpen returns every not-yet-completed order with its items, fresh orders
// first.
func (r *orderRepo) ListOpen(ctx context.Context) ([]*models.Order, error) {
	query := `
		SELECT id, firstname, lastname, phonenumber, address, status, payment_method, comment, restaurant_id, registered_at, called_at, delivered_at
		FROM orders
		WHERE status != $1
		ORDER BY CASE status
			WHEN 'new' THEN 1
			WHEN 'preparing' THEN 2
			WHEN 'in_delivery' THEN 3
			ELSE 4
		END, registered_at
	`
	rows, err := r.db.Query(ctx, query, models.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	var ids []uuid.UUID
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.Firstname, &order.Lastname, &order.Phonenumber, &order.Address, &order.Status, &order.PaymentMethod, &order.Comment, &order.RestaurantID, &order.RegisteredAt, &order.CalledAt, &order.DeliveredAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	rows.Close()

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, order := range orders {
		order.Items = items[order.ID]
	}
	return orders, nil
}

func (r *orderRepo) listItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price, created_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]*models.OrderItem)
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	return items, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE orders SET status = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}

func (r *orderRepo) AssignRestaurant(ctx context.Context, id, restaurantID uuid.UUID) error {
	query := `UPDATE orders SET restaurant_id = $1, status = $2 WHERE id = $3`
	_, err := r.db.Exec(ctx, query, restaurantID, models.OrderStatusPreparing, id)
	return err
}

func (r *orderRepo) SetCalledAt(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE orders SET called_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *orderRepo) SetDeliveredAt(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE orders SET delivered_at = NOW() WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
