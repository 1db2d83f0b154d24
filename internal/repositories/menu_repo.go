package repositories

import (
	"context"

	"starburger/internal/models"

	"github.com/google/uuid"
)

type MenuItemRepository interface {
	Upsert(ctx context.Context, item *models.RestaurantMenuItem) error
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.RestaurantMenuItem, error)
	ListAvailableByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*models.RestaurantMenuItem, error)
	ListAll(ctx context.Context) ([]*models.RestaurantMenuItem, error)
}

type menuItemRepo struct {
	db Database
}

func NewMenuItemRepo(db Database) MenuItemRepository {
	return &menuItemRepo{db: db}
}

// Upsert inserts or updates availability for a (restaurant, product) pair.
func (r *menuItemRepo) Upsert(ctx context.Context, item *models.RestaurantMenuItem) error {
	query := `
		INSERT INTO restaurant_menu_items (id, restaurant_id, product_id, availability, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (restaurant_id, product_id) DO UPDATE SET availability = EXCLUDED.availability, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.RestaurantID, item.ProductID, item.Availability)
	return err
}

func (r *menuItemRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]*models.RestaurantMenuItem, error) {
	query := `
		SELECT id, restaurant_id, product_id, availability, created_at, updated_at
		FROM restaurant_menu_items
		WHERE restaurant_id = $1
	`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.RestaurantMenuItem
	for rows.Next() {
		item := &models.RestaurantMenuItem{}
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.ProductID, &item.Availability, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// ListAvailableByProducts returns the available menu rows for the given
// products. Eligibility filtering over these rows happens in the dispatch
// service.
func (r *menuItemRepo) ListAvailableByProducts(ctx context.Context, productIDs []uuid.UUID) ([]*models.RestaurantMenuItem, error) {
	query := `
		SELECT id, restaurant_id, product_id, availability, created_at, updated_at
		FROM restaurant_menu_items
		WHERE availability = TRUE AND product_id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.RestaurantMenuItem
	for rows.Next() {
		item := &models.RestaurantMenuItem{}
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.ProductID, &item.Availability, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *menuItemRepo) ListAll(ctx context.Context) ([]*models.RestaurantMenuItem, error) {
	query := `
		SELECT id, restaurant_id, product_id, availability, created_at, updated_at
		FROM restaurant_menu_items
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.RestaurantMenuItem
	for rows.Next() {
		item := &models.RestaurantMenuItem{}
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.ProductID, &item.Availability, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
