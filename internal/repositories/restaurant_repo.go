package repositories

import (
	"context"

	"starburger/internal/models"

	"github.com/google/uuid"
)

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	Update(ctx context.Context, restaurant *models.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Restaurant, error)
}

type restaurantRepo struct {
	db Database
}

func NewRestaurantRepo(db Database) RestaurantRepository {
	return &restaurantRepo{db: db}
}

func (r *restaurantRepo) Create(ctx context.Context, restaurant *models.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, address, contact_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, restaurant.ID, restaurant.Name, restaurant.Address, restaurant.ContactPhone)
	return err
}

func (r *restaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	query := `
		SELECT id, name, address, contact_phone, created_at, updated_at
		FROM restaurants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&restaurant.ID, &restaurant.Name, &restaurant.Address, &restaurant.ContactPhone, &restaurant.CreatedAt, &restaurant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return restaurant, nil
}

func (r *restaurantRepo) Update(ctx context.Context, restaurant *models.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $1, address = $2, contact_phone = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, restaurant.Name, restaurant.Address, restaurant.ContactPhone, restaurant.ID)
	return err
}

func (r *restaurantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM restaurants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *restaurantRepo) List(ctx context.Context) ([]*models.Restaurant, error) {
	query := `
		SELECT id, name, address, contact_phone, created_at, updated_at
		FROM restaurants
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []*models.Restaurant
	for rows.Next() {
		restaurant := &models.Restaurant{}
		if err := rows.Scan(&restaurant.ID, &restaurant.Name, &restaurant.Address, &restaurant.ContactPhone, &restaurant.CreatedAt, &restaurant.UpdatedAt); err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}
