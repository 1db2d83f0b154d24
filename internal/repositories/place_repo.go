package repositories

import (
	"context"
	"errors"

	"starburger/internal/models"

	"github.com/jackc/pgx/v5"
)

type PlaceRepository interface {
	GetByAddress(ctx context.Context, address string) (*models.Place, error)
	Upsert(ctx context.Context, place *models.Place) error
}

type placeRepo struct {
	db Database
}

func NewPlaceRepo(db Database) PlaceRepository {
	return &placeRepo{db: db}
}

// GetByAddress looks up a cached geocoding result by exact address match.
// A miss returns (nil, nil).
func (r *placeRepo) GetByAddress(ctx context.Context, address string) (*models.Place, error) {
	place := &models.Place{}
	query := `
		SELECT address, latitude, longitude, last_request
		FROM places
		WHERE address = $1
	`
	err := r.db.QueryRow(ctx, query, address).Scan(&place.Address, &place.Latitude, &place.Longitude, &place.LastRequest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return place, nil
}

// Upsert stores freshly resolved coordinates. Concurrent resolutions of the
// same address merge instead of failing on the unique address key.
func (r *placeRepo) Upsert(ctx context.Context, place *models.Place) error {
	query := `
		INSERT INTO places (address, latitude, longitude, last_request)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO UPDATE SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, last_request = EXCLUDED.last_request
	`
	_, err := r.db.Exec(ctx, query, place.Address, place.Latitude, place.Longitude, place.LastRequest)
	return err
}
