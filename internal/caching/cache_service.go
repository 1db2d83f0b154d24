package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"starburger/internal/models"
)

// CacheService is the hot cache in front of Postgres: geocoded coordinates,
// the public menu payload, and short-lived session strings. A miss is
// (nil, nil), never an error.
type CacheService interface {
	// Coordinate caching (hot layer over the places table)
	GetCoordinates(ctx context.Context, address string) (*models.Place, error)
	SetCoordinates(ctx context.Context, place *models.Place, ttl time.Duration) error

	// Menu caching
	GetMenu(ctx context.Context) ([]*models.ProductListing, error)
	SetMenu(ctx context.Context, listings []*models.ProductListing, ttl time.Duration) error
	InvalidateMenu(ctx context.Context) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Maintenance
	InvalidateAll(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetCoordinates(ctx context.Context, address string) (*models.Place, error) {
	key := fmt.Sprintf("starburger:coords:%s", address)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var place models.Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (r *redisCacheService) SetCoordinates(ctx context.Context, place *models.Place, ttl time.Duration) error {
	key := fmt.Sprintf("starburger:coords:%s", place.Address)
	data, err := json.Marshal(place)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetMenu(ctx context.Context) ([]*models.ProductListing, error) {
	data, err := r.client.Get(ctx, "starburger:menu").Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var listings []*models.ProductListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *redisCacheService) SetMenu(ctx context.Context, listings []*models.ProductListing, ttl time.Duration) error {
	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "starburger:menu", data, ttl).Err()
}

func (r *redisCacheService) InvalidateMenu(ctx context.Context) error {
	return r.client.Del(ctx, "starburger:menu").Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateAll(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "starburger:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
