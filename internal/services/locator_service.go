package services

import (
	"context"
	"errors"
	"log"
	"time"

	"starburger/internal/caching"
	"starburger/internal/geocoder"
	"starburger/internal/models"
	"starburger/internal/repositories"
)

// coordinatesTTL bounds the redis hot layer; the places table itself does not
// expire.
const coordinatesTTL = 24 * time.Hour

// GeocodeClient is what the locator needs from the geocoder HTTP client.
type GeocodeClient interface {
	FetchCoordinates(ctx context.Context, address string) (*geocoder.Coordinates, error)
}

// LocatorService resolves free-text addresses to coordinates, consulting the
// redis hot cache, then the places table, then the external geocoder. Failed
// lookups are never persisted, so the next resolve retries the remote call.
type LocatorService interface {
	Resolve(ctx context.Context, address string) (*models.Place, error)
}

type locatorService struct {
	placeRepo    repositories.PlaceRepository
	cacheService caching.CacheService
	client       GeocodeClient
}

func NewLocatorService(placeRepo repositories.PlaceRepository, cacheService caching.CacheService, client GeocodeClient) LocatorService {
	return &locatorService{
		placeRepo:    placeRepo,
		cacheService: cacheService,
		client:       client,
	}
}

func (s *locatorService) Resolve(ctx context.Context, address string) (*models.Place, error) {
	cached, err := s.cacheService.GetCoordinates(ctx, address)
	if err != nil {
		log.Printf("Failed to read coordinates cache for %q: %v", address, err)
	}
	if cached != nil {
		return cached, nil
	}

	place, err := s.placeRepo.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if place != nil {
		if cacheErr := s.cacheService.SetCoordinates(ctx, place, coordinatesTTL); cacheErr != nil {
			log.Printf("Failed to cache coordinates for %q: %v", address, cacheErr)
		}
		return place, nil
	}

	coords, err := s.client.FetchCoordinates(ctx, address)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResults) {
			// Nothing is cached for a miss, not even a sentinel: a later
			// resolve retries the remote service.
			return nil, ErrCoordinatesNotFound
		}
		if errors.Is(err, geocoder.ErrBadResponse) {
			log.Printf("Geocoder returned malformed data for %q: %v", address, err)
		}
		return nil, err
	}

	place = &models.Place{
		Address:     address,
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		LastRequest: time.Now(),
	}

	if err := s.placeRepo.Upsert(ctx, place); err != nil {
		return nil, err
	}
	if cacheErr := s.cacheService.SetCoordinates(ctx, place, coordinatesTTL); cacheErr != nil {
		log.Printf("Failed to cache coordinates for %q: %v", address, cacheErr)
	}

	return place, nil
}
