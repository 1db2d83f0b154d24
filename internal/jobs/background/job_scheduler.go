package background

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"starburger/internal/caching"
	"starburger/internal/repositories"
	"starburger/internal/services"
)

// JobScheduler runs the periodic maintenance work: pre-warming the geocode
// cache for restaurant addresses and clearing stale redis payloads.
type JobScheduler struct {
	scheduler      gocron.Scheduler
	restaurantRepo repositories.RestaurantRepository
	locator        services.LocatorService
	cacheSvc       caching.CacheService
}

func NewJobScheduler(restaurantRepo repositories.RestaurantRepository, locator services.LocatorService, cacheSvc caching.CacheService) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:      scheduler,
		restaurantRepo: restaurantRepo,
		locator:        locator,
		cacheSvc:       cacheSvc,
	}

	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) registerJobs() error {
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.prewarmRestaurantCoordinates),
		gocron.WithName("restaurant-geocode-prewarm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	_, err = js.scheduler.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(js.cleanupCache),
		gocron.WithName("cache-cleanup"),
	)
	return err
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	return js.scheduler.Shutdown()
}

// prewarmRestaurantCoordinates resolves every restaurant address so the
// dispatch console rarely waits on the remote geocoder. Addresses the
// geocoder does not know stay unresolved; nothing is written for them.
func (js *JobScheduler) prewarmRestaurantCoordinates() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	restaurants, err := js.restaurantRepo.List(ctx)
	if err != nil {
		log.Printf("Geocode prewarm: failed to list restaurants: %v", err)
		return
	}

	warmed := 0
	for _, restaurant := range restaurants {
		if _, err := js.locator.Resolve(ctx, restaurant.Address); err != nil {
			if errors.Is(err, services.ErrCoordinatesNotFound) {
				log.Printf("Geocode prewarm: no coordinates for %q", restaurant.Address)
				continue
			}
			log.Printf("Geocode prewarm: failed for %q: %v", restaurant.Address, err)
			continue
		}
		warmed++
	}
	log.Printf("Geocode prewarm: resolved %d/%d restaurant addresses", warmed, len(restaurants))
}

func (js *JobScheduler) cleanupCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := js.cacheSvc.InvalidateAll(ctx); err != nil {
		log.Printf("Cache cleanup failed: %v", err)
	}
}
