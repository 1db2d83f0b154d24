package services

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/google/uuid"

	"starburger/internal/geo"
	"starburger/internal/models"
	"starburger/internal/repositories"
)

// RankedRestaurant pairs an eligible restaurant with its distance to the
// delivery address. DistanceKm is nil when the restaurant address could not
// be geocoded.
type RankedRestaurant struct {
	Restaurant *models.Restaurant `json:"restaurant"`
	DistanceKm *float64           `json:"distance_km"`
}

// DispatchOrder is one row of the staff dispatch console.
type DispatchOrder struct {
	Order              *models.Order      `json:"order"`
	TotalPrice         float64            `json:"total_price"`
	AssignedRestaurant *models.Restaurant `json:"assigned_restaurant,omitempty"`
	Restaurants        []RankedRestaurant `json:"restaurants,omitempty"`
	GeocodeFailed      bool               `json:"geocode_failed,omitempty"`
}

type DispatchService interface {
	EligibleRestaurants(ctx context.Context, order *models.Order) ([]*models.Restaurant, error)
	RankRestaurants(ctx context.Context, order *models.Order) ([]RankedRestaurant, error)
	ListDispatchOrders(ctx context.Context) ([]*DispatchOrder, error)
}

type dispatchService struct {
	orderRepo      repositories.OrderRepository
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuItemRepository
	locator        LocatorService
}

func NewDispatchService(orderRepo repositories.OrderRepository, restaurantRepo repositories.RestaurantRepository, menuRepo repositories.MenuItemRepository, locator LocatorService) DispatchService {
	return &dispatchService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		locator:        locator,
	}
}

// EligibleRestaurants returns every restaurant whose available menu covers
// all of the order's products. An order with zero lines is a defect upstream
// and is rejected outright.
func (s *dispatchService) EligibleRestaurants(ctx context.Context, order *models.Order) ([]*models.Restaurant, error) {
	productSet := order.ProductSet()
	if len(productSet) == 0 {
		return nil, ErrEmptyOrder
	}

	productIDs := make([]uuid.UUID, 0, len(productSet))
	for id := range productSet {
		productIDs = append(productIDs, id)
	}

	menuItems, err := s.menuRepo.ListAvailableByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	stocked := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, item := range menuItems {
		if stocked[item.RestaurantID] == nil {
			stocked[item.RestaurantID] = make(map[uuid.UUID]struct{})
		}
		stocked[item.RestaurantID][item.ProductID] = struct{}{}
	}

	restaurants, err := s.restaurantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var eligible []*models.Restaurant
	for _, restaurant := range restaurants {
		available := stocked[restaurant.ID]
		if len(available) < len(productSet) {
			continue
		}
		covers := true
		for productID := range productSet {
			if _, ok := available[productID]; !ok {
				covers = false
				break
			}
		}
		if covers {
			eligible = append(eligible, restaurant)
		}
	}
	return eligible, nil
}

// RankRestaurants resolves the delivery address once, then sorts the eligible
// restaurants by distance ascending. Restaurants without resolvable
// coordinates sort after all resolved entries; ties break on restaurant id.
func (s *dispatchService) RankRestaurants(ctx context.Context, order *models.Order) ([]RankedRestaurant, error) {
	eligible, err := s.EligibleRestaurants(ctx, order)
	if err != nil {
		return nil, err
	}

	var origin *models.Place
	origin, err = s.locator.Resolve(ctx, order.Address)
	if err != nil {
		if !errors.Is(err, ErrCoordinatesNotFound) {
			return nil, err
		}
		// Unknown delivery address: every distance stays nil but the
		// restaurant list is still useful to staff.
		origin = nil
	}

	ranked := make([]RankedRestaurant, 0, len(eligible))
	for _, restaurant := range eligible {
		entry := RankedRestaurant{Restaurant: restaurant}
		if origin != nil {
			place, err := s.locator.Resolve(ctx, restaurant.Address)
			switch {
			case err == nil:
				km := geo.DistanceKm(origin.Latitude, origin.Longitude, place.Latitude, place.Longitude)
				entry.DistanceKm = &km
			case errors.Is(err, ErrCoordinatesNotFound):
				// Distance stays unknown, restaurant stays listed.
			default:
				log.Printf("Failed to geocode restaurant %s (%q): %v", restaurant.ID, restaurant.Address, err)
			}
		}
		ranked = append(ranked, entry)
	}

	sortRanked(ranked)
	return ranked, nil
}

func sortRanked(ranked []RankedRestaurant) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.DistanceKm == nil && b.DistanceKm == nil:
			return a.Restaurant.ID.String() < b.Restaurant.ID.String()
		case a.DistanceKm == nil:
			return false
		case b.DistanceKm == nil:
			return true
		case *a.DistanceKm != *b.DistanceKm:
			return *a.DistanceKm < *b.DistanceKm
		default:
			return a.Restaurant.ID.String() < b.Restaurant.ID.String()
		}
	})
}

// ListDispatchOrders builds the dispatch console payload. A geocoding failure
// for one order marks that order only; the rest of the batch still renders.
func (s *dispatchService) ListDispatchOrders(ctx context.Context) ([]*DispatchOrder, error) {
	orders, err := s.orderRepo.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]*DispatchOrder, 0, len(orders))
	for _, order := range orders {
		entry := &DispatchOrder{
			Order:      order,
			TotalPrice: order.TotalPrice(),
		}

		if order.RestaurantID != nil {
			restaurant, err := s.restaurantRepo.GetByID(ctx, *order.RestaurantID)
			if err != nil {
				log.Printf("Failed to load assigned restaurant %s for order %s: %v", *order.RestaurantID, order.ID, err)
			} else {
				entry.AssignedRestaurant = restaurant
			}
			entries = append(entries, entry)
			continue
		}

		ranked, err := s.RankRestaurants(ctx, order)
		if err != nil {
			log.Printf("Failed to rank restaurants for order %s: %v", order.ID, err)
			entry.GeocodeFailed = true
			entries = append(entries, entry)
			continue
		}
		entry.Restaurants = ranked
		entries = append(entries, entry)
	}
	return entries, nil
}
