package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"starburger/internal/models"
	"starburger/internal/repositories"
)

// OrderLineInput is one requested line of a new order.
type OrderLineInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, order *models.Order, lines []OrderLineInput) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	ListOpenOrders(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error
	AssignRestaurant(ctx context.Context, orderID, restaurantID uuid.UUID) error
	MarkCalled(ctx context.Context, orderID uuid.UUID) error
}

type orderService struct {
	orderRepo      repositories.OrderRepository
	productRepo    repositories.ProductRepository
	restaurantRepo repositories.RestaurantRepository
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, restaurantRepo repositories.RestaurantRepository) OrderServiceInterface {
	return &orderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		restaurantRepo: restaurantRepo,
	}
}

// CreateOrder registers a customer order. Line prices are captured from the
// current product price times quantity and stay fixed afterwards.
func (s *orderService) CreateOrder(ctx context.Context, order *models.Order, lines []OrderLineInput) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}

	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Status == "" {
		order.Status = models.OrderStatusNew
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentUnpaidOnline
	}
	if order.RegisteredAt.IsZero() {
		order.RegisteredAt = time.Now()
	}

	order.Items = make([]*models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		order.Items = append(order.Items, &models.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price * float64(line.Quantity),
		})
	}

	return s.orderRepo.Create(ctx, order)
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) ListOpenOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.ListOpen(ctx)
}

// validTransitions describes the forward-only order lifecycle.
var validTransitions = map[string][]string{
	models.OrderStatusNew:        {models.OrderStatusPreparing},
	models.OrderStatusPreparing:  {models.OrderStatusInDelivery},
	models.OrderStatusInDelivery: {models.OrderStatusCompleted},
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotFound
	}

	allowed := false
	for _, next := range validTransitions[order.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	if status == models.OrderStatusCompleted {
		return s.orderRepo.SetDeliveredAt(ctx, orderID)
	}
	return nil
}

// AssignRestaurant picks the fulfilling restaurant for a fresh order and moves
// it to preparing.
func (s *orderService) AssignRestaurant(ctx context.Context, orderID, restaurantID uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return ErrOrderNotFound
	}
	if order.Status != models.OrderStatusNew {
		return fmt.Errorf("%w: restaurant can only be assigned while status is new", ErrInvalidTransition)
	}

	if _, err := s.restaurantRepo.GetByID(ctx, restaurantID); err != nil {
		return ErrRestaurantNotFound
	}

	return s.orderRepo.AssignRestaurant(ctx, orderID, restaurantID)
}

// MarkCalled stamps the time staff confirmed the order with the customer by
// phone.
func (s *orderService) MarkCalled(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.SetCalledAt(ctx, orderID)
}
