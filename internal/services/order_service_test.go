package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starburger/internal/models"
)

type orderFixture struct {
	orderRepo      *MockOrderRepository
	productRepo    *MockProductRepository
	restaurantRepo *MockRestaurantRepository
	svc            OrderServiceInterface
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orderRepo:      new(MockOrderRepository),
		productRepo:    new(MockProductRepository),
		restaurantRepo: new(MockRestaurantRepository),
	}
	f.svc = NewOrderService(f.orderRepo, f.productRepo, f.restaurantRepo)
	return f
}

func TestCreateOrder_CapturesLinePrices(t *testing.T) {
	f := newOrderFixture()

	burger := &models.Product{ID: uuid.New(), Name: "Burger", Price: 100}
	f.productRepo.On("GetByIDs", mock.Anything, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*models.Product{burger}, nil)
	f.orderRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	order := &models.Order{
		Firstname:   "Ivan",
		Lastname:    "Petrov",
		Phonenumber: "+79161234567",
		Address:     "Moscow, Lesnaya 20",
	}
	err := f.svc.CreateOrder(context.Background(), order, []OrderLineInput{
		{ProductID: burger.ID, Quantity: 3},
	})

	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 300.0, order.Items[0].Price)
	assert.Equal(t, 300.0, order.TotalPrice())
	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, models.PaymentUnpaidOnline, order.PaymentMethod)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.False(t, order.RegisteredAt.IsZero())
}

func TestCreateOrder_EmptyLines(t *testing.T) {
	f := newOrderFixture()

	err := f.svc.CreateOrder(context.Background(), &models.Order{}, nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newOrderFixture()

	f.productRepo.On("GetByIDs", mock.Anything, mock.AnythingOfType("[]uuid.UUID")).
		Return([]*models.Product{}, nil)

	err := f.svc.CreateOrder(context.Background(), &models.Order{}, []OrderLineInput{
		{ProductID: uuid.New(), Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
	f.orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusPreparing}, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, orderID, models.OrderStatusInDelivery).Return(nil)

	err := f.svc.UpdateStatus(context.Background(), orderID, models.OrderStatusInDelivery)

	require.NoError(t, err)
	f.orderRepo.AssertNotCalled(t, "SetDeliveredAt", mock.Anything, mock.Anything)
}

func TestUpdateStatus_CompletionStampsDelivery(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusInDelivery}, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, orderID, models.OrderStatusCompleted).Return(nil)
	f.orderRepo.On("SetDeliveredAt", mock.Anything, orderID).Return(nil)

	err := f.svc.UpdateStatus(context.Background(), orderID, models.OrderStatusCompleted)

	require.NoError(t, err)
	f.orderRepo.AssertCalled(t, "SetDeliveredAt", mock.Anything, orderID)
}

func TestUpdateStatus_SkippingStagesRejected(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusNew}, nil)

	err := f.svc.UpdateStatus(context.Background(), orderID, models.OrderStatusCompleted)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_BackwardsRejected(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusInDelivery}, nil)

	err := f.svc.UpdateStatus(context.Background(), orderID, models.OrderStatusPreparing)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAssignRestaurant_MovesToPreparing(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	restaurantID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusNew}, nil)
	f.restaurantRepo.On("GetByID", mock.Anything, restaurantID).
		Return(&models.Restaurant{ID: restaurantID}, nil)
	f.orderRepo.On("AssignRestaurant", mock.Anything, orderID, restaurantID).Return(nil)

	err := f.svc.AssignRestaurant(context.Background(), orderID, restaurantID)

	require.NoError(t, err)
	f.orderRepo.AssertCalled(t, "AssignRestaurant", mock.Anything, orderID, restaurantID)
}

func TestMarkCalled_StampsTimestamp(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusNew}, nil)
	f.orderRepo.On("SetCalledAt", mock.Anything, orderID).Return(nil)

	err := f.svc.MarkCalled(context.Background(), orderID)

	require.NoError(t, err)
	f.orderRepo.AssertCalled(t, "SetCalledAt", mock.Anything, orderID)
}

func TestAssignRestaurant_OnlyFromNew(t *testing.T) {
	f := newOrderFixture()

	orderID := uuid.New()
	f.orderRepo.On("GetByID", mock.Anything, orderID).
		Return(&models.Order{ID: orderID, Status: models.OrderStatusPreparing}, nil)

	err := f.svc.AssignRestaurant(context.Background(), orderID, uuid.New())

	assert.ErrorIs(t, err, ErrInvalidTransition)
	f.orderRepo.AssertNotCalled(t, "AssignRestaurant", mock.Anything, mock.Anything, mock.Anything)
}
