package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"starburger/internal/models"
	"starburger/internal/services"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) ListMenu(ctx context.Context) ([]*models.ProductListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductListing), args.Error(1)
}

func (m *MockProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) ListProducts(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, id, reader, size, contentType)
	return args.Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, order *models.Order, lines []services.OrderLineInput) error {
	args := m.Called(ctx, order, lines)
	return args.Error(0)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderService) ListOpenOrders(ctx context.Context) ([]*models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockOrderService) AssignRestaurant(ctx context.Context, orderID, restaurantID uuid.UUID) error {
	args := m.Called(ctx, orderID, restaurantID)
	return args.Error(0)
}

func (m *MockOrderService) MarkCalled(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func postOrder(t *testing.T, handler *PublicHandlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler.RegisterOrder(c))
	return rec
}

func TestRegisterOrder_Success(t *testing.T) {
	productSvc := new(MockProductService)
	orderSvc := new(MockOrderService)
	handler := NewPublicHandlers(productSvc, orderSvc)

	orderSvc.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("[]services.OrderLineInput")).
		Return(nil)

	productID := uuid.New()
	rec := postOrder(t, handler, `{
		"firstname": "Ivan",
		"lastname": "Petrov",
		"phonenumber": "+79161234567",
		"address": "Moscow, Lesnaya 20",
		"products": [{"product": "`+productID.String()+`", "quantity": 2}]
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	orderSvc.AssertCalled(t, "CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("[]services.OrderLineInput"))
}

func TestRegisterOrder_EmptyProducts(t *testing.T) {
	handler := NewPublicHandlers(new(MockProductService), new(MockOrderService))

	rec := postOrder(t, handler, `{
		"firstname": "Ivan",
		"lastname": "Petrov",
		"phonenumber": "+79161234567",
		"address": "Moscow, Lesnaya 20",
		"products": []
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "products")
}

func TestRegisterOrder_MissingFirstname(t *testing.T) {
	handler := NewPublicHandlers(new(MockProductService), new(MockOrderService))

	rec := postOrder(t, handler, `{
		"lastname": "Petrov",
		"phonenumber": "+79161234567",
		"address": "Moscow, Lesnaya 20",
		"products": [{"product": "`+uuid.NewString()+`", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "firstname")
}

func TestRegisterOrder_BadPhoneNumber(t *testing.T) {
	handler := NewPublicHandlers(new(MockProductService), new(MockOrderService))

	rec := postOrder(t, handler, `{
		"firstname": "Ivan",
		"lastname": "Petrov",
		"phonenumber": "not-a-phone",
		"address": "Moscow, Lesnaya 20",
		"products": [{"product": "`+uuid.NewString()+`", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phonenumber")
}

func TestRegisterOrder_BadProductID(t *testing.T) {
	orderSvc := new(MockOrderService)
	handler := NewPublicHandlers(new(MockProductService), orderSvc)

	rec := postOrder(t, handler, `{
		"firstname": "Ivan",
		"lastname": "Petrov",
		"phonenumber": "+79161234567",
		"address": "Moscow, Lesnaya 20",
		"products": [{"product": "not-a-uuid", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	orderSvc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterOrder_UnknownProduct(t *testing.T) {
	orderSvc := new(MockOrderService)
	handler := NewPublicHandlers(new(MockProductService), orderSvc)

	orderSvc.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order"), mock.AnythingOfType("[]services.OrderLineInput")).
		Return(services.ErrProductNotFound)

	rec := postOrder(t, handler, `{
		"firstname": "Ivan",
		"lastname": "Petrov",
		"phonenumber": "+79161234567",
		"address": "Moscow, Lesnaya 20",
		"products": [{"product": "`+uuid.NewString()+`", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterOrder_InvalidPaymentMethod(t *testing.T) {
	handler := NewPublicHandlers(new(MockProductService), new(MockOrderService))

	rec := postOrder(t, handler, `{
		"firstname": "Ivan",
		"lastname": "Petrov",
		"phonenumber": "+79161234567",
		"address": "Moscow, Lesnaya 20",
		"payment_method": "barter",
		"products": [{"product": "`+uuid.NewString()+`", "quantity": 1}]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
