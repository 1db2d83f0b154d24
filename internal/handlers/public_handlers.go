package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"starburger/internal/common"
	"starburger/internal/models"
	"starburger/internal/services"
)

// PublicHandlers serves the customer-facing endpoints: banners, the menu and
// order registration. No authentication.
type PublicHandlers struct {
	productService services.ProductServiceInterface
	orderService   services.OrderServiceInterface
}

func NewPublicHandlers(productService services.ProductServiceInterface, orderService services.OrderServiceInterface) *PublicHandlers {
	return &PublicHandlers{
		productService: productService,
		orderService:   orderService,
	}
}

type banner struct {
	Title string `json:"title"`
	Src   string `json:"src"`
	Text  string `json:"text"`
}

// ListBanners handles GET /banners
func (h *PublicHandlers) ListBanners(c echo.Context) error {
	return c.JSON(http.StatusOK, []banner{
		{Title: "Burger", Src: "/static/burger.jpg", Text: "Tasty Burger at your door step"},
		{Title: "Spices", Src: "/static/food.jpg", Text: "All Cuisines"},
		{Title: "New York", Src: "/static/tasty.jpg", Text: "Food is incomplete without a tasty dessert"},
	})
}

// ListMenu handles GET /products: every product currently offered by at least
// one restaurant.
func (h *PublicHandlers) ListMenu(c echo.Context) error {
	ctx := c.Request().Context()

	listings, err := h.productService.ListMenu(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to load menu")
	}
	return c.JSON(http.StatusOK, listings)
}

// RegisterOrder handles POST /orders
func (h *PublicHandlers) RegisterOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Firstname     string  `json:"firstname"`
		Lastname      string  `json:"lastname"`
		Phonenumber   string  `json:"phonenumber"`
		Address       string  `json:"address"`
		PaymentMethod string  `json:"payment_method"`
		Comment       *string `json:"comment"`
		Products      []struct {
			Product  string `json:"product"`
			Quantity int    `json:"quantity"`
		} `json:"products"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	for field, value := range map[string]string{
		"firstname": req.Firstname,
		"lastname":  req.Lastname,
		"address":   req.Address,
	} {
		if err := common.ValidateRequiredString(value, field); err != nil {
			return common.SendValidationError(c, field, err.Error())
		}
	}
	if err := common.ValidatePhoneNumber(req.Phonenumber, "phonenumber"); err != nil {
		return common.SendValidationError(c, "phonenumber", err.Error())
	}
	if req.PaymentMethod != "" {
		if err := common.ValidatePaymentMethod(req.PaymentMethod); err != nil {
			return common.SendValidationError(c, "payment_method", err.Error())
		}
	}
	if len(req.Products) == 0 {
		return common.SendValidationError(c, "products", "products list must not be empty")
	}

	lines := make([]services.OrderLineInput, 0, len(req.Products))
	for _, product := range req.Products {
		productID, err := common.ValidateUUID(product.Product, "product")
		if err != nil {
			return common.SendValidationError(c, "products", err.Error())
		}
		if err := common.ValidateQuantity(product.Quantity, "quantity"); err != nil {
			return common.SendValidationError(c, "products", err.Error())
		}
		lines = append(lines, services.OrderLineInput{ProductID: productID, Quantity: product.Quantity})
	}

	order := &models.Order{
		Firstname:     req.Firstname,
		Lastname:      req.Lastname,
		Phonenumber:   req.Phonenumber,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
		Comment:       req.Comment,
	}

	if err := h.orderService.CreateOrder(ctx, order, lines); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return common.SendNotFoundError(c, "Product")
		}
		return common.SendServerError(c, "Failed to register order")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order registered successfully",
		"order":   order,
	})
}
