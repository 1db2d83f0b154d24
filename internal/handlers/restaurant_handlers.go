package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"starburger/internal/common"
	"starburger/internal/models"
	"starburger/internal/repositories"
)

type RestaurantHandlers struct {
	restaurantRepo repositories.RestaurantRepository
	menuRepo       repositories.MenuItemRepository
	productRepo    repositories.ProductRepository
}

func NewRestaurantHandlers(restaurantRepo repositories.RestaurantRepository, menuRepo repositories.MenuItemRepository, productRepo repositories.ProductRepository) *RestaurantHandlers {
	return &RestaurantHandlers{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		productRepo:    productRepo,
	}
}

// ListRestaurants handles GET /restaurants
func (h *RestaurantHandlers) ListRestaurants(c echo.Context) error {
	ctx := c.Request().Context()

	restaurants, err := h.restaurantRepo.List(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list restaurants")
	}
	return c.JSON(http.StatusOK, restaurants)
}

// CreateRestaurant handles POST /restaurants
func (h *RestaurantHandlers) CreateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name         string  `json:"name"`
		Address      string  `json:"address"`
		ContactPhone *string `json:"contact_phone"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Address, "address"); err != nil {
		return common.SendValidationError(c, "address", err.Error())
	}

	restaurant := &models.Restaurant{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	}
	if err := h.restaurantRepo.Create(ctx, restaurant); err != nil {
		return common.SendServerError(c, "Failed to create restaurant")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Restaurant created successfully",
		"restaurant": restaurant,
	})
}

// UpdateRestaurant handles PUT /restaurants/:id
func (h *RestaurantHandlers) UpdateRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	restaurant, err := h.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return common.SendNotFoundError(c, "Restaurant")
	}

	var req struct {
		Name         string  `json:"name"`
		Address      string  `json:"address"`
		ContactPhone *string `json:"contact_phone"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if err := common.ValidateRequiredString(req.Address, "address"); err != nil {
		return common.SendValidationError(c, "address", err.Error())
	}

	restaurant.Name = req.Name
	restaurant.Address = req.Address
	restaurant.ContactPhone = req.ContactPhone
	if err := h.restaurantRepo.Update(ctx, restaurant); err != nil {
		return common.SendServerError(c, "Failed to update restaurant")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Restaurant updated successfully",
		"restaurant": restaurant,
	})
}

// UpdateMenu handles PUT /restaurants/:id/menu: upserts availability rows for
// the restaurant.
func (h *RestaurantHandlers) UpdateMenu(c echo.Context) error {
	ctx := c.Request().Context()

	restaurantID, err := common.ValidateUUID(c.Param("id"), "restaurant id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if _, err := h.restaurantRepo.GetByID(ctx, restaurantID); err != nil {
		return common.SendNotFoundError(c, "Restaurant")
	}

	var req struct {
		Items []struct {
			ProductID    string `json:"product_id"`
			Availability bool   `json:"availability"`
		} `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.Items) == 0 {
		return common.SendValidationError(c, "items", "items list must not be empty")
	}

	for _, item := range req.Items {
		productID, err := common.ValidateUUID(item.ProductID, "product_id")
		if err != nil {
			return common.SendValidationError(c, "items", err.Error())
		}
		menuItem := &models.RestaurantMenuItem{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			ProductID:    productID,
			Availability: item.Availability,
		}
		if err := h.menuRepo.Upsert(ctx, menuItem); err != nil {
			return common.SendServerError(c, "Failed to update menu")
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Menu updated",
	})
}

// ProductAvailability handles GET /products/availability: for every product,
// which restaurants currently offer it.
func (h *RestaurantHandlers) ProductAvailability(c echo.Context) error {
	ctx := c.Request().Context()

	restaurants, err := h.restaurantRepo.List(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list restaurants")
	}
	products, err := h.productRepo.List(ctx, 1000, 0)
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	menuItems, err := h.menuRepo.ListAll(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list menu items")
	}

	available := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, item := range menuItems {
		if available[item.ProductID] == nil {
			available[item.ProductID] = make(map[uuid.UUID]bool)
		}
		available[item.ProductID][item.RestaurantID] = item.Availability
	}

	type productRow struct {
		Product      *models.Product `json:"product"`
		Availability []bool          `json:"availability"`
	}
	rows := make([]productRow, 0, len(products))
	for _, product := range products {
		row := productRow{Product: product, Availability: make([]bool, 0, len(restaurants))}
		for _, restaurant := range restaurants {
			row.Availability = append(row.Availability, available[product.ID][restaurant.ID])
		}
		rows = append(rows, row)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"restaurants": restaurants,
		"products":    rows,
	})
}
