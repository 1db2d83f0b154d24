package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"starburger/internal/common"
	"starburger/internal/services"
)

// OrderHandlers serves the staff order-dispatch endpoints.
type OrderHandlers struct {
	orderService    services.OrderServiceInterface
	dispatchService services.DispatchService
}

func NewOrderHandlers(orderService services.OrderServiceInterface, dispatchService services.DispatchService) *OrderHandlers {
	return &OrderHandlers{
		orderService:    orderService,
		dispatchService: dispatchService,
	}
}

// ListDispatchOrders handles GET /dispatch/orders: all open orders with
// eligible restaurants ranked by distance for the unassigned ones. Orders
// whose delivery address failed to geocode still appear, flagged.
func (h *OrderHandlers) ListDispatchOrders(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.dispatchService.ListDispatchOrders(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to load dispatch orders")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": entries,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.orderService.GetOrderByID(ctx, orderID)
	if err != nil {
		return common.SendNotFoundError(c, "Order")
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /orders/:id/status
func (h *OrderHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateOrderStatus(req.Status); err != nil {
		return common.SendValidationError(c, "status", err.Error())
	}

	if err := h.orderService.UpdateStatus(ctx, orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return common.SendNotFoundError(c, "Order")
		case errors.Is(err, services.ErrInvalidTransition):
			return common.SendClientError(c, err.Error())
		}
		return common.SendServerError(c, "Failed to update order status")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Order status updated",
	})
}

// MarkCalled handles PUT /orders/:id/called
func (h *OrderHandlers) MarkCalled(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.orderService.MarkCalled(ctx, orderID); err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return common.SendNotFoundError(c, "Order")
		}
		return common.SendServerError(c, "Failed to mark order as called")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Order marked as called",
	})
}

// AssignRestaurant handles PUT /orders/:id/restaurant
func (h *OrderHandlers) AssignRestaurant(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		RestaurantID string `json:"restaurant_id"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	restaurantID, err := common.ValidateUUID(req.RestaurantID, "restaurant_id")
	if err != nil {
		return common.SendValidationError(c, "restaurant_id", err.Error())
	}

	if err := h.orderService.AssignRestaurant(ctx, orderID, restaurantID); err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return common.SendNotFoundError(c, "Order")
		case errors.Is(err, services.ErrRestaurantNotFound):
			return common.SendNotFoundError(c, "Restaurant")
		case errors.Is(err, services.ErrInvalidTransition):
			return common.SendClientError(c, err.Error())
		}
		return common.SendServerError(c, "Failed to assign restaurant")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Restaurant assigned",
	})
}
