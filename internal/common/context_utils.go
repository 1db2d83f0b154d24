package common

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"starburger/internal/models"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	if strings.TrimSpace(idStr) == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s has invalid UUID format: %v", fieldName, err)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{7,18}$`)

// ValidatePhoneNumber validates customer phone numbers. Accepts international
// format with an optional leading plus.
func ValidatePhoneNumber(phone, fieldName string) error {
	if strings.TrimSpace(phone) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if !phonePattern.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("%s has invalid phone number format", fieldName)
	}
	return nil
}

// ValidateQuantity bounds order line quantities to 1..1000 units.
func ValidateQuantity(quantity int, fieldName string) error {
	if quantity <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if quantity > 1000 {
		return fmt.Errorf("%s cannot exceed 1000", fieldName)
	}
	return nil
}

// ValidateOrderStatus validates order status values
func ValidateOrderStatus(status string) error {
	validStatuses := map[string]bool{
		models.OrderStatusNew: true, models.OrderStatusPreparing: true,
		models.OrderStatusInDelivery: true, models.OrderStatusCompleted: true,
	}
	if !validStatuses[status] {
		return fmt.Errorf("order status must be one of: new, preparing, in_delivery, completed")
	}
	return nil
}

// ValidatePaymentMethod validates payment method values
func ValidatePaymentMethod(method string) error {
	validMethods := map[string]bool{
		models.PaymentPaidOnline: true, models.PaymentUnpaidOnline: true,
		models.PaymentCashOnDelivery: true, models.PaymentCardOnDelivery: true,
	}
	if !validMethods[method] {
		return fmt.Errorf("payment method must be one of: paid_online, unpaid_online, cash_on_delivery, card_on_delivery")
	}
	return nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50 // Default
	}
	if limit > 1000 {
		limit = 1000 // Maximum
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleFromContext extracts the staff role from the request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
