package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"starburger/internal/common"
	"starburger/internal/models"
	"starburger/internal/services"
)

// ProductHandlers serves the admin product-management endpoints.
type ProductHandlers struct {
	productService services.ProductServiceInterface
}

func NewProductHandlers(productService services.ProductServiceInterface) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
	}
}

// ListProducts handles GET /products/all
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 50
	offset := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil {
			offset = parsed
		}
	}
	limit, offset = common.ValidatePaginationParams(limit, offset)

	products, err := h.productService.ListProducts(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		CategoryID  *string `json:"category_id"`
		Special     bool    `json:"special"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "price must not be negative")
	}

	product := &models.Product{
		Name:        req.Name,
		Price:       req.Price,
		Special:     req.Special,
		Description: req.Description,
	}
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := common.ValidateUUID(*req.CategoryID, "category_id")
		if err != nil {
			return common.SendValidationError(c, "category_id", err.Error())
		}
		product.CategoryID = &categoryID
	}

	if err := h.productService.CreateProduct(ctx, product); err != nil {
		return common.SendServerError(c, "Failed to create product")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct handles PUT /products/:id. The price change affects future
// orders only; captured line prices stay as they were.
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	product, err := h.productService.GetProduct(ctx, productID)
	if err != nil {
		return common.SendNotFoundError(c, "Product")
	}

	var req struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		CategoryID  *string `json:"category_id"`
		Special     bool    `json:"special"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}
	if req.Price < 0 {
		return common.SendValidationError(c, "price", "price must not be negative")
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Special = req.Special
	product.Description = req.Description
	product.CategoryID = nil
	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := common.ValidateUUID(*req.CategoryID, "category_id")
		if err != nil {
			return common.SendValidationError(c, "category_id", err.Error())
		}
		product.CategoryID = &categoryID
	}

	if err := h.productService.UpdateProduct(ctx, product); err != nil {
		return common.SendServerError(c, "Failed to update product")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return common.SendServerError(c, "Failed to delete product")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted",
	})
}

// UploadImage handles POST /products/:id/image with a multipart "image" file.
func (h *ProductHandlers) UploadImage(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := common.ValidateUUID(c.Param("id"), "product id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.productService.UploadProductImage(ctx, productID, file, fileHeader.Size, contentType); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return common.SendNotFoundError(c, "Product")
		}
		return common.SendServerError(c, "Failed to upload image")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Image uploaded",
	})
}
