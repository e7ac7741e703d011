package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// UpdateCategoryRequest represents the update category request body
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      string(c.Type),
		Color:     c.Color,
		Icon:      c.Icon,
		CreatedAt: formatTimestamp(c.CreatedAt),
		UpdatedAt: formatTimestamp(c.UpdatedAt),
	}
}

// respondCategoryError treats a missing category as the route's own resource
func respondCategoryError(c echo.Context, err error, msg string) error {
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return NewNotFoundError(c, "Category not found")
	}
	return respondError(c, err, msg)
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {array} CategoryResponse
// @Failure 401 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	categories, err := h.categoryService.ListCategories(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to list categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCategoryRequest true "Category creation request"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	txType, perr := parseTransactionType(req.Type)
	if perr != nil {
		return respondParamError(c, perr)
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), userID, service.CreateCategoryInput{
		Name:  req.Name,
		Type:  txType,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return respondError(c, err, "Failed to create category")
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// UpdateCategory godoc
// @Summary Update a category
// @Description Rename or restyle a category. The type cannot change.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Category update request"
// @Success 200 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), userID, c.Param("id"), service.UpdateCategoryInput{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return respondCategoryError(c, err, "Failed to update category")
	}
	return c.JSON(http.StatusOK, toCategoryResponse(category))
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Refused while transactions or recurring templates still use the category
// @Tags categories
// @Security BearerAuth
// @Param id path string true "Category ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), userID, c.Param("id")); err != nil {
		return respondCategoryError(c, err, "Failed to delete category")
	}
	return c.NoContent(http.StatusNoContent)
}
