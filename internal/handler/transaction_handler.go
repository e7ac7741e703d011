package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	CategoryID string  `json:"categoryId"`
	Amount     string  `json:"amount"`
	Type       string  `json:"type"`
	Date       *string `json:"date,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// UpdateTransactionRequest represents the update transaction request body.
// Omitted fields keep their current value.
type UpdateTransactionRequest struct {
	CategoryID *string `json:"categoryId,omitempty"`
	Amount     *string `json:"amount,omitempty"`
	Type       *string `json:"type,omitempty"`
	Date       *string `json:"date,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"categoryId"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
	IsRecurring bool    `json:"isRecurring"`
	RecurringID *string `json:"recurringId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Amount:      formatAmount(t.Amount),
		Type:        string(t.Type),
		Date:        t.Date,
		Notes:       t.Notes,
		IsRecurring: t.IsRecurring,
		RecurringID: t.RecurringID,
		CreatedAt:   formatTimestamp(t.CreatedAt),
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
}

// GetTransactions godoc
// @Summary List transactions
// @Description List transactions, newest first. month is 0-indexed (0 = January).
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param month query int false "Month (0-11)"
// @Param year query int false "Year"
// @Param type query string false "income or expense"
// @Param categoryId query string false "Category ID"
// @Param recurringId query string false "Recurring template ID"
// @Success 200 {array} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var filters domain.TransactionFilters

	month, hasMonth, perr := queryMonth(c, "month")
	if perr != nil {
		return respondParamError(c, perr)
	}
	if hasMonth {
		filters.Month = &month
	}

	year, hasYear, perr := queryYear(c, "year")
	if perr != nil {
		return respondParamError(c, perr)
	}
	if hasYear {
		filters.Year = &year
	}

	if raw := c.QueryParam("type"); raw != "" {
		txType, perr := parseTransactionType(raw)
		if perr != nil {
			return respondParamError(c, perr)
		}
		filters.Type = &txType
	}
	if categoryID := strings.TrimSpace(c.QueryParam("categoryId")); categoryID != "" {
		filters.CategoryID = &categoryID
	}
	if recurringID := strings.TrimSpace(c.QueryParam("recurringId")); recurringID != "" {
		filters.RecurringID = &recurringID
	}

	transactions, err := h.transactionService.ListTransactions(c.Request().Context(), userID, filters)
	if err != nil {
		return respondError(c, err, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = toTransactionResponse(tx)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} TransactionResponse
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	tx, err := h.transactionService.GetTransaction(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get transaction")
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Record an income or expense. A missing date means today.
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, perr := parseAmount(req.Amount)
	if perr != nil {
		return respondParamError(c, perr)
	}

	input := domain.CreateTransactionInput{
		CategoryID: req.CategoryID,
		Amount:     amount,
		Type:       domain.TransactionType(req.Type),
	}
	if req.Date != nil {
		input.Date = strings.TrimSpace(*req.Date)
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	tx, err := h.transactionService.CreateTransaction(c.Request().Context(), userID, input)
	if err != nil {
		return respondError(c, err, "Failed to create transaction")
	}
	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "Transaction update request"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := domain.UpdateTransactionInput{
		CategoryID: req.CategoryID,
		Date:       req.Date,
		Notes:      req.Notes,
	}
	if req.Amount != nil {
		amount, perr := parseAmount(*req.Amount)
		if perr != nil {
			return respondParamError(c, perr)
		}
		input.Amount = &amount
	}
	if req.Type != nil {
		txType := domain.TransactionType(*req.Type)
		input.Type = &txType
	}

	tx, err := h.transactionService.UpdateTransaction(c.Request().Context(), userID, c.Param("id"), input)
	if err != nil {
		return respondError(c, err, "Failed to update transaction")
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.transactionService.DeleteTransaction(c.Request().Context(), userID, c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete transaction")
	}
	return c.NoContent(http.StatusNoContent)
}
