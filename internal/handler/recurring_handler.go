package handler

import (
	"net/http"
	"strings"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DefaultUpcomingDays is the preview window used when days is not given
const DefaultUpcomingDays = 30

// RecurringHandler handles recurring template HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// CreateRecurringRequest represents the create recurring template request body
type CreateRecurringRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"categoryId"`
	Amount     string `json:"amount"`
	Type       string `json:"type"`
	Frequency  string `json:"frequency"`
	StartDate  string `json:"startDate"`
	Notes      string `json:"notes"`
}

// UpdateRecurringRequest represents the update recurring template request body
type UpdateRecurringRequest struct {
	Name        *string `json:"name,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Type        *string `json:"type,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	NextDueDate *string `json:"nextDueDate,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// RecurringResponse represents a recurring template in API responses
type RecurringResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"categoryId"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Frequency   string `json:"frequency"`
	StartDate   string `json:"startDate"`
	NextDueDate string `json:"nextDueDate"`
	IsActive    bool   `json:"isActive"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// UpcomingResponse is one template with its projected due dates
type UpcomingResponse struct {
	Template RecurringResponse `json:"template"`
	Dates    []string          `json:"dates"`
}

// ProcessDueResponse reports the outcome of a sweep
type ProcessDueResponse struct {
	Processed int `json:"processed"`
}

func toRecurringResponse(t *domain.RecurringTemplate) RecurringResponse {
	return RecurringResponse{
		ID:          t.ID,
		Name:        t.Name,
		CategoryID:  t.CategoryID,
		Amount:      formatAmount(t.Amount),
		Type:        string(t.Type),
		Frequency:   string(t.Frequency),
		StartDate:   t.StartDate,
		NextDueDate: t.NextDueDate,
		IsActive:    t.IsActive,
		Notes:       t.Notes,
		CreatedAt:   formatTimestamp(t.CreatedAt),
		UpdatedAt:   formatTimestamp(t.UpdatedAt),
	}
}

// ListRecurring godoc
// @Summary List recurring templates
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RecurringResponse
// @Failure 401 {object} ProblemDetails
// @Router /recurring [get]
func (h *RecurringHandler) ListRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	templates, err := h.recurringService.ListTemplates(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to list recurring templates")
	}

	response := make([]RecurringResponse, len(templates))
	for i, t := range templates {
		response[i] = toRecurringResponse(t)
	}
	return c.JSON(http.StatusOK, response)
}

// GetRecurring godoc
// @Summary Get a recurring template
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurring template ID"
// @Success 200 {object} RecurringResponse
// @Failure 404 {object} ProblemDetails
// @Router /recurring/{id} [get]
func (h *RecurringHandler) GetRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	template, err := h.recurringService.GetTemplate(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to get recurring template")
	}
	return c.JSON(http.StatusOK, toRecurringResponse(template))
}

// CreateRecurring godoc
// @Summary Create a recurring template
// @Description The first occurrence is due on startDate. frequency defaults to monthly.
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecurringRequest true "Recurring template creation request"
// @Success 201 {object} RecurringResponse
// @Failure 400 {object} ProblemDetails
// @Router /recurring [post]
func (h *RecurringHandler) CreateRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, perr := parseAmount(req.Amount)
	if perr != nil {
		return respondParamError(c, perr)
	}
	frequency, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		return respondError(c, err, "Failed to create recurring template")
	}

	template, err := h.recurringService.CreateTemplate(c.Request().Context(), userID, domain.CreateRecurringTemplateInput{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Amount:     amount,
		Type:       domain.TransactionType(req.Type),
		Frequency:  frequency,
		StartDate:  strings.TrimSpace(req.StartDate),
		Notes:      req.Notes,
	})
	if err != nil {
		return respondError(c, err, "Failed to create recurring template")
	}

	log.Info().Str("user_id", userID).Str("recurring_id", template.ID).Msg("Recurring template created")
	return c.JSON(http.StatusCreated, toRecurringResponse(template))
}

// UpdateRecurring godoc
// @Summary Update a recurring template
// @Description Partial update. Set isActive to pause or resume the template.
// @Tags recurring
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurring template ID"
// @Param request body UpdateRecurringRequest true "Recurring template update request"
// @Success 200 {object} RecurringResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /recurring/{id} [put]
func (h *RecurringHandler) UpdateRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateRecurringRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := domain.UpdateRecurringTemplateInput{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		StartDate:   req.StartDate,
		NextDueDate: req.NextDueDate,
		IsActive:    req.IsActive,
		Notes:       req.Notes,
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
	if req.Frequency != nil {
		frequency := domain.Frequency(strings.ToLower(strings.TrimSpace(*req.Frequency)))
		input.Frequency = &frequency
	}

	template, err := h.recurringService.UpdateTemplate(c.Request().Context(), userID, c.Param("id"), input)
	if err != nil {
		return respondError(c, err, "Failed to update recurring template")
	}
	return c.JSON(http.StatusOK, toRecurringResponse(template))
}

// DeleteRecurring godoc
// @Summary Delete a recurring template
// @Description Transactions already spawned by the template are kept
// @Tags recurring
// @Security BearerAuth
// @Param id path string true "Recurring template ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /recurring/{id} [delete]
func (h *RecurringHandler) DeleteRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	if err := h.recurringService.DeleteTemplate(c.Request().Context(), userID, c.Param("id")); err != nil {
		return respondError(c, err, "Failed to delete recurring template")
	}
	return c.NoContent(http.StatusNoContent)
}

// ProcessRecurring godoc
// @Summary Materialize a recurring template now
// @Description Creates a transaction dated today and moves the next due date one period past today
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recurring template ID"
// @Success 201 {object} TransactionResponse
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /recurring/{id}/process [post]
func (h *RecurringHandler) ProcessRecurring(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	tx, err := h.recurringService.ProcessTemplate(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to process recurring template")
	}
	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// GetUpcoming godoc
// @Summary Preview upcoming due dates
// @Description Active templates due within the next days days, with every due date in the window
// @Tags recurring
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window in days (0-366, default 30)"
// @Success 200 {array} UpcomingResponse
// @Failure 400 {object} ProblemDetails
// @Router /recurring/upcoming [get]
func (h *RecurringHandler) GetUpcoming(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	days, perr := queryInt(c, "days", DefaultUpcomingDays)
	if perr != nil {
		return respondParamError(c, perr)
	}
	if days < 0 || days > service.MaxUpcomingDays {
		return NewFieldError(c, "days", "Days must be between 0 and 366")
	}

	upcoming, err := h.recurringService.ListUpcoming(c.Request().Context(), userID, days)
	if err != nil {
		return respondError(c, err, "Failed to list upcoming recurring transactions")
	}

	response := make([]UpcomingResponse, len(upcoming))
	for i, u := range upcoming {
		response[i] = UpcomingResponse{Template: toRecurringResponse(u.Template), Dates: u.Dates}
	}
	return c.JSON(http.StatusOK, response)
}

// ProcessDue godoc
// @Summary Run the recurring sweep
// @Description Materializes every due template for every user. Called by an external scheduler.
// @Tags recurring
// @Produce json
// @Param X-Scheduler-Token header string true "Scheduler token"
// @Success 200 {object} ProcessDueResponse
// @Failure 401 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /recurring/process-due [post]
func (h *RecurringHandler) ProcessDue(c echo.Context) error {
	processed, err := h.recurringService.ProcessDue(c.Request().Context())
	if err != nil {
		if processed > 0 {
			log.Warn().Int("processed", processed).Msg("Recurring sweep stopped early")
		}
		return respondError(c, err, "Failed to process due recurring templates")
	}
	return c.JSON(http.StatusOK, ProcessDueResponse{Processed: processed})
}
