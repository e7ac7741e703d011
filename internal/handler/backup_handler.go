package handler

import (
	"fmt"
	"net/http"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/middleware"
	"github.com/dafibh/pocketbook/pocketbook-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// BackupHandler handles data export and S3 snapshot requests
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// ExportBackup godoc
// @Summary Export all data
// @Description Download every category, transaction and recurring template of the caller as JSON
// @Tags backup
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserSnapshot
// @Failure 401 {object} ProblemDetails
// @Router /backup/export [get]
func (h *BackupHandler) ExportBackup(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	snapshot, err := h.backupService.Export(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to export data")
	}

	filename := fmt.Sprintf("pocketbook-%s.json", snapshot.ExportedAt.UTC().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, snapshot)
}

// CreateBackup godoc
// @Summary Upload a snapshot
// @Description Store a snapshot of the caller's data in object storage
// @Tags backup
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.BackupObject
// @Failure 401 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /backup [post]
func (h *BackupHandler) CreateBackup(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	obj, err := h.backupService.Upload(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to upload backup")
	}
	return c.JSON(http.StatusCreated, obj)
}

// ListBackups godoc
// @Summary List snapshots
// @Description Stored snapshots of the caller, newest first
// @Tags backup
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.BackupObject
// @Failure 401 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /backup [get]
func (h *BackupHandler) ListBackups(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	objects, err := h.backupService.List(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to list backups")
	}
	if objects == nil {
		objects = []domain.BackupObject{}
	}
	return c.JSON(http.StatusOK, objects)
}
