package handlers

import (
	"net/http"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/middleware"
	"financeflow_backend/internal/services"
	"financeflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        base,
		applicationService: applicationService,
	}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/applications")
	admin.Use(middleware.RequirePermission(auth.PermReviewApplications))
	{
		admin.GET("", h.ListApplications)
		admin.PATCH("/:id/status", h.UpdateApplicationStatus)
	}
}

// ListApplications godoc
// @Summary List all applications
// @Description Newest submissions first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/applications [get]
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	apps, err := h.applicationService.ListApplications(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApplicationListResponse{Applications: apps, Total: len(apps)})
}

// UpdateApplicationStatus godoc
// @Summary Approve or reject an application
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param status body dto.UpdateApplicationStatusRequest true "APPROVED or REJECTED"
// @Success 200 {object} models.Application
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Already decided"
// @Router /api/v1/admin/applications/{id}/status [patch]
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateApplicationStatus(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
