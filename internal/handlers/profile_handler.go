package handlers

import (
	"net/http"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/middleware"
	"financeflow_backend/internal/services"
	"financeflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	authService        AuthService
	applicationService services.ApplicationService
}

func NewProfileHandler(base *BaseHandler, authService AuthService, applicationService services.ApplicationService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:        base,
		authService:        authService,
		applicationService: applicationService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	profile := rg.Group("/profile")
	profile.Use(middleware.RequireSession())
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", middleware.RequirePermission(auth.PermManageOwnProfile), h.UpdateProfile)
		profile.GET("/applications", middleware.RequirePermission(auth.PermViewOwnApplications), h.ListMyApplications)
	}
}

// GetProfile godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetProfile(h.GetDB(c), h.Session(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Description Only name, mobile and income are written. id, email and is_admin are ignored.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.ProfileUpdateRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/profile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), h.GetDB(c), h.Session(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListMyApplications godoc
// @Summary Applications submitted by the current user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ApplicationListResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /api/v1/profile/applications [get]
func (h *ProfileHandler) ListMyApplications(c *gin.Context) {
	apps, err := h.applicationService.ListMyApplications(h.GetDB(c), h.Session(c).UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApplicationListResponse{Applications: apps, Total: len(apps)})
}
