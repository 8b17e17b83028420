package handlers

import (
	"net/http"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/middleware"
	"financeflow_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  base,
		adminService: adminService,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/stats", middleware.RequirePermission(auth.PermViewStats), h.Stats)
}

// Stats godoc
// @Summary Dashboard counters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
