package handlers

import (
	"net/http"

	"financeflow_backend/internal/services"
	"financeflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdviceHandler struct {
	*BaseHandler
	adviceService services.AdviceService
}

func NewAdviceHandler(base *BaseHandler, adviceService services.AdviceService) *AdviceHandler {
	return &AdviceHandler{
		BaseHandler:   base,
		adviceService: adviceService,
	}
}

func (h *AdviceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/advice", h.Recommend)
}

// Recommend godoc
// @Summary Investment advice for an income
// @Tags advice
// @Accept json
// @Produce json
// @Param request body dto.AdviceRequest true "Annual income"
// @Success 200 {object} dto.AdviceResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Failure 504 {object} apperrors.ErrorResponse
// @Router /api/v1/advice [post]
func (h *AdviceHandler) Recommend(c *gin.Context) {
	var req dto.AdviceRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.adviceService.Recommend(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
