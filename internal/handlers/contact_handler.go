package handlers

import (
	"net/http"

	"financeflow_backend/internal/services"
	"financeflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.SubmitContact)
}

// SubmitContact godoc
// @Summary Send a message to the team
// @Tags contact
// @Accept json
// @Produce json
// @Param message body dto.ContactRequest true "Contact form"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	submission, err := h.contactService.SubmitContact(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ContactResponse{
		ID:      submission.ID,
		Message: "Thanks for reaching out, we will get back to you soon.",
	})
}
