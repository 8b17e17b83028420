package handlers

import (
	"net/http"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/middleware"
	"financeflow_backend/internal/services"
	"financeflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	planService        services.PlanService
	applicationService services.ApplicationService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService, applicationService services.ApplicationService) *PlanHandler {
	return &PlanHandler{
		BaseHandler:        base,
		planService:        planService,
		applicationService: applicationService,
	}
}

func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	plans.Use(middleware.RequirePermission(auth.PermViewPlans))
	{
		plans.GET("", h.ListPlans)
		plans.GET("/:id", h.GetPlan)
		plans.POST("/:id/apply", middleware.RequirePermission(auth.PermApply), h.ApplyForPlan)
	}

	admin := rg.Group("/admin/plans")
	admin.Use(middleware.RequirePermission(auth.PermManagePlans))
	{
		admin.POST("", h.CreatePlan)
		admin.PATCH("/:id", h.UpdatePlan)
		admin.DELETE("/:id", h.DeletePlan)
	}
}

// ListPlans godoc
// @Summary List financial plans
// @Description Returns the plan catalogue, optionally filtered by category. An empty catalogue is seeded with the built-in plans.
// @Tags plans
// @Produce json
// @Param category query string false "INVESTMENT, INSURANCE, FD or LOAN"
// @Success 200 {object} dto.PlanListResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /api/v1/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	var query dto.ListPlansQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	plans, err := h.planService.ListPlans(h.GetDB(c), query.Category)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PlanListResponse{Plans: plans, Total: len(plans)})
}

// GetPlan godoc
// @Summary Get a plan
// @Tags plans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} models.Plan
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/plans/{id} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ApplyForPlan godoc
// @Summary Apply for a plan
// @Description Creates a PENDING application. When the caller is signed in the application is linked to their account.
// @Tags plans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param application body dto.ApplyRequest true "Applicant details"
// @Success 201 {object} models.Application
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/plans/{id}/apply [post]
func (h *PlanHandler) ApplyForPlan(c *gin.Context) {
	var req dto.ApplyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	var userID *string
	if session := h.Session(c); session.Authenticated() {
		id := session.UserID
		userID = &id
	}

	app, err := h.applicationService.ApplyForPlan(h.GetDB(c), c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// CreatePlan godoc
// @Summary Create a plan
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body dto.CreatePlanRequest true "Plan"
// @Success 201 {object} models.Plan
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// UpdatePlan godoc
// @Summary Update a plan
// @Description Only the supplied fields are changed.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param plan body dto.UpdatePlanRequest true "Fields to change"
// @Success 200 {object} models.Plan
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /api/v1/admin/plans/{id} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	var req dto.UpdatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan godoc
// @Summary Delete a plan
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 204
// @Router /api/v1/admin/plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.planService.DeletePlan(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
