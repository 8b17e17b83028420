package handlers

import (
	"context"
	"net/http"

	"financeflow_backend/internal/auth"
	"financeflow_backend/internal/models"
	"financeflow_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthService is the part of auth.Provider the HTTP layer uses.
type AuthService interface {
	Login(ctx context.Context, db *gorm.DB, s *auth.Session, email, secret string) bool
	AdminLogin(ctx context.Context, db *gorm.DB, s *auth.Session, email, secret string) bool
	Logout(ctx context.Context, s *auth.Session)
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error)
	GetProfile(db *gorm.DB, s *auth.Session) (*models.User, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, s *auth.Session, req *dto.ProfileUpdateRequest) (*models.User, error)
}

type AuthHandler struct {
	*BaseHandler
	authService AuthService
}

func NewAuthHandler(base *BaseHandler, authService AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/admin/login", h.AdminLogin)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/session", h.CurrentSession)
	}
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.RegisterRequest true "Registration form"
// @Success 201 {object} models.User
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Email already registered"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.LoginResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, h.authService.Login)
}

// AdminLogin godoc
// @Summary Sign in as administrator
// @Description Succeeds only for users whose record carries the admin flag.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.LoginResponse
// @Router /api/v1/auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, h.authService.AdminLogin)
}

type loginFunc func(ctx context.Context, db *gorm.DB, s *auth.Session, email, secret string) bool

func (h *AuthHandler) login(c *gin.Context, login loginFunc) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	session := h.Session(c)
	if !login(c.Request.Context(), db, session, req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, dto.LoginResponse{
			Success: false,
			State:   string(session.State),
		})
		return
	}

	user, err := h.authService.GetProfile(db, session)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	expiresAt := session.ExpiresAt
	c.JSON(http.StatusOK, dto.LoginResponse{
		Success:     true,
		State:       string(session.State),
		AccessToken: session.Token,
		ExpiresAt:   &expiresAt,
		User:        user,
	})
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the current session. Always succeeds.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SessionResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session := h.Session(c)
	h.authService.Logout(c.Request.Context(), session)
	c.JSON(http.StatusOK, dto.SessionResponse{State: string(session.State)})
}

// CurrentSession godoc
// @Summary Current authentication state
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SessionResponse
// @Router /api/v1/auth/session [get]
func (h *AuthHandler) CurrentSession(c *gin.Context) {
	session := h.Session(c)
	resp := dto.SessionResponse{
		State:   string(session.State),
		IsAdmin: session.IsAdminSession(),
	}

	if session.Authenticated() {
		user, err := h.authService.GetProfile(h.GetDB(c), session)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		resp.User = user
	}
	c.JSON(http.StatusOK, resp)
}
