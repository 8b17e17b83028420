package apperrors

import (
	"financeflow_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler renders errors as ErrorResponse. With Debug off the message of
// unexpected (non AppError) failures is replaced by a generic one.
type GinErrorHandler struct {
	Debug bool
}

var defaultHandler = &GinErrorHandler{Debug: false}

// SetDebug toggles exposing wrapped causes of unexpected errors. Called once at startup.
func SetDebug(debug bool) {
	defaultHandler = &GinErrorHandler{Debug: debug}
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if h.Debug {
			appErr = appErr.WithDetails(err.Error())
		}
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", appErr,
			"path", c.Request.URL.Path,
			"code", appErr.Code,
		)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
