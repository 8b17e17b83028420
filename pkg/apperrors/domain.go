package apperrors

import (
	"net/http"
)

// --- Plans ---

var ErrPlanNotFound = New(
	CodeNotFound,
	"plan",
	"Plan not found",
	http.StatusNotFound,
)

// --- Applications ---

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

// ErrInvalidStatusTransition is returned when an already decided application is decided again.
var ErrInvalidStatusTransition = New(
	CodeInvalidStatus,
	"application",
	"Application status can only change from PENDING",
	http.StatusConflict,
)

// --- Auth ---

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email address already exists",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrNoActiveSession = New(
	CodeUnauthorized,
	"auth",
	"No user logged in",
	http.StatusUnauthorized,
)

var ErrNotAdmin = New(
	CodeForbidden,
	"auth",
	"Admin access required",
	http.StatusForbidden,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User profile not found",
	http.StatusNotFound,
)

// --- Advice ---

var ErrAdviceUnavailable = New(
	CodeExternalServiceError,
	"advice",
	"Failed to get recommendation",
	http.StatusBadGateway,
)

var ErrAdviceTimeout = New(
	CodeExternalTimeout,
	"advice",
	"Recommendation service timed out",
	http.StatusGatewayTimeout,
)
