package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCredentials = New(
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		http.StatusUnauthorized,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid access token",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Insufficient role for this operation",
		http.StatusForbidden,
	)

	ErrBusNotFound = New(
		"BUS_NOT_FOUND",
		"Bus not found",
		http.StatusNotFound,
	)

	ErrRouteNotFound = New(
		"ROUTE_NOT_FOUND",
		"Route not found",
		http.StatusNotFound,
	)

	ErrStopNotFound = New(
		"STOP_NOT_FOUND",
		"Stop not found",
		http.StatusNotFound,
	)

	ErrScheduleNotFound = New(
		"SCHEDULE_NOT_FOUND",
		"Schedule not found",
		http.StatusNotFound,
	)

	ErrDuplicateBus = New(
		"DUPLICATE_BUS_NUMBER",
		"A bus with this number already exists",
		http.StatusConflict,
	)

	ErrDuplicateEmail = New(
		"DUPLICATE_EMAIL",
		"A user with this email already exists",
		http.StatusConflict,
	)

	ErrScheduleConflict = New(
		"SCHEDULE_CONFLICT",
		"Bus already has an open schedule for this day and direction",
		http.StatusConflict,
	)

	ErrScheduleNotActive = New(
		"SCHEDULE_NOT_ACTIVE",
		"Schedule is not in a state that allows this transition",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrStoreUnavailable = New(
		"STORE_UNAVAILABLE",
		"Position store momentarily unavailable, retry shortly",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
