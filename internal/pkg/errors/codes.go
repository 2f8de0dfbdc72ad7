package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrPurposeRequired = New(
		"PURPOSE_REQUIRED",
		"Purpose is required",
		http.StatusBadRequest,
	)

	ErrTripNotFound = New(
		"TRIP_NOT_FOUND",
		"Trip not found",
		http.StatusNotFound,
	)

	ErrNoItineraries = New(
		"NO_ITINERARIES",
		"No itineraries found for trip",
		http.StatusNotFound,
	)

	ErrTravelPatternsNotFound = New(
		"TRAVEL_PATTERNS_NOT_FOUND",
		"Not found",
		http.StatusNotFound,
	)

	ErrInvalidTravelPattern = New(
		"INVALID_TRAVEL_PATTERN",
		"Travel pattern is invalid",
		http.StatusUnprocessableEntity,
	)

	ErrTravelPatternNameTaken = New(
		"TRAVEL_PATTERN_NAME_TAKEN",
		"Travel pattern name already exists for agency",
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

	ErrBookingUnavailable = New(
		"BOOKING_UNAVAILABLE",
		"Booking system is unavailable",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
