package apperrors

import "net/http"

// Predefined domain errors used across services.
var (
	ErrListingNotFound = New(CodeListingNotFound, "listing", "Listing not found", http.StatusNotFound)
	ErrUnauthorized    = New(CodeUnauthorized, "auth", "Authorization required", http.StatusUnauthorized)
	ErrForbidden       = New(CodeForbidden, "auth", "Insufficient permissions", http.StatusForbidden)
)
