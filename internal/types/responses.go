// Package types holds the JSON envelopes shared by the API server and client
package types

import "net/http"

// Slug is a machine-readable error kind
// It is mainly used for the client to understand the type of the response
type Slug string

// nolint:gochecknoglobals
const (
	InvalidInputSlug Slug = "invalid-input"
	UnauthorizedSlug Slug = "unauthorized"
	ForbiddenSlug    Slug = "forbidden"
	NotFoundSlug     Slug = "not-found"
	ConflictSlug     Slug = "conflict"
	ServerErrorSlug  Slug = "server-error"
)

// ErrorResponse represents an error response
// Example: {"error":"not-found","message":"client not found","status":404}
type ErrorResponse struct {
	// Error is the error kind
	Error Slug `json:"error"`

	// Message describes what went wrong; safe to show to a user
	Message string `json:"message"`

	// Status repeats the HTTP status code
	Status int `json:"status"`
}

func errorResponse(slug Slug, status int, msg string) ErrorResponse {
	return ErrorResponse{Error: slug, Message: msg, Status: status}
}

// ErrInvalidInput returns a 400 response
func ErrInvalidInput(msg string) ErrorResponse {
	return errorResponse(InvalidInputSlug, http.StatusBadRequest, msg)
}

// ErrUnauthorized returns a 401 response
func ErrUnauthorized(msg string) ErrorResponse {
	return errorResponse(UnauthorizedSlug, http.StatusUnauthorized, msg)
}

// ErrForbidden returns a 403 response
func ErrForbidden(msg string) ErrorResponse {
	return errorResponse(ForbiddenSlug, http.StatusForbidden, msg)
}

// ErrNotFound returns a 404 response
func ErrNotFound(msg string) ErrorResponse {
	return errorResponse(NotFoundSlug, http.StatusNotFound, msg)
}

// ErrConflict returns a 409 response
func ErrConflict(msg string) ErrorResponse {
	return errorResponse(ConflictSlug, http.StatusConflict, msg)
}

// ErrServer returns a 500 response
func ErrServer(msg string) ErrorResponse {
	return errorResponse(ServerErrorSlug, http.StatusInternalServerError, msg)
}

// HealthResponse is returned by the health check
type HealthResponse struct {
	Status string `json:"status"`
}

// FromStatus returns the error response for an HTTP status code. Unknown 4xx
// codes use the invalid-input slug and 5xx codes the server-error slug.
func FromStatus(status int, msg string) ErrorResponse {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized(msg)
	case http.StatusForbidden:
		return ErrForbidden(msg)
	case http.StatusNotFound:
		return ErrNotFound(msg)
	case http.StatusConflict:
		return ErrConflict(msg)
	}
	if status >= http.StatusInternalServerError {
		return errorResponse(ServerErrorSlug, status, msg)
	}
	return errorResponse(InvalidInputSlug, status, msg)
}
