// Package dto provides Data Transfer Objects for API requests/responses.
// Domain entities carry json tags and serialize directly; DTOs here cover
// request bodies and the small generic response envelopes.
package dto

import (
	"pharmacore/internal/core/id"
)

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// CountResponse for counter endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}
