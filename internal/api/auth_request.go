package api

import (
	"time"

	"inventory-hub/internal/model"
)

// swagger:model api.LoginResponse
type LoginResponse struct {
	Message      string            `json:"message" example:"Login successful"`
	User         model.UserSummary `json:"user"`
	SessionToken string            `json:"sessionToken" example:"eyJhbGciOi..."`
	ExpiresAt    time.Time         `json:"expiresAt" example:"2025-05-09T15:04:05Z"`
}

// swagger:model api.LogoutRequest
type LogoutRequest struct {
	SessionToken string `json:"sessionToken" form:"sessionToken" validate:"required" example:"eyJhbGciOi..."`
}
