package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/middleware"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/response"
)

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse carries a freshly issued access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // in seconds
}

// Refresh exchanges a valid refresh token for a new access token
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.RefreshToken == "" {
		return response.BadRequest(c, "Refresh token is required")
	}

	claims, err := h.jwtManager.ValidateToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	isRevoked, err := h.blacklistService.IsTokenRevoked(c.Context(), claims.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return response.Unauthorized(c, "Refresh token has been revoked")
	}

	accessToken, _, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid refresh token")
	}

	return response.Success(c, RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   24 * 60 * 60,
	})
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	if claims.ExpiresAt != nil {
		if err := h.blacklistService.RevokeToken(c.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			return response.InternalServerError(c, "Failed to revoke token")
		}
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
