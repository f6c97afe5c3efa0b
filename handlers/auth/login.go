package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mrzkhrmn/EventCampusWebAPI/repository"
	authutil "github.com/mrzkhrmn/EventCampusWebAPI/utils/auth"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/response"
	"gorm.io/gorm"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	user, err := uow.Users().GetByEmail(c.Context(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Unauthorized(c, "Invalid email or password")
		}
		return response.InternalServerError(c, "Failed to look up user")
	}

	if err := authutil.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return response.Unauthorized(c, "Invalid email or password")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Name, user.Surname)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Name, user.Surname)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	res := TokenResponse{
		User:         buildUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    24 * 60 * 60,
	}

	return response.Success(c, res)
}
