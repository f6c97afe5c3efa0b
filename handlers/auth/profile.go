package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"github.com/mrzkhrmn/EventCampusWebAPI/repository"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/middleware"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/response"
	"gorm.io/gorm"
)

// ProfileResponse is the user profile with resolved affiliation entities
type ProfileResponse struct {
	UserResponse
	University *model.University `json:"university,omitempty"`
	Faculty    *model.Faculty    `json:"faculty,omitempty"`
	Department *model.Department `json:"department,omitempty"`
}

// Profile returns the authenticated user's profile
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	user, err := uow.Users().GetUserWithAffiliations(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User not found")
		}
		return response.InternalServerError(c, "Failed to load profile")
	}

	return response.Success(c, ProfileResponse{
		UserResponse: buildUserResponse(user),
		University:   user.University,
		Faculty:      user.Faculty,
		Department:   user.Department,
	})
}
