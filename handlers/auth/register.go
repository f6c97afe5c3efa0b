package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"github.com/mrzkhrmn/EventCampusWebAPI/repository"
	authutil "github.com/mrzkhrmn/EventCampusWebAPI/utils/auth"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/response"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/validation"
	"gorm.io/gorm"
)

// Register handles user registration
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	exists, err := uow.Users().EmailExists(ctx, req.Email)
	if err != nil {
		return response.InternalServerError(c, "Failed to check existing users")
	}
	if exists {
		return response.Conflict(c, "User with this email already exists")
	}

	// Affiliations must exist and form a consistent chain.
	if req.FacultyID != nil && req.UniversityID == nil {
		return response.BadRequest(c, "A faculty requires a university")
	}
	if req.DepartmentID != nil && req.FacultyID == nil {
		return response.BadRequest(c, "A department requires a faculty")
	}

	if req.UniversityID != nil {
		if _, err := uow.Universities().GetByID(ctx, *req.UniversityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.BadRequest(c, "University not found")
			}
			return response.InternalServerError(c, "Failed to verify university")
		}
	}

	if req.FacultyID != nil {
		faculty, err := uow.Faculties().GetByID(ctx, *req.FacultyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.BadRequest(c, "Faculty not found")
			}
			return response.InternalServerError(c, "Failed to verify faculty")
		}
		if faculty.UniversityID != *req.UniversityID {
			return response.BadRequest(c, "Faculty does not belong to the selected university")
		}
	}

	if req.DepartmentID != nil {
		department, err := uow.Departments().GetByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.BadRequest(c, "Department not found")
			}
			return response.InternalServerError(c, "Failed to verify department")
		}
		if department.FacultyID != *req.FacultyID {
			return response.BadRequest(c, "Department does not belong to the selected faculty")
		}
	}

	hashedPassword, err := authutil.HashPassword(req.Password)
	if err != nil {
		return response.InternalServerError(c, "Failed to process password")
	}

	user := model.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Surname:      req.Surname,
		UniversityID: req.UniversityID,
		FacultyID:    req.FacultyID,
		DepartmentID: req.DepartmentID,
	}

	uow.Users().Add(&user)
	if _, err := uow.SaveChanges(ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "User with this email already exists")
		}
		return response.InternalServerError(c, "Failed to create user")
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
		User:         buildUserResponse(&user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    24 * 60 * 60,
	}

	return response.Created(c, res)
}

func buildUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Surname:         user.Surname,
		UniversityID:    user.UniversityID,
		FacultyID:       user.FacultyID,
		DepartmentID:    user.DepartmentID,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
