package auth

import (
	"time"

	authutil "github.com/mrzkhrmn/EventCampusWebAPI/utils/auth"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db               *gorm.DB
	jwtManager       *authutil.JWTManager
	blacklistService *authutil.BlacklistService
	validator        *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, blacklistService *authutil.BlacklistService) *AuthHandler {
	return &AuthHandler{
		db:               db,
		jwtManager:       jwtManager,
		blacklistService: blacklistService,
		validator:        validation.NewValidator(),
	}
}

// RegisterRequest represents a user registration request. Affiliation is
// optional at sign-up; users without a university cannot create or join
// events until they set one.
type RegisterRequest struct {
	Email        string `json:"email" validate:"required,campus_email"`
	Password     string `json:"password" validate:"required,min=8"`
	Name         string `json:"name" validate:"required,min=2,max=100"`
	Surname      string `json:"surname" validate:"required,min=2,max=100"`
	UniversityID *uint  `json:"university_id,omitempty" validate:"omitempty,gt=0"`
	FacultyID    *uint  `json:"faculty_id,omitempty" validate:"omitempty,gt=0"`
	DepartmentID *uint  `json:"department_id,omitempty" validate:"omitempty,gt=0"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID              uint      `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Surname         string    `json:"surname"`
	UniversityID    *uint     `json:"university_id,omitempty"`
	FacultyID       *uint     `json:"faculty_id,omitempty"`
	DepartmentID    *uint     `json:"department_id,omitempty"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // in seconds
}
