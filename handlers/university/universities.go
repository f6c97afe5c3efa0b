package university

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"github.com/mrzkhrmn/EventCampusWebAPI/repository"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/response"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/validation"
	"gorm.io/gorm"
)

// UniversityHandler handles the university directory
type UniversityHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(db *gorm.DB) *UniversityHandler {
	return &UniversityHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// UniversityRequest is the payload for creating a university
type UniversityRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=200"`
	ShortName string `json:"short_name" validate:"required,min=2,max=20"`
}

// List returns all universities
func (h *UniversityHandler) List(c *fiber.Ctx) error {
	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	universities, err := uow.Universities().GetAll(c.Context(), repository.WithOrder("name ASC"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list universities")
	}

	return response.Success(c, universities)
}

// Get returns a university with its faculties
func (h *UniversityHandler) Get(c *fiber.Ctx) error {
	universityID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || universityID == 0 {
		return response.BadRequest(c, "Invalid university id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	university, err := uow.Universities().GetWithFaculties(c.Context(), uint(universityID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to load university")
	}

	return response.Success(c, university)
}

// Create adds a new university
func (h *UniversityHandler) Create(c *fiber.Ctx) error {
	var req UniversityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	university := model.University{
		Name:      req.Name,
		ShortName: req.ShortName,
	}

	uow.Universities().Add(&university)
	if _, err := uow.SaveChanges(ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A university with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create university")
	}

	return response.Created(c, university)
}

// Faculties returns the faculties of a university
func (h *UniversityHandler) Faculties(c *fiber.Ctx) error {
	universityID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || universityID == 0 {
		return response.BadRequest(c, "Invalid university id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	if _, err := uow.Universities().GetByID(ctx, uint(universityID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to load university")
	}

	faculties, err := uow.Faculties().GetByUniversity(ctx, uint(universityID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list faculties")
	}

	return response.Success(c, faculties)
}
