package faculty

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

// FacultyHandler handles the faculty directory
type FacultyHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// FacultyRequest is the payload for creating a faculty
type FacultyRequest struct {
	Name         string `json:"name" validate:"required,min=3,max=200"`
	UniversityID uint   `json:"university_id" validate:"required,gt=0"`
}

// Get returns a single faculty
func (h *FacultyHandler) Get(c *fiber.Ctx) error {
	facultyID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || facultyID == 0 {
		return response.BadRequest(c, "Invalid faculty id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	faculty, err := uow.Faculties().GetByID(c.Context(), uint(facultyID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to load faculty")
	}

	return response.Success(c, faculty)
}

// Create adds a new faculty to a university
func (h *FacultyHandler) Create(c *fiber.Ctx) error {
	var req FacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	if _, err := uow.Universities().GetByID(ctx, req.UniversityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "University not found")
		}
		return response.InternalServerError(c, "Failed to verify university")
	}

	faculty := model.Faculty{
		Name:         req.Name,
		UniversityID: req.UniversityID,
	}

	uow.Faculties().Add(&faculty)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return response.InternalServerError(c, "Failed to create faculty")
	}

	return response.Created(c, faculty)
}

// Departments returns the departments of a faculty
func (h *FacultyHandler) Departments(c *fiber.Ctx) error {
	facultyID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || facultyID == 0 {
		return response.BadRequest(c, "Invalid faculty id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	if _, err := uow.Faculties().GetByID(ctx, uint(facultyID)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to load faculty")
	}

	departments, err := uow.Departments().GetByFaculty(ctx, uint(facultyID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}

	return response.Success(c, departments)
}
