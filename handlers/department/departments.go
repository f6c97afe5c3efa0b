package department

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

// DepartmentHandler handles the department directory
type DepartmentHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// DepartmentRequest is the payload for creating a department
type DepartmentRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=200"`
	FacultyID uint   `json:"faculty_id" validate:"required,gt=0"`
}

// Get returns a single department
func (h *DepartmentHandler) Get(c *fiber.Ctx) error {
	departmentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || departmentID == 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	department, err := uow.Departments().GetByID(c.Context(), uint(departmentID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to load department")
	}

	return response.Success(c, department)
}

// Create adds a new department to a faculty
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	var req DepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	if _, err := uow.Faculties().GetByID(ctx, req.FacultyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.BadRequest(c, "Faculty not found")
		}
		return response.InternalServerError(c, "Failed to verify faculty")
	}

	department := model.Department{
		Name:      req.Name,
		FacultyID: req.FacultyID,
	}

	uow.Departments().Add(&department)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return response.InternalServerError(c, "Failed to create department")
	}

	return response.Created(c, department)
}
