package category

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

// CategoryHandler handles event category management
type CategoryHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CategoryRequest is the payload for creating or updating a category
type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Icon        string  `json:"icon" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// List returns all categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	categories, err := uow.Categories().GetAll(c.Context(), repository.WithOrder("name ASC"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list categories")
	}

	return response.Success(c, categories)
}

// Get returns a single category
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || categoryID == 0 {
		return response.BadRequest(c, "Invalid category id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	category, err := uow.Categories().GetByID(c.Context(), uint(categoryID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to load category")
	}

	return response.Success(c, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	category := model.Category{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}

	uow.Categories().Add(&category)
	if _, err := uow.SaveChanges(ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A category with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create category")
	}

	return response.Created(c, category)
}

// Update modifies an existing category
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || categoryID == 0 {
		return response.BadRequest(c, "Invalid category id")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	category, err := uow.Categories().GetByID(ctx, uint(categoryID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to load category")
	}

	category.Name = req.Name
	category.Icon = req.Icon
	category.Description = req.Description

	uow.Categories().Update(category)
	if _, err := uow.SaveChanges(ctx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A category with this name already exists")
		}
		return response.InternalServerError(c, "Failed to update category")
	}

	return response.Success(c, category)
}

// Delete removes a category. Categories referenced by events cannot be
// deleted.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || categoryID == 0 {
		return response.BadRequest(c, "Invalid category id")
	}

	uow := repository.NewUnitOfWork(h.db)
	defer uow.Close()

	ctx := c.Context()

	category, err := uow.Categories().GetByID(ctx, uint(categoryID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Category not found")
		}
		return response.InternalServerError(c, "Failed to load category")
	}

	inUse, err := uow.Categories().HasEvents(ctx, category.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check category usage")
	}
	if inUse {
		return response.Conflict(c, "Category is in use by existing events")
	}

	uow.Categories().Remove(category)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return response.InternalServerError(c, "Failed to delete category")
	}

	return response.NoContent(c)
}
