package event

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mrzkhrmn/EventCampusWebAPI/services"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/middleware"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/response"
	"github.com/mrzkhrmn/EventCampusWebAPI/utils/validation"
)

// EventHandler handles event-related requests
type EventHandler struct {
	service   *services.EventService
	validator *validation.Validator
}

// NewEventHandler creates a new event handler
func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

func parsePagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// Create handles event creation. The creator is registered as the first
// confirmed participant.
func (h *EventHandler) Create(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	var req services.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	event, err := h.service.CreateEvent(c.Context(), req, userID)
	if err != nil {
		if errors.Is(err, services.ErrMissingAffiliation) {
			return response.Forbidden(c, "A university affiliation is required to create events")
		}
		if errors.Is(err, services.ErrInvalidCategory) {
			return response.BadRequest(c, "Invalid category selection")
		}
		return response.InternalServerError(c, "Failed to create event")
	}

	return response.Created(c, event)
}

// List returns the feed of joinable events in the caller's university.
// Events the caller already participates in are excluded.
func (h *EventHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return response.BadRequest(c, "Invalid category_id")
		}
		cid := uint(id)
		categoryID = &cid
	}

	page, limit := parsePagination(c)

	events, err := h.service.GetEventsForUser(c.Context(), userID, categoryID, page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list events")
	}

	return response.Success(c, events)
}

// Get returns the detail view of a single event
func (h *EventHandler) Get(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || eventID == 0 {
		return response.BadRequest(c, "Invalid event id")
	}

	event, err := h.service.GetEventByID(c.Context(), uint(eventID), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to load event")
	}
	if event == nil {
		return response.NotFound(c, services.MsgEventNotFound)
	}

	return response.Success(c, event)
}

// Join registers the caller as a confirmed participant of an event
func (h *EventHandler) Join(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || eventID == 0 {
		return response.BadRequest(c, "Invalid event id")
	}

	joined, message, err := h.service.JoinEvent(c.Context(), uint(eventID), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to join event")
	}
	if !joined {
		switch message {
		case services.MsgEventNotFound:
			return response.NotFound(c, message)
		case services.MsgAlreadyJoined:
			return response.Conflict(c, message)
		default:
			return response.BadRequest(c, message)
		}
	}

	return response.SuccessWithMessage(c, message, nil)
}

// Leave removes the caller's participation from an event
func (h *EventHandler) Leave(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	eventID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || eventID == 0 {
		return response.BadRequest(c, "Invalid event id")
	}

	left, err := h.service.LeaveEvent(c.Context(), uint(eventID), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to leave event")
	}
	if !left {
		return response.NotFound(c, "You are not a participant of this event")
	}

	return response.SuccessWithMessage(c, "Successfully left the event", nil)
}

// Participated returns the events the caller has joined
func (h *EventHandler) Participated(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Invalid or missing token")
	}

	page, limit := parsePagination(c)

	events, err := h.service.GetUserParticipatedEvents(c.Context(), userID, page, limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list participated events")
	}

	return response.Success(c, events)
}
