package repository

import (
	"context"
	"time"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"gorm.io/gorm"
)

// eventDetailPreloads is the full association graph needed to assemble an
// event detail response: category, creator and every participant with their
// resolved affiliation chains.
var eventDetailPreloads = []string{
	"Category",
	"University",
	"CreatedByUser.University",
	"CreatedByUser.Faculty",
	"CreatedByUser.Department",
	"Participants.User.University",
	"Participants.User.Faculty",
	"Participants.User.Department",
}

// EventRepository adds event-specific queries on top of the generic base.
type EventRepository struct {
	Repository[model.Event]
}

func NewEventRepository(uow *UnitOfWork) *EventRepository {
	return &EventRepository{Repository[model.Event]{uow: uow}}
}

func (r *EventRepository) withDetailGraph(db *gorm.DB) *gorm.DB {
	for _, association := range eventDetailPreloads {
		db = db.Preload(association)
	}
	return db
}

// GetEventWithDetails loads an event with its full association graph.
// Participants include unconfirmed rows; response assembly filters them.
func (r *EventRepository) GetEventWithDetails(ctx context.Context, eventID uint) (*model.Event, error) {
	var event model.Event
	if err := r.withDetailGraph(r.db(ctx)).First(&event, eventID).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEventInUniversity loads an event only if it belongs to the given
// university, with its participants. Cross-university events surface as
// gorm.ErrRecordNotFound, indistinguishable from absence.
func (r *EventRepository) GetEventInUniversity(ctx context.Context, eventID, universityID uint) (*model.Event, error) {
	var event model.Event
	err := r.db(ctx).
		Preload("Participants").
		Where("id = ? AND university_id = ?", eventID, universityID).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) universityEventsQuery(ctx context.Context, universityID uint, categoryID *uint) *gorm.DB {
	db := r.withDetailGraph(r.db(ctx)).
		Where("is_active = ? AND university_id = ?", true, universityID)
	if categoryID != nil && *categoryID > 0 {
		db = db.Where("category_id = ?", *categoryID)
	}
	return db
}

// GetEventsForUniversity returns active events of a university, optionally
// filtered by category, newest first.
func (r *EventRepository) GetEventsForUniversity(ctx context.Context, universityID uint, categoryID *uint, page, pageSize int) ([]model.Event, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}
	var events []model.Event
	err := r.universityEventsQuery(ctx, universityID, categoryID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventsForUniversityNotJoined is GetEventsForUniversity minus the events
// the given user has already confirmed-joined. Backs the event feed, which
// must never show an event the caller is already part of.
func (r *EventRepository) GetEventsForUniversityNotJoined(ctx context.Context, universityID, userID uint, categoryID *uint, page, pageSize int) ([]model.Event, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}
	var events []model.Event
	err := r.universityEventsQuery(ctx, universityID, categoryID).
		Where("id NOT IN (?)",
			r.db(ctx).Model(&model.EventParticipant{}).
				Select("event_id").
				Where("user_id = ? AND is_confirmed = ?", userID, true)).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetUpcomingEvents returns active events of a university that have not
// started yet, soonest first.
func (r *EventRepository) GetUpcomingEvents(ctx context.Context, universityID uint, page, pageSize int) ([]model.Event, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}
	var events []model.Event
	err := r.db(ctx).
		Preload("Category").
		Preload("University").
		Where("university_id = ? AND is_active = ? AND start_date >= ?", universityID, true, time.Now().UTC()).
		Order("start_date ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetEventsByCreator returns events created by the given user, newest first.
func (r *EventRepository) GetEventsByCreator(ctx context.Context, creatorID uint, page, pageSize int) ([]model.Event, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}
	var events []model.Event
	err := r.db(ctx).
		Preload("Category").
		Preload("University").
		Preload("Participants").
		Where("created_by_user_id = ?", creatorID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// GetUserParticipatedEvents returns active events the user has
// confirmed-joined, ordered by start date descending.
func (r *EventRepository) GetUserParticipatedEvents(ctx context.Context, userID uint, page, pageSize int) ([]model.Event, error) {
	if page < 1 || pageSize < 1 {
		return nil, ErrInvalidPage
	}
	var events []model.Event
	err := r.withDetailGraph(r.db(ctx)).
		Where("is_active = ?", true).
		Where("id IN (?)",
			r.db(ctx).Model(&model.EventParticipant{}).
				Select("event_id").
				Where("user_id = ? AND is_confirmed = ?", userID, true)).
		Order("start_date DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
