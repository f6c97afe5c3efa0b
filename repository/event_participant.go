package repository

import (
	"context"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
)

// EventParticipantRepository adds participation queries on top of the generic
// base.
type EventParticipantRepository struct {
	Repository[model.EventParticipant]
}

func NewEventParticipantRepository(uow *UnitOfWork) *EventParticipantRepository {
	return &EventParticipantRepository{Repository[model.EventParticipant]{uow: uow}}
}

// GetParticipation loads the participation row for an (event, user) pair,
// confirmed or not. Returns gorm.ErrRecordNotFound when the user never
// joined.
func (r *EventParticipantRepository) GetParticipation(ctx context.Context, eventID, userID uint) (*model.EventParticipant, error) {
	var participation model.EventParticipant
	err := r.db(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&participation).Error
	if err != nil {
		return nil, err
	}
	return &participation, nil
}

// IsUserParticipant reports whether the user has a confirmed participation
// row for the event.
func (r *EventParticipantRepository) IsUserParticipant(ctx context.Context, eventID, userID uint) (bool, error) {
	return r.Exists(ctx, "event_id = ? AND user_id = ? AND is_confirmed = ?", eventID, userID, true)
}

// GetEventParticipantCount counts confirmed participants of an event.
func (r *EventParticipantRepository) GetEventParticipantCount(ctx context.Context, eventID uint) (int64, error) {
	return r.Count(ctx, "event_id = ? AND is_confirmed = ?", eventID, true)
}

// GetEventParticipants returns confirmed participants of an event with their
// affiliation chains, in join order.
func (r *EventParticipantRepository) GetEventParticipants(ctx context.Context, eventID uint) ([]model.EventParticipant, error) {
	var participants []model.EventParticipant
	err := r.db(ctx).
		Preload("User.University").
		Preload("User.Faculty").
		Preload("User.Department").
		Where("event_id = ? AND is_confirmed = ?", eventID, true).
		Order("joined_at ASC").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// GetUserParticipations returns a user's confirmed participations with their
// events, most recent join first.
func (r *EventParticipantRepository) GetUserParticipations(ctx context.Context, userID uint) ([]model.EventParticipant, error) {
	var participations []model.EventParticipant
	err := r.db(ctx).
		Preload("Event.Category").
		Preload("Event.University").
		Where("user_id = ? AND is_confirmed = ?", userID, true).
		Order("joined_at DESC").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	return participations, nil
}
