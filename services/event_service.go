package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"github.com/mrzkhrmn/EventCampusWebAPI/repository"
	"gorm.io/gorm"
)

var (
	// ErrMissingAffiliation rejects event creation by users without a
	// university.
	ErrMissingAffiliation = errors.New("a university affiliation is required to create events")
	// ErrInvalidCategory rejects event creation with an unknown category.
	ErrInvalidCategory = errors.New("invalid category selection")
)

// Join outcome messages. JoinEvent reports the most specific closed-window
// reason: already started beats full capacity beats inactive.
const (
	MsgJoinRequiresUniversity = "You need a university affiliation to join events"
	MsgEventNotFound          = "Event not found or belongs to a different university"
	MsgEventStarted           = "The event has already started, registration is closed"
	MsgCapacityFull           = "The event has reached its participant limit"
	MsgEventInactive          = "The event is not active"
	MsgRegistrationClosed     = "The event is closed for registration"
	MsgAlreadyJoined          = "You have already joined this event"
	MsgJoinSuccess            = "Successfully joined the event"
)

// EventService is the event participation engine: it enforces creation rules,
// registration-window and capacity checks, and keeps every multi-row mutation
// atomic through a unit of work per request.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// CreateEvent creates an event scoped to the creator's university and
// auto-joins the creator as a confirmed participant. Both inserts happen in
// one transaction; a failure after the event insert rolls everything back so
// an event can never exist without its creator as participant.
func (s *EventService) CreateEvent(ctx context.Context, req CreateEventRequest, creatorID uint) (*EventResponse, error) {
	uow := repository.NewUnitOfWork(s.db)
	defer uow.Close()

	user, err := uow.Users().GetUserWithAffiliations(ctx, creatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissingAffiliation
		}
		return nil, err
	}
	if !user.HasUniversity() {
		return nil, ErrMissingAffiliation
	}

	if _, err := uow.Categories().GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}

	images := req.Images
	if len(images) == 0 {
		images = []string{model.DefaultEventImage}
	}

	now := time.Now().UTC()
	event := &model.Event{
		Name:            req.Name,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Description:     req.Description,
		Images:          images,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Address:         req.Address,
		IsFree:          req.IsFree,
		Price:           req.Price,
		MaxParticipants: req.MaxParticipants,
		IsActive:        true,
		IsPublic:        req.IsPublic,
		CreatedAt:       now,
		CategoryID:      req.CategoryID,
		CreatedByUserID: creatorID,
		UniversityID:    *user.UniversityID,
	}

	if err := uow.BeginTransaction(ctx); err != nil {
		return nil, err
	}

	uow.Events().Add(event)
	if _, err := uow.SaveChanges(ctx); err != nil {
		uow.RollbackTransaction()
		return nil, err
	}

	uow.EventParticipants().Add(&model.EventParticipant{
		EventID:     event.ID,
		UserID:      creatorID,
		JoinedAt:    now,
		IsConfirmed: true,
	})
	if err := uow.CommitTransaction(ctx); err != nil {
		return nil, err
	}

	created, err := uow.Events().GetEventWithDetails(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	return s.buildEventResponse(created, creatorID), nil
}

// GetEventsForUser returns the caller's event feed: active events in their
// university they have not joined yet, newest first. A caller without a
// university gets an empty feed, not an error.
func (s *EventService) GetEventsForUser(ctx context.Context, userID uint, categoryID *uint, page, pageSize int) ([]EventResponse, error) {
	uow := repository.NewUnitOfWork(s.db)
	defer uow.Close()

	user, err := uow.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []EventResponse{}, nil
		}
		return nil, err
	}
	if !user.HasUniversity() {
		return []EventResponse{}, nil
	}

	events, err := uow.Events().GetEventsForUniversityNotJoined(ctx, *user.UniversityID, userID, categoryID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildEventResponses(events, userID), nil
}

// GetEventByID returns the event detail, or nil when the event does not
// exist or belongs to another university. Cross-university events are
// invisible rather than forbidden.
func (s *EventService) GetEventByID(ctx context.Context, eventID, userID uint) (*EventResponse, error) {
	uow := repository.NewUnitOfWork(s.db)
	defer uow.Close()

	user, err := uow.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.HasUniversity() {
		return nil, nil
	}

	event, err := uow.Events().GetEventWithDetails(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if event.UniversityID != *user.UniversityID {
		return nil, nil
	}
	return s.buildEventResponse(event, userID), nil
}

// JoinEvent adds the caller as a confirmed participant. Preconditions are
// checked in order: affiliation, event visibility, registration window, no
// existing participation. The window check and the insert run inside one
// serializable transaction, and capacity is re-verified after the insert, so
// concurrent joins cannot overshoot the participant limit. The unique
// (event, user) index backstops concurrent double-joins.
func (s *EventService) JoinEvent(ctx context.Context, eventID, userID uint) (bool, string, error) {
	uow := repository.NewUnitOfWork(s.db)
	defer uow.Close()

	user, err := uow.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, MsgJoinRequiresUniversity, nil
		}
		return false, "", err
	}
	if !user.HasUniversity() {
		return false, MsgJoinRequiresUniversity, nil
	}

	if err := uow.BeginTransaction(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}); err != nil {
		return false, "", err
	}

	event, err := uow.Events().GetEventInUniversity(ctx, eventID, *user.UniversityID)
	if err != nil {
		uow.RollbackTransaction()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, MsgEventNotFound, nil
		}
		return false, "", err
	}

	if !event.IsRegistrationOpen() {
		uow.RollbackTransaction()
		switch {
		case event.IsEventStarted():
			return false, MsgEventStarted, nil
		case event.IsCapacityFull():
			return false, MsgCapacityFull, nil
		case !event.IsActive:
			return false, MsgEventInactive, nil
		default:
			return false, MsgRegistrationClosed, nil
		}
	}

	if _, err := uow.EventParticipants().GetParticipation(ctx, eventID, userID); err == nil {
		uow.RollbackTransaction()
		return false, MsgAlreadyJoined, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		uow.RollbackTransaction()
		return false, "", err
	}

	uow.EventParticipants().Add(&model.EventParticipant{
		EventID:     eventID,
		UserID:      userID,
		JoinedAt:    time.Now().UTC(),
		IsConfirmed: true,
	})
	if _, err := uow.SaveChanges(ctx); err != nil {
		uow.RollbackTransaction()
		if isUniqueViolation(err) {
			return false, MsgAlreadyJoined, nil
		}
		return false, "", err
	}

	// Recount inside the transaction with our row in place: a concurrent
	// join may have been admitted since the window check above.
	if event.MaxParticipants != nil {
		count, err := uow.EventParticipants().GetEventParticipantCount(ctx, eventID)
		if err != nil {
			uow.RollbackTransaction()
			return false, "", err
		}
		if count > int64(*event.MaxParticipants) {
			uow.RollbackTransaction()
			return false, MsgCapacityFull, nil
		}
	}

	if err := uow.CommitTransaction(ctx); err != nil {
		if isUniqueViolation(err) {
			return false, MsgAlreadyJoined, nil
		}
		return false, "", err
	}
	return true, MsgJoinSuccess, nil
}

// LeaveEvent deletes the caller's participation row. Leaving an event the
// caller never joined returns false without an error; leaving is otherwise
// always permitted regardless of capacity or timing.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID uint) (bool, error) {
	uow := repository.NewUnitOfWork(s.db)
	defer uow.Close()

	participation, err := uow.EventParticipants().GetParticipation(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := uow.BeginTransaction(ctx); err != nil {
		return false, err
	}
	uow.EventParticipants().Remove(participation)
	if err := uow.CommitTransaction(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// GetUserParticipatedEvents returns the active events the caller has
// confirmed-joined, latest start date first. A caller without a university
// gets an empty list.
func (s *EventService) GetUserParticipatedEvents(ctx context.Context, userID uint, page, pageSize int) ([]EventResponse, error) {
	uow := repository.NewUnitOfWork(s.db)
	defer uow.Close()

	user, err := uow.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []EventResponse{}, nil
		}
		return nil, err
	}
	if !user.HasUniversity() {
		return []EventResponse{}, nil
	}

	events, err := uow.Events().GetUserParticipatedEvents(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.buildEventResponses(events, userID), nil
}

func (s *EventService) buildEventResponses(events []model.Event, callerID uint) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, *s.buildEventResponse(&events[i], callerID))
	}
	return responses
}

// buildEventResponse assembles the detail view from a fully preloaded event.
// The caller-relative IsUserParticipant flag makes the result unusable for
// any other caller.
func (s *EventService) buildEventResponse(event *model.Event, callerID uint) *EventResponse {
	confirmed := make([]model.EventParticipant, 0, len(event.Participants))
	isCallerParticipant := false
	for _, p := range event.Participants {
		if !p.IsConfirmed {
			continue
		}
		confirmed = append(confirmed, p)
		if p.UserID == callerID {
			isCallerParticipant = true
		}
	}
	sort.Slice(confirmed, func(i, j int) bool {
		return confirmed[i].JoinedAt.Before(confirmed[j].JoinedAt)
	})

	participants := make([]ParticipantInfo, 0, len(confirmed))
	for _, p := range confirmed {
		participants = append(participants, ParticipantInfo{
			ID:          p.ID,
			JoinedAt:    p.JoinedAt,
			IsConfirmed: p.IsConfirmed,
			User:        buildUserInfo(&p.User),
		})
	}

	return &EventResponse{
		ID:                      event.ID,
		Name:                    event.Name,
		StartDate:               event.StartDate,
		EndDate:                 event.EndDate,
		StartTime:               event.StartTime,
		EndTime:                 event.EndTime,
		Description:             event.Description,
		Images:                  event.Images,
		Latitude:                event.Latitude,
		Longitude:               event.Longitude,
		Address:                 event.Address,
		IsFree:                  event.IsFree,
		Price:                   event.Price,
		MaxParticipants:         event.MaxParticipants,
		CurrentParticipantCount: event.CurrentParticipantCount(),
		IsActive:                event.IsActive,
		IsPublic:                event.IsPublic,
		CreatedAt:               event.CreatedAt,
		UpdatedAt:               event.UpdatedAt,
		Category: CategoryInfo{
			ID:          event.Category.ID,
			Name:        event.Category.Name,
			Icon:        event.Category.Icon,
			Description: event.Category.Description,
		},
		CreatedByUser: buildUserInfo(&event.CreatedByUser),
		University: UniversityInfo{
			ID:        event.University.ID,
			Name:      event.University.Name,
			ShortName: event.University.ShortName,
		},
		Participants:       participants,
		IsRegistrationOpen: event.IsRegistrationOpen(),
		IsEventStarted:     event.IsEventStarted(),
		IsEventEnded:       event.IsEventEnded(),
		IsUserParticipant:  isCallerParticipant,
	}
}

func buildUserInfo(user *model.User) UserInfo {
	info := UserInfo{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		Surname:         user.Surname,
		FacultyID:       user.FacultyID,
		DepartmentID:    user.DepartmentID,
		ProfileImageURL: user.ProfileImageURL,
	}
	if user.UniversityID != nil {
		info.UniversityID = *user.UniversityID
	}
	if user.University != nil {
		info.UniversityName = &user.University.Name
	}
	if user.Faculty != nil {
		info.FacultyName = &user.Faculty.Name
	}
	if user.Department != nil {
		info.DepartmentName = &user.Department.Name
	}
	return info
}

// isUniqueViolation recognizes unique-index conflicts from the drivers in
// use, so a lost join race surfaces as "already joined" instead of a raw
// storage error.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
