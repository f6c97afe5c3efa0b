package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.University{},
		&model.Faculty{},
		&model.Department{},
		&model.User{},
		&model.Category{},
		&model.Event{},
		&model.EventParticipant{},
	))

	return NewEventService(db), db
}

type campus struct {
	university *model.University
	category   *model.Category
}

func newCampus(t *testing.T, db *gorm.DB) *campus {
	t.Helper()
	university := &model.University{Name: "Ege University", ShortName: "EGE"}
	require.NoError(t, db.Create(university).Error)
	category := &model.Category{Name: "Music", Icon: "music"}
	require.NoError(t, db.Create(category).Error)
	return &campus{university: university, category: category}
}

func newStudent(t *testing.T, db *gorm.DB, email string, universityID *uint) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test",
		Surname:      "Student",
		UniversityID: universityID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func futureEventRequest(categoryID uint) CreateEventRequest {
	start := time.Now().UTC().Add(48 * time.Hour)
	return CreateEventRequest{
		Name:       "Open Air Concert",
		StartDate:  start,
		EndDate:    start.Add(5 * time.Hour),
		StartTime:  "18:00",
		EndTime:    "23:00",
		Address:    "Main Campus Amphitheatre",
		IsFree:     true,
		IsPublic:   true,
		CategoryID: categoryID,
	}
}

// insertEvent writes an event row directly, bypassing the engine, for cases
// the engine itself would refuse to create (already started, inactive).
func insertEvent(t *testing.T, db *gorm.DB, c *campus, creatorID uint, startDate time.Time, isActive bool, maxParticipants *int) *model.Event {
	t.Helper()
	event := &model.Event{
		Name:            "Fixture Event",
		StartDate:       startDate,
		EndDate:         startDate.Add(4 * time.Hour),
		StartTime:       "18:00",
		EndTime:         "22:00",
		Images:          []string{model.DefaultEventImage},
		Address:         "Main Campus",
		IsFree:          true,
		IsActive:        isActive,
		IsPublic:        true,
		MaxParticipants: maxParticipants,
		CreatedAt:       time.Now().UTC(),
		CategoryID:      c.category.ID,
		CreatedByUserID: creatorID,
		UniversityID:    c.university.ID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func intptr(v int) *int { return &v }

func TestCreateEventAutoJoinsCreator(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)

	resp, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	require.Equal(t, 1, resp.CurrentParticipantCount)
	require.True(t, resp.IsUserParticipant)
	require.Len(t, resp.Participants, 1)
	require.Equal(t, creator.ID, resp.Participants[0].User.ID)
	require.True(t, resp.Participants[0].IsConfirmed)

	require.Equal(t, c.university.ID, resp.University.ID)
	require.Equal(t, c.category.ID, resp.Category.ID)
	require.Equal(t, []string{model.DefaultEventImage}, resp.Images)
	require.True(t, resp.IsRegistrationOpen)
	require.False(t, resp.IsEventStarted)
	require.True(t, resp.IsActive)
}

func TestCreateEventKeepsProvidedImages(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)

	req := futureEventRequest(c.category.ID)
	req.Images = []string{"https://example.com/poster.png"}

	resp, err := svc.CreateEvent(ctx, req, creator.ID)
	require.NoError(t, err)
	require.Equal(t, req.Images, resp.Images)
}

func TestCreateEventRequiresAffiliation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	drifter := newStudent(t, db, "drifter@example.edu", nil)

	_, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), drifter.ID)
	require.ErrorIs(t, err, ErrMissingAffiliation)

	// Unknown users are treated the same way.
	_, err = svc.CreateEvent(ctx, futureEventRequest(c.category.ID), 9999)
	require.ErrorIs(t, err, ErrMissingAffiliation)
}

func TestCreateEventRejectsUnknownCategory(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)

	req := futureEventRequest(c.category.ID)
	req.CategoryID = 9999

	_, err := svc.CreateEvent(ctx, req, creator.ID)
	require.ErrorIs(t, err, ErrInvalidCategory)
}

func TestJoinAndLeaveRoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	joiner := newStudent(t, db, "joiner@ege.edu.tr", &c.university.ID)

	created, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	// The event shows up in the joiner's feed but not the creator's: the
	// feed never contains an event the caller already participates in.
	feed, err := svc.GetEventsForUser(ctx, joiner.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	creatorFeed, err := svc.GetEventsForUser(ctx, creator.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Empty(t, creatorFeed)

	joined, message, err := svc.JoinEvent(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.True(t, joined)
	require.Equal(t, MsgJoinSuccess, message)

	// After joining, the event moves from the feed to the participated list.
	feed, err = svc.GetEventsForUser(ctx, joiner.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Empty(t, feed)

	participated, err := svc.GetUserParticipatedEvents(ctx, joiner.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, participated, 1)
	require.Equal(t, created.ID, participated[0].ID)

	detail, err := svc.GetEventByID(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.Equal(t, 2, detail.CurrentParticipantCount)
	require.True(t, detail.IsUserParticipant)

	left, err := svc.LeaveEvent(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.True(t, left)

	detail, err = svc.GetEventByID(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.Equal(t, 1, detail.CurrentParticipantCount)
	require.False(t, detail.IsUserParticipant)

	// Leaving twice is a no-op reported as not-a-member.
	left, err = svc.LeaveEvent(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.False(t, left)
}

func TestJoinTwiceReportsAlreadyJoined(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	joiner := newStudent(t, db, "joiner@ege.edu.tr", &c.university.ID)

	created, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	joined, _, err := svc.JoinEvent(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.True(t, joined)

	joined, message, err := svc.JoinEvent(ctx, created.ID, joiner.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgAlreadyJoined, message)
}

func TestJoinFullEventReportsCapacity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	second := newStudent(t, db, "second@ege.edu.tr", &c.university.ID)
	third := newStudent(t, db, "third@ege.edu.tr", &c.university.ID)

	req := futureEventRequest(c.category.ID)
	req.MaxParticipants = intptr(2)

	// The creator's auto-join takes the first slot.
	created, err := svc.CreateEvent(ctx, req, creator.ID)
	require.NoError(t, err)

	joined, _, err := svc.JoinEvent(ctx, created.ID, second.ID)
	require.NoError(t, err)
	require.True(t, joined)

	joined, message, err := svc.JoinEvent(ctx, created.ID, third.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgCapacityFull, message)

	// Capacity never blocks leaving, and a freed slot is joinable again.
	left, err := svc.LeaveEvent(ctx, created.ID, second.ID)
	require.NoError(t, err)
	require.True(t, left)

	joined, _, err = svc.JoinEvent(ctx, created.ID, third.ID)
	require.NoError(t, err)
	require.True(t, joined)
}

func TestJoinStartedEvent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	joiner := newStudent(t, db, "joiner@ege.edu.tr", &c.university.ID)

	started := insertEvent(t, db, c, creator.ID, time.Now().UTC().Add(-time.Hour), true, nil)

	joined, message, err := svc.JoinEvent(ctx, started.ID, joiner.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgEventStarted, message)
}

func TestJoinStartedBeatsCapacityInMessage(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	member := newStudent(t, db, "member@ege.edu.tr", &c.university.ID)
	joiner := newStudent(t, db, "joiner@ege.edu.tr", &c.university.ID)

	// Started AND full: the started reason wins.
	event := insertEvent(t, db, c, creator.ID, time.Now().UTC().Add(-time.Hour), true, intptr(1))
	require.NoError(t, db.Create(&model.EventParticipant{
		EventID: event.ID, UserID: member.ID,
		JoinedAt: time.Now().UTC(), IsConfirmed: true,
	}).Error)

	joined, message, err := svc.JoinEvent(ctx, event.ID, joiner.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgEventStarted, message)
}

func TestJoinInactiveEvent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	joiner := newStudent(t, db, "joiner@ege.edu.tr", &c.university.ID)

	inactive := insertEvent(t, db, c, creator.ID, time.Now().UTC().Add(48*time.Hour), false, nil)

	joined, message, err := svc.JoinEvent(ctx, inactive.ID, joiner.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgEventInactive, message)
}

func TestJoinScopedToUniversity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	other := &model.University{Name: "Bogazici University", ShortName: "BOUN"}
	require.NoError(t, db.Create(other).Error)

	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	outsider := newStudent(t, db, "outsider@boun.edu.tr", &other.ID)

	created, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	joined, message, err := svc.JoinEvent(ctx, created.ID, outsider.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgEventNotFound, message)

	// The event is invisible to the outsider, not forbidden.
	detail, err := svc.GetEventByID(ctx, created.ID, outsider.ID)
	require.NoError(t, err)
	require.Nil(t, detail)

	feed, err := svc.GetEventsForUser(ctx, outsider.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Empty(t, feed)
}

func TestJoinWithoutUniversity(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	drifter := newStudent(t, db, "drifter@example.edu", nil)

	created, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	joined, message, err := svc.JoinEvent(ctx, created.ID, drifter.ID)
	require.NoError(t, err)
	require.False(t, joined)
	require.Equal(t, MsgJoinRequiresUniversity, message)
}

func TestFeedWithoutUniversityIsEmpty(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	drifter := newStudent(t, db, "drifter@example.edu", nil)

	_, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	feed, err := svc.GetEventsForUser(ctx, drifter.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Empty(t, feed)

	participated, err := svc.GetUserParticipatedEvents(ctx, drifter.ID, 1, 20)
	require.NoError(t, err)
	require.Empty(t, participated)
}

func TestGetEventByIDMissing(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	viewer := newStudent(t, db, "viewer@ege.edu.tr", &c.university.ID)

	detail, err := svc.GetEventByID(ctx, 9999, viewer.ID)
	require.NoError(t, err)
	require.Nil(t, detail)
}

func TestFeedFiltersByCategory(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	c := newCampus(t, db)
	sports := &model.Category{Name: "Sports", Icon: "sports"}
	require.NoError(t, db.Create(sports).Error)

	creator := newStudent(t, db, "creator@ege.edu.tr", &c.university.ID)
	viewer := newStudent(t, db, "viewer@ege.edu.tr", &c.university.ID)

	_, err := svc.CreateEvent(ctx, futureEventRequest(c.category.ID), creator.ID)
	require.NoError(t, err)

	sportsReq := futureEventRequest(sports.ID)
	sportsReq.Name = "Campus Run"
	sportsEvent, err := svc.CreateEvent(ctx, sportsReq, creator.ID)
	require.NoError(t, err)

	feed, err := svc.GetEventsForUser(ctx, viewer.ID, &sports.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, sportsEvent.ID, feed[0].ID)
}
