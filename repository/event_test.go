package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetEventInUniversityScoping(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ege := seedUniversity(t, db, "Ege University")
	boun := seedUniversity(t, db, "Bogazici University")
	category := seedCategory(t, db, "Music")
	creator := seedUser(t, db, "creator@ege.edu.tr", &ege.ID)

	event := seedEvent(t, db, eventSpec{
		name:         "Campus Concert",
		universityID: ege.ID,
		categoryID:   category.ID,
		creatorID:    creator.ID,
		startDate:    timeInFuture(),
		isActive:     true,
	})

	uow := NewUnitOfWork(db)
	defer uow.Close()

	found, err := uow.Events().GetEventInUniversity(ctx, event.ID, ege.ID)
	require.NoError(t, err)
	require.Equal(t, event.ID, found.ID)

	// From another university the event is indistinguishable from absence.
	_, err = uow.Events().GetEventInUniversity(ctx, event.ID, boun.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetEventsForUniversityNotJoined(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ege := seedUniversity(t, db, "Ege University")
	boun := seedUniversity(t, db, "Bogazici University")
	music := seedCategory(t, db, "Music")
	sports := seedCategory(t, db, "Sports")
	creator := seedUser(t, db, "creator@ege.edu.tr", &ege.ID)
	viewer := seedUser(t, db, "viewer@ege.edu.tr", &ege.ID)

	base := time.Now().UTC()
	joined := seedEvent(t, db, eventSpec{
		name: "Joined Gig", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
		createdAt: base.Add(-3 * time.Hour),
	})
	older := seedEvent(t, db, eventSpec{
		name: "Older Gig", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
		createdAt: base.Add(-2 * time.Hour),
	})
	newer := seedEvent(t, db, eventSpec{
		name: "Newer Run", universityID: ege.ID, categoryID: sports.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
		createdAt: base.Add(-1 * time.Hour),
	})
	seedEvent(t, db, eventSpec{
		name: "Inactive Gig", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: false,
		createdAt: base,
	})
	seedEvent(t, db, eventSpec{
		name: "Other Campus", universityID: boun.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
		createdAt: base,
	})

	seedParticipation(t, db, joined.ID, viewer.ID, true)

	uow := NewUnitOfWork(db)
	defer uow.Close()

	events, err := uow.Events().GetEventsForUniversityNotJoined(ctx, ege.ID, viewer.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, newer.ID, events[0].ID)
	require.Equal(t, older.ID, events[1].ID)

	filtered, err := uow.Events().GetEventsForUniversityNotJoined(ctx, ege.ID, viewer.ID, &sports.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, newer.ID, filtered[0].ID)
}

func TestUnconfirmedParticipationDoesNotHideEvents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ege := seedUniversity(t, db, "Ege University")
	music := seedCategory(t, db, "Music")
	creator := seedUser(t, db, "creator@ege.edu.tr", &ege.ID)
	viewer := seedUser(t, db, "viewer@ege.edu.tr", &ege.ID)

	event := seedEvent(t, db, eventSpec{
		name: "Pending Gig", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
	})
	seedParticipation(t, db, event.ID, viewer.ID, false)

	uow := NewUnitOfWork(db)
	defer uow.Close()

	events, err := uow.Events().GetEventsForUniversityNotJoined(ctx, ege.ID, viewer.ID, nil, 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
}

func TestGetUserParticipatedEvents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ege := seedUniversity(t, db, "Ege University")
	music := seedCategory(t, db, "Music")
	creator := seedUser(t, db, "creator@ege.edu.tr", &ege.ID)
	viewer := seedUser(t, db, "viewer@ege.edu.tr", &ege.ID)

	early := seedEvent(t, db, eventSpec{
		name: "Early Start", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
	})
	late := seedEvent(t, db, eventSpec{
		name: "Late Start", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture().Add(24 * time.Hour), isActive: true,
	})
	inactive := seedEvent(t, db, eventSpec{
		name: "Cancelled", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: false,
	})
	notJoined := seedEvent(t, db, eventSpec{
		name: "Not Joined", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
	})
	_ = notJoined

	seedParticipation(t, db, early.ID, viewer.ID, true)
	seedParticipation(t, db, late.ID, viewer.ID, true)
	seedParticipation(t, db, inactive.ID, viewer.ID, true)

	uow := NewUnitOfWork(db)
	defer uow.Close()

	events, err := uow.Events().GetUserParticipatedEvents(ctx, viewer.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, late.ID, events[0].ID)
	require.Equal(t, early.ID, events[1].ID)
}

func TestParticipantCountCountsConfirmedOnly(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ege := seedUniversity(t, db, "Ege University")
	music := seedCategory(t, db, "Music")
	creator := seedUser(t, db, "creator@ege.edu.tr", &ege.ID)
	confirmed := seedUser(t, db, "confirmed@ege.edu.tr", &ege.ID)
	pending := seedUser(t, db, "pending@ege.edu.tr", &ege.ID)

	event := seedEvent(t, db, eventSpec{
		name: "Counted Gig", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
	})
	seedParticipation(t, db, event.ID, confirmed.ID, true)
	seedParticipation(t, db, event.ID, pending.ID, false)

	uow := NewUnitOfWork(db)
	defer uow.Close()

	count, err := uow.EventParticipants().GetEventParticipantCount(ctx, event.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	isParticipant, err := uow.EventParticipants().IsUserParticipant(ctx, event.ID, confirmed.ID)
	require.NoError(t, err)
	require.True(t, isParticipant)

	isParticipant, err = uow.EventParticipants().IsUserParticipant(ctx, event.ID, pending.ID)
	require.NoError(t, err)
	require.False(t, isParticipant)
}

func TestGetUpcomingEvents(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	ege := seedUniversity(t, db, "Ege University")
	music := seedCategory(t, db, "Music")
	creator := seedUser(t, db, "creator@ege.edu.tr", &ege.ID)

	past := seedEvent(t, db, eventSpec{
		name: "Already Held", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInPast(), isActive: true,
	})
	_ = past
	soon := seedEvent(t, db, eventSpec{
		name: "Soon", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture(), isActive: true,
	})
	later := seedEvent(t, db, eventSpec{
		name: "Later", universityID: ege.ID, categoryID: music.ID,
		creatorID: creator.ID, startDate: timeInFuture().Add(24 * time.Hour), isActive: true,
	})

	uow := NewUnitOfWork(db)
	defer uow.Close()

	events, err := uow.Events().GetUpcomingEvents(ctx, ege.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, soon.ID, events[0].ID)
	require.Equal(t, later.ID, events[1].ID)
}
