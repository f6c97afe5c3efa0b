package repository

import (
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

// openTestDB opens an isolated in-memory SQLite database migrated for all
// models. A single connection keeps every query on the same memory store.
func openTestDB(t *testing.T) *gorm.DB {
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

	return db
}

func timeInFuture() time.Time { return time.Now().UTC().Add(48 * time.Hour) }

func timeInPast() time.Time { return time.Now().UTC().Add(-48 * time.Hour) }

func seedUniversity(t *testing.T, db *gorm.DB, name string) *model.University {
	t.Helper()
	university := &model.University{Name: name, ShortName: strings.ToUpper(name[:3])}
	require.NoError(t, db.Create(university).Error)
	return university
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Icon: strings.ToLower(name)}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedUser(t *testing.T, db *gorm.DB, email string, universityID *uint) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test",
		Surname:      "User",
		UniversityID: universityID,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

type eventSpec struct {
	name            string
	universityID    uint
	categoryID      uint
	creatorID       uint
	startDate       time.Time
	isActive        bool
	maxParticipants *int
	createdAt       time.Time
}

func seedEvent(t *testing.T, db *gorm.DB, spec eventSpec) *model.Event {
	t.Helper()
	if spec.createdAt.IsZero() {
		spec.createdAt = time.Now().UTC()
	}
	event := &model.Event{
		Name:            spec.name,
		StartDate:       spec.startDate,
		EndDate:         spec.startDate.Add(4 * time.Hour),
		StartTime:       "18:00",
		EndTime:         "22:00",
		Images:          []string{model.DefaultEventImage},
		Address:         "Main Campus",
		IsFree:          true,
		IsActive:        spec.isActive,
		IsPublic:        true,
		MaxParticipants: spec.maxParticipants,
		CreatedAt:       spec.createdAt,
		CategoryID:      spec.categoryID,
		CreatedByUserID: spec.creatorID,
		UniversityID:    spec.universityID,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedParticipation(t *testing.T, db *gorm.DB, eventID, userID uint, confirmed bool) *model.EventParticipant {
	t.Helper()
	participation := &model.EventParticipant{
		EventID:     eventID,
		UserID:      userID,
		JoinedAt:    time.Now().UTC(),
		IsConfirmed: confirmed,
	}
	require.NoError(t, db.Create(participation).Error)
	return participation
}
