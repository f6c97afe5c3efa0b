package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrTransactionActive is returned by BeginTransaction when the unit of
	// work already holds an open transaction.
	ErrTransactionActive = errors.New("a transaction is already active")
	// ErrNoTransaction is returned by commit/rollback when no transaction is
	// open.
	ErrNoTransaction = errors.New("no active transaction")
)

// pendingChange is a staged repository write. Nothing hits storage until the
// unit of work flushes its queue in SaveChanges.
type pendingChange func(tx *gorm.DB) (int64, error)

// UnitOfWork owns one storage session, a queue of staged changes, and the
// lazily constructed repositories sharing that session. Multi-entity
// mutations are wrapped in an explicit transaction so that a failure midway
// never leaves partial state behind. A UnitOfWork is bound to a single
// request and is not safe for concurrent use.
type UnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	pending []pendingChange
	closed  bool

	users        *UserRepository
	events       *EventRepository
	participants *EventParticipantRepository
	categories   *CategoryRepository
	universities *UniversityRepository
	faculties    *FacultyRepository
	departments  *DepartmentRepository
}

// NewUnitOfWork creates a unit of work over the given connection.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// session returns the open transaction if one exists, otherwise the base
// connection. All repository reads and flushes route through it.
func (u *UnitOfWork) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWork) stage(change pendingChange) {
	u.pending = append(u.pending, change)
}

// Users returns the user repository, constructing it on first use.
func (u *UnitOfWork) Users() *UserRepository {
	if u.users == nil {
		u.users = NewUserRepository(u)
	}
	return u.users
}

// Events returns the event repository, constructing it on first use.
func (u *UnitOfWork) Events() *EventRepository {
	if u.events == nil {
		u.events = NewEventRepository(u)
	}
	return u.events
}

// EventParticipants returns the participant repository, constructing it on
// first use.
func (u *UnitOfWork) EventParticipants() *EventParticipantRepository {
	if u.participants == nil {
		u.participants = NewEventParticipantRepository(u)
	}
	return u.participants
}

// Categories returns the category repository, constructing it on first use.
func (u *UnitOfWork) Categories() *CategoryRepository {
	if u.categories == nil {
		u.categories = NewCategoryRepository(u)
	}
	return u.categories
}

// Universities returns the university repository, constructing it on first use.
func (u *UnitOfWork) Universities() *UniversityRepository {
	if u.universities == nil {
		u.universities = NewUniversityRepository(u)
	}
	return u.universities
}

// Faculties returns the faculty repository, constructing it on first use.
func (u *UnitOfWork) Faculties() *FacultyRepository {
	if u.faculties == nil {
		u.faculties = NewFacultyRepository(u)
	}
	return u.faculties
}

// Departments returns the department repository, constructing it on first use.
func (u *UnitOfWork) Departments() *DepartmentRepository {
	if u.departments == nil {
		u.departments = NewDepartmentRepository(u)
	}
	return u.departments
}

// HasActiveTransaction reports whether an explicit transaction is open.
// Error handlers use it to decide whether a rollback is still needed.
func (u *UnitOfWork) HasActiveTransaction() bool {
	return u.tx != nil
}

// BeginTransaction opens an explicit transaction. Optional TxOptions select
// the isolation level; the participation engine uses serializable isolation
// for join so capacity checks cannot race.
func (u *UnitOfWork) BeginTransaction(ctx context.Context, opts ...*sql.TxOptions) error {
	if u.tx != nil {
		return ErrTransactionActive
	}
	tx := u.db.WithContext(ctx).Begin(opts...)
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

// SaveChanges flushes all staged repository changes and returns the number of
// affected rows. Inside an explicit transaction the changes become visible to
// subsequent reads on the same unit of work but remain undurable until
// commit; without one they are applied as a single implicit transaction.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	if len(u.pending) == 0 {
		return 0, nil
	}
	changes := u.pending
	u.pending = nil

	var affected int64
	flush := func(tx *gorm.DB) error {
		for _, change := range changes {
			n, err := change(tx)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	}

	if u.tx != nil {
		if err := flush(u.tx.WithContext(ctx)); err != nil {
			return 0, err
		}
		return affected, nil
	}
	if err := u.db.WithContext(ctx).Transaction(flush); err != nil {
		return 0, err
	}
	return affected, nil
}

// CommitTransaction saves pending changes and commits. On any failure the
// transaction is rolled back and the error re-raised. The transaction handle
// is released whatever the outcome.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	tx := u.tx
	if _, err := u.SaveChanges(ctx); err != nil {
		tx.Rollback()
		u.tx = nil
		return err
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		u.tx = nil
		return err
	}
	u.tx = nil
	return nil
}

// RollbackTransaction discards the open transaction and any staged changes.
// The transaction handle is released whatever the outcome.
func (u *UnitOfWork) RollbackTransaction() error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	u.pending = nil
	return err
}

// Close releases the unit of work, rolling back any transaction still open.
// It is idempotent.
func (u *UnitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if u.tx != nil {
		err := u.tx.Rollback().Error
		u.tx = nil
		u.pending = nil
		return err
	}
	u.pending = nil
	return nil
}
