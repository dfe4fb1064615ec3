package repository

import (
	"context"
	"errors"
	"fmt"

	"groupdss/database"
	"groupdss/events"
	"groupdss/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         service.UserRepository
	eventRepo        service.EventRepository
	evaluationRepo   service.EvaluationRepository
	wpResultRepo     service.WpResultRepository
	bordaResultRepo  service.BordaResultRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.userRepo = newUserRepositoryWithTx(tx)
	u.eventRepo = newEventRepositoryWithTx(tx)
	u.evaluationRepo = newEvaluationRepositoryWithTx(tx)
	u.wpResultRepo = newWpResultRepositoryWithTx(tx)
	u.bordaResultRepo = newBordaResultRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and then emits the staged events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction. It is a no-op after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// UserRepository returns the user repository for this unit of work
func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// EventRepository returns the event repository for this unit of work
func (u *unitOfWork) EventRepository() service.EventRepository {
	if u.eventRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.eventRepo
}

// EvaluationRepository returns the evaluation repository for this unit of work
func (u *unitOfWork) EvaluationRepository() service.EvaluationRepository {
	if u.evaluationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.evaluationRepo
}

// WpResultRepository returns the WP result repository for this unit of work
func (u *unitOfWork) WpResultRepository() service.WpResultRepository {
	if u.wpResultRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.wpResultRepo
}

// BordaResultRepository returns the Borda result repository for this unit of work
func (u *unitOfWork) BordaResultRepository() service.BordaResultRepository {
	if u.bordaResultRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.bordaResultRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
