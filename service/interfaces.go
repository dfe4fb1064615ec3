package service

import (
	"context"
	"time"

	"groupdss/events"
	"groupdss/models"
)

// UserRepository defines the interface for user lookups
type UserRepository interface {
	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByDiscordID retrieves the user linked to a Discord account
	GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error)
}

// EventRepository defines the interface for event configuration access
type EventRepository interface {
	// GetByID retrieves an event
	GetByID(ctx context.Context, id int64) (*models.Event, error)

	// LockForCalculation retrieves an event with a row lock held until the
	// transaction ends, serializing calculations of the same event
	LockForCalculation(ctx context.Context, id int64) (*models.Event, error)

	// GetJudges returns the decision makers assigned to an event
	GetJudges(ctx context.Context, eventID int64) ([]models.Judge, error)

	// IsLeader reports whether a user leads the event
	IsLeader(ctx context.Context, eventID, userID int64) (bool, error)

	// GetAlternatives returns an event's alternatives ordered by id
	GetAlternatives(ctx context.Context, eventID int64) ([]models.Alternative, error)

	// GetCriteria returns an event's criteria ordered by id
	GetCriteria(ctx context.Context, eventID int64) ([]models.Criterion, error)

	// UpdateBordaSettings stores the point schedule; nil clears it
	UpdateBordaSettings(ctx context.Context, eventID int64, settings []byte) error
}

// EvaluationRepository defines the interface for judge score access
type EvaluationRepository interface {
	// CountByJudge returns the number of evaluations each judge submitted
	CountByJudge(ctx context.Context, eventID int64) (map[int64]int, error)

	// GetByEvent returns every evaluation of an event
	GetByEvent(ctx context.Context, eventID int64) ([]models.Evaluation, error)

	// GetByEventAndJudge returns one judge's evaluations
	GetByEventAndJudge(ctx context.Context, eventID, userID int64) ([]models.Evaluation, error)
}

// WpResultRepository defines the interface for stored Weighted Product vectors
type WpResultRepository interface {
	DeleteByEvent(ctx context.Context, eventID int64) (int64, error)
	CreateBatch(ctx context.Context, results []models.WpResult) error
	GetByEvent(ctx context.Context, eventID int64) ([]models.WpResult, error)
	GetByEventAndJudge(ctx context.Context, eventID, userID int64) ([]models.WpResult, error)
}

// BordaResultRepository defines the interface for the stored group ranking
type BordaResultRepository interface {
	DeleteByEvent(ctx context.Context, eventID int64) (int64, error)
	CreateBatch(ctx context.Context, results []models.BordaResult) error

	// GetByEvent returns results ordered by final rank
	GetByEvent(ctx context.Context, eventID int64) ([]models.BordaResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	EventRepository() EventRepository
	EvaluationRepository() EvaluationRepository
	WpResultRepository() WpResultRepository
	BordaResultRepository() BordaResultRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// MetricsRecorder receives the outcome of every calculation attempt
type MetricsRecorder interface {
	// ObserveCalculation records a finished attempt. kind is empty on success.
	ObserveCalculation(outcome string, kind string, duration time.Duration)
}

// DecisionService defines the ranking engine operations
type DecisionService interface {
	// CheckCompleteness reports every judge's evaluation progress
	CheckCompleteness(ctx context.Context, eventID int64) (*models.CompletenessReport, error)

	// Calculate recomputes the Weighted Product vectors and the Borda ranking
	// of an event. triggeringUserID is nil for system-initiated runs.
	Calculate(ctx context.Context, eventID int64, triggeringUserID *int64) error

	// CanCalculate reports whether the user is an admin or the event leader
	CanCalculate(ctx context.Context, eventID, userID int64) (bool, error)

	// GetResults returns the stored group ranking with its Borda matrix
	GetResults(ctx context.Context, eventID int64) (*models.EventResults, error)

	// GetJudgeMatrix returns one judge's stored Weighted Product matrix
	GetJudgeMatrix(ctx context.Context, eventID, judgeID int64) (*models.JudgeMatrix, error)

	// UpdatePointSchedule replaces the event's Borda points; an empty schedule
	// restores the default formula
	UpdatePointSchedule(ctx context.Context, eventID, userID int64, schedule map[int]float64) error

	// FindUserByDiscordID maps a Discord account to a user, nil if unlinked
	FindUserByDiscordID(ctx context.Context, discordID int64) (*models.User, error)
}
