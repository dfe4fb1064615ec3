package repository

import (
	"context"
	"errors"
	"fmt"

	"groupdss/database"
	"groupdss/models"

	"github.com/jackc/pgx/v5"
)

// EventRepository implements the EventRepository interface
type EventRepository struct {
	q queryable
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{q: db.Pool}
}

// newEventRepositoryWithTx creates a new event repository with a transaction
func newEventRepositoryWithTx(tx queryable) *EventRepository {
	return &EventRepository{q: tx}
}

const eventColumns = `id, event_name, event_date, borda_settings, created_at, updated_at`

// GetByID retrieves an event
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", id, err)
	}
	return event, nil
}

// LockForCalculation retrieves an event and holds its row lock until the
// surrounding transaction ends. Concurrent calculations of the same event
// wait here.
func (r *EventRepository) LockForCalculation(ctx context.Context, id int64) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

	event, err := scanEvent(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock event %d: %w", id, err)
	}
	return event, nil
}

// GetJudges returns the decision makers assigned to an event
func (r *EventRepository) GetJudges(ctx context.Context, eventID int64) ([]models.Judge, error) {
	query := `
		SELECT eu.user_id, u.name, eu.is_leader, eu.assigned_at
		FROM event_user eu
		JOIN users u ON u.id = eu.user_id
		WHERE eu.event_id = $1
		ORDER BY eu.user_id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query judges for event %d: %w", eventID, err)
	}
	defer rows.Close()

	var judges []models.Judge
	for rows.Next() {
		var judge models.Judge
		if err := rows.Scan(&judge.UserID, &judge.Name, &judge.IsLeader, &judge.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan judge: %w", err)
		}
		judges = append(judges, judge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating judges: %w", err)
	}

	return judges, nil
}

// IsLeader reports whether a user leads the event
func (r *EventRepository) IsLeader(ctx context.Context, eventID, userID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM event_user
			WHERE event_id = $1 AND user_id = $2 AND is_leader
		)
	`

	var leader bool
	if err := r.q.QueryRow(ctx, query, eventID, userID).Scan(&leader); err != nil {
		return false, fmt.Errorf("failed to check leader of event %d: %w", eventID, err)
	}
	return leader, nil
}

// GetAlternatives returns an event's alternatives ordered by id
func (r *EventRepository) GetAlternatives(ctx context.Context, eventID int64) ([]models.Alternative, error) {
	query := `
		SELECT id, event_id, code, name, nip, created_at, updated_at
		FROM alternatives
		WHERE event_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query alternatives for event %d: %w", eventID, err)
	}

	alternatives, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Alternative, error) {
		var a models.Alternative
		err := row.Scan(&a.ID, &a.EventID, &a.Code, &a.Name, &a.NIP, &a.CreatedAt, &a.UpdatedAt)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan alternatives: %w", err)
	}
	return alternatives, nil
}

// GetCriteria returns an event's criteria ordered by id
func (r *EventRepository) GetCriteria(ctx context.Context, eventID int64) ([]models.Criterion, error) {
	query := `
		SELECT id, event_id, name, weight::float8, attribute_type, created_at, updated_at
		FROM criteria
		WHERE event_id = $1
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query criteria for event %d: %w", eventID, err)
	}

	criteria, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Criterion, error) {
		var c models.Criterion
		err := row.Scan(&c.ID, &c.EventID, &c.Name, &c.Weight, &c.AttributeType, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan criteria: %w", err)
	}
	return criteria, nil
}

// UpdateBordaSettings stores the point schedule; nil clears it
func (r *EventRepository) UpdateBordaSettings(ctx context.Context, eventID int64, settings []byte) error {
	query := `
		UPDATE events
		SET borda_settings = $2::jsonb, updated_at = NOW()
		WHERE id = $1
	`

	var value any
	if len(settings) > 0 {
		value = string(settings)
	}

	result, err := r.q.Exec(ctx, query, eventID, value)
	if err != nil {
		return fmt.Errorf("failed to update borda settings for event %d: %w", eventID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("event %d not found", eventID)
	}
	return nil
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var event models.Event
	var settings []byte
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.EventDate,
		&settings,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		event.BordaSettings = settings
	}
	return &event, nil
}
