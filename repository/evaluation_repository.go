package repository

import (
	"context"
	"fmt"

	"groupdss/database"
	"groupdss/models"

	"github.com/jackc/pgx/v5"
)

// EvaluationRepository implements the EvaluationRepository interface
type EvaluationRepository struct {
	q queryable
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *database.DB) *EvaluationRepository {
	return &EvaluationRepository{q: db.Pool}
}

// newEvaluationRepositoryWithTx creates a new evaluation repository with a transaction
func newEvaluationRepositoryWithTx(tx queryable) *EvaluationRepository {
	return &EvaluationRepository{q: tx}
}

// CountByJudge returns how many evaluations each judge submitted. Only scores
// for the event's own alternatives and criteria are counted.
func (r *EvaluationRepository) CountByJudge(ctx context.Context, eventID int64) (map[int64]int, error) {
	query := `
		SELECT e.user_id, COUNT(*)
		FROM evaluations e
		JOIN alternatives a ON a.id = e.alternative_id AND a.event_id = e.event_id
		JOIN criteria c ON c.id = e.criterion_id AND c.event_id = e.event_id
		WHERE e.event_id = $1
		GROUP BY e.user_id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count evaluations for event %d: %w", eventID, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var userID, count int64
		if err := rows.Scan(&userID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation count: %w", err)
		}
		counts[userID] = int(count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating evaluation counts: %w", err)
	}

	return counts, nil
}

// GetByEvent returns every evaluation of an event
func (r *EvaluationRepository) GetByEvent(ctx context.Context, eventID int64) ([]models.Evaluation, error) {
	query := `
		SELECT id, event_id, user_id, alternative_id, criterion_id, score_value::float8, created_at, updated_at
		FROM evaluations
		WHERE event_id = $1
		ORDER BY user_id, alternative_id, criterion_id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations for event %d: %w", eventID, err)
	}
	return collectEvaluations(rows)
}

// GetByEventAndJudge returns one judge's evaluations
func (r *EvaluationRepository) GetByEventAndJudge(ctx context.Context, eventID, userID int64) ([]models.Evaluation, error) {
	query := `
		SELECT id, event_id, user_id, alternative_id, criterion_id, score_value::float8, created_at, updated_at
		FROM evaluations
		WHERE event_id = $1 AND user_id = $2
		ORDER BY alternative_id, criterion_id
	`

	rows, err := r.q.Query(ctx, query, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations of user %d for event %d: %w", userID, eventID, err)
	}
	return collectEvaluations(rows)
}

func collectEvaluations(rows pgx.Rows) ([]models.Evaluation, error) {
	evaluations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Evaluation, error) {
		var e models.Evaluation
		err := row.Scan(&e.ID, &e.EventID, &e.UserID, &e.AlternativeID, &e.CriterionID, &e.Score, &e.CreatedAt, &e.UpdatedAt)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan evaluations: %w", err)
	}
	return evaluations, nil
}
