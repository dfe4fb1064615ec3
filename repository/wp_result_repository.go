package repository

import (
	"context"
	"fmt"

	"groupdss/database"
	"groupdss/models"

	"github.com/jackc/pgx/v5"
)

// WpResultRepository implements the WpResultRepository interface
type WpResultRepository struct {
	q queryable
}

// NewWpResultRepository creates a new WP result repository
func NewWpResultRepository(db *database.DB) *WpResultRepository {
	return &WpResultRepository{q: db.Pool}
}

// newWpResultRepositoryWithTx creates a new WP result repository with a transaction
func newWpResultRepositoryWithTx(tx queryable) *WpResultRepository {
	return &WpResultRepository{q: tx}
}

// DeleteByEvent removes every WP row of an event and returns how many were deleted
func (r *WpResultRepository) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM wp_results WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete WP results for event %d: %w", eventID, err)
	}
	return result.RowsAffected(), nil
}

// CreateBatch inserts WP rows with COPY
func (r *WpResultRepository) CreateBatch(ctx context.Context, results []models.WpResult) error {
	if len(results) == 0 {
		return nil
	}

	copied, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"wp_results"},
		[]string{"event_id", "user_id", "alternative_id", "s_value", "v_value", "individual_rank"},
		pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
			wp := results[i]
			return []any{wp.EventID, wp.UserID, wp.AlternativeID, wp.SValue, wp.VValue, wp.IndividualRank}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to insert WP results: %w", err)
	}
	if copied != int64(len(results)) {
		return fmt.Errorf("inserted %d of %d WP results", copied, len(results))
	}
	return nil
}

// GetByEvent returns every WP row of an event ordered by judge and alternative
func (r *WpResultRepository) GetByEvent(ctx context.Context, eventID int64) ([]models.WpResult, error) {
	query := `
		SELECT id, event_id, user_id, alternative_id, s_value, v_value, individual_rank, created_at, updated_at
		FROM wp_results
		WHERE event_id = $1
		ORDER BY user_id, alternative_id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query WP results for event %d: %w", eventID, err)
	}
	return collectWpResults(rows)
}

// GetByEventAndJudge returns one judge's WP rows ordered by individual rank
func (r *WpResultRepository) GetByEventAndJudge(ctx context.Context, eventID, userID int64) ([]models.WpResult, error) {
	query := `
		SELECT id, event_id, user_id, alternative_id, s_value, v_value, individual_rank, created_at, updated_at
		FROM wp_results
		WHERE event_id = $1 AND user_id = $2
		ORDER BY individual_rank, alternative_id
	`

	rows, err := r.q.Query(ctx, query, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query WP results of user %d for event %d: %w", userID, eventID, err)
	}
	return collectWpResults(rows)
}

func collectWpResults(rows pgx.Rows) ([]models.WpResult, error) {
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WpResult])
	if err != nil {
		return nil, fmt.Errorf("failed to scan WP results: %w", err)
	}
	return results, nil
}
