package repository

import (
	"context"
	"fmt"

	"groupdss/database"
	"groupdss/models"

	"github.com/jackc/pgx/v5"
)

// BordaResultRepository implements the BordaResultRepository interface
type BordaResultRepository struct {
	q queryable
}

// NewBordaResultRepository creates a new Borda result repository
func NewBordaResultRepository(db *database.DB) *BordaResultRepository {
	return &BordaResultRepository{q: db.Pool}
}

// newBordaResultRepositoryWithTx creates a new Borda result repository with a transaction
func newBordaResultRepositoryWithTx(tx queryable) *BordaResultRepository {
	return &BordaResultRepository{q: tx}
}

// DeleteByEvent removes an event's Borda rows and returns how many were deleted
func (r *BordaResultRepository) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM borda_results WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete Borda results for event %d: %w", eventID, err)
	}
	return result.RowsAffected(), nil
}

// CreateBatch inserts Borda rows in a single round trip
func (r *BordaResultRepository) CreateBatch(ctx context.Context, results []models.BordaResult) error {
	if len(results) == 0 {
		return nil
	}

	query := `
		INSERT INTO borda_results (event_id, alternative_id, total_points, final_rank)
		VALUES ($1, $2, $3, $4)
	`

	batch := &pgx.Batch{}
	for _, borda := range results {
		batch.Queue(query, borda.EventID, borda.AlternativeID, borda.TotalPoints, borda.FinalRank)
	}

	br := r.q.SendBatch(ctx, batch)
	defer br.Close()

	for _, borda := range results {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert Borda result for alternative %d: %w", borda.AlternativeID, err)
		}
	}

	return nil
}

// GetByEvent returns an event's Borda rows ordered by final rank
func (r *BordaResultRepository) GetByEvent(ctx context.Context, eventID int64) ([]models.BordaResult, error) {
	query := `
		SELECT id, event_id, alternative_id, total_points, final_rank, created_at, updated_at
		FROM borda_results
		WHERE event_id = $1
		ORDER BY final_rank, alternative_id
	`

	rows, err := r.q.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query Borda results for event %d: %w", eventID, err)
	}

	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BordaResult])
	if err != nil {
		return nil, fmt.Errorf("failed to scan Borda results: %w", err)
	}
	return results, nil
}
