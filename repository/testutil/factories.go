package testutil

import (
	"context"
	"fmt"
	"testing"

	"groupdss/database"
	"groupdss/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a user and returns its id
func CreateTestUser(t *testing.T, db *database.DB, name string, role models.Role) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (name, email, role) VALUES ($1, $2, $3) RETURNING id`,
		name, fmt.Sprintf("%s@example.test", name), string(role),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// LinkDiscordAccount sets the Discord id of a user
func LinkDiscordAccount(t *testing.T, db *database.DB, userID, discordID int64) {
	t.Helper()

	_, err := db.Exec(context.Background(), `UPDATE users SET discord_id = $2 WHERE id = $1`, userID, discordID)
	require.NoError(t, err)
}

// CreateTestEvent inserts an event without a point schedule and returns its id
func CreateTestEvent(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO events (event_name, event_date) VALUES ($1, CURRENT_DATE) RETURNING id`, name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// SetBordaSettings stores raw borda_settings JSON, bypassing any validation
func SetBordaSettings(t *testing.T, db *database.DB, eventID int64, raw string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `UPDATE events SET borda_settings = $2::jsonb WHERE id = $1`, eventID, raw)
	require.NoError(t, err)
}

// AssignJudge adds a user to an event's decision makers
func AssignJudge(t *testing.T, db *database.DB, eventID, userID int64, leader bool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO event_user (event_id, user_id, is_leader) VALUES ($1, $2, $3)`, eventID, userID, leader)
	require.NoError(t, err)
}

// CreateTestAlternative inserts an alternative and returns its id
func CreateTestAlternative(t *testing.T, db *database.DB, eventID int64, code, name string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO alternatives (event_id, code, name) VALUES ($1, $2, $3) RETURNING id`, eventID, code, name,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestCriterion inserts a criterion and returns its id
func CreateTestCriterion(t *testing.T, db *database.DB, eventID int64, name string, weight float64, attribute models.AttributeType) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		`INSERT INTO criteria (event_id, name, weight, attribute_type) VALUES ($1, $2, $3, $4) RETURNING id`,
		eventID, name, weight, string(attribute),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTestEvaluation inserts or replaces a single score
func CreateTestEvaluation(t *testing.T, db *database.DB, eventID, userID, alternativeID, criterionID int64, score float64) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO evaluations (event_id, user_id, alternative_id, criterion_id, score_value)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id, user_id, alternative_id, criterion_id)
		DO UPDATE SET score_value = EXCLUDED.score_value, updated_at = NOW()
	`, eventID, userID, alternativeID, criterionID, score)
	require.NoError(t, err)
}

// CriterionSpec describes a criterion of a seeded event
type CriterionSpec struct {
	Name      string
	Weight    float64
	Attribute models.AttributeType
}

// EventFixture holds the ids of a seeded event
type EventFixture struct {
	EventID        int64
	AdminID        int64
	LeaderID       int64
	JudgeIDs       []int64 // leader first
	AlternativeIDs []int64
	CriterionIDs   []int64
}

// SeedEvent creates an admin, one judge per entry of scores (the first one
// leads the event), the alternatives and criteria, and every score.
// scores[judge][alternative][criterion] must cover all combinations to get
// a complete event; a score of 0 leaves that evaluation out.
func SeedEvent(t *testing.T, db *database.DB, alternativeCodes []string, criteria []CriterionSpec, scores [][][]float64) *EventFixture {
	t.Helper()
	ctx := context.Background()
	fixture := &EventFixture{}

	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO events (event_name, event_date) VALUES ($1, CURRENT_DATE) RETURNING id`, t.Name(),
		).Scan(&fixture.EventID); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO users (name, email, role) VALUES ($1, $2, 'admin') RETURNING id`,
			"admin", fmt.Sprintf("admin-%d@example.test", fixture.EventID),
		).Scan(&fixture.AdminID); err != nil {
			return fmt.Errorf("insert admin: %w", err)
		}

		for i := range scores {
			var userID int64
			name := fmt.Sprintf("judge%d", i+1)
			if err := tx.QueryRow(ctx,
				`INSERT INTO users (name, email, role) VALUES ($1, $2, 'decision_maker') RETURNING id`,
				name, fmt.Sprintf("%s-%d@example.test", name, fixture.EventID),
			).Scan(&userID); err != nil {
				return fmt.Errorf("insert judge: %w", err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO event_user (event_id, user_id, is_leader) VALUES ($1, $2, $3)`,
				fixture.EventID, userID, i == 0,
			); err != nil {
				return fmt.Errorf("assign judge: %w", err)
			}
			fixture.JudgeIDs = append(fixture.JudgeIDs, userID)
		}
		if len(fixture.JudgeIDs) > 0 {
			fixture.LeaderID = fixture.JudgeIDs[0]
		}

		for _, code := range alternativeCodes {
			var id int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO alternatives (event_id, code, name) VALUES ($1, $2, $3) RETURNING id`,
				fixture.EventID, code, "Alternative "+code,
			).Scan(&id); err != nil {
				return fmt.Errorf("insert alternative: %w", err)
			}
			fixture.AlternativeIDs = append(fixture.AlternativeIDs, id)
		}

		for _, c := range criteria {
			var id int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO criteria (event_id, name, weight, attribute_type) VALUES ($1, $2, $3, $4) RETURNING id`,
				fixture.EventID, c.Name, c.Weight, string(c.Attribute),
			).Scan(&id); err != nil {
				return fmt.Errorf("insert criterion: %w", err)
			}
			fixture.CriterionIDs = append(fixture.CriterionIDs, id)
		}

		for j, byAlternative := range scores {
			for a, byCriterion := range byAlternative {
				for c, score := range byCriterion {
					if score == 0 {
						continue
					}
					if _, err := tx.Exec(ctx, `
						INSERT INTO evaluations (event_id, user_id, alternative_id, criterion_id, score_value)
						VALUES ($1, $2, $3, $4, $5)
					`, fixture.EventID, fixture.JudgeIDs[j], fixture.AlternativeIDs[a], fixture.CriterionIDs[c], score); err != nil {
						return fmt.Errorf("insert evaluation: %w", err)
					}
				}
			}
		}
		return nil
	})
	require.NoError(t, err)

	return fixture
}
