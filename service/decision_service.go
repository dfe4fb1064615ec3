package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"groupdss/engine"
	"groupdss/events"
	"groupdss/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Calculation outcomes reported to the MetricsRecorder
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var validate = validator.New()

// decisionService implements the DecisionService interface
type decisionService struct {
	uowFactory UnitOfWorkFactory
	metrics    MetricsRecorder
}

// NewDecisionService creates a new decision service. metrics may be nil.
func NewDecisionService(uowFactory UnitOfWorkFactory, metrics MetricsRecorder) DecisionService {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &decisionService{
		uowFactory: uowFactory,
		metrics:    metrics,
	}
}

// eventSnapshot is the configuration a completeness check reads
type eventSnapshot struct {
	event        *models.Event
	judges       []models.Judge
	alternatives []models.Alternative
	criteria     []models.Criterion
	report       *models.CompletenessReport
}

// CheckCompleteness reports every judge's evaluation progress
func (s *decisionService) CheckCompleteness(ctx context.Context, eventID int64) (*models.CompletenessReport, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	snapshot, err := s.loadSnapshot(ctx, uow, eventID)
	if err != nil {
		return nil, err
	}
	return snapshot.report, nil
}

// Calculate replaces an event's WP and Borda results with a fresh
// computation. Every step runs in one transaction; on any failure the prior
// result set stays untouched.
func (s *decisionService) Calculate(ctx context.Context, eventID int64, triggeringUserID *int64) (err error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := log.WithFields(log.Fields{
		"event_id": eventID,
		"run_id":   runID,
	})
	if triggeringUserID != nil {
		logger = logger.WithField("user_id", *triggeringUserID)
	}

	defer func() {
		s.observe(err, time.Since(start))
		if err != nil {
			logger.WithError(err).WithField("kind", KindLabel(err)).Warn("Calculation failed")
		}
	}()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if triggeringUserID != nil {
		if err := authorize(ctx, uow, eventID, *triggeringUserID); err != nil {
			return err
		}
	}

	// Configuration and evaluations are read under the event row lock
	event, err := uow.EventRepository().LockForCalculation(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to lock event %d: %w", eventID, err)
	}
	if event == nil {
		return engine.NewError(engine.ErrNotFound, "event %d not found", eventID)
	}

	snapshot, err := s.snapshotOf(ctx, uow, event)
	if err != nil {
		return err
	}
	if !snapshot.report.IsComplete {
		return engine.IncompleteError(snapshot.report)
	}

	evaluations, err := uow.EvaluationRepository().GetByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get evaluations: %w", err)
	}

	wpDeleted, err := uow.WpResultRepository().DeleteByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to clear WP results: %w", err)
	}
	bordaDeleted, err := uow.BordaResultRepository().DeleteByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to clear Borda results: %w", err)
	}
	logger.WithFields(log.Fields{
		"wp_deleted":    wpDeleted,
		"borda_deleted": bordaDeleted,
	}).Debug("Cleared previous results")

	judgeIDs := make([]int64, len(snapshot.judges))
	for i, judge := range snapshot.judges {
		judgeIDs[i] = judge.UserID
	}

	wpResults, err := engine.ComputeWeightedProduct(engine.WeightedProductInput{
		EventID:      eventID,
		JudgeIDs:     judgeIDs,
		Alternatives: snapshot.alternatives,
		Criteria:     snapshot.criteria,
		Evaluations:  evaluations,
	})
	if err != nil {
		return err
	}

	if err := uow.WpResultRepository().CreateBatch(ctx, wpResults); err != nil {
		return fmt.Errorf("failed to store WP results: %w", err)
	}

	// Borda reads the stored rows back so it works on exactly what was persisted
	storedWp, err := uow.WpResultRepository().GetByEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to read WP results: %w", err)
	}

	bordaResults, err := engine.AggregateBorda(engine.BordaInput{
		EventID:          eventID,
		WpResults:        storedWp,
		AlternativeCount: len(snapshot.alternatives),
		Schedule:         pointSchedule(event, logger),
	})
	if err != nil {
		return err
	}

	if err := uow.BordaResultRepository().CreateBatch(ctx, bordaResults); err != nil {
		return fmt.Errorf("failed to store Borda results: %w", err)
	}

	uow.EventBus().Publish(events.CalculationCompletedEvent{
		EventID:          eventID,
		EventName:        event.Name,
		RunID:            runID,
		TriggeredBy:      triggeringUserID,
		JudgeCount:       len(judgeIDs),
		AlternativeCount: len(snapshot.alternatives),
		WinnerIDs:        winners(bordaResults),
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit calculation: %w", err)
	}

	logger.WithFields(log.Fields{
		"judges":       len(judgeIDs),
		"alternatives": len(snapshot.alternatives),
		"wp_rows":      len(wpResults),
		"duration":     time.Since(start),
	}).Info("Calculation completed")

	return nil
}

// CanCalculate reports whether the user is an admin or the event leader
func (s *decisionService) CanCalculate(ctx context.Context, eventID, userID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	err := authorize(ctx, uow, eventID, userID)
	if err == nil {
		return true, nil
	}
	if engine.KindOf(err) == engine.ErrUnauthorized {
		return false, nil
	}
	return false, err
}

// GetResults returns the stored group ranking with its Borda matrix. An event
// that was never calculated yields an empty ranking and a nil matrix.
func (s *decisionService) GetResults(ctx context.Context, eventID int64) (*models.EventResults, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if event == nil {
		return nil, engine.NewError(engine.ErrNotFound, "event %d not found", eventID)
	}

	alternatives, err := uow.EventRepository().GetAlternatives(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alternatives: %w", err)
	}
	wpResults, err := uow.WpResultRepository().GetByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get WP results: %w", err)
	}
	bordaResults, err := uow.BordaResultRepository().GetByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get Borda results: %w", err)
	}

	byID := make(map[int64]models.Alternative, len(alternatives))
	for _, alternative := range alternatives {
		byID[alternative.ID] = alternative
	}

	results := &models.EventResults{
		Event:   event,
		Ranking: make([]models.RankedAlternative, 0, len(bordaResults)),
		Matrix:  engine.BuildBordaMatrix(alternatives, wpResults, bordaResults),
	}
	for _, borda := range bordaResults {
		alternative := byID[borda.AlternativeID]
		results.Ranking = append(results.Ranking, models.RankedAlternative{
			AlternativeID: borda.AlternativeID,
			Code:          alternative.Code,
			Name:          alternative.Name,
			TotalPoints:   borda.TotalPoints,
			FinalRank:     borda.FinalRank,
		})
	}

	return results, nil
}

// GetJudgeMatrix returns one judge's stored Weighted Product matrix, nil when
// the event has not been calculated yet
func (s *decisionService) GetJudgeMatrix(ctx context.Context, eventID, judgeID int64) (*models.JudgeMatrix, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if event == nil {
		return nil, engine.NewError(engine.ErrNotFound, "event %d not found", eventID)
	}

	judges, err := uow.EventRepository().GetJudges(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get judges: %w", err)
	}
	assigned := false
	for _, judge := range judges {
		if judge.UserID == judgeID {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, engine.NewError(engine.ErrNotFound, "user %d is not a decision maker of event %d", judgeID, eventID)
	}

	alternatives, err := uow.EventRepository().GetAlternatives(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alternatives: %w", err)
	}
	criteria, err := uow.EventRepository().GetCriteria(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get criteria: %w", err)
	}
	evaluations, err := uow.EvaluationRepository().GetByEventAndJudge(ctx, eventID, judgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluations: %w", err)
	}
	wpResults, err := uow.WpResultRepository().GetByEventAndJudge(ctx, eventID, judgeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get WP results: %w", err)
	}

	return engine.BuildJudgeMatrix(eventID, judgeID, alternatives, criteria, evaluations, wpResults), nil
}

// UpdatePointSchedule replaces the event's Borda points. Stored results are
// not recalculated.
func (s *decisionService) UpdatePointSchedule(ctx context.Context, eventID, userID int64, schedule map[int]float64) error {
	if len(schedule) > 0 {
		if err := validate.Var(schedule, "dive,keys,min=1,endkeys"); err != nil {
			return fmt.Errorf("invalid point schedule: %w", err)
		}
	}
	for rank, points := range schedule {
		if math.IsNaN(points) || math.IsInf(points, 0) {
			return fmt.Errorf("invalid point schedule: points for rank %d must be finite", rank)
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := authorize(ctx, uow, eventID, userID); err != nil {
		return err
	}

	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if event == nil {
		return engine.NewError(engine.ErrNotFound, "event %d not found", eventID)
	}

	var settings []byte
	if len(schedule) > 0 {
		settings, err = engine.PointSchedule(schedule).MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode point schedule: %w", err)
		}
	}

	if err := uow.EventRepository().UpdateBordaSettings(ctx, eventID, settings); err != nil {
		return fmt.Errorf("failed to store point schedule: %w", err)
	}

	uow.EventBus().Publish(events.PointScheduleUpdatedEvent{
		EventID:   eventID,
		UpdatedBy: userID,
		Schedule:  schedule,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit point schedule: %w", err)
	}

	log.WithFields(log.Fields{
		"event_id": eventID,
		"user_id":  userID,
		"ranks":    len(schedule),
	}).Info("Point schedule updated")

	return nil
}

// FindUserByDiscordID maps a Discord account to a user
func (s *decisionService) FindUserByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByDiscordID(ctx, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by discord ID %d: %w", discordID, err)
	}
	return user, nil
}

func (s *decisionService) loadSnapshot(ctx context.Context, uow UnitOfWork, eventID int64) (*eventSnapshot, error) {
	event, err := uow.EventRepository().GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %d: %w", eventID, err)
	}
	if event == nil {
		return nil, engine.NewError(engine.ErrNotFound, "event %d not found", eventID)
	}
	return s.snapshotOf(ctx, uow, event)
}

// snapshotOf reads the judges, alternatives, criteria and evaluation counts
// of an already loaded event
func (s *decisionService) snapshotOf(ctx context.Context, uow UnitOfWork, event *models.Event) (*eventSnapshot, error) {
	eventID := event.ID

	judges, err := uow.EventRepository().GetJudges(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get judges: %w", err)
	}
	alternatives, err := uow.EventRepository().GetAlternatives(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get alternatives: %w", err)
	}
	criteria, err := uow.EventRepository().GetCriteria(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get criteria: %w", err)
	}
	counts, err := uow.EvaluationRepository().CountByJudge(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to count evaluations: %w", err)
	}

	return &eventSnapshot{
		event:        event,
		judges:       judges,
		alternatives: alternatives,
		criteria:     criteria,
		report:       engine.CheckCompleteness(eventID, judges, len(alternatives), len(criteria), counts),
	}, nil
}

func (s *decisionService) observe(err error, duration time.Duration) {
	if err == nil {
		s.metrics.ObserveCalculation(OutcomeSuccess, "", duration)
		return
	}
	s.metrics.ObserveCalculation(OutcomeFailure, KindLabel(err), duration)
}

// authorize lets admins and the event leader through
func authorize(ctx context.Context, uow UnitOfWork, eventID, userID int64) error {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return engine.NewError(engine.ErrUnauthorized, "user %d does not exist", userID)
	}
	if user.IsAdmin() {
		return nil
	}

	leader, err := uow.EventRepository().IsLeader(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to check event leader: %w", err)
	}
	if !leader {
		return engine.NewError(engine.ErrUnauthorized,
			"only an admin or the leader of event %d can do this; %s is neither", eventID, user.Name)
	}
	return nil
}

// pointSchedule decodes the stored schedule. A malformed value is logged and
// the default formula is used instead.
func pointSchedule(event *models.Event, logger *log.Entry) engine.PointSchedule {
	schedule, err := engine.ParsePointSchedule(event.BordaSettings)
	if err != nil {
		logger.WithError(err).Warn("Ignoring malformed Borda point schedule")
		return engine.PointSchedule{}
	}
	return schedule
}

func winners(results []models.BordaResult) []int64 {
	var ids []int64
	for _, result := range results {
		if result.FinalRank == 1 {
			ids = append(ids, result.AlternativeID)
		}
	}
	return ids
}

// KindLabel names the error kind of err for logs and metrics
func KindLabel(err error) string {
	switch engine.KindOf(err) {
	case engine.ErrUnauthorized:
		return "unauthorized"
	case engine.ErrIncompleteData:
		return "incomplete_data"
	case engine.ErrInvalidScore:
		return "invalid_score"
	case engine.ErrEmptyConfiguration:
		return "empty_configuration"
	case engine.ErrNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveCalculation(string, string, time.Duration) {}
