package service

import (
	"context"
	"sync"
	"time"

	"groupdss/events"
	"groupdss/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByDiscordID(ctx context.Context, discordID int64) (*models.User, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) LockForCalculation(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) GetJudges(ctx context.Context, eventID int64) ([]models.Judge, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Judge), args.Error(1)
}

func (m *MockEventRepository) IsLeader(ctx context.Context, eventID, userID int64) (bool, error) {
	args := m.Called(ctx, eventID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) GetAlternatives(ctx context.Context, eventID int64) ([]models.Alternative, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alternative), args.Error(1)
}

func (m *MockEventRepository) GetCriteria(ctx context.Context, eventID int64) ([]models.Criterion, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Criterion), args.Error(1)
}

func (m *MockEventRepository) UpdateBordaSettings(ctx context.Context, eventID int64, settings []byte) error {
	args := m.Called(ctx, eventID, settings)
	return args.Error(0)
}

// MockEvaluationRepository is a mock implementation of EvaluationRepository
type MockEvaluationRepository struct {
	mock.Mock
}

func (m *MockEvaluationRepository) CountByJudge(ctx context.Context, eventID int64) (map[int64]int, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func (m *MockEvaluationRepository) GetByEvent(ctx context.Context, eventID int64) ([]models.Evaluation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Evaluation), args.Error(1)
}

func (m *MockEvaluationRepository) GetByEventAndJudge(ctx context.Context, eventID, userID int64) ([]models.Evaluation, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Evaluation), args.Error(1)
}

// MockWpResultRepository is a mock implementation of WpResultRepository
type MockWpResultRepository struct {
	mock.Mock
}

func (m *MockWpResultRepository) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWpResultRepository) CreateBatch(ctx context.Context, results []models.WpResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockWpResultRepository) GetByEvent(ctx context.Context, eventID int64) ([]models.WpResult, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WpResult), args.Error(1)
}

func (m *MockWpResultRepository) GetByEventAndJudge(ctx context.Context, eventID, userID int64) ([]models.WpResult, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WpResult), args.Error(1)
}

// MockBordaResultRepository is a mock implementation of BordaResultRepository
type MockBordaResultRepository struct {
	mock.Mock
}

func (m *MockBordaResultRepository) DeleteByEvent(ctx context.Context, eventID int64) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBordaResultRepository) CreateBatch(ctx context.Context, results []models.BordaResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockBordaResultRepository) GetByEvent(ctx context.Context, eventID int64) ([]models.BordaResult, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BordaResult), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns a copy of everything published so far
func (m *MockEventPublisher) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]events.Event, len(m.events))
	copy(out, m.events)
	return out
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	userRepo        UserRepository
	eventRepo       EventRepository
	evaluationRepo  EvaluationRepository
	wpResultRepo    WpResultRepository
	bordaResultRepo BordaResultRepository
	eventBus        EventPublisher
}

// SetRepositories wires the repositories handed out by the getters
func (m *MockUnitOfWork) SetRepositories(user UserRepository, event EventRepository, evaluation EvaluationRepository, wp WpResultRepository, borda BordaResultRepository, bus EventPublisher) {
	m.userRepo = user
	m.eventRepo = event
	m.evaluationRepo = evaluation
	m.wpResultRepo = wp
	m.bordaResultRepo = borda
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository               { return m.userRepo }
func (m *MockUnitOfWork) EventRepository() EventRepository             { return m.eventRepo }
func (m *MockUnitOfWork) EvaluationRepository() EvaluationRepository   { return m.evaluationRepo }
func (m *MockUnitOfWork) WpResultRepository() WpResultRepository       { return m.wpResultRepo }
func (m *MockUnitOfWork) BordaResultRepository() BordaResultRepository { return m.bordaResultRepo }
func (m *MockUnitOfWork) EventBus() EventPublisher                     { return m.eventBus }

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockMetricsRecorder is a mock implementation of MetricsRecorder
type MockMetricsRecorder struct {
	mock.Mock
}

func (m *MockMetricsRecorder) ObserveCalculation(outcome string, kind string, duration time.Duration) {
	m.Called(outcome, kind, duration)
}
