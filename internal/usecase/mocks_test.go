package usecase_test

import (
	"context"
	"time"

	"go-careercompass-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockStatusRepo struct {
	mock.Mock
}

func (m *MockStatusRepo) GetStatus(ctx context.Context, userID string) (*domain.UserStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserStatus), args.Error(1)
}

func (m *MockStatusRepo) SetPhase(ctx context.Context, userID string, phase domain.WorkflowPhase) error {
	return m.Called(ctx, userID, phase).Error(0)
}

func (m *MockStatusRepo) MarkPlanRequested(ctx context.Context, userID string, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

type MockAnswersRepo struct {
	mock.Mock
}

func (m *MockAnswersRepo) GetAnswers(ctx context.Context, userID string) (*domain.SubmittedAnswers, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SubmittedAnswers), args.Error(1)
}

func (m *MockAnswersRepo) HasAnswers(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnswersRepo) UpsertAnswers(ctx context.Context, answers *domain.SubmittedAnswers) error {
	return m.Called(ctx, answers).Error(0)
}

type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) GetTheme(ctx context.Context, userID string) (*domain.PlanTheme, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlanTheme), args.Error(1)
}

func (m *MockPlanRepo) HasTheme(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepo) ListTasks(ctx context.Context, userID string) ([]domain.TaskOutline, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskOutline), args.Error(1)
}

func (m *MockPlanRepo) UpdateTaskStatus(ctx context.Context, userID string, taskID int64, status domain.TaskStatus) error {
	return m.Called(ctx, userID, taskID, status).Error(0)
}

// Mock External Clients

type MockResumeStore struct {
	mock.Mock
}

func (m *MockResumeStore) StoreResume(ctx context.Context, originalName string, data []byte) (string, error) {
	args := m.Called(ctx, originalName, data)
	return args.String(0), args.Error(1)
}

type MockPlannerClient struct {
	mock.Mock
}

func (m *MockPlannerClient) RequestGeneration(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockAssistantClient struct {
	mock.Mock
}

func (m *MockAssistantClient) Reply(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}

// identityCtx builds a context carrying the authenticated user, the way the
// auth middleware does for real requests.
func identityCtx(userID string) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, userID)
}
