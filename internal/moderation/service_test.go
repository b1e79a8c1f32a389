package moderation

import (
	"context"
	"testing"
	"time"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCarRepository is a mock type for car.Repository
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, c *car.Car) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*car.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*car.Car), args.Error(1)
}

func (m *MockCarRepository) Update(ctx context.Context, c *car.Car) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCarRepository) Search(ctx context.Context, spec car.FilterSpec, page common.PaginationQuery) ([]car.Car, *common.Pagination, error) {
	args := m.Called(ctx, spec, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]car.Car), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockCarRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCarRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockFeedbackRepository is a mock type for moderation.Repository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListByCarID(ctx context.Context, carID uuid.UUID) ([]Feedback, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Feedback), args.Error(1)
}

// MockDealerRepository is a mock type for dealer.Repository
type MockDealerRepository struct {
	mock.Mock
}

func (m *MockDealerRepository) Create(ctx context.Context, profile *dealer.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockDealerRepository) FindByID(ctx context.Context, id uuid.UUID) (*dealer.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dealer.Profile), args.Error(1)
}

func (m *MockDealerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*dealer.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dealer.Profile), args.Error(1)
}

func (m *MockDealerRepository) Update(ctx context.Context, profile *dealer.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockDealerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotificationService is a mock type for notification.Service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Dispatch(ctx context.Context, events []notification.Event) {
	m.Called(ctx, events)
}

func (m *MockNotificationService) GetRecentForUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]notification.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Test Suite Setup
type moderationServiceTestSuite struct {
	service      Service
	mockCars     *MockCarRepository
	mockFeedback *MockFeedbackRepository
	mockDealers  *MockDealerRepository
	mockNotifier *MockNotificationService
}

func setupModerationServiceTest(t *testing.T) *moderationServiceTestSuite {
	t.Helper()
	ts := &moderationServiceTestSuite{
		mockCars:     new(MockCarRepository),
		mockFeedback: new(MockFeedbackRepository),
		mockDealers:  new(MockDealerRepository),
		mockNotifier: new(MockNotificationService),
	}
	ts.service = NewService(ts.mockCars, ts.mockFeedback, ts.mockDealers, ts.mockNotifier, zap.NewNop())
	return ts
}

func pendingCar() *car.Car {
	profile := &dealer.Profile{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		UserID:      uuid.New(),
		DisplayName: "Test Motors",
	}
	return &car.Car{
		ID:              uuid.New(),
		Make:            "Nissan",
		Model:           "Ariya",
		Year:            2023,
		Price:           45999,
		CategoryID:      uuid.New(),
		DealerProfileID: &profile.ID,
		DealerProfile:   profile,
		Status:          car.StatusPending,
		CreatedUtc:      time.Now().UTC(),
	}
}

func TestService_PendingCars_QueueIsOldestFirst(t *testing.T) {
	ts := setupModerationServiceTest(t)
	ctx := context.Background()

	var captured car.FilterSpec
	ts.mockCars.On("Search", ctx, mock.AnythingOfType("car.FilterSpec"), mock.AnythingOfType("common.PaginationQuery")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(car.FilterSpec) }).
		Return([]car.Car{}, &common.Pagination{}, nil)

	_, _, err := ts.service.PendingCars(ctx, common.PaginationQuery{Page: 1, PageSize: 20})
	require.NoError(t, err)

	require.Len(t, captured.Predicates, 2)
	assert.Equal(t, "cars.is_deleted = ?", captured.Predicates[0].Expr)
	assert.Equal(t, "cars.status = ?", captured.Predicates[1].Expr)
	assert.Equal(t, []interface{}{car.StatusPending}, captured.Predicates[1].Args)
	assert.Equal(t, []string{"cars.created_utc ASC"}, captured.Sort)
}

func TestService_GetCar_ReturnsFeedbackHistory(t *testing.T) {
	ts := setupModerationServiceTest(t)
	ctx := context.Background()
	carModel := pendingCar()
	history := []Feedback{
		{ID: uuid.New(), CarID: carModel.ID, ModeratorID: uuid.New(), Reason: "Missing photos."},
	}

	ts.mockCars.On("FindByID", ctx, carModel.ID).Return(carModel, nil)
	ts.mockFeedback.On("ListByCarID", ctx, carModel.ID).Return(history, nil)

	found, feedback, err := ts.service.GetCar(ctx, carModel.ID)
	require.NoError(t, err)
	assert.Equal(t, carModel.ID, found.ID)
	require.Len(t, feedback, 1)
	assert.Equal(t, "Missing photos.", feedback[0].Reason)
}

func TestService_Approve_ClearsSoftDeleteState(t *testing.T) {
	ts := setupModerationServiceTest(t)
	ctx := context.Background()
	moderator := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}

	carModel := pendingCar()
	deletedAt := time.Now().UTC().Add(-time.Hour)
	carModel.Status = car.StatusMarkedForDeletion
	carModel.IsDeleted = true
	carModel.DeletedUtc = &deletedAt

	ts.mockCars.On("FindByID", ctx, carModel.ID).Return(carModel, nil)
	ts.mockCars.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)

	var events []notification.Event
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event")).
		Run(func(args mock.Arguments) { events = args.Get(1).([]notification.Event) })

	_, err := ts.service.Approve(ctx, moderator, carModel.ID)
	require.NoError(t, err)

	assert.Equal(t, car.StatusApproved, carModel.Status)
	assert.False(t, carModel.IsDeleted)
	assert.Nil(t, carModel.DeletedUtc)
	assert.NotNil(t, carModel.UpdatedUtc)

	require.Len(t, events, 1)
	assert.Equal(t, carModel.DealerProfile.UserID, events[0].UserID)
	assert.Contains(t, events[0].Message, "has been approved")
}

func TestService_Approve_WorksFromAnyStatus(t *testing.T) {
	ts := setupModerationServiceTest(t)
	ctx := context.Background()
	moderator := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}

	for _, status := range []car.Status{car.StatusApproved, car.StatusRejected, car.StatusMarkedForDeletion} {
		carModel := pendingCar()
		carModel.Status = status
		ts.mockCars.On("FindByID", ctx, carModel.ID).Return(carModel, nil)
		ts.mockCars.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)
		ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event"))

		_, err := ts.service.Approve(ctx, moderator, carModel.ID)
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, car.StatusApproved, carModel.Status)
		assert.False(t, carModel.IsDeleted)
	}
}

func TestService_Reject_RecordsFeedbackAndNotifies(t *testing.T) {
	ts := setupModerationServiceTest(t)
	ctx := context.Background()
	moderator := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}
	carModel := pendingCar()
	reason := "Price does not match the market segment."

	ts.mockCars.On("FindByID", ctx, carModel.ID).Return(carModel, nil)
	ts.mockCars.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)

	var recorded *Feedback
	ts.mockFeedback.On("Create", ctx, mock.AnythingOfType("*moderation.Feedback")).
		Run(func(args mock.Arguments) { recorded = args.Get(1).(*Feedback) }).
		Return(nil)

	var events []notification.Event
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event")).
		Run(func(args mock.Arguments) { events = args.Get(1).([]notification.Event) })

	_, err := ts.service.Reject(ctx, moderator, carModel.ID, RejectRequest{Reason: reason})
	require.NoError(t, err)

	assert.Equal(t, car.StatusRejected, carModel.Status)
	require.NotNil(t, recorded)
	assert.Equal(t, carModel.ID, recorded.CarID)
	assert.Equal(t, moderator.UserID, recorded.ModeratorID)
	assert.Equal(t, reason, recorded.Reason)

	require.Len(t, events, 1)
	assert.Contains(t, events[0].Message, reason)
}

func TestService_Reject_WorksOnApprovedCar(t *testing.T) {
	ts := setupModerationServiceTest(t)
	ctx := context.Background()
	moderator := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}

	carModel := pendingCar()
	carModel.Status = car.StatusApproved
	ts.mockCars.On("FindByID", ctx, carModel.ID).Return(carModel, nil)
	ts.mockCars.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)
	ts.mockFeedback.On("Create", ctx, mock.AnythingOfType("*moderation.Feedback")).Return(nil)
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event"))

	_, err := ts.service.Reject(ctx, moderator, carModel.ID, RejectRequest{Reason: "Listing violates pricing rules."})
	require.NoError(t, err)
	assert.Equal(t, car.StatusRejected, carModel.Status)
	ts.mockFeedback.AssertNumberOfCalls(t, "Create", 1)
}
