package car

import (
	"context"
	"testing"
	"time"

	"roadsuite_backend/internal/category"
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

func (m *MockCarRepository) Create(ctx context.Context, car *Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Car), args.Error(1)
}

func (m *MockCarRepository) Update(ctx context.Context, car *Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) Search(ctx context.Context, spec FilterSpec, page common.PaginationQuery) ([]Car, *common.Pagination, error) {
	args := m.Called(ctx, spec, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]Car), args.Get(1).(*common.Pagination), args.Error(2)
}

func (m *MockCarRepository) DeletePermanently(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCarRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryRepository is a mock type for category.Repository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *category.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountReferencingCars(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
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
type carServiceTestSuite struct {
	service      Service
	mockRepo     *MockCarRepository
	mockCategory *MockCategoryRepository
	mockDealers  *MockDealerRepository
	mockNotifier *MockNotificationService
}

func setupCarServiceTest(t *testing.T) *carServiceTestSuite {
	t.Helper()
	ts := &carServiceTestSuite{
		mockRepo:     new(MockCarRepository),
		mockCategory: new(MockCategoryRepository),
		mockDealers:  new(MockDealerRepository),
		mockNotifier: new(MockNotificationService),
	}
	ts.service = NewService(ts.mockRepo, ts.mockCategory, ts.mockDealers, ts.mockNotifier, zap.NewNop())
	return ts
}

func testProfile(userID uuid.UUID) *dealer.Profile {
	return &dealer.Profile{
		BaseModel:   common.BaseModel{ID: uuid.New()},
		UserID:      userID,
		DisplayName: "Test Motors",
	}
}

func testCar(profile *dealer.Profile, status Status) *Car {
	return &Car{
		ID:              uuid.New(),
		Make:            "Toyota",
		Model:           "Camry",
		Year:            2022,
		Price:           28999,
		CategoryID:      uuid.New(),
		DealerProfileID: &profile.ID,
		DealerProfile:   profile,
		Status:          status,
		CreatedUtc:      time.Now().UTC(),
	}
}

func apiErrCode(t *testing.T, err error) string {
	t.Helper()
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok, "expected an API error, got: %v", err)
	return apiErr.Code
}

// --- Create ---

func TestService_Create_DealerStartsPending(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer}}
	profile := testProfile(caller.UserID)
	categoryID := uuid.New()

	ts.mockCategory.On("FindByID", ctx, categoryID).Return(&category.Category{}, nil)
	ts.mockDealers.On("FindByUserID", ctx, caller.UserID).Return(profile, nil)

	var created *Car
	ts.mockRepo.On("Create", ctx, mock.AnythingOfType("*car.Car")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*Car) }).
		Return(nil)
	ts.mockRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&Car{Status: StatusPending}, nil)

	_, err := ts.service.Create(ctx, caller, CreateCarRequest{
		Make: "Toyota", Model: "Camry", Year: 2022, Price: 28999, CategoryID: categoryID,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, &profile.ID, created.DealerProfileID)
	assert.False(t, created.CreatedUtc.IsZero())
	ts.mockRepo.AssertExpectations(t)
}

func TestService_Create_ModeratorGoesLiveImmediately(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer, common.RoleModerator}}
	categoryID := uuid.New()

	ts.mockCategory.On("FindByID", ctx, categoryID).Return(&category.Category{}, nil)
	ts.mockDealers.On("FindByUserID", ctx, caller.UserID).Return(testProfile(caller.UserID), nil)

	var created *Car
	ts.mockRepo.On("Create", ctx, mock.AnythingOfType("*car.Car")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*Car) }).
		Return(nil)
	ts.mockRepo.On("FindByID", ctx, mock.AnythingOfType("uuid.UUID")).
		Return(&Car{Status: StatusApproved}, nil)

	_, err := ts.service.Create(ctx, caller, CreateCarRequest{
		Make: "Honda", Model: "Civic", Year: 2023, Price: 24999, CategoryID: categoryID,
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, StatusApproved, created.Status)
}

func TestService_Create_UnknownCategoryIsBadRequest(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer}}
	categoryID := uuid.New()

	ts.mockCategory.On("FindByID", ctx, categoryID).Return(nil, common.ErrNotFound)

	_, err := ts.service.Create(ctx, caller, CreateCarRequest{
		Make: "Toyota", Model: "Camry", Year: 2022, CategoryID: categoryID,
	})

	assert.Equal(t, common.ErrBadRequest.Code, apiErrCode(t, err))
	ts.mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Create_WithoutDealerProfileIsValidationError(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer}}
	categoryID := uuid.New()

	ts.mockCategory.On("FindByID", ctx, categoryID).Return(&category.Category{}, nil)
	ts.mockDealers.On("FindByUserID", ctx, caller.UserID).Return(nil, common.ErrNotFound)

	_, err := ts.service.Create(ctx, caller, CreateCarRequest{
		Make: "Toyota", Model: "Camry", Year: 2022, CategoryID: categoryID,
	})

	assert.Equal(t, "VALIDATION_ERROR", apiErrCode(t, err))
	ts.mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// --- GetByID ---

func TestService_GetByID_AnonymousCannotSeePending(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	profile := testProfile(uuid.New())
	pending := testCar(profile, StatusPending)

	ts.mockRepo.On("FindByID", ctx, pending.ID).Return(pending, nil)

	_, err := ts.service.GetByID(ctx, common.Caller{}, pending.ID)
	assert.Equal(t, common.ErrForbidden.Code, apiErrCode(t, err))
}

func TestService_GetByID_SoftDeletedIsNotFoundForEveryone(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	profile := testProfile(ownerID)
	deleted := testCar(profile, StatusMarkedForDeletion)
	deleted.IsDeleted = true

	ts.mockRepo.On("FindByID", ctx, deleted.ID).Return(deleted, nil)

	callers := map[string]common.Caller{
		"anonymous": {},
		"owner":     {UserID: ownerID, Roles: []string{common.RoleDealer}},
		"moderator": {UserID: uuid.New(), Roles: []string{common.RoleModerator}},
	}
	for name, caller := range callers {
		_, err := ts.service.GetByID(ctx, caller, deleted.ID)
		assert.Equal(t, common.ErrNotFound.Code, apiErrCode(t, err), name)
	}
}

func TestService_GetByID_OwnerSeesOwnPending(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	profile := testProfile(ownerID)
	pending := testCar(profile, StatusPending)
	caller := common.Caller{UserID: ownerID, Roles: []string{common.RoleDealer}}

	ts.mockRepo.On("FindByID", ctx, pending.ID).Return(pending, nil)
	ts.mockDealers.On("FindByUserID", ctx, ownerID).Return(profile, nil)

	found, err := ts.service.GetByID(ctx, caller, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, found.ID)
}

func TestService_GetByID_ModeratorSeesNonApproved(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	profile := testProfile(uuid.New())
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}

	for _, status := range []Status{StatusPending, StatusRejected} {
		carModel := testCar(profile, status)
		ts.mockRepo.On("FindByID", ctx, carModel.ID).Return(carModel, nil)

		found, err := ts.service.GetByID(ctx, caller, carModel.ID)
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, status, found.Status)
	}
}

// --- Update ---

func TestService_Update_PathPayloadIDMismatch(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer}}

	_, err := ts.service.Update(ctx, caller, uuid.New(), UpdateCarRequest{ID: uuid.New()})

	assert.Equal(t, common.ErrBadRequest.Code, apiErrCode(t, err))
	ts.mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_Update_DealerEditForcesPending(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	ownerID := uuid.New()
	profile := testProfile(ownerID)
	approved := testCar(profile, StatusApproved)
	caller := common.Caller{UserID: ownerID, Roles: []string{common.RoleDealer}}

	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)
	ts.mockDealers.On("FindByUserID", ctx, ownerID).Return(profile, nil)
	ts.mockCategory.On("FindByID", ctx, approved.CategoryID).Return(&category.Category{}, nil)
	ts.mockRepo.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)

	var events []notification.Event
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event")).
		Run(func(args mock.Arguments) { events = args.Get(1).([]notification.Event) })

	_, err := ts.service.Update(ctx, caller, approved.ID, UpdateCarRequest{
		ID: approved.ID, Make: "Toyota", Model: "Camry", Year: 2023, Price: 27500,
		CategoryID: approved.CategoryID,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, approved.Status)
	assert.NotNil(t, approved.UpdatedUtc)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Message, "awaiting approval")
	assert.Equal(t, ownerID, events[0].UserID)
}

func TestService_Update_ModeratorEditKeepsStatus(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	profile := testProfile(uuid.New())
	approved := testCar(profile, StatusApproved)
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator, common.RoleDealer}}

	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)
	ts.mockCategory.On("FindByID", ctx, approved.CategoryID).Return(&category.Category{}, nil)
	ts.mockRepo.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)

	var events []notification.Event
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event")).
		Run(func(args mock.Arguments) { events = args.Get(1).([]notification.Event) })

	_, err := ts.service.Update(ctx, caller, approved.ID, UpdateCarRequest{
		ID: approved.ID, Make: "Toyota", Model: "Camry", Year: 2023, Price: 26000,
		CategoryID: approved.CategoryID,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	require.Len(t, events, 1)
	assert.NotContains(t, events[0].Message, "awaiting approval")
}

func TestService_Update_NonOwnerGetsNotFound(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	profile := testProfile(uuid.New())
	approved := testCar(profile, StatusApproved)

	intruder := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer}}
	intruderProfile := testProfile(intruder.UserID)

	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)
	ts.mockDealers.On("FindByUserID", ctx, intruder.UserID).Return(intruderProfile, nil)

	_, err := ts.service.Update(ctx, intruder, approved.ID, UpdateCarRequest{
		ID: approved.ID, Make: "Toyota", Model: "Camry", Year: 2023,
		CategoryID: approved.CategoryID,
	})

	assert.Equal(t, common.ErrNotFound.Code, apiErrCode(t, err),
		"ownership failures must not reveal that the car exists")
	ts.mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// --- Delete ---

func TestService_Delete_UnknownActionIsValidationError(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleAdmin}}

	err := ts.service.Delete(ctx, caller, uuid.New(), "destroy", true)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	ts.mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestService_Delete_MarkSoftDeletes(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleAdmin}}
	profile := testProfile(uuid.New())
	approved := testCar(profile, StatusApproved)

	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)
	ts.mockRepo.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)

	var events []notification.Event
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event")).
		Run(func(args mock.Arguments) { events = args.Get(1).([]notification.Event) })

	require.NoError(t, ts.service.Delete(ctx, caller, approved.ID, DeleteActionMark, false))

	assert.True(t, approved.IsDeleted)
	assert.Equal(t, StatusMarkedForDeletion, approved.Status)
	assert.NotNil(t, approved.DeletedUtc)
	require.Len(t, events, 1)
	require.NotNil(t, events[0].CarID, "soft delete keeps the car reference on the notification")
	assert.Equal(t, approved.ID, *events[0].CarID)
}

func TestService_Delete_PermanentDropsCarReference(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleAdmin}}
	profile := testProfile(uuid.New())
	approved := testCar(profile, StatusApproved)

	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)
	ts.mockRepo.On("DeletePermanently", ctx, approved.ID).Return(nil)

	var events []notification.Event
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event")).
		Run(func(args mock.Arguments) { events = args.Get(1).([]notification.Event) })

	require.NoError(t, ts.service.Delete(ctx, caller, approved.ID, DeleteActionPermanent, false))

	ts.mockRepo.AssertCalled(t, "DeletePermanently", ctx, approved.ID)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].CarID, "the purged car must not be referenced by the notification")
}

func TestService_Delete_ModeratorRequiresGrant(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}
	profile := testProfile(uuid.New())
	approved := testCar(profile, StatusApproved)

	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)

	err := ts.service.Delete(ctx, caller, approved.ID, DeleteActionMark, false)
	assert.Equal(t, common.ErrForbidden.Code, apiErrCode(t, err))

	ts.mockRepo.On("Update", ctx, mock.AnythingOfType("*car.Car")).Return(nil)
	ts.mockNotifier.On("Dispatch", ctx, mock.AnythingOfType("[]notification.Event"))

	require.NoError(t, ts.service.Delete(ctx, caller, approved.ID, DeleteActionMark, true))
	assert.True(t, approved.IsDeleted)
}

func TestService_Delete_NonOwnerGetsNotFound(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	profile := testProfile(uuid.New())
	approved := testCar(profile, StatusApproved)

	intruder := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleDealer}}
	ts.mockRepo.On("FindByID", ctx, approved.ID).Return(approved, nil)
	ts.mockDealers.On("FindByUserID", ctx, intruder.UserID).Return(testProfile(intruder.UserID), nil)

	err := ts.service.Delete(ctx, intruder, approved.ID, DeleteActionMark, false)
	assert.Equal(t, common.ErrNotFound.Code, apiErrCode(t, err))
}

// --- Search plumbing ---

func TestService_Search_IgnoresInvalidStatusToken(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()
	caller := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}

	var captured FilterSpec
	ts.mockRepo.On("Search", ctx, mock.AnythingOfType("car.FilterSpec"), mock.AnythingOfType("common.PaginationQuery")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(FilterSpec) }).
		Return([]Car{}, &common.Pagination{}, nil)

	_, _, err := ts.service.Search(ctx, caller, SearchQuery{Status: "bogus"})
	require.NoError(t, err)

	for _, p := range captured.Predicates {
		assert.NotEqual(t, "cars.status = ?", p.Expr, "an unparseable status must not filter")
	}
}

func TestService_Search_SanitizesPagination(t *testing.T) {
	ts := setupCarServiceTest(t)
	ctx := context.Background()

	var page common.PaginationQuery
	ts.mockRepo.On("Search", ctx, mock.AnythingOfType("car.FilterSpec"), mock.AnythingOfType("common.PaginationQuery")).
		Run(func(args mock.Arguments) { page = args.Get(2).(common.PaginationQuery) }).
		Return([]Car{}, &common.Pagination{}, nil)

	query := SearchQuery{}
	query.Page = -3
	query.PageSize = 5000

	_, _, err := ts.service.Search(ctx, common.Caller{}, query)
	require.NoError(t, err)
	assert.Equal(t, common.DefaultPage, page.Page)
	assert.Equal(t, common.MaxPageSize, page.PageSize)
}
