package car_test

import (
	"context"
	"testing"

	"roadsuite_backend/internal/car"
	"roadsuite_backend/internal/category"
	"roadsuite_backend/internal/common"
	"roadsuite_backend/internal/dealer"
	"roadsuite_backend/internal/moderation"
	"roadsuite_backend/internal/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// workflowFixture layers the real services over the sqlite schema so a full
// listing lifecycle can be driven end to end.
type workflowFixture struct {
	*repoFixture
	cars       car.Service
	moderation moderation.Service
	notifier   notification.Service
}

func setupWorkflowTest(t *testing.T) *workflowFixture {
	t.Helper()
	f := setupCarRepoTest(t)

	logger := zap.NewNop()
	categoryRepo := category.NewGORMRepository(f.db)
	dealerRepo := dealer.NewGORMRepository(f.db)
	notifier := notification.NewService(notification.NewGORMRepository(f.db), logger)
	feedbackRepo := moderation.NewGORMRepository(f.db)

	return &workflowFixture{
		repoFixture: f,
		cars:        car.NewService(f.repo, categoryRepo, dealerRepo, notifier, logger),
		moderation:  moderation.NewService(f.repo, feedbackRepo, dealerRepo, notifier, logger),
		notifier:    notifier,
	}
}

func (w *workflowFixture) ownerMessages(t *testing.T) []string {
	t.Helper()
	rows, _, err := w.notifier.GetRecentForUser(context.Background(), w.dealer.UserID)
	require.NoError(t, err)
	messages := make([]string, len(rows))
	for i, row := range rows {
		messages[i] = row.Message
	}
	return messages
}

func TestListingLifecycle_SubmitApproveEditResubmit(t *testing.T) {
	w := setupWorkflowTest(t)
	ctx := context.Background()

	owner := common.Caller{UserID: w.dealer.UserID, Roles: []string{common.RoleDealer}}
	moderator := common.Caller{UserID: uuid.New(), Roles: []string{common.RoleModerator}}
	anon := common.Caller{}

	// A dealer submission starts pending and stays off the public listing.
	created, err := w.cars.Create(ctx, owner, car.CreateCarRequest{
		Make:       "Tesla",
		Model:      "Model 3",
		Year:       2024,
		Price:      42000,
		CategoryID: w.category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, car.StatusPending, created.Status)
	assert.NotContains(t, carIDs(searchAll(t, w.repoFixture, anon, car.Criteria{})), created.ID)

	// Approval publishes the car and notifies the owner.
	approved, err := w.moderation.Approve(ctx, moderator, created.ID)
	require.NoError(t, err)
	assert.Equal(t, car.StatusApproved, approved.Status)
	assert.Contains(t, carIDs(searchAll(t, w.repoFixture, anon, car.Criteria{})), created.ID)

	messages := w.ownerMessages(t)
	require.NotEmpty(t, messages)
	assert.Contains(t, messages[0], "has been approved")

	// An owner edit goes back into review and off the public listing.
	edited, err := w.cars.Update(ctx, owner, created.ID, car.UpdateCarRequest{
		ID:         created.ID,
		Make:       "Tesla",
		Model:      "Model 3",
		Year:       2024,
		Price:      39990,
		CategoryID: w.category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, car.StatusPending, edited.Status)
	assert.NotContains(t, carIDs(searchAll(t, w.repoFixture, anon, car.Criteria{})), created.ID)

	messages = w.ownerMessages(t)
	assert.Contains(t, messages[0], "awaiting approval")

	// Re-approval puts the edited listing back on the marketplace.
	_, err = w.moderation.Approve(ctx, moderator, created.ID)
	require.NoError(t, err)

	visible := searchAll(t, w.repoFixture, anon, car.Criteria{Make: "Tesla"})
	require.Len(t, visible, 1)
	assert.Equal(t, created.ID, visible[0].ID)
	assert.Equal(t, float64(39990), visible[0].Price)
}
