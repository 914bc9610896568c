package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTask(customerID string) *model.Task {
	return &model.Task{
		CustomerID:  customerID,
		Title:       "Paint fence",
		Description: "two coats",
		MinPayment:  100,
		MaxPayment:  200,
		StartDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:      constants.StatusActive,
	}
}

func TestTaskRepository_CreateAndFind(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := newTask("cust-1")
	task.Tags = []string{"outdoor"}
	require.NoError(t, repo.Create(ctx, task))
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, uint(1), task.Version)

	found, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"outdoor"}, found.Tags)
	assert.Equal(t, constants.StatusActive, found.Status)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskRepository_UpdateRequiresExpectedStatus(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	task := newTask("cust-1")
	require.NoError(t, repo.Create(ctx, task))

	task.Status = constants.StatusCancelled
	err := repo.Update(ctx, task, constants.StatusScheduled)
	assert.ErrorIs(t, err, ErrOptimisticLock)
	assert.Equal(t, uint(1), task.Version)

	require.NoError(t, repo.Update(ctx, task, constants.StatusActive))
	assert.Equal(t, uint(2), task.Version)

	found, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusCancelled, found.Status)
	assert.Equal(t, uint(2), found.Version)
}

func TestTaskRepository_List(t *testing.T) {
	repo := NewTaskRepository(setupTestDB(t))
	ctx := context.Background()

	for _, c := range []string{"cust-1", "cust-1", "cust-2"} {
		require.NoError(t, repo.Create(ctx, newTask(c)))
	}

	all, err := repo.List(ctx, model.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.List(ctx, model.TaskFilter{CustomerID: "cust-1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	page, err := repo.List(ctx, model.TaskFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page, 1)

	_, err = repo.List(ctx, model.TaskFilter{Limit: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidLimit)
}

func TestApplicationRepository_UniquePerTasker(t *testing.T) {
	repo := NewApplicationRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Application{TaskID: "task-1", TaskerID: "tasker-1", ProposedPayment: 150}))

	err := repo.Create(ctx, &model.Application{TaskID: "task-1", TaskerID: "tasker-1", ProposedPayment: 160})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateApplication)

	require.NoError(t, repo.Create(ctx, &model.Application{TaskID: "task-1", TaskerID: "tasker-2", ProposedPayment: 170}))

	apps, err := repo.ListByTask(ctx, "task-1")
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	none, err := repo.FindByTaskAndTasker(ctx, "task-1", "tasker-3")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestApplicationRepository_VersionedUpdate(t *testing.T) {
	repo := NewApplicationRepository(setupTestDB(t))
	ctx := context.Background()

	app := &model.Application{TaskID: "task-1", TaskerID: "tasker-1", ProposedPayment: 150}
	require.NoError(t, repo.Create(ctx, app))

	stale := *app
	app.Note = "fresh"
	require.NoError(t, repo.Update(ctx, app))

	stale.Note = "stale"
	assert.ErrorIs(t, repo.Update(ctx, &stale), apperrors.ErrApplicationConflict)
	assert.ErrorIs(t, repo.Delete(ctx, &stale), apperrors.ErrApplicationConflict)

	require.NoError(t, repo.Delete(ctx, app))
	_, err := repo.FindByID(ctx, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestApprovalRepository_DefaultsToPending(t *testing.T) {
	repo := NewApprovalRepository(setupTestDB(t))
	ctx := context.Background()

	approval, err := repo.GetApprovalStatus(ctx, "tasker-1")
	require.NoError(t, err)
	assert.Equal(t, constants.ApprovalPending, approval.Status)

	require.NoError(t, repo.SetApprovalStatus(ctx, &model.TaskerApproval{UserID: "tasker-1", Status: constants.ApprovalApproved}))
	require.NoError(t, repo.SetApprovalStatus(ctx, &model.TaskerApproval{UserID: "tasker-1", Status: constants.ApprovalRejected, RejectionReason: "blurry id"}))

	approval, err = repo.GetApprovalStatus(ctx, "tasker-1")
	require.NoError(t, err)
	assert.Equal(t, constants.ApprovalRejected, approval.Status)
	assert.Equal(t, "blurry id", approval.RejectionReason)
}

func TestPaymentRepository_RecordOnce(t *testing.T) {
	repo := NewPaymentRepository(setupTestDB(t))
	ctx := context.Background()

	release := &model.PaymentRelease{TaskID: "task-1", CustomerID: "c", TaskerID: "t", Amount: 10, ReleasedAt: time.Now().UTC()}
	created, err := repo.Record(ctx, release)
	require.NoError(t, err)
	assert.True(t, created)

	again := *release
	created, err = repo.Record(ctx, &again)
	require.NoError(t, err)
	assert.False(t, created)
}
