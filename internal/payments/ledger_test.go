package payments

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.PaymentRelease{}))

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestLedgerReleaser_Idempotent(t *testing.T) {
	repo := repository.NewPaymentRepository(setupTestDB(t))
	releaser := NewLedgerReleaser(repo, nil)
	ctx := context.Background()

	tasker := "tasker-1"
	amount := int64(1800)
	task := &model.Task{ID: "task-1", CustomerID: "cust-1", SelectedTasker: &tasker, AgreedPayment: &amount}

	require.NoError(t, releaser.Release(ctx, task))

	other := int64(1)
	task.AgreedPayment = &other
	require.NoError(t, releaser.Release(ctx, task))

	release, err := repo.FindByTask(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1800), release.Amount)
	assert.Equal(t, "tasker-1", release.TaskerID)
}

func TestLedgerReleaser_RequiresAgreedTerms(t *testing.T) {
	releaser := NewLedgerReleaser(repository.NewPaymentRepository(setupTestDB(t)), nil)

	err := releaser.Release(context.Background(), &model.Task{ID: "task-1"})
	assert.Error(t, err)
}
