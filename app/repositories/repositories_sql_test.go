package repositories_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
)

func mockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestDecrementStock_IsOneConditionalUpdate(t *testing.T) {
	db, mock := mockDB(t)
	repo := repositories.NewProductRepository()

	mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1.* WHERE \(id = \$3 AND stock >= \$4\)`).
		WithArgs(2, sqlmock.AnyArg(), 7, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DecrementStock(db, 7, 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStock_NoRowIsConflict(t *testing.T) {
	db, mock := mockDB(t)
	repo := repositories.NewProductRepository()

	mock.ExpectExec(`UPDATE "products" SET "stock"=stock - \$1`).
		WithArgs(5, sqlmock.AnyArg(), 7, 5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DecrementStock(db, 7, 5)
	require.ErrorIs(t, err, repositories.ErrStockConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementStock(t *testing.T) {
	db, mock := mockDB(t)
	repo := repositories.NewProductRepository()

	mock.ExpectExec(`UPDATE "products" SET "stock"=stock \+ \$1.* WHERE id = \$3`).
		WithArgs(3, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementStock(db, 7, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCancelled_ClaimsOnlyCancellableOrders(t *testing.T) {
	db, mock := mockDB(t)
	repo := repositories.NewOrderRepository()

	mock.ExpectExec(`UPDATE "orders" SET "status"=\$1.* WHERE id = \$3 AND status IN \(\$4,\$5\)`).
		WithArgs(models.StatusCancelled, sqlmock.AnyArg(), 11, models.StatusPending, models.StatusProcessing).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "orders" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.MarkCancelled(db, 11)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.MarkCancelled(db, 11)
	require.NoError(t, err)
	assert.False(t, won)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NothingToWrite(t *testing.T) {
	db, mock := mockDB(t)
	repo := repositories.NewOrderRepository()

	won, err := repo.UpdateStatus(db, 1, models.StatusPending, nil, nil)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}
