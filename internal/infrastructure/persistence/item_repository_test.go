package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(gormDB)

		itemID := uuid.New()
		vendorID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "name", "stock", "vendor_id",
			"buying_price", "selling_price", "original_price", "measurement_type",
			"created_at", "updated_at",
		}).AddRow(
			itemID, "Rice 5kg", 42.0, vendorID,
			300.0, 350.0, 380.0, "pcs",
			now, now,
		)

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "Rice 5kg", item.Name)
		assert.Equal(t, 42.0, item.Stock)
		require.NotNil(t, item.VendorID)
		assert.Equal(t, vendorID, *item.VendorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing item", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(gormDB)

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Nil(t, item)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_FindByIDs(t *testing.T) {
	t.Run("returns empty slice for no ids", func(t *testing.T) {
		gormDB, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(gormDB)

		items, err := repo.FindByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("skips missing ids silently", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(gormDB)

		present := uuid.New()
		missing := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "name", "stock", "vendor_id",
			"buying_price", "selling_price", "original_price", "measurement_type",
			"created_at", "updated_at",
		}).AddRow(
			present, "Sugar 1kg", 10.0, nil,
			50.0, 60.0, 0.0, "pcs",
			now, now,
		)

		mock.ExpectQuery(`SELECT \* FROM "items" WHERE id IN`).
			WithArgs(present, missing).
			WillReturnRows(rows)

		items, err := repo.FindByIDs(context.Background(), []uuid.UUID{present, missing})

		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, present, items[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormItemRepository_Delete(t *testing.T) {
	t.Run("deletes existing item", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(gormDB)

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), itemID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when nothing deleted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormItemRepository(gormDB)

		itemID := uuid.New()

		mock.ExpectExec(`DELETE FROM "items" WHERE id = \$1`).
			WithArgs(itemID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), itemID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSalesOrderRepository_FindUnpaidByCustomer(t *testing.T) {
	t.Run("selects unpaid orders oldest first", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSalesOrderRepository(gormDB)

		customerID := uuid.New()
		older := uuid.New()
		newer := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{
			"id", "customer_id", "temp_customer_name", "lines",
			"discount", "discount_type", "total", "paid", "date",
			"created_at", "updated_at",
		}).AddRow(
			older, customerID, "", []byte(`[]`),
			0.0, "amount", 50.0, 0.0, now.Add(-48*time.Hour),
			now, now,
		).AddRow(
			newer, customerID, "", []byte(`[]`),
			0.0, "amount", 30.0, 10.0, now.Add(-24*time.Hour),
			now, now,
		)

		mock.ExpectQuery(`SELECT \* FROM "sales_orders" WHERE customer_id = \$1 AND total > paid ORDER BY date asc, created_at asc`).
			WithArgs(customerID).
			WillReturnRows(rows)

		orders, err := repo.FindUnpaidByCustomer(context.Background(), customerID)

		assert.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, older, orders[0].ID)
		assert.Equal(t, 50.0, orders[0].Due())
		assert.Equal(t, 20.0, orders[1].Due())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
