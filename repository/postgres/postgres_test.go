package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"procurement-service/domain"
	"procurement-service/domain/model"
	"procurement-service/domain/repository"
	"procurement-service/pkg/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func uintPtr(v uint) *uint {
	return &v
}

func TestTransactor_CommitsUnitOfWork(t *testing.T) {
	db, mock := newMockDB(t)
	log := logger.NoOpLogger()
	tx := NewTransactor(db, log)
	inquiries := NewInquiryRepository(db, log)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "inquiries" SET "status"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.ExecuteInTransaction(context.Background(), func(txCtx context.Context) error {
		return inquiries.UpdateStatus(txCtx, 1, model.InquiryOpen, model.InquiryResponded)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	log := logger.NoOpLogger()
	tx := NewTransactor(db, log)
	inquiries := NewInquiryRepository(db, log)
	failure := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "inquiries" SET "status"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := tx.ExecuteInTransaction(context.Background(), func(txCtx context.Context) error {
		if err := inquiries.UpdateStatus(txCtx, 1, model.InquiryOpen, model.InquiryResponded); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_NestedCallsJoinOuterTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	tx := NewTransactor(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tx.ExecuteInTransaction(context.Background(), func(outer context.Context) error {
		return tx.ExecuteInTransaction(outer, func(inner context.Context) error {
			calls++
			assert.Equal(t, outer, inner)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	ingredient := &model.Ingredient{Name: "Coffee", Brands: []string{"Nescafe"}, Unit: model.UnitLitre}
	require.NoError(t, repo.Create(context.Background(), ingredient))
	assert.Equal(t, uint(3), ingredient.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ingredients"`).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Ingredient{Name: "Coffee", Unit: model.UnitLitre})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT \* FROM "ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	ingredient, err := repo.GetByID(context.Background(), 5)
	assert.Nil(t, ingredient)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_IsReferencedByOpenInquiry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "inquiry_items" JOIN inquiries ON inquiries.id = inquiry_items.inquiry_id`).
		WithArgs(7, "open").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	referenced, err := repo.IsReferencedByOpenInquiry(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, referenced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewIngredientRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "supplier_catalog" WHERE ingredient_id = \$1`).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "ingredients"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "supplier_catalog"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 11)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_OfferedIngredientIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT "ingredient_id" FROM "supplier_catalog" WHERE supplier_id = \$1 AND ingredient_id IN \(\$2,\$3,\$4\)`).
		WithArgs(4, 1, 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"ingredient_id"}).AddRow(1).AddRow(3))

	ids, err := repo.OfferedIngredientIDs(context.Background(), 4, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_OfferedIngredientIDsEmptyInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db, logger.NoOpLogger())

	ids, err := repo.OfferedIngredientIDs(context.Background(), 4, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuoteRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "quotes"`).WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.Quote{
		InquiryID:   1,
		SupplierID:  2,
		Status:      model.QuoteQuoted,
		RespondedBy: 2,
		RespondedAt: time.Now(),
		Items:       []model.QuoteItem{{InquiryItemID: 1, BrandName: "Nescafe", IsNil: true}},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_MarkOrderPlacedRequiresQuotedStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuoteRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "quotes" SET .* WHERE .*id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.MarkOrderPlaced(context.Background(), 8, 1, time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteRepository_DeleteClearsOrderReferences(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQuoteRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "order_items" SET "quote_item_id"=\$1 WHERE quote_item_id IN \(SELECT .*id.* FROM "quote_items" WHERE quote_id = \$2\)`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE "orders" SET "quote_id"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "quote_items" WHERE quote_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "quotes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 8))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListSupplierScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders" WHERE supplier_profile_id IN \(SELECT .*id.* FROM "supplier_profiles" WHERE user_id = \$1\)`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE supplier_profile_id IN \(SELECT .*id.* FROM "supplier_profiles" WHERE user_id = \$1\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orders, total, err := repo.List(context.Background(), repository.OrderFilter{SupplierUserID: uintPtr(5)})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateRequiresCurrentStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db, logger.NoOpLogger())
	order := &model.Order{ID: 3, Status: model.OrderShipped}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET .* WHERE .*status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), order, model.OrderPlaced)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInquiryRepository_UpdateStatusRequiresCurrentStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInquiryRepository(db, logger.NoOpLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "inquiries" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), 4, model.InquiryOpen, model.InquiryResponded)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_CreateItemsSkipsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db, logger.NoOpLogger())

	require.NoError(t, repo.CreateItems(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSupplierProfileRepository_GetByUserIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSupplierProfileRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`SELECT \* FROM "supplier_profiles" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	profile, err := repo.GetByUserID(context.Background(), 3)
	assert.Nil(t, profile)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListSuppliersWithoutProfile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.NoOpLogger())

	mock.ExpectQuery(`LEFT JOIN supplier_profiles ON supplier_profiles.user_id = users.id WHERE users.role = \$1 AND supplier_profiles.id IS NULL`).
		WithArgs("supplier").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow(4, "Acme", "acme@example.com", "supplier"))

	users, err := repo.ListSuppliersWithoutProfile(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Acme", users[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslateError(t *testing.T) {
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), domain.ErrDuplicate)
	assert.ErrorIs(t, translateError(gorm.ErrForeignKeyViolated), domain.ErrReferenced)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other))
}
