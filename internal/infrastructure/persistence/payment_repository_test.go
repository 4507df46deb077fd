package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func paymentRows(paymentID, orgID, accountID uuid.UUID) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "org_id", "account_id",
		"amount_paid", "payment_date", "payment_method", "transaction_reference", "notes", "is_down_payment",
	}).AddRow(
		paymentID, now, now, orgID, accountID,
		decimal.New(1000, 0), now, "CASH", "", "", false,
	)
}

func TestGormPaymentRepository_Save(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormPaymentRepository(gormDB)

	payment, err := financing.NewPayment(uuid.New(), uuid.New(), decimal.New(500, 0), nil, financing.PaymentMethodCash, "", "", false)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "payments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(context.Background(), payment)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_FindByID(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormPaymentRepository(gormDB)

	paymentID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnRows(paymentRows(paymentID, uuid.New(), uuid.New()))

		payment, err := repo.FindByID(context.Background(), paymentID)

		require.NoError(t, err)
		assert.Equal(t, paymentID, payment.ID)
		assert.True(t, decimal.New(1000, 0).Equal(payment.AmountPaid))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(paymentID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), paymentID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormPaymentRepository_FindByAccount(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormPaymentRepository(gormDB)

	orgID := uuid.New()
	accountID := uuid.New()

	// an empty OrderBy falls back to payment_date
	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE org_id = \$1 AND account_id = \$2 ORDER BY payment_date DESC LIMIT .*`).
		WithArgs(orgID, accountID, 20).
		WillReturnRows(paymentRows(uuid.New(), orgID, accountID))

	payments, err := repo.FindByAccount(context.Background(), orgID, accountID, shared.Filter{Page: 1, PageSize: 20})

	require.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, accountID, payments[0].AccountID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_CountByAccount(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	repo := NewGormPaymentRepository(gormDB)

	orgID := uuid.New()
	accountID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "payments" WHERE org_id = \$1 AND account_id = \$2`).
		WithArgs(orgID, accountID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountByAccount(context.Background(), orgID, accountID)

	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
