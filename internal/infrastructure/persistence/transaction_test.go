package persistence

import (
	"context"
	"errors"
	"testing"

	appfinancing "github.com/motodms/backend/internal/application/financing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accountIDForLockTest = uuid.New()
	orgIDForLockTest     = uuid.New()
)

func TestGormTransactionManager_Commit(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	manager := NewGormTransactionManager(gormDB)

	mock.ExpectBegin()
	mock.ExpectCommit()

	var sawRepos bool
	err := manager.WithinTransaction(context.Background(), func(ctx context.Context, repos appfinancing.TxRepos) error {
		sawRepos = repos.Accounts != nil && repos.Payments != nil
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawRepos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionManager_RollbackOnError(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	manager := NewGormTransactionManager(gormDB)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("ledger failure")
	err := manager.WithinTransaction(context.Background(), func(ctx context.Context, repos appfinancing.TxRepos) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransactionManager_RowLockInsideTransaction(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t)
	defer mockDB.Close()
	manager := NewGormTransactionManager(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "current_accounts" WHERE id = \$1 ORDER BY .* LIMIT .* FOR UPDATE`).
		WillReturnRows(accountRows(accountIDForLockTest, orgIDForLockTest))
	mock.ExpectCommit()

	err := manager.WithinTransaction(context.Background(), func(ctx context.Context, repos appfinancing.TxRepos) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, accountIDForLockTest)
		if err != nil {
			return err
		}
		assert.Equal(t, accountIDForLockTest, account.ID)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
