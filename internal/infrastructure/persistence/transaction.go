package persistence

import (
	"context"

	appfinancing "github.com/motodms/backend/internal/application/financing"
	"gorm.io/gorm"
)

// GormTransactionManager implements the application layer's TransactionManager
// on top of gorm transactions. Repositories handed to the unit of work are
// bound to the transaction connection, so FindByIDForUpdate row locks are held
// until commit or rollback.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside a database transaction. Any error returned
// by fn rolls the whole unit of work back.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos appfinancing.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := appfinancing.TxRepos{
			Accounts: NewGormCurrentAccountRepository(tx),
			Payments: NewGormPaymentRepository(tx),
		}
		return fn(ctx, repos)
	})
}
