package financing

import (
	"context"

	"github.com/motodms/backend/internal/domain/financing"
)

// TxRepos bundles the repositories participating in one ledger transaction.
// The accounts repository in the bundle supports FindByIDForUpdate row locking.
type TxRepos struct {
	Accounts financing.CurrentAccountRepository
	Payments financing.PaymentRepository
}

// TransactionManager runs a unit of work atomically: either both the account
// mutation and the payment record are persisted, or neither is.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// ViewInvalidator notifies cached read models (dashboards, account lists) that
// financing data for an organization changed. Invalidation is best-effort:
// failures are logged and never fail the business operation.
type ViewInvalidator interface {
	InvalidateAccountViews(ctx context.Context, orgID string)
}
