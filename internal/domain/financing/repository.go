package financing

import (
	"context"
	"time"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountFilter represents filter options for current account queries
type AccountFilter struct {
	shared.Filter
	ClientID  *uuid.UUID
	Status    *AccountStatus
	Frequency *PaymentFrequency
	DueBefore *time.Time
}

// CurrentAccountRepository defines persistence operations for current accounts
type CurrentAccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CurrentAccount, error)
	// FindByIDForUpdate loads the account while holding a row lock so that
	// concurrent payments against the same account cannot interleave their
	// read-modify-write. Only meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*CurrentAccount, error)
	FindByIDForOrg(ctx context.Context, orgID, id uuid.UUID) (*CurrentAccount, error)
	FindAllForOrg(ctx context.Context, orgID uuid.UUID, filter AccountFilter) ([]CurrentAccount, error)
	CountForOrg(ctx context.Context, orgID uuid.UUID, filter AccountFilter) (int64, error)
	Save(ctx context.Context, account *CurrentAccount) error
}

// PaymentRepository defines persistence operations for payment records
type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByAccount(ctx context.Context, orgID, accountID uuid.UUID, filter shared.Filter) ([]Payment, error)
	CountByAccount(ctx context.Context, orgID, accountID uuid.UUID) (int64, error)
}
