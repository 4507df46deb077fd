package financing

import (
	"context"
	"fmt"

	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/inventory"
	"github.com/motodms/backend/internal/domain/partner"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService originates current accounts for financed motorcycle sales.
type AccountService struct {
	accounts    financing.CurrentAccountRepository
	clients     partner.ClientRepository
	motorcycles inventory.MotorcycleRepository
	views       ViewInvalidator
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accounts financing.CurrentAccountRepository,
	clients partner.ClientRepository,
	motorcycles inventory.MotorcycleRepository,
	views ViewInvalidator,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accounts:    accounts,
		clients:     clients,
		motorcycles: motorcycles,
		views:       views,
		logger:      logger,
	}
}

// CreateAccount validates the financing terms, derives the payment schedule
// and persists the new account. Term validation runs before the existence
// checks so a rejected request reports every offending field at once.
func (s *AccountService) CreateAccount(ctx context.Context, input CreateAccountInput) (*financing.CurrentAccount, error) {
	terms := input.terms()
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	clientExists, err := s.clients.ExistsForOrg(ctx, input.OrgID, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client: %w", err)
	}
	if !clientExists {
		return nil, shared.NewDomainError("CLIENT_NOT_FOUND", "Client not found")
	}

	motorcycleExists, err := s.motorcycles.ExistsForOrg(ctx, input.OrgID, input.MotorcycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check motorcycle: %w", err)
	}
	if !motorcycleExists {
		return nil, shared.NewDomainError("MOTORCYCLE_NOT_FOUND", "Motorcycle not found")
	}

	account, err := financing.NewCurrentAccount(input.OrgID, input.ClientID, input.MotorcycleID, terms)
	if err != nil {
		return nil, err
	}

	if diff, mismatch := account.InstallmentMismatch(); mismatch {
		s.logger.Warn("Installment plan does not amortize the financed amount",
			zap.String("account_id", account.ID.String()),
			zap.String("installment_amount", account.InstallmentAmount.String()),
			zap.Int("number_of_installments", account.NumberOfInstallments),
			zap.String("difference", diff.String()))
	}

	if err := s.accounts.Save(ctx, account); err != nil {
		s.logger.Error("Failed to save current account", zap.Error(err))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.logger.Info("Current account created",
		zap.String("account_id", account.ID.String()),
		zap.String("client_id", account.ClientID.String()),
		zap.String("remaining_amount", account.RemainingAmount.String()),
		zap.String("frequency", string(account.PaymentFrequency)))

	if s.views != nil {
		s.views.InvalidateAccountViews(ctx, input.OrgID.String())
	}

	return account, nil
}

// GetAccount returns one account scoped to the organization.
func (s *AccountService) GetAccount(ctx context.Context, orgID, accountID uuid.UUID) (*financing.CurrentAccount, error) {
	account, err := s.accounts.FindByIDForOrg(ctx, orgID, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, shared.NewDomainError("ACCOUNT_NOT_FOUND", "Current account not found")
	}
	return account, nil
}

// ListAccounts returns a page of accounts for the organization.
func (s *AccountService) ListAccounts(ctx context.Context, orgID uuid.UUID, filter financing.AccountFilter) (*shared.Paginated[financing.CurrentAccount], error) {
	accounts, err := s.accounts.FindAllForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	total, err := s.accounts.CountForOrg(ctx, orgID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	page := shared.NewPaginated(accounts, total, filter.Page, filter.PageSize)
	return &page, nil
}
