package financing

import (
	"context"
	"errors"
	"fmt"

	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService applies payments to current accounts. Each payment runs in a
// single database transaction holding a row lock on the account, so the
// balance subtraction, the status transition, the due-date advancement and the
// payment record always land together or not at all.
type PaymentService struct {
	tx       TransactionManager
	payments financing.PaymentRepository
	views    ViewInvalidator
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(tx TransactionManager, payments financing.PaymentRepository, views ViewInvalidator, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		tx:       tx,
		payments: payments,
		views:    views,
		logger:   logger,
	}
}

// RecordPayment applies one payment atomically and returns the payment record
// with the post-payment account state.
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (*RecordPaymentResult, error) {
	if input.AccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if input.PaymentMethod != "" && !input.PaymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD",
			fmt.Sprintf("Unknown payment method %q", input.PaymentMethod))
	}

	var result *RecordPaymentResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos TxRepos) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("ACCOUNT_NOT_FOUND", "Current account not found")
			}
			return fmt.Errorf("failed to load account: %w", err)
		}
		if account == nil || account.OrgID != input.OrgID {
			return shared.NewDomainError("ACCOUNT_NOT_FOUND", "Current account not found")
		}

		if err := account.ApplyPayment(input.Amount, input.IsDownPayment); err != nil {
			return err
		}

		payment, err := financing.NewPayment(
			input.OrgID,
			account.ID,
			input.Amount,
			input.PaymentDate,
			input.PaymentMethod,
			input.TransactionReference,
			input.Notes,
			input.IsDownPayment,
		)
		if err != nil {
			return err
		}

		if err := repos.Payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}
		if err := repos.Accounts.Save(ctx, account); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}

		result = &RecordPaymentResult{Payment: payment, Account: account}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		zap.String("payment_id", result.Payment.ID.String()),
		zap.String("account_id", result.Account.ID.String()),
		zap.String("amount", result.Payment.AmountPaid.String()),
		zap.String("remaining_amount", result.Account.RemainingAmount.String()),
		zap.String("status", result.Account.Status.String()),
		zap.Bool("is_down_payment", input.IsDownPayment))

	if s.views != nil {
		s.views.InvalidateAccountViews(ctx, input.OrgID.String())
	}

	return result, nil
}

// ListPayments returns a page of payment records for one account.
func (s *PaymentService) ListPayments(ctx context.Context, orgID, accountID uuid.UUID, filter shared.Filter) (*shared.Paginated[financing.Payment], error) {
	payments, err := s.payments.FindByAccount(ctx, orgID, accountID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	total, err := s.payments.CountByAccount(ctx, orgID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count payments: %w", err)
	}
	page := shared.NewPaginated(payments, total, filter.Page, filter.PageSize)
	return &page, nil
}
