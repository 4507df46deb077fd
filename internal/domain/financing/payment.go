package financing

import (
	"time"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodCheck    PaymentMethod = "CHECK"
	PaymentMethodOther    PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCard,
		PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// Payment records one payment received against a current account. It is
// created exactly once, inside the same transaction that updates the account,
// and never mutated or deleted afterwards.
type Payment struct {
	shared.BaseEntity
	OrgID                uuid.UUID       `json:"org_id"`
	AccountID            uuid.UUID       `json:"account_id"`
	AmountPaid           decimal.Decimal `json:"amount_paid"`
	PaymentDate          time.Time       `json:"payment_date"`
	PaymentMethod        PaymentMethod   `json:"payment_method"`
	TransactionReference string          `json:"transaction_reference,omitempty"`
	Notes                string          `json:"notes,omitempty"`
	IsDownPayment        bool            `json:"is_down_payment"`
}

// NewPayment creates a payment record for an account. A nil payment date
// defaults to the processing instant.
func NewPayment(orgID, accountID uuid.UUID, amount decimal.Decimal, paymentDate *time.Time, method PaymentMethod, reference, notes string, isDownPayment bool) (*Payment, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		method = PaymentMethodCash
	}

	date := time.Now()
	if paymentDate != nil {
		date = *paymentDate
	}

	return &Payment{
		BaseEntity:           shared.NewBaseEntity(),
		OrgID:                orgID,
		AccountID:            accountID,
		AmountPaid:           amount,
		PaymentDate:          date,
		PaymentMethod:        method,
		TransactionReference: reference,
		Notes:                notes,
		IsDownPayment:        isDownPayment,
	}, nil
}
