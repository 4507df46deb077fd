package financing

import (
	"time"

	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountInput carries everything needed to originate a financed sale.
type CreateAccountInput struct {
	OrgID                uuid.UUID
	ClientID             uuid.UUID
	MotorcycleID         uuid.UUID
	TotalAmount          decimal.Decimal
	DownPayment          decimal.Decimal
	NumberOfInstallments int
	InstallmentAmount    decimal.Decimal // optional; computed when zero
	PaymentFrequency     financing.PaymentFrequency
	InterestRate         decimal.Decimal
	StartDate            time.Time
	Status               financing.AccountStatus // optional; defaults to ACTIVE
	Currency             valueobject.Currency
	ReminderLeadTimeDays int
	Notes                string
}

func (in CreateAccountInput) terms() financing.AccountTerms {
	return financing.AccountTerms{
		TotalAmount:          in.TotalAmount,
		DownPayment:          in.DownPayment,
		NumberOfInstallments: in.NumberOfInstallments,
		InstallmentAmount:    in.InstallmentAmount,
		PaymentFrequency:     in.PaymentFrequency,
		InterestRate:         in.InterestRate,
		StartDate:            in.StartDate,
		Status:               in.Status,
		Currency:             in.Currency,
		ReminderLeadTimeDays: in.ReminderLeadTimeDays,
		Notes:                in.Notes,
	}
}

// RecordPaymentInput carries one payment to be applied to an account.
type RecordPaymentInput struct {
	OrgID                uuid.UUID
	AccountID            uuid.UUID
	Amount               decimal.Decimal
	PaymentDate          *time.Time
	PaymentMethod        financing.PaymentMethod
	TransactionReference string
	Notes                string
	IsDownPayment        bool
}

// RecordPaymentResult returns the immutable payment record together with the
// post-payment account state, so callers see the new balance, status and due
// date without a second read.
type RecordPaymentResult struct {
	Payment *financing.Payment        `json:"payment"`
	Account *financing.CurrentAccount `json:"account"`
}
