package financing

import (
	"fmt"
	"time"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountStatus represents the status of a current account.
//
// The financing core only ever produces the ACTIVE -> PAID_OFF transition.
// OVERDUE, DEFAULTED and CANCELLED are set by external components (collections,
// administration) and are deliberately kept as an open string type: an unknown
// status is preserved untouched, payments against it are still accepted, and
// the only status the ledger ever writes is PAID_OFF.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusPaidOff   AccountStatus = "PAID_OFF"
	AccountStatusOverdue   AccountStatus = "OVERDUE"
	AccountStatusDefaulted AccountStatus = "DEFAULTED"
	AccountStatusCancelled AccountStatus = "CANCELLED"
)

// IsValid checks if the status is one of the known AccountStatus values
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusPaidOff, AccountStatusOverdue,
		AccountStatusDefaulted, AccountStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of AccountStatus
func (s AccountStatus) String() string {
	return string(s)
}

// IsSettled returns true if the account has been fully paid off
func (s AccountStatus) IsSettled() bool {
	return s == AccountStatusPaidOff
}

// CurrentAccount is the aggregate root for a dealer-financed sale. It is
// created once by account origination and mutated only by the payment ledger
// afterwards. The stored RemainingAmount is authoritative: each payment
// subtracts from it incrementally, and the Payment log is an audit trail, not
// the source of truth for balance recomputation.
type CurrentAccount struct {
	shared.OrgAggregateRoot
	ClientID             uuid.UUID            `json:"client_id"`
	MotorcycleID         uuid.UUID            `json:"motorcycle_id"`
	TotalAmount          decimal.Decimal      `json:"total_amount"`
	DownPayment          decimal.Decimal      `json:"down_payment"`
	RemainingAmount      decimal.Decimal      `json:"remaining_amount"`
	NumberOfInstallments int                  `json:"number_of_installments"`
	InstallmentAmount    decimal.Decimal      `json:"installment_amount"`
	PaymentFrequency     PaymentFrequency     `json:"payment_frequency"`
	InterestRate         decimal.Decimal      `json:"interest_rate"` // annual rate as a fraction, 0.30 = 30%/year
	StartDate            time.Time            `json:"start_date"`
	NextDueDate          *time.Time           `json:"next_due_date,omitempty"`
	EndDate              *time.Time           `json:"end_date,omitempty"`
	Status               AccountStatus        `json:"status"`
	Currency             valueobject.Currency `json:"currency"`
	ReminderLeadTimeDays int                  `json:"reminder_lead_time_days"`
	Notes                string               `json:"notes,omitempty"`
}

// AccountTerms carries the financing terms of a new current account.
type AccountTerms struct {
	TotalAmount          decimal.Decimal
	DownPayment          decimal.Decimal
	NumberOfInstallments int
	InstallmentAmount    decimal.Decimal // optional; computed from the terms when zero
	PaymentFrequency     PaymentFrequency
	InterestRate         decimal.Decimal // annual rate as a fraction
	StartDate            time.Time
	Status               AccountStatus // optional; defaults to ACTIVE
	Currency             valueobject.Currency
	ReminderLeadTimeDays int
	Notes                string
}

// Validate checks the terms and reports every offending field at once.
func (t AccountTerms) Validate() error {
	verr := shared.NewValidationError()
	if t.TotalAmount.IsNegative() {
		verr.Add("total_amount", "must not be negative")
	}
	if t.DownPayment.IsNegative() {
		verr.Add("down_payment", "must not be negative")
	}
	if t.DownPayment.GreaterThan(t.TotalAmount) {
		verr.Add("down_payment", "must not exceed total amount")
	}
	if t.NumberOfInstallments < 1 {
		verr.Add("number_of_installments", "must be at least 1")
	}
	if t.InstallmentAmount.IsNegative() {
		verr.Add("installment_amount", "must not be negative")
	}
	if !t.PaymentFrequency.IsValid() {
		verr.Add("payment_frequency", "must be one of WEEKLY, BIWEEKLY, MONTHLY, QUARTERLY, ANNUALLY")
	}
	if t.InterestRate.IsNegative() {
		verr.Add("interest_rate", "must not be negative")
	}
	if t.StartDate.IsZero() {
		verr.Add("start_date", "is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// NewCurrentAccount creates a current account for a financed sale. The due-date
// sequence and, when no installment amount is supplied, the amortizing
// installment are derived from the terms.
func NewCurrentAccount(orgID, clientID, motorcycleID uuid.UUID, terms AccountTerms) (*CurrentAccount, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if motorcycleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_MOTORCYCLE", "Motorcycle ID cannot be empty")
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	financed := terms.TotalAmount.Sub(terms.DownPayment)

	installment := terms.InstallmentAmount
	if installment.IsZero() {
		installment = InstallmentFor(financed, terms.InterestRate, terms.NumberOfInstallments, terms.PaymentFrequency)
	}

	status := terms.Status
	if status == "" {
		status = AccountStatusActive
	}
	currency := terms.Currency
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	nextDue, end := ScheduleDates(terms.StartDate, terms.NumberOfInstallments, terms.PaymentFrequency)

	account := &CurrentAccount{
		OrgAggregateRoot:     shared.NewOrgAggregateRoot(orgID),
		ClientID:             clientID,
		MotorcycleID:         motorcycleID,
		TotalAmount:          terms.TotalAmount,
		DownPayment:          terms.DownPayment,
		RemainingAmount:      financed,
		NumberOfInstallments: terms.NumberOfInstallments,
		InstallmentAmount:    installment,
		PaymentFrequency:     terms.PaymentFrequency,
		InterestRate:         terms.InterestRate,
		StartDate:            terms.StartDate,
		NextDueDate:          &nextDue,
		EndDate:              &end,
		Status:               status,
		Currency:             currency,
		ReminderLeadTimeDays: terms.ReminderLeadTimeDays,
		Notes:                terms.Notes,
	}

	account.AddDomainEvent(NewAccountOpenedEvent(account))

	return account, nil
}

// InstallmentMismatch reports by how much the installment plan deviates from
// the financed amount. A caller-supplied installment amount is authoritative
// even when it does not perfectly amortize the principal, so a mismatch is a
// warning for the caller, never an error.
func (a *CurrentAccount) InstallmentMismatch() (decimal.Decimal, bool) {
	return InstallmentsCover(a.InstallmentAmount, a.NumberOfInstallments, a.TotalAmount.Sub(a.DownPayment))
}

// ApplyPayment applies one payment to the account balance, keeping balance,
// status and next due date mutually consistent.
//
// The new remaining balance is not floored at zero: an overpayment is recorded
// as-is. When the balance reaches zero or below the account settles (status
// PAID_OFF, next due date cleared). A down payment never advances the
// schedule. Externally-set statuses (OVERDUE, DEFAULTED, CANCELLED, or values
// this core does not know) still accept payments and are only overwritten by
// the settlement transition.
func (a *CurrentAccount) ApplyPayment(amount decimal.Decimal, isDownPayment bool) error {
	if a.Status.IsSettled() {
		return shared.NewDomainError("ACCOUNT_ALREADY_SETTLED", "Account is already settled")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf("Payment amount must be positive, got %s", amount))
	}

	a.RemainingAmount = a.RemainingAmount.Sub(amount)

	switch {
	case a.RemainingAmount.LessThanOrEqual(decimal.Zero):
		a.Status = AccountStatusPaidOff
		a.NextDueDate = nil
		a.AddDomainEvent(NewAccountSettledEvent(a))
	case isDownPayment:
		// down payments reduce the balance without consuming a schedule slot
	case a.NextDueDate != nil:
		next := a.PaymentFrequency.Next(*a.NextDueDate)
		a.NextDueDate = &next
	}

	a.AddDomainEvent(NewPaymentAppliedEvent(a, amount, isDownPayment))
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// IsActive returns true if the account is in the ACTIVE status
func (a *CurrentAccount) IsActive() bool {
	return a.Status == AccountStatusActive
}

// IsSettled returns true if the account has been paid off
func (a *CurrentAccount) IsSettled() bool {
	return a.Status.IsSettled()
}

// FinancedAmount returns the amount financed by the dealer (total minus down payment)
func (a *CurrentAccount) FinancedAmount() decimal.Decimal {
	return a.TotalAmount.Sub(a.DownPayment)
}

// RemainingMoney returns the remaining balance as Money
func (a *CurrentAccount) RemainingMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(a.RemainingAmount, a.Currency)
	return m
}
