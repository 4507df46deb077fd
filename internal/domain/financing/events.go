package financing

import (
	"time"

	"github.com/motodms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountOpenedEvent is raised when a new current account is originated
type AccountOpenedEvent struct {
	shared.BaseDomainEvent
	AccountID            uuid.UUID        `json:"account_id"`
	ClientID             uuid.UUID        `json:"client_id"`
	MotorcycleID         uuid.UUID        `json:"motorcycle_id"`
	TotalAmount          decimal.Decimal  `json:"total_amount"`
	DownPayment          decimal.Decimal  `json:"down_payment"`
	NumberOfInstallments int              `json:"number_of_installments"`
	PaymentFrequency     PaymentFrequency `json:"payment_frequency"`
	StartDate            time.Time        `json:"start_date"`
}

// EventType returns the event type name
func (e *AccountOpenedEvent) EventType() string {
	return "CurrentAccountOpened"
}

// NewAccountOpenedEvent creates a new AccountOpenedEvent
func NewAccountOpenedEvent(a *CurrentAccount) *AccountOpenedEvent {
	return &AccountOpenedEvent{
		BaseDomainEvent:      shared.NewBaseDomainEvent("CurrentAccountOpened", "CurrentAccount", a.ID, a.OrgID),
		AccountID:            a.ID,
		ClientID:             a.ClientID,
		MotorcycleID:         a.MotorcycleID,
		TotalAmount:          a.TotalAmount,
		DownPayment:          a.DownPayment,
		NumberOfInstallments: a.NumberOfInstallments,
		PaymentFrequency:     a.PaymentFrequency,
		StartDate:            a.StartDate,
	}
}

// PaymentAppliedEvent is raised every time a payment mutates the account balance
type PaymentAppliedEvent struct {
	shared.BaseDomainEvent
	AccountID       uuid.UUID       `json:"account_id"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	IsDownPayment   bool            `json:"is_down_payment"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	Status          AccountStatus   `json:"status"`
	NextDueDate     *time.Time      `json:"next_due_date,omitempty"`
}

// EventType returns the event type name
func (e *PaymentAppliedEvent) EventType() string {
	return "CurrentAccountPaymentApplied"
}

// NewPaymentAppliedEvent creates a new PaymentAppliedEvent
func NewPaymentAppliedEvent(a *CurrentAccount, amount decimal.Decimal, isDownPayment bool) *PaymentAppliedEvent {
	return &PaymentAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CurrentAccountPaymentApplied", "CurrentAccount", a.ID, a.OrgID),
		AccountID:       a.ID,
		AmountPaid:      amount,
		IsDownPayment:   isDownPayment,
		RemainingAmount: a.RemainingAmount,
		Status:          a.Status,
		NextDueDate:     a.NextDueDate,
	}
}

// AccountSettledEvent is raised when the remaining balance reaches zero or below
type AccountSettledEvent struct {
	shared.BaseDomainEvent
	AccountID       uuid.UUID       `json:"account_id"`
	ClientID        uuid.UUID       `json:"client_id"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"` // negative on overpayment
}

// EventType returns the event type name
func (e *AccountSettledEvent) EventType() string {
	return "CurrentAccountSettled"
}

// NewAccountSettledEvent creates a new AccountSettledEvent
func NewAccountSettledEvent(a *CurrentAccount) *AccountSettledEvent {
	return &AccountSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CurrentAccountSettled", "CurrentAccount", a.ID, a.OrgID),
		AccountID:       a.ID,
		ClientID:        a.ClientID,
		RemainingAmount: a.RemainingAmount,
	}
}
