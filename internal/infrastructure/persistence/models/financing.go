package models

import (
	"time"

	"github.com/motodms/backend/internal/domain/financing"
	"github.com/motodms/backend/internal/domain/shared"
	"github.com/motodms/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrentAccountModel is the persistence model for the CurrentAccount aggregate root.
type CurrentAccountModel struct {
	OrgAggregateModel
	ClientID             uuid.UUID                  `gorm:"type:uuid;not null;index"`
	MotorcycleID         uuid.UUID                  `gorm:"type:uuid;not null;index"`
	TotalAmount          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	DownPayment          decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	RemainingAmount      decimal.Decimal            `gorm:"type:decimal(18,4);not null;index"`
	NumberOfInstallments int                        `gorm:"not null"`
	InstallmentAmount    decimal.Decimal            `gorm:"type:decimal(18,4);not null"`
	PaymentFrequency     financing.PaymentFrequency `gorm:"type:varchar(20);not null;default:'MONTHLY'"`
	InterestRate         decimal.Decimal            `gorm:"type:decimal(9,6);not null;default:0"`
	StartDate            time.Time                  `gorm:"not null"`
	NextDueDate          *time.Time                 `gorm:"index"`
	EndDate              *time.Time
	Status               financing.AccountStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Currency             valueobject.Currency    `gorm:"type:varchar(3);not null;default:'USD'"`
	ReminderLeadTimeDays int                     `gorm:"not null;default:0"`
	Notes                string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CurrentAccountModel) TableName() string {
	return "current_accounts"
}

// ToDomain converts the persistence model to a domain CurrentAccount aggregate.
func (m *CurrentAccountModel) ToDomain() *financing.CurrentAccount {
	account := &financing.CurrentAccount{
		ClientID:             m.ClientID,
		MotorcycleID:         m.MotorcycleID,
		TotalAmount:          m.TotalAmount,
		DownPayment:          m.DownPayment,
		RemainingAmount:      m.RemainingAmount,
		NumberOfInstallments: m.NumberOfInstallments,
		InstallmentAmount:    m.InstallmentAmount,
		PaymentFrequency:     m.PaymentFrequency,
		InterestRate:         m.InterestRate,
		StartDate:            m.StartDate,
		NextDueDate:          m.NextDueDate,
		EndDate:              m.EndDate,
		Status:               m.Status,
		Currency:             m.Currency,
		ReminderLeadTimeDays: m.ReminderLeadTimeDays,
		Notes:                m.Notes,
	}
	m.PopulateOrgAggregateRoot(&account.OrgAggregateRoot)
	return account
}

// CurrentAccountModelFromDomain creates a persistence model from a domain CurrentAccount.
func CurrentAccountModelFromDomain(a *financing.CurrentAccount) *CurrentAccountModel {
	m := &CurrentAccountModel{
		ClientID:             a.ClientID,
		MotorcycleID:         a.MotorcycleID,
		TotalAmount:          a.TotalAmount,
		DownPayment:          a.DownPayment,
		RemainingAmount:      a.RemainingAmount,
		NumberOfInstallments: a.NumberOfInstallments,
		InstallmentAmount:    a.InstallmentAmount,
		PaymentFrequency:     a.PaymentFrequency,
		InterestRate:         a.InterestRate,
		StartDate:            a.StartDate,
		NextDueDate:          a.NextDueDate,
		EndDate:              a.EndDate,
		Status:               a.Status,
		Currency:             a.Currency,
		ReminderLeadTimeDays: a.ReminderLeadTimeDays,
		Notes:                a.Notes,
	}
	m.FromDomainOrgAggregateRoot(a.OrgAggregateRoot)
	return m
}

// PaymentModel is the persistence model for the immutable Payment record.
type PaymentModel struct {
	BaseModel
	OrgID                uuid.UUID               `gorm:"type:uuid;not null;index"`
	AccountID            uuid.UUID               `gorm:"type:uuid;not null;index"`
	AmountPaid           decimal.Decimal         `gorm:"type:decimal(18,4);not null"`
	PaymentDate          time.Time               `gorm:"not null;index"`
	PaymentMethod        financing.PaymentMethod `gorm:"type:varchar(20);not null;default:'CASH'"`
	TransactionReference string                  `gorm:"type:varchar(100)"`
	Notes                string                  `gorm:"type:text"`
	IsDownPayment        bool                    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *financing.Payment {
	return &financing.Payment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		OrgID:                m.OrgID,
		AccountID:            m.AccountID,
		AmountPaid:           m.AmountPaid,
		PaymentDate:          m.PaymentDate,
		PaymentMethod:        m.PaymentMethod,
		TransactionReference: m.TransactionReference,
		Notes:                m.Notes,
		IsDownPayment:        m.IsDownPayment,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain Payment.
func PaymentModelFromDomain(p *financing.Payment) *PaymentModel {
	m := &PaymentModel{
		OrgID:                p.OrgID,
		AccountID:            p.AccountID,
		AmountPaid:           p.AmountPaid,
		PaymentDate:          p.PaymentDate,
		PaymentMethod:        p.PaymentMethod,
		TransactionReference: p.TransactionReference,
		Notes:                p.Notes,
		IsDownPayment:        p.IsDownPayment,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}
