package financing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestScheduleDates_SingleInstallment(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	nextDue, end := ScheduleDates(start, 1, FrequencyMonthly)

	// a lump sum is due immediately, not one period later
	assert.Equal(t, start, nextDue)
	assert.Equal(t, start, end)
}

func TestScheduleDates_MultipleInstallments(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		installments int
		frequency    PaymentFrequency
		wantNextDue  time.Time
		wantEnd      time.Time
	}{
		{
			"weekly twelve installments",
			12, FrequencyWeekly,
			start.AddDate(0, 0, 7),
			start.AddDate(0, 0, 7*11),
		},
		{
			"monthly six installments",
			6, FrequencyMonthly,
			time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			"quarterly four installments",
			4, FrequencyQuarterly,
			time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextDue, end := ScheduleDates(start, tt.installments, tt.frequency)
			assert.Equal(t, tt.wantNextDue, nextDue)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestInstallmentFor_ZeroRate(t *testing.T) {
	principal := decimal.NewFromInt(12000)

	installment := InstallmentFor(principal, decimal.Zero, 12, FrequencyMonthly)

	assert.True(t, decimal.NewFromInt(1000).Equal(installment),
		"zero-rate installment must be an exact even split, got %s", installment)
}

func TestInstallmentFor_ZeroRateIndivisible(t *testing.T) {
	principal := decimal.NewFromInt(1000)

	installment := InstallmentFor(principal, decimal.Zero, 3, FrequencyMonthly)

	expected := principal.Div(decimal.NewFromInt(3))
	assert.True(t, expected.Equal(installment))
}

func TestInstallmentFor_AmortizingPayment(t *testing.T) {
	// 1000 over 12 monthly installments at 12%/year (1%/period) is the
	// textbook annuity example: PMT = 88.85
	principal := decimal.NewFromInt(1000)
	annualRate := decimal.NewFromFloat(0.12)

	installment := InstallmentFor(principal, annualRate, 12, FrequencyMonthly)

	assert.Equal(t, "88.85", installment.StringFixed(2))
}

func TestInstallmentFor_FrequencyChangesPerPeriodRate(t *testing.T) {
	principal := decimal.NewFromInt(5200)
	annualRate := decimal.NewFromFloat(0.26)

	weekly := InstallmentFor(principal, annualRate, 10, FrequencyWeekly)   // 0.5%/period
	monthly := InstallmentFor(principal, annualRate, 10, FrequencyMonthly) // ~2.17%/period

	assert.True(t, monthly.GreaterThan(weekly),
		"same term at a higher per-period rate must cost more per installment")
}

func TestInstallmentFor_DegenerateInputs(t *testing.T) {
	principal := decimal.NewFromInt(900)

	t.Run("zero installments", func(t *testing.T) {
		assert.True(t, InstallmentFor(principal, decimal.NewFromFloat(0.1), 0, FrequencyMonthly).IsZero())
	})

	t.Run("rate vanishing after division falls back to even split", func(t *testing.T) {
		tiny := decimal.New(1, -30) // effectively zero once divided by periods per year
		installment := InstallmentFor(principal, tiny, 3, FrequencyWeekly)
		assert.True(t, principal.Div(decimal.NewFromInt(3)).Equal(installment))
	})
}

func TestInstallmentsCover(t *testing.T) {
	financed := decimal.NewFromInt(1200)

	tests := []struct {
		name         string
		installment  decimal.Decimal
		installments int
		mismatch     bool
	}{
		{"exact plan", decimal.NewFromInt(100), 12, false},
		{"within tolerance", decimal.NewFromFloat(100.0008), 12, false},
		{"undershoots", decimal.NewFromInt(90), 12, true},
		{"overshoots", decimal.NewFromFloat(100.10), 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mismatch := InstallmentsCover(tt.installment, tt.installments, financed)
			assert.Equal(t, tt.mismatch, mismatch)
		})
	}
}
