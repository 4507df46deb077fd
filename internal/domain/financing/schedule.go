package financing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentTolerance is the rounding slack allowed between
// numberOfInstallments * installmentAmount and the financed amount before the
// mismatch is reported as a warning.
var InstallmentTolerance = decimal.NewFromFloat(0.01)

// ScheduleDates computes the first and last due date of an installment plan.
//
// The start date is period zero. A single-installment plan is a lump sum due
// immediately: both dates equal the start date. Otherwise the first installment
// is due one period after the start and the last after n-1 periods, using the
// same advancement rule the ledger applies on every payment.
func ScheduleDates(start time.Time, installments int, freq PaymentFrequency) (nextDue, end time.Time) {
	if installments <= 1 {
		return start, start
	}
	return freq.Next(start), freq.Advance(start, installments-1)
}

// InstallmentFor derives the fixed periodic payment that retires the financed
// amount plus interest over n periods (the standard amortizing-payment
// formula):
//
//	r = annualRate / periodsPerYear
//	installment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero annual rate, a per-period rate that vanishes after division, or a
// degenerate denominator all fall back to an even split P/n. The power term is
// computed in float64 and converted back to decimal for the monetary result.
func InstallmentFor(principal decimal.Decimal, annualRate decimal.Decimal, installments int, freq PaymentFrequency) decimal.Decimal {
	n := decimal.NewFromInt(int64(installments))
	if installments <= 0 {
		return decimal.Zero
	}

	ratePerPeriod := annualRate.InexactFloat64() / float64(freq.PeriodsPerYear())
	if ratePerPeriod == 0 {
		return principal.Div(n)
	}

	factor := math.Pow(1+ratePerPeriod, float64(installments))
	denominator := factor - 1
	if denominator == 0 {
		return principal.Div(n)
	}

	payment := principal.InexactFloat64() * ratePerPeriod * factor / denominator
	return decimal.NewFromFloat(payment).Round(2)
}

// InstallmentsCover reports the difference between the plan total
// (installments * installmentAmount) and the financed amount, and whether
// that difference exceeds InstallmentTolerance.
func InstallmentsCover(installmentAmount decimal.Decimal, installments int, financed decimal.Decimal) (diff decimal.Decimal, mismatch bool) {
	planTotal := installmentAmount.Mul(decimal.NewFromInt(int64(installments)))
	diff = planTotal.Sub(financed)
	return diff, diff.Abs().GreaterThan(InstallmentTolerance)
}
