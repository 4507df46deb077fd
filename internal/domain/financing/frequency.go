package financing

import "time"

// PaymentFrequency fixes the billing period length of a current account. It
// drives both due-date arithmetic and the conversion of the annual interest
// rate to a per-period rate.
type PaymentFrequency string

const (
	FrequencyWeekly    PaymentFrequency = "WEEKLY"
	FrequencyBiweekly  PaymentFrequency = "BIWEEKLY"
	FrequencyMonthly   PaymentFrequency = "MONTHLY"
	FrequencyQuarterly PaymentFrequency = "QUARTERLY"
	FrequencyAnnually  PaymentFrequency = "ANNUALLY"
)

// IsValid checks if the frequency is a known PaymentFrequency
func (f PaymentFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyAnnually:
		return true
	}
	return false
}

// String returns the string representation of PaymentFrequency
func (f PaymentFrequency) String() string {
	return string(f)
}

// PeriodsPerYear returns how many billing periods fit in one year.
// Unrecognized frequencies fall back to monthly (12).
func (f PaymentFrequency) PeriodsPerYear() int {
	switch f {
	case FrequencyWeekly:
		return 52
	case FrequencyBiweekly:
		return 26
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyAnnually:
		return 1
	default:
		return 12
	}
}

// Advance moves t forward by the given number of billing periods.
//
// WEEKLY and BIWEEKLY add exactly 7/14 days per period. MONTHLY, QUARTERLY and
// ANNUALLY use calendar arithmetic via time.Time.AddDate, which normalizes
// overflowing month-ends forward: Jan 31 + 1 month lands on Mar 2 (leap year)
// or Mar 3, never on Feb 28/29. That rule is pinned by tests; changing it
// silently shifts every existing account schedule.
func (f PaymentFrequency) Advance(t time.Time, periods int) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*periods)
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14*periods)
	case FrequencyQuarterly:
		return t.AddDate(0, 3*periods, 0)
	case FrequencyAnnually:
		return t.AddDate(periods, 0, 0)
	default: // MONTHLY and unrecognized values
		return t.AddDate(0, periods, 0)
	}
}

// Next returns t advanced by a single billing period
func (f PaymentFrequency) Next(t time.Time) time.Time {
	return f.Advance(t, 1)
}
