// Package loans provides fixed-rate installment loan calculations and
// amortization schedule generation under optional prepayment strategies.
package loans

import (
	"math"

	"github.com/loanplanner/loan-planner/pkg/constants"
)

// PrepaymentTiming controls when an extra payment reduces the balance
// relative to the period's interest accrual and installment.
type PrepaymentTiming string

const (
	// TimingBeforeInterest deducts the extra payment before interest for the
	// period accrues; yearly prepayments land on year-start periods.
	TimingBeforeInterest PrepaymentTiming = "before-interest"

	// TimingAfterInstallment deducts the extra payment after the installment
	// is applied; yearly prepayments land on year-end periods.
	TimingAfterInstallment PrepaymentTiming = "after-installment"
)

// PrepaymentMode controls how the installment reacts to a reduced balance.
type PrepaymentMode string

const (
	// ModeShortenTenure keeps the installment fixed so prepayments shorten
	// the payoff period.
	ModeShortenTenure PrepaymentMode = "shorten-tenure"

	// ModeLowerInstallment recomputes the installment against the current
	// balance for the remaining periods so tenure stays fixed.
	ModeLowerInstallment PrepaymentMode = "lower-installment"
)

// LoanConfig describes one fixed-rate installment loan scenario. It is
// treated as immutable for the duration of a simulation run.
type LoanConfig struct {
	Principal          float64
	AnnualRatePercent  float64
	TenureYears        float64
	CustomInstallment  float64
	MonthlyExtra       float64
	LumpSumAmount      float64
	LumpSumEveryMonths int
	YearlyPrepayments  []float64
	Timing             PrepaymentTiming
	Mode               PrepaymentMode
}

// TotalPeriods returns the number of monthly periods for the standard
// (no-prepayment) schedule.
func (c LoanConfig) TotalPeriods() int {
	return int(math.Round(c.TenureYears * constants.MonthsPerYear))
}

// MonthlyRate returns the periodic interest rate as a fraction.
func (c LoanConfig) MonthlyRate() float64 {
	return c.AnnualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// CalculateInstallment computes the periodic installment for principal
// amortized over termMonths at the given nominal annual rate using the
// standard annuity formula. Zero-rate loans divide linearly.
func CalculateInstallment(principal, annualRatePercent float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRatePercent == 0 {
		return principal / float64(termMonths)
	}

	periodicRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.0+periodicRate, float64(termMonths))
	return principal * periodicRate * power / (power - 1.0)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(balance, annualRatePercent float64) float64 {
	return balance * annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}
