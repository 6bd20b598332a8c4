// Package analytics derives comparative metrics from pairs of amortization
// schedules: interest and tenure saved, return on prepayment outlay, and
// cumulative interest curves.
package analytics

import (
	"github.com/loanplanner/loan-planner/pkg/loans"
	"github.com/loanplanner/loan-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// LoanSummary aggregates a standard schedule and its prepaid counterpart.
type LoanSummary struct {
	Installment           float64
	TotalInterestStandard float64
	TotalInterestPrepaid  float64
	InterestSaved         float64
	StandardPeriods       int
	PrepaidPeriods        int
	TenureSavedMonths     int
	TotalPaidStandard     float64
	TotalPaidPrepaid      float64
	TotalExtraOutlay      float64
}

// Analyzer computes summaries and insights for loan scenarios.
type Analyzer struct {
	generator *loans.ScheduleGenerator
	logger    *zap.Logger
}

// NewAnalyzer creates a new analyzer instance.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		generator: loans.NewScheduleGenerator(logger),
		logger:    logger,
	}
}

// Summarize runs the simulation twice, once with prepayments disabled as the
// baseline and once enabled, and reduces both schedules to totals. The
// standard schedule is always generated with prepayments off, independent of
// the scenario's prepayment settings.
func (a *Analyzer) Summarize(loan loans.LoanConfig) LoanSummary {
	standard := a.generator.GenerateSchedule(loan, false)
	prepaid := a.generator.GenerateSchedule(loan, true)
	return SummarizeSchedules(loan, standard, prepaid)
}

// SummarizeSchedules builds a LoanSummary from already-generated schedules.
func SummarizeSchedules(loan loans.LoanConfig, standard, prepaid []loans.Row) LoanSummary {
	summary := LoanSummary{
		Installment:     loans.CalculateInstallment(loan.Principal, loan.AnnualRatePercent, loan.TotalPeriods()),
		StandardPeriods: len(standard),
		PrepaidPeriods:  len(prepaid),
	}

	for _, row := range standard {
		summary.TotalInterestStandard += row.Interest
		summary.TotalPaidStandard += row.TotalPaid
	}
	for _, row := range prepaid {
		summary.TotalInterestPrepaid += row.Interest
		summary.TotalPaidPrepaid += row.TotalPaid
		summary.TotalExtraOutlay += row.ExtraPayment
	}

	summary.InterestSaved = mathutil.ClampNonNegative(summary.TotalInterestStandard - summary.TotalInterestPrepaid)
	summary.TenureSavedMonths = summary.StandardPeriods - summary.PrepaidPeriods

	return summary
}
