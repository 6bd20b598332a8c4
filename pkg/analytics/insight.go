package analytics

import (
	"math"

	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/mathutil"
)

// PrepaymentInsight expresses what a prepayment strategy earned relative to
// the extra cash it consumed. AnnualizedReturnPercent spreads the saving
// over the years of tenure saved with simple compounding; it is an
// approximation, not a true internal rate of return.
type PrepaymentInsight struct {
	ReturnOnOutlayPercent   float64
	AnnualizedReturnPercent float64
}

// ComputeInsight derives a PrepaymentInsight from a LoanSummary. Both
// figures are zero when no extra outlay was contributed, and the annualized
// figure is also zero when no tenure was saved.
func ComputeInsight(summary LoanSummary) PrepaymentInsight {
	var insight PrepaymentInsight
	if summary.TotalExtraOutlay <= 0 {
		return insight
	}

	insight.ReturnOnOutlayPercent = mathutil.CalculatePercentage(summary.InterestSaved, summary.TotalExtraOutlay)

	yearsSaved := float64(summary.TenureSavedMonths) / constants.MonthsPerYear
	if yearsSaved <= 0 {
		return insight
	}

	growth := 1.0 + summary.InterestSaved/summary.TotalExtraOutlay
	horizon := mathutil.Max(1.0, yearsSaved)
	insight.AnnualizedReturnPercent = (math.Pow(growth, 1.0/horizon) - 1.0) * constants.PercentageMultiplier

	return insight
}
