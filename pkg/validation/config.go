package validation

import (
	"fmt"

	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/loans"
)

// ValidateLoan checks a loan configuration for domain-valid ranges and
// returns human-readable warnings. Validation is advisory: an empty slice
// means fully valid, and a non-empty one never blocks schedule generation.
func ValidateLoan(loan loans.LoanConfig) []string {
	var warnings []string

	if loan.Principal <= 0 {
		warnings = append(warnings, fmt.Sprintf("Principal must be greater than 0, got %.2f", loan.Principal))
	}

	if loan.AnnualRatePercent < 0 {
		warnings = append(warnings, fmt.Sprintf("Interest rate must not be negative, got %.2f%%", loan.AnnualRatePercent))
	} else if loan.AnnualRatePercent > constants.MaxRealisticRatePercent {
		warnings = append(warnings, fmt.Sprintf("Interest rate of %.2f%% exceeds %.0f%% and looks unrealistic",
			loan.AnnualRatePercent, constants.MaxRealisticRatePercent))
	}

	if loan.TenureYears <= 0 || loan.TenureYears > constants.MaxTenureYears {
		warnings = append(warnings, fmt.Sprintf("Tenure must be between 0 and %.0f years (exclusive of 0), got %.1f",
			constants.MaxTenureYears, loan.TenureYears))
	}

	if loan.LumpSumAmount < 0 {
		warnings = append(warnings, fmt.Sprintf("Lump sum amount must not be negative, got %.2f", loan.LumpSumAmount))
	}
	if loan.MonthlyExtra < 0 {
		warnings = append(warnings, fmt.Sprintf("Monthly extra payment must not be negative, got %.2f", loan.MonthlyExtra))
	}
	if loan.CustomInstallment < 0 {
		warnings = append(warnings, fmt.Sprintf("Custom installment must not be negative, got %.2f", loan.CustomInstallment))
	}

	// A configured installment at or below the first period's interest-only
	// charge can never amortize principal.
	if loan.CustomInstallment > 0 && loan.Principal > 0 {
		interestOnly := loans.CalculateInterestPayment(loan.Principal, loan.AnnualRatePercent)
		if loan.CustomInstallment <= interestOnly {
			warnings = append(warnings, fmt.Sprintf(
				"Error: custom installment %.2f does not exceed the interest-only charge; it must be greater than %.2f to amortize principal",
				loan.CustomInstallment, interestOnly))
		}
	}

	return warnings
}
