package loans

import (
	"fmt"

	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// Row holds the full payment breakdown for one simulated period. Rows are
// produced in period order and never mutated after creation.
type Row struct {
	Period         int
	Year           int
	OpeningBalance float64
	Installment    float64
	Interest       float64
	Principal      float64
	ExtraPayment   float64
	TotalPaid      float64
	ClosingBalance float64
}

// ScheduleGenerator generates amortization schedules for loan scenarios.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance.
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule simulates the loan month by month and returns one Row per
// period. The simulation stops once the running balance drops to one cent or
// below, or after MaxSchedulePeriods regardless of configuration; a custom
// installment below the interest-only charge therefore still terminates,
// leaving a positive residual balance on the final row.
//
// The function performs no I/O and never fails; out-of-range configuration
// is the validator's concern and yields an empty or capped schedule here.
func (g *ScheduleGenerator) GenerateSchedule(loan LoanConfig, prepaymentsActive bool) []Row {
	totalPeriods := loan.TotalPeriods()
	if loan.Principal <= 0 || totalPeriods <= 0 {
		return nil
	}

	monthlyRate := loan.MonthlyRate()
	// Baseline installment from the original principal and full tenure; only
	// the lower-installment mode recomputes it against the running balance.
	baseInstallment := CalculateInstallment(loan.Principal, loan.AnnualRatePercent, totalPeriods)

	// Any timing other than before-interest behaves as after-installment.
	beforeInterest := loan.Timing == TimingBeforeInterest

	balance := loan.Principal
	rows := make([]Row, 0, totalPeriods)

	for period := 1; period <= constants.MaxSchedulePeriods; period++ {
		opening := balance

		extra := 0.0
		if prepaymentsActive {
			extra = g.extraForPeriod(loan, period)
		}

		applied := 0.0
		if beforeInterest && extra > 0 {
			applied = mathutil.Min(balance, extra)
			balance -= applied
		}

		interest := balance * monthlyRate

		installment := baseInstallment
		if prepaymentsActive && loan.Mode == ModeLowerInstallment {
			remaining := totalPeriods - period + 1
			if remaining < 1 {
				remaining = 1
			}
			installment = CalculateInstallment(balance, loan.AnnualRatePercent, remaining)
		}
		if prepaymentsActive && loan.CustomInstallment > 0 {
			installment = loan.CustomInstallment
		}
		// Final-period guard: never collect more than the payoff amount.
		if installment > balance+interest {
			installment = balance + interest
		}

		principalPortion := installment - interest

		if !beforeInterest && extra > 0 {
			applied = mathutil.Min(mathutil.ClampNonNegative(balance-principalPortion), extra)
			balance = balance - principalPortion - applied
		} else {
			balance -= principalPortion
		}
		balance = mathutil.ClampNonNegative(balance)

		rows = append(rows, Row{
			Period:         period,
			Year:           (period-1)/constants.MonthsPerYear + 1,
			OpeningBalance: opening,
			Installment:    installment,
			Interest:       interest,
			Principal:      principalPortion,
			ExtraPayment:   applied,
			TotalPaid:      installment + applied,
			ClosingBalance: balance,
		})

		if balance <= constants.CurrencyTolerance {
			break
		}
	}

	if len(rows) == constants.MaxSchedulePeriods && rows[len(rows)-1].ClosingBalance > constants.CurrencyTolerance {
		g.logger.Debug(fmt.Sprintf("schedule hit the %d-period cap with %.2f outstanding",
			constants.MaxSchedulePeriods, rows[len(rows)-1].ClosingBalance),
			zap.String("op", "loans.GenerateSchedule"),
		)
	}

	return rows
}

// extraForPeriod sums the period's extra payment from the three independent
// sources, each clamped to be non-negative before summing.
func (g *ScheduleGenerator) extraForPeriod(loan LoanConfig, period int) float64 {
	extra := mathutil.ClampNonNegative(loan.MonthlyExtra)

	// A frequency of zero disables the lump sum source entirely; it must
	// never be used as a modulus divisor.
	if loan.LumpSumEveryMonths > 0 && period%loan.LumpSumEveryMonths == 0 {
		extra += mathutil.ClampNonNegative(loan.LumpSumAmount)
	}

	// Yearly prepayments land on year-start periods for before-interest
	// timing and on year-end periods for after-installment timing.
	var yearlyDue bool
	if loan.Timing == TimingBeforeInterest {
		yearlyDue = period%constants.MonthsPerYear == 1
	} else {
		yearlyDue = period%constants.MonthsPerYear == 0
	}
	if yearlyDue {
		yearIndex := (period - 1) / constants.MonthsPerYear
		if yearIndex < len(loan.YearlyPrepayments) {
			extra += mathutil.ClampNonNegative(loan.YearlyPrepayments[yearIndex])
		}
	}

	return extra
}
