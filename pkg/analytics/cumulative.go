package analytics

import (
	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"github.com/loanplanner/loan-planner/pkg/mathutil"
)

// CumulativeInterestPoint carries the running interest totals of two
// schedules at one period.
type CumulativeInterestPoint struct {
	Period           int
	Year             int
	StandardInterest float64
	PrepaidInterest  float64
}

// CumulativeInterest walks both schedules in lockstep up to the longer
// length, accumulating running interest sums; periods past the end of the
// shorter schedule contribute zero. With yearly granularity one point is
// emitted every twelfth period plus a final point for the last period;
// otherwise one point per period. Totals are rounded to currency precision.
func CumulativeInterest(standard, prepaid []loans.Row, yearly bool) []CumulativeInterestPoint {
	length := len(standard)
	if len(prepaid) > length {
		length = len(prepaid)
	}
	if length == 0 {
		return nil
	}

	points := make([]CumulativeInterestPoint, 0, length)
	standardSum := 0.0
	prepaidSum := 0.0

	for period := 1; period <= length; period++ {
		if period <= len(standard) {
			standardSum += standard[period-1].Interest
		}
		if period <= len(prepaid) {
			prepaidSum += prepaid[period-1].Interest
		}

		if yearly && period%constants.MonthsPerYear != 0 && period != length {
			continue
		}

		points = append(points, CumulativeInterestPoint{
			Period:           period,
			Year:             (period-1)/constants.MonthsPerYear + 1,
			StandardInterest: mathutil.Round(standardSum),
			PrepaidInterest:  mathutil.Round(prepaidSum),
		})
	}

	return points
}
