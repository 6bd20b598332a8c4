// Package output provides utilities for formatting and exporting schedules
// and summaries.
package output

import (
	"fmt"
	"io"

	"github.com/loanplanner/loan-planner/pkg/analytics"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ScheduleCSVHeader is the header line of the delimited schedule export.
const ScheduleCSVHeader = "period,year,opening balance,installment,interest,principal,extra payment,total paid,closing balance"

// WriteScheduleCSV exports a schedule verbatim as delimited text: one header
// line and one line per row, every numeric field fixed to two decimals.
func WriteScheduleCSV(w io.Writer, rows []loans.Row) error {
	if _, err := fmt.Fprintln(w, ScheduleCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%d,%d,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			row.Period, row.Year, row.OpeningBalance, row.Installment, row.Interest,
			row.Principal, row.ExtraPayment, row.TotalPaid, row.ClosingBalance)
		if err != nil {
			return err
		}
	}
	return nil
}

// PrettySchedule outputs a human-readable rather than machine-readable table.
func PrettySchedule(w io.Writer, name string, rows []loans.Row) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- Schedule for scenario %s ---\n", name)
	fmt.Fprintf(w, "Period | Year | Opening       | Installment | Interest    | Principal   | Extra       | Closing\n")
	fmt.Fprintf(w, "______ | ____ | _____________ | ___________ | ___________ | ___________ | ___________ | _____________\n")
	for _, row := range rows {
		_, _ = p.Fprintf(w, "%6d | %4d | %13.2f | %11.2f | %11.2f | %11.2f | %11.2f | %13.2f\n",
			row.Period, row.Year, row.OpeningBalance, row.Installment, row.Interest,
			row.Principal, row.ExtraPayment, row.ClosingBalance)
	}
}

// PrettySummary outputs the comparison figures for one scenario.
func PrettySummary(w io.Writer, name string, summary analytics.LoanSummary, insight analytics.PrepaymentInsight) {
	p := message.NewPrinter(language.English)
	fmt.Fprintf(w, "--- Summary for scenario %s ---\n", name)
	_, _ = p.Fprintf(w, "Installment:              %.2f\n", summary.Installment)
	_, _ = p.Fprintf(w, "Interest (standard):      %.2f over %d periods\n", summary.TotalInterestStandard, summary.StandardPeriods)
	_, _ = p.Fprintf(w, "Interest (with prepay):   %.2f over %d periods\n", summary.TotalInterestPrepaid, summary.PrepaidPeriods)
	_, _ = p.Fprintf(w, "Interest saved:           %.2f\n", summary.InterestSaved)
	_, _ = p.Fprintf(w, "Tenure saved:             %d months\n", summary.TenureSavedMonths)
	_, _ = p.Fprintf(w, "Total paid (standard):    %.2f\n", summary.TotalPaidStandard)
	_, _ = p.Fprintf(w, "Total paid (with prepay): %.2f\n", summary.TotalPaidPrepaid)
	_, _ = p.Fprintf(w, "Extra outlay:             %.2f\n", summary.TotalExtraOutlay)
	if summary.TotalExtraOutlay > 0 {
		_, _ = p.Fprintf(w, "Return on outlay:         %.2f%%\n", insight.ReturnOnOutlayPercent)
		_, _ = p.Fprintf(w, "Annualized equivalent:    %.2f%% (approximation, not an IRR)\n", insight.AnnualizedReturnPercent)
	}
}
