package advice

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/loanplanner/loan-planner/internal/config"
	"github.com/loanplanner/loan-planner/pkg/analytics"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"go.uber.org/zap"
)

func testSummary() analytics.LoanSummary {
	return analytics.LoanSummary{
		Installment:           23175.31,
		TotalInterestStandard: 1671555.62,
		TotalInterestPrepaid:  307484.03,
		InterestSaved:         1364071.59,
		StandardPeriods:       180,
		PrepaidPeriods:        39,
		TenureSavedMonths:     141,
		TotalExtraOutlay:      1926822.29,
	}
}

func testAdviceLoan() loans.LoanConfig {
	return loans.LoanConfig{
		Principal:         2500000,
		AnnualRatePercent: 7.5,
		TenureYears:       15,
		MonthlyExtra:      50000,
	}
}

func TestGenerateLoanAdviceDisabledWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	service := NewService(zap.NewNop(), config.AdviceConfig{})

	if got := service.GenerateLoanAdvice(testAdviceLoan(), testSummary()); got != FallbackMessage {
		t.Errorf("GenerateLoanAdvice() = %q, expected fallback when no API key is set", got)
	}
}

func TestGenerateLoanAdviceSuccess(t *testing.T) {
	generated := "Prepaying aggressively here saves most of the interest."
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + generated + `"}}]}`))
	}))
	defer upstream.Close()

	t.Setenv("OPENAI_API_KEY", "test-key")
	service := NewService(zap.NewNop(), config.AdviceConfig{APIURL: upstream.URL})

	if got := service.GenerateLoanAdvice(testAdviceLoan(), testSummary()); got != generated {
		t.Errorf("GenerateLoanAdvice() = %q, expected generated text", got)
	}
}

func TestGenerateLoanAdviceFallbackOnError(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Upstream error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "rate limited", http.StatusTooManyRequests)
			},
		},
		{
			name: "Empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices":[]}`))
			},
		},
		{
			name: "Malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(tt.handler)
			defer upstream.Close()

			t.Setenv("OPENAI_API_KEY", "test-key")
			service := NewService(zap.NewNop(), config.AdviceConfig{APIURL: upstream.URL})

			if got := service.GenerateLoanAdvice(testAdviceLoan(), testSummary()); got != FallbackMessage {
				t.Errorf("GenerateLoanAdvice() = %q, expected fallback", got)
			}
		})
	}
}

func TestBuildPromptIncludesFigures(t *testing.T) {
	prompt := buildPrompt(testAdviceLoan(), testSummary())

	for _, want := range []string{
		"2500000.00",
		"7.50%",
		"1671555.62",
		"1364071.59",
		"141 months",
		"1926822.29",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
