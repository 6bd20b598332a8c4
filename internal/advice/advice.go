// Package advice formats loan summary figures into a natural-language
// prompt for an external text-generation service. The service is an opaque
// collaborator: it returns a string or a fixed failure message, and its
// outcome never affects schedule or summary computation.
package advice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/loanplanner/loan-planner/internal/config"
	"github.com/loanplanner/loan-planner/pkg/analytics"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"go.uber.org/zap"
)

// FallbackMessage is returned whenever the external service is disabled or
// fails for any reason.
const FallbackMessage = "Advice is currently unavailable. Review the schedule and summary figures directly."

const (
	defaultAPIURL  = "https://api.openai.com/v1/chat/completions"
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 30 * time.Second
)

// Service calls the external advice generator.
type Service struct {
	apiKey     string
	apiURL     string
	model      string
	enabled    bool
	httpClient *http.Client
	logger     *zap.Logger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// NewService creates the advice service. It is disabled when OPENAI_API_KEY
// is unset, in which case every call returns FallbackMessage.
func NewService(logger *zap.Logger, conf config.AdviceConfig) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiURL := conf.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	model := conf.Model
	if model == "" {
		model = defaultModel
	}

	apiKey := os.Getenv("OPENAI_API_KEY")

	return &Service{
		apiKey:  apiKey,
		apiURL:  apiURL,
		model:   model,
		enabled: apiKey != "",
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: logger,
	}
}

// GenerateLoanAdvice formats the loan and summary figures into a prompt and
// returns the generated advice, or FallbackMessage on any failure.
func (s *Service) GenerateLoanAdvice(loan loans.LoanConfig, summary analytics.LoanSummary) string {
	if !s.enabled {
		return FallbackMessage
	}

	text, err := s.callGenerator(buildPrompt(loan, summary))
	if err != nil {
		s.logger.Warn("advice generation failed, using fallback",
			zap.String("op", "advice.GenerateLoanAdvice"),
			zap.Error(err),
		)
		return FallbackMessage
	}
	return text
}

func buildPrompt(loan loans.LoanConfig, summary analytics.LoanSummary) string {
	insight := analytics.ComputeInsight(summary)
	return fmt.Sprintf(`Analyze this fixed-rate loan and its prepayment plan, then give clear, practical advice.

LOAN:
- Principal: %.2f
- Annual interest rate: %.2f%%
- Tenure: %.1f years (%d monthly periods)
- Installment: %.2f

PREPAYMENT RESULTS:
- Total interest without prepayments: %.2f over %d periods
- Total interest with prepayments: %.2f over %d periods
- Interest saved: %.2f
- Tenure saved: %d months
- Extra amount contributed: %.2f
- Return on prepayment outlay: %.2f%%

Explain in 3-4 plain sentences whether this prepayment plan is worthwhile and what the borrower should watch out for. Note that the return figure is a simplified approximation, not a guaranteed yield.`,
		loan.Principal, loan.AnnualRatePercent, loan.TenureYears, loan.TotalPeriods(),
		summary.Installment,
		summary.TotalInterestStandard, summary.StandardPeriods,
		summary.TotalInterestPrepaid, summary.PrepaidPeriods,
		summary.InterestSaved, summary.TenureSavedMonths,
		summary.TotalExtraOutlay, insight.ReturnOnOutlayPercent)
}

func (s *Service) callGenerator(prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a careful financial assistant. You explain loan amortization and prepayment tradeoffs in plain language without promising outcomes.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response from generator")
	}

	return parsed.Choices[0].Message.Content, nil
}
