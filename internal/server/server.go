// Package server exposes the schedule engine, analytics, advice, and
// scenario store over a JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/loanplanner/loan-planner/internal/advice"
	"github.com/loanplanner/loan-planner/internal/store"
	"github.com/loanplanner/loan-planner/pkg/analytics"
	"github.com/loanplanner/loan-planner/pkg/constants"
	"github.com/loanplanner/loan-planner/pkg/loans"
	"github.com/loanplanner/loan-planner/pkg/output"
	"github.com/loanplanner/loan-planner/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	generator      *loans.ScheduleGenerator
	analyzer       *analytics.Analyzer
	advisor        *advice.Service
	scenarios      store.Store
}

// NewHandler constructs the HTTP handler that serves the loan-planner API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, advisor *advice.Service, scenarios store.Store) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}
	if scenarios == nil {
		scenarios = store.NewMemoryStore()
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		generator:      loans.NewScheduleGenerator(logger),
		analyzer:       analytics.NewAnalyzer(logger),
		advisor:        advisor,
		scenarios:      scenarios,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/schedule", h.handleSchedule)
	mux.HandleFunc("/api/summary", h.handleSummary)
	mux.HandleFunc("/api/advice", h.handleAdvice)
	mux.HandleFunc("/api/scenarios/", h.handleScenarios)

	return mux
}

// loanRequest carries a loan configuration over the wire.
type loanRequest struct {
	Principal          float64   `json:"principal"`
	AnnualRatePercent  float64   `json:"annualRatePercent"`
	TenureYears        float64   `json:"tenureYears"`
	CustomInstallment  float64   `json:"customInstallment,omitempty"`
	MonthlyExtra       float64   `json:"monthlyExtra,omitempty"`
	LumpSumAmount      float64   `json:"lumpSumAmount,omitempty"`
	LumpSumEveryMonths int       `json:"lumpSumEveryMonths,omitempty"`
	YearlyPrepayments  []float64 `json:"yearlyPrepayments,omitempty"`
	PrepaymentTiming   string    `json:"prepaymentTiming,omitempty"`
	PrepaymentMode     string    `json:"prepaymentMode,omitempty"`
	PrepaymentsActive  bool      `json:"prepaymentsActive,omitempty"`
}

func (r loanRequest) loanConfig() loans.LoanConfig {
	return loans.LoanConfig{
		Principal:          r.Principal,
		AnnualRatePercent:  r.AnnualRatePercent,
		TenureYears:        r.TenureYears,
		CustomInstallment:  r.CustomInstallment,
		MonthlyExtra:       r.MonthlyExtra,
		LumpSumAmount:      r.LumpSumAmount,
		LumpSumEveryMonths: r.LumpSumEveryMonths,
		YearlyPrepayments:  r.YearlyPrepayments,
		Timing:             loans.PrepaymentTiming(r.PrepaymentTiming),
		Mode:               loans.PrepaymentMode(r.PrepaymentMode),
	}
}

type rowResponse struct {
	Period         int     `json:"period"`
	Year           int     `json:"year"`
	OpeningBalance float64 `json:"openingBalance"`
	Installment    float64 `json:"installment"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	ExtraPayment   float64 `json:"extraPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	ClosingBalance float64 `json:"closingBalance"`
}

type scheduleResponse struct {
	Rows     []rowResponse `json:"rows"`
	CSV      string        `json:"csv"`
	Warnings []string      `json:"warnings,omitempty"`
	Duration string        `json:"duration"`
}

type summaryResponse struct {
	Summary  analytics.LoanSummary               `json:"summary"`
	Insight  analytics.PrepaymentInsight         `json:"insight"`
	Points   []analytics.CumulativeInterestPoint `json:"cumulativeInterest"`
	Warnings []string                            `json:"warnings,omitempty"`
	Duration string                              `json:"duration"`
}

type adviceResponse struct {
	Advice   string `json:"advice"`
	Duration string `json:"duration"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	rows := h.generator.GenerateSchedule(req.loanConfig(), req.PrepaymentsActive)

	var csvBuf bytes.Buffer
	if err := output.WriteScheduleCSV(&csvBuf, rows); err != nil {
		h.writeError(w, http.StatusInternalServerError, "failed to export schedule")
		return
	}

	resp := scheduleResponse{
		Rows:     make([]rowResponse, 0, len(rows)),
		CSV:      csvBuf.String(),
		Warnings: validation.ValidateLoan(req.loanConfig()),
		Duration: time.Since(start).String(),
	}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, rowResponse(row))
	}

	h.writeJSON(w, resp)
}

func (h *handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	loan := req.loanConfig()
	standard := h.generator.GenerateSchedule(loan, false)
	prepaid := h.generator.GenerateSchedule(loan, true)
	summary := analytics.SummarizeSchedules(loan, standard, prepaid)

	resp := summaryResponse{
		Summary:  summary,
		Insight:  analytics.ComputeInsight(summary),
		Points:   analytics.CumulativeInterest(standard, prepaid, true),
		Warnings: validation.ValidateLoan(loan),
		Duration: time.Since(start).String(),
	}

	h.writeJSON(w, resp)
}

func (h *handler) handleAdvice(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	req, ok := h.decodeLoanRequest(w, r)
	if !ok {
		return
	}

	loan := req.loanConfig()
	text := advice.FallbackMessage
	if h.advisor != nil {
		text = h.advisor.GenerateLoanAdvice(loan, h.analyzer.Summarize(loan))
	}

	h.writeJSON(w, adviceResponse{
		Advice:   text,
		Duration: time.Since(start).String(),
	})
}

// handleScenarios saves and loads serialized scenarios by name through the
// store collaborator.
func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/scenarios/")
	if name == "" || strings.Contains(name, "/") {
		h.writeError(w, http.StatusNotFound, "scenario name required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, ok := h.scenarios.Get(name)
		if !ok {
			h.writeError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", name))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, value)
	case http.MethodPut:
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxRequestSize))
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		if !json.Valid(body) {
			h.writeError(w, http.StatusBadRequest, "scenario must be valid JSON")
			return
		}
		if err := h.scenarios.Set(name, string(body)); err != nil {
			h.logger.Error("failed to persist scenario",
				zap.String("op", "server.handleScenarios"),
				zap.String("scenario", name),
				zap.Error(err),
			)
			h.writeError(w, http.StatusInternalServerError, "failed to persist scenario")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *handler) decodeLoanRequest(w http.ResponseWriter, r *http.Request) (loanRequest, bool) {
	var req loanRequest
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return req, false
	}

	body := http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	defer func() {
		_ = r.Body.Close()
	}()

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return req, false
	}
	return req, true
}

func (h *handler) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
