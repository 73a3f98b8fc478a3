package api

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"equitybridge/server/config"
	"equitybridge/server/internal/cache"
	"equitybridge/server/internal/database"
	"equitybridge/server/internal/models"
	"equitybridge/server/internal/mortgage"
	"equitybridge/server/internal/valuation"
)

type Handler struct {
	db         *database.Database
	estimates  *database.EstimateStore
	calculator *valuation.Calculator
	benchmarks cache.BenchmarkCache
	logger     *logrus.Logger
}

func NewHandler(db *database.Database, estimates *database.EstimateStore, calculator *valuation.Calculator, benchmarks cache.BenchmarkCache, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:         db,
		estimates:  estimates,
		calculator: calculator,
		benchmarks: benchmarks,
		logger:     logger,
	}
}

// EstimateRequest is the calculation request from the funnel. The mortgage
// assumptions are optional; historical defaults apply when omitted.
type EstimateRequest struct {
	SessionID          string   `json:"session_id"`
	Region             string   `json:"region"`
	PropertyType       string   `json:"property_type"`
	PurchaseYear       int      `json:"purchase_year"`
	PurchaseMonth      int      `json:"purchase_month"`
	PurchasePrice      float64  `json:"purchase_price"`
	DownPaymentAmount  *float64 `json:"down_payment_amount"`
	DownPaymentPercent *float64 `json:"down_payment_percent"`
	InterestRate       *float64 `json:"interest_rate"`
	AmortizationYears  *int     `json:"amortization_years"`
}

// EstimateResponse merges the bridge valuation with the mortgage state and
// the combined net-equity figure.
type EstimateResponse struct {
	EstimateID string                     `json:"estimate_id"`
	Valuation  *models.AppreciationResult `json:"valuation"`
	Mortgage   models.MortgageState       `json:"mortgage"`
	NetEquity  float64                    `json:"net_equity"`
}

// RefinanceRequest models a cash-out refinance inquiry.
type RefinanceRequest struct {
	RemainingBalance     float64 `json:"remaining_balance"`
	AdditionalLoanAmount float64 `json:"additional_loan_amount"`
	InterestRate         float64 `json:"interest_rate"`
	TermYears            int     `json:"term_years"`
}

func (h *Handler) CreateEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse estimate request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	now := time.Now()
	record := models.PurchaseRecord{
		Region:           req.Region,
		PropertyCategory: config.CanonicalCategory(req.PropertyType),
		Year:             req.PurchaseYear,
		Month:            req.PurchaseMonth,
		Price:            req.PurchasePrice,
	}

	if details := validateEstimateRequest(record, &req, now); len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	result, err := h.calculator.Estimate(record)
	if err != nil {
		if err == valuation.ErrNoData {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No market data available for this selection"})
			return
		}
		h.logger.WithError(err).Error("Failed to calculate estimate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate estimate"})
		return
	}

	assumptions := mortgage.Assumptions{
		DownPaymentAmount:  req.DownPaymentAmount,
		DownPaymentPercent: req.DownPaymentPercent,
		InterestRate:       req.InterestRate,
	}
	if req.AmortizationYears != nil {
		assumptions.AmortizationYears = *req.AmortizationYears
	}
	mortgageState := mortgage.ComputeStateForPurchase(record, assumptions, now)
	netEquity := mortgage.NetEquity(float64(result.EstimatedValue), mortgageState.RemainingBalance)

	estimateID := uuid.NewString()
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	stored := &models.EstimateRecord{
		ID:                 estimateID,
		SessionID:          sessionID,
		Region:             record.Region,
		PropertyCategory:   record.PropertyCategory,
		PurchaseYear:       record.Year,
		PurchaseMonth:      record.Month,
		PurchasePrice:      record.Price,
		EstimatedValueLow:  result.Scenarios.Soft.Value,
		EstimatedValueMid:  result.EstimatedValue,
		EstimatedValueHigh: result.Scenarios.Hot.Value,
		EquityLow:          result.Scenarios.Soft.Equity,
		EquityMid:          result.EquityGained,
		EquityHigh:         result.Scenarios.Hot.Equity,
		AppreciationFactor: result.AppreciationFactor,
		DataEra:            result.DataEra,
		OriginalLoanAmount: mortgageState.OriginalLoanAmount,
		RemainingMortgage:  mortgageState.RemainingBalance,
		InterestRateUsed:   mortgageState.InterestRate,
		NetEquity:          netEquity,
		CreatedAt:          now.UTC(),
	}
	if err := h.estimates.Save(stored); err != nil {
		// The calculation stands on its own; persistence is best effort.
		h.logger.WithError(err).Error("Failed to store estimate")
	}

	c.JSON(http.StatusOK, EstimateResponse{
		EstimateID: estimateID,
		Valuation:  result,
		Mortgage:   mortgageState,
		NetEquity:  netEquity,
	})
}

func (h *Handler) GetEstimate(c *gin.Context) {
	id := c.Param("id")

	record, err := h.estimates.GetByID(id)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load estimate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load estimate"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Estimate not found"})
		return
	}

	purchase := models.PurchaseRecord{
		Region:           record.Region,
		PropertyCategory: record.PropertyCategory,
		Year:             record.PurchaseYear,
		Month:            record.PurchaseMonth,
		Price:            record.PurchasePrice,
	}

	// Benchmarks are not persisted with the estimate; refetch them so the
	// reloaded results page shows current figures.
	atPurchase, current := h.calculator.Benchmarks(purchase)

	resp := gin.H{
		"estimate_id": record.ID,
		"record":      record,
		"scenarios":   valuation.ScenariosForValue(record.EstimatedValueMid, record.PurchasePrice),
		"data_era":    valuation.EraForYear(record.PurchaseYear),
		"data_source": valuation.DataSourceLabel(record.PurchaseYear),
	}
	if atPurchase != nil {
		resp["benchmark_at_purchase"] = atPurchase.Price
		resp["benchmark_at_purchase_date"] = atPurchase.ReportMonth
	}
	if current != nil {
		resp["benchmark_current"] = current.Price
		resp["benchmark_current_date"] = current.ReportMonth
	}
	if note := valuation.BridgeNoteForYear(record.PurchaseYear); note != "" {
		resp["bridge_note"] = note
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RefinanceScenario(c *gin.Context) {
	var req RefinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Failed to parse refinance request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	details := make(map[string]string)
	if req.RemainingBalance < 0 {
		details["remaining_balance"] = "remaining balance cannot be negative"
	}
	if req.AdditionalLoanAmount < 0 {
		details["additional_loan_amount"] = "additional loan amount cannot be negative"
	}
	if req.InterestRate < 0 {
		details["interest_rate"] = "interest rate cannot be negative"
	}
	if !allowedTerm(req.TermYears) {
		details["term_years"] = fmt.Sprintf("term must be one of %v", mortgage.AllowedAmortizationYears)
	}
	if len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	scenario := mortgage.Refinance(req.RemainingBalance, req.AdditionalLoanAmount, req.InterestRate, req.TermYears)
	c.JSON(http.StatusOK, scenario)
}

// GetOptions returns the full region and property-type catalogs, not
// filtered by index coverage, so every community shows up in the funnel.
func (h *Handler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"regions":        config.Regions,
		"property_types": config.PropertyCategories,
	})
}

func (h *Handler) GetCoverage(c *gin.Context) {
	region := c.Query("region")
	category := c.Query("category")
	if region == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "region and category are required"})
		return
	}

	keys := config.LookupKeys(region)
	dateRange, err := h.db.IndexDateRange(keys, config.CanonicalCategory(category))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load index coverage")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load index coverage"})
		return
	}
	if dateRange == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No index coverage for this selection"})
		return
	}

	c.JSON(http.StatusOK, dateRange)
}

func (h *Handler) ClearCache(c *gin.Context) {
	h.benchmarks.Clear()
	c.JSON(http.StatusOK, gin.H{"status": "Benchmark cache cleared"})
}

func validateEstimateRequest(record models.PurchaseRecord, req *EstimateRequest, now time.Time) map[string]string {
	details := valuation.ValidateRecord(record, now)

	if req.DownPaymentPercent != nil && (*req.DownPaymentPercent < 0 || *req.DownPaymentPercent > 100) {
		details["down_payment_percent"] = "down payment percent must be between 0 and 100"
	}
	if req.DownPaymentAmount != nil && *req.DownPaymentAmount < 0 {
		details["down_payment_amount"] = "down payment cannot be negative"
	} else if req.DownPaymentAmount != nil && *req.DownPaymentAmount > record.Price {
		details["down_payment_amount"] = "down payment cannot exceed the purchase price"
	}
	if req.InterestRate != nil && *req.InterestRate < 0 {
		details["interest_rate"] = "interest rate cannot be negative"
	}
	if req.AmortizationYears != nil && !allowedTerm(*req.AmortizationYears) {
		details["amortization_years"] = fmt.Sprintf("amortization must be one of %v", mortgage.AllowedAmortizationYears)
	}

	return details
}

func allowedTerm(years int) bool {
	for _, allowed := range mortgage.AllowedAmortizationYears {
		if years == allowed {
			return true
		}
	}
	return false
}
