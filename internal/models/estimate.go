package models

import "time"

// Data eras for a purchase year. Purchases before continuous index coverage
// began are valued from the historic annual average table instead.
const (
	EraHistoric = "historic"
	EraHPI      = "hpi"
)

// PurchaseRecord describes the original purchase being valued. Immutable
// once constructed; input to both the equity bridge and the mortgage engine.
type PurchaseRecord struct {
	Region           string  `json:"region"`
	PropertyCategory string  `json:"property_category"`
	Year             int     `json:"purchase_year"`
	Month            int     `json:"purchase_month"`
	Price            float64 `json:"purchase_price"`
}

// MarketScenario is one fixed-offset perturbation of the balanced estimate.
type MarketScenario struct {
	Value             int64  `json:"value"`
	Equity            int64  `json:"equity"`
	AdjustmentPercent int    `json:"adjustment"`
	Label             string `json:"label"`
}

// Scenarios groups the three bands always produced together.
type Scenarios struct {
	Hot      MarketScenario `json:"hot"`
	Balanced MarketScenario `json:"balanced"`
	Soft     MarketScenario `json:"soft"`
}

// AppreciationResult is the full output of the equity bridge. Recomputed on
// every request; never mutated after construction.
type AppreciationResult struct {
	Input               PurchaseRecord `json:"input"`
	IndexAtPurchase     float64        `json:"hpi_at_purchase"`
	IndexAtPurchaseDate string         `json:"hpi_at_purchase_date"`
	IndexCurrent        float64        `json:"hpi_current"`
	IndexCurrentDate    string         `json:"hpi_current_date"`
	AppreciationFactor  float64        `json:"appreciation_factor"`
	EstimatedValue      int64          `json:"estimated_current_value"`
	EquityGained        int64          `json:"equity_gained"`
	ROIPercent          float64        `json:"roi_percent"`
	DataEra             string         `json:"data_era"`
	DataSource          string         `json:"data_source"`
	BridgeNote          string         `json:"bridge_note,omitempty"`
	Trend               []IndexPoint   `json:"hpi_trend"`
	Scenarios           Scenarios      `json:"scenarios"`

	// Regional benchmark prices, display only. Nil when unavailable; a
	// missing benchmark never blocks the estimate itself.
	BenchmarkAtPurchase     *float64 `json:"benchmark_at_purchase"`
	BenchmarkAtPurchaseDate *string  `json:"benchmark_at_purchase_date"`
	BenchmarkCurrent        *float64 `json:"benchmark_current"`
	BenchmarkCurrentDate    *string  `json:"benchmark_current_date"`

	CalculatedAt time.Time `json:"calculated_at"`
}

// MortgageState is the derived mortgage position at the time of calculation.
type MortgageState struct {
	PurchasePrice         float64 `json:"purchase_price"`
	DownPaymentAmount     float64 `json:"down_payment_amount"`
	DownPaymentPercent    float64 `json:"down_payment_percent"`
	OriginalLoanAmount    float64 `json:"original_loan_amount"`
	InterestRate          float64 `json:"interest_rate"`
	AmortizationYears     int     `json:"amortization_years"`
	MonthlyPayment        float64 `json:"monthly_payment"`
	TotalInterestOverLife float64 `json:"total_interest_over_life"`
	MonthsElapsed         int     `json:"months_elapsed"`
	YearsElapsed          int     `json:"years_elapsed"`
	RemainingBalance      float64 `json:"remaining_balance"`
	PrincipalPaidToDate   float64 `json:"principal_paid_to_date"`
	InterestPaidToDate    float64 `json:"interest_paid_to_date"`
	PercentPaidOff        float64 `json:"percent_paid_off"`
}

// RefinanceScenario models a cash-out refinance of the combined balance.
// The equity impact is the flat withdrawal amount; the new payment schedule
// is not discounted against it.
type RefinanceScenario struct {
	AdditionalLoanAmount float64 `json:"additional_loan_amount"`
	InterestRate         float64 `json:"interest_rate"`
	TermYears            int     `json:"term_years"`
	NewMonthlyPayment    float64 `json:"new_monthly_payment"`
	TotalNewDebt         float64 `json:"total_new_debt"`
	ImpactOnEquity       float64 `json:"impact_on_equity"`
}

// EstimateRecord is the persisted summary of a completed estimate.
type EstimateRecord struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	SessionID          string    `json:"session_id"`
	Region             string    `json:"region"`
	PropertyCategory   string    `json:"property_category"`
	PurchaseYear       int       `json:"purchase_year"`
	PurchaseMonth      int       `json:"purchase_month"`
	PurchasePrice      float64   `json:"purchase_price"`
	EstimatedValueLow  int64     `json:"estimated_value_low"`
	EstimatedValueMid  int64     `json:"estimated_value_mid"`
	EstimatedValueHigh int64     `json:"estimated_value_high"`
	EquityLow          int64     `json:"estimated_equity_low"`
	EquityMid          int64     `json:"estimated_equity_mid"`
	EquityHigh         int64     `json:"estimated_equity_high"`
	AppreciationFactor float64   `json:"appreciation_factor"`
	DataEra            string    `json:"data_era"`
	OriginalLoanAmount float64   `json:"original_loan_amount"`
	RemainingMortgage  float64   `json:"remaining_mortgage"`
	InterestRateUsed   float64   `json:"interest_rate_used"`
	NetEquity          float64   `json:"net_equity"`
	CreatedAt          time.Time `json:"created_at"`
}

// TableName maps EstimateRecord onto the estimates table.
func (EstimateRecord) TableName() string {
	return "estimates"
}
