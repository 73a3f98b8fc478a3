package mortgage

import (
	"math"
	"time"

	"equitybridge/server/config"
	"equitybridge/server/internal/models"
)

// DefaultAmortizationYears is assumed when the caller gives no term.
const DefaultAmortizationYears = 25

// AllowedAmortizationYears are the terms the funnel accepts.
var AllowedAmortizationYears = []int{15, 20, 25, 30}

// Assumptions are the optional overrides accepted alongside a purchase.
// When a field is nil the historical default applies: down payment by price
// bracket, interest rate from the rate table for the purchase year.
type Assumptions struct {
	DownPaymentAmount  *float64
	DownPaymentPercent *float64
	InterestRate       *float64
	AmortizationYears  int
}

// DefaultDownPayment returns the assumed down payment for a purchase price.
// Purchases at or above $1M require 20% down under Canadian rules; below
// that 10% is used as a reasonable default.
func DefaultDownPayment(purchasePrice float64) (amount, percent float64) {
	if purchasePrice >= 1000000 {
		return purchasePrice * 0.20, 20
	}
	return purchasePrice * 0.10, 10
}

// MonthlyPayment computes the standard annuity payment
// M = P * r(1+r)^n / ((1+r)^n - 1). A zero rate degrades to straight-line
// principal to avoid the division by zero in the closed form.
func MonthlyPayment(principal, annualRate float64, amortizationYears int) float64 {
	if principal <= 0 {
		return 0
	}
	totalMonths := float64(amortizationYears * 12)
	if annualRate <= 0 {
		return principal / totalMonths
	}

	monthlyRate := annualRate / 100 / 12
	compound := math.Pow(1+monthlyRate, totalMonths)
	return principal * (monthlyRate * compound) / (compound - 1)
}

// RemainingBalance computes the balance after monthsPaid payments using
// B = P * ((1+r)^n - (1+r)^p) / ((1+r)^n - 1), clamped to [0, P].
func RemainingBalance(principal, annualRate float64, amortizationYears, monthsPaid int) float64 {
	if principal <= 0 {
		return 0
	}

	totalMonths := amortizationYears * 12
	if monthsPaid >= totalMonths {
		return 0
	}
	if monthsPaid <= 0 {
		return principal
	}

	if annualRate <= 0 {
		monthlyPrincipal := principal / float64(totalMonths)
		return math.Max(0, principal-monthlyPrincipal*float64(monthsPaid))
	}

	monthlyRate := annualRate / 100 / 12
	compoundTotal := math.Pow(1+monthlyRate, float64(totalMonths))
	compoundPaid := math.Pow(1+monthlyRate, float64(monthsPaid))

	balance := principal * (compoundTotal - compoundPaid) / (compoundTotal - 1)
	return math.Max(0, balance)
}

// MonthsElapsed counts whole calendar months between the purchase and now.
// Never negative; a future-dated purchase counts as zero months.
func MonthsElapsed(purchaseYear, purchaseMonth int, now time.Time) int {
	elapsed := (now.Year()-purchaseYear)*12 + (int(now.Month()) - purchaseMonth)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// ComputeState derives the mortgage position after monthsElapsed payments
// on the given loan terms. Pure; the caller supplies elapsed time.
func ComputeState(purchasePrice, downPayment, annualRate float64, amortizationYears, monthsElapsed int) models.MortgageState {
	principal := purchasePrice - downPayment

	monthlyPayment := MonthlyPayment(principal, annualRate, amortizationYears)
	remaining := RemainingBalance(principal, annualRate, amortizationYears, monthsElapsed)

	principalPaid := principal - remaining
	// Floor at zero: with no payments made the subtraction can underflow.
	interestPaid := math.Max(0, monthlyPayment*float64(monthsElapsed)-principalPaid)

	// A fully-cash purchase has nothing left to pay off.
	percentPaidOff := 100.0
	if principal > 0 {
		percentPaidOff = principalPaid / principal * 100
	}

	downPaymentPercent := 0.0
	if purchasePrice > 0 {
		downPaymentPercent = downPayment / purchasePrice * 100
	}

	return models.MortgageState{
		PurchasePrice:         purchasePrice,
		DownPaymentAmount:     downPayment,
		DownPaymentPercent:    downPaymentPercent,
		OriginalLoanAmount:    principal,
		InterestRate:          annualRate,
		AmortizationYears:     amortizationYears,
		MonthlyPayment:        monthlyPayment,
		TotalInterestOverLife: monthlyPayment*float64(amortizationYears*12) - principal,
		MonthsElapsed:         monthsElapsed,
		YearsElapsed:          monthsElapsed / 12,
		RemainingBalance:      remaining,
		PrincipalPaidToDate:   principalPaid,
		InterestPaidToDate:    interestPaid,
		PercentPaidOff:        percentPaidOff,
	}
}

// ComputeStateForPurchase resolves the default assumptions for a purchase
// and derives the mortgage state as of now. An explicit down payment amount
// takes precedence over a percentage.
func ComputeStateForPurchase(record models.PurchaseRecord, assumptions Assumptions, now time.Time) models.MortgageState {
	var downPayment float64
	switch {
	case assumptions.DownPaymentAmount != nil:
		downPayment = *assumptions.DownPaymentAmount
	case assumptions.DownPaymentPercent != nil:
		downPayment = record.Price * (*assumptions.DownPaymentPercent / 100)
	default:
		downPayment, _ = DefaultDownPayment(record.Price)
	}

	rate := config.RateForYear(record.Year)
	if assumptions.InterestRate != nil {
		rate = *assumptions.InterestRate
	}

	years := assumptions.AmortizationYears
	if years == 0 {
		years = DefaultAmortizationYears
	}

	elapsed := MonthsElapsed(record.Year, record.Month, now)
	return ComputeState(record.Price, downPayment, rate, years, elapsed)
}

// Refinance models rolling additional borrowing into the current balance at
// a new rate and term. The equity impact is the flat cash-out amount.
func Refinance(currentBalance, additionalLoan, newRate float64, termYears int) models.RefinanceScenario {
	totalNewDebt := currentBalance + additionalLoan
	return models.RefinanceScenario{
		AdditionalLoanAmount: additionalLoan,
		InterestRate:         newRate,
		TermYears:            termYears,
		NewMonthlyPayment:    MonthlyPayment(totalNewDebt, newRate, termYears),
		TotalNewDebt:         totalNewDebt,
		ImpactOnEquity:       -additionalLoan,
	}
}

// NetEquity combines the bridge's value estimate with the remaining balance.
func NetEquity(estimatedValue, remainingBalance float64) float64 {
	return estimatedValue - remainingBalance
}
