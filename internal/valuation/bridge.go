package valuation

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"equitybridge/server/config"
	"equitybridge/server/internal/cache"
	"equitybridge/server/internal/models"
)

// IndexStore is the read interface the bridge needs from the market data
// layer. Absent data is reported as a nil observation, not an error.
type IndexStore interface {
	IndexValue(keys []string, category, yearMonth string) (*models.IndexObservation, error)
	LatestIndexValue(keys []string, category string) (*models.IndexObservation, error)
	IndexTrend(keys []string, category, fromYearMonth string) ([]models.IndexPoint, error)
	BenchmarkPrice(keys []string, category, yearMonth string) (*models.BenchmarkObservation, error)
	LatestBenchmarkPrice(keys []string, category string) (*models.BenchmarkObservation, error)
}

// ErrNoData is the terminal failure: neither the index era nor the historic
// bridge could produce a usable figure.
var ErrNoData = errors.New("no market data available for this selection")

// errIndexUnavailable routes an index-era calculation onto the historic
// fallback. Never surfaced to callers.
var errIndexUnavailable = errors.New("index data unavailable")

// Fixed scenario offsets. Policy constants, not derived from volatility.
const (
	hotAdjustmentPercent  = 4
	softAdjustmentPercent = -8

	hotLabel      = "If Market Heats Up"
	balancedLabel = "Current Estimate"
	softLabel     = "If Market Softens"

	sourceHPI      = "HPI Index"
	sourceHistoric = "Historic Annual Averages"
)

// Calculator is the equity bridge. It decides which era strategy applies to
// a purchase and produces the full appreciation result. Stateless apart
// from the injected benchmark cache; safe for concurrent use.
type Calculator struct {
	store  IndexStore
	cache  cache.BenchmarkCache
	logger *logrus.Logger
}

func NewCalculator(store IndexStore, benchmarks cache.BenchmarkCache, logger *logrus.Logger) *Calculator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Calculator{
		store:  store,
		cache:  benchmarks,
		logger: logger,
	}
}

// DataSourceLabel names the data source backing estimates for a year.
func DataSourceLabel(year int) string {
	if EraForYear(year) == models.EraHistoric {
		return sourceHistoric
	}
	return sourceHPI
}

// EraForYear resolves the data era for a purchase year.
func EraForYear(year int) string {
	if year < config.HPIStartYear {
		return models.EraHistoric
	}
	return models.EraHPI
}

// Estimate values a purchase against the current market. Index-era
// purchases use the real index; anything the index cannot answer falls
// through to the historic annual averages, which act as the universal
// fallback. Only a failure of both paths is an error.
func (c *Calculator) Estimate(record models.PurchaseRecord) (*models.AppreciationResult, error) {
	era := EraForYear(record.Year)

	if era == models.EraHPI {
		result, err := c.estimateFromIndex(record)
		if err == nil {
			c.attachBenchmarks(result, record)
			return result, nil
		}
		if !errors.Is(err, errIndexUnavailable) {
			return nil, err
		}
		c.logger.WithFields(logrus.Fields{
			"region":   record.Region,
			"category": record.PropertyCategory,
		}).Info("Index data unavailable, using historic bridge")
	}

	result, err := c.estimateFromHistoric(record)
	if err != nil {
		return nil, err
	}
	c.attachBenchmarks(result, record)
	return result, nil
}

// estimateFromIndex is the index-era strategy: appreciation is the ratio of
// the latest index value to the value at purchase.
func (c *Calculator) estimateFromIndex(record models.PurchaseRecord) (*models.AppreciationResult, error) {
	keys := config.LookupKeys(record.Region)
	purchaseMonth := monthKey(record.Year, record.Month)

	atPurchase, err := c.store.IndexValue(keys, record.PropertyCategory, purchaseMonth)
	if err != nil {
		return nil, err
	}
	if atPurchase == nil || atPurchase.IndexValue <= 0 {
		return nil, errIndexUnavailable
	}

	current, err := c.store.LatestIndexValue(keys, record.PropertyCategory)
	if err != nil {
		return nil, err
	}
	if current == nil || current.IndexValue <= 0 {
		return nil, errIndexUnavailable
	}

	factor := current.IndexValue / atPurchase.IndexValue
	estimated := roundCurrency(record.Price * factor)

	trend, err := c.store.IndexTrend(keys, record.PropertyCategory, purchaseMonth)
	if err != nil {
		// The chart is decorative; a trend failure must not sink the estimate.
		c.logger.WithError(err).Warn("Failed to load index trend")
		trend = nil
	}

	result := newResult(record, models.EraHPI, sourceHPI, factor, estimated, trend)
	result.IndexAtPurchase = atPurchase.IndexValue
	result.IndexAtPurchaseDate = atPurchase.ReportMonth
	result.IndexCurrent = current.IndexValue
	result.IndexCurrentDate = current.ReportMonth
	return result, nil
}

// estimateFromHistoric is the pre-index strategy and the universal
// fallback: appreciation is the ratio of the latest annual average to the
// purchase-year average.
func (c *Calculator) estimateFromHistoric(record models.PurchaseRecord) (*models.AppreciationResult, error) {
	purchaseAverage := config.AverageForYear(record.Year)
	latestYear := config.LatestAverageYear()
	currentAverage := config.AverageForYear(latestYear)

	if purchaseAverage <= 0 || currentAverage <= 0 {
		return nil, ErrNoData
	}

	factor := currentAverage / purchaseAverage
	estimated := roundCurrency(record.Price * factor)

	result := newResult(record, models.EraHistoric, sourceHistoric, factor, estimated,
		historicTrend(record.Year, latestYear))

	// Synthetic index values scaled for display next to real index charts.
	result.IndexAtPurchase = purchaseAverage / 10000
	result.IndexAtPurchaseDate = fmt.Sprintf("%d-06", record.Year)
	result.IndexCurrent = currentAverage / 10000
	result.IndexCurrentDate = fmt.Sprintf("%d-12", latestYear)

	result.BridgeNote = BridgeNoteForYear(record.Year)
	return result, nil
}

// BridgeNoteForYear explains the synthetic-index bridge for pre-index
// purchase years. Empty for years the real index covers.
func BridgeNoteForYear(year int) string {
	if year >= config.HPIStartYear {
		return ""
	}
	return fmt.Sprintf(
		"Using a synthetic index based on annual average price trends for years prior to %d.",
		config.HPIStartYear)
}

func newResult(record models.PurchaseRecord, era, source string, factor float64, estimated int64, trend []models.IndexPoint) *models.AppreciationResult {
	return &models.AppreciationResult{
		Input:              record,
		AppreciationFactor: roundTo(factor, 3),
		EstimatedValue:     estimated,
		EquityGained:       estimated - roundCurrency(record.Price),
		ROIPercent:         roundTo((factor-1)*100, 1),
		DataEra:            era,
		DataSource:         source,
		Trend:              trend,
		Scenarios:          ScenariosForValue(estimated, record.Price),
		CalculatedAt:       time.Now().UTC(),
	}
}

// historicTrend synthesizes one index point per calendar year, anchored at
// mid-year. Presentation artifact only; always tagged via the result's
// data era.
func historicTrend(fromYear, toYear int) []models.IndexPoint {
	var trend []models.IndexPoint
	for year := fromYear; year <= toYear; year++ {
		average, ok := config.HistoricAverages[year]
		if !ok {
			continue
		}
		price := average
		trend = append(trend, models.IndexPoint{
			ReportMonth:    fmt.Sprintf("%d-06", year),
			IndexValue:     average / 1000,
			BenchmarkPrice: &price,
		})
	}
	return trend
}

// ScenariosForValue produces the three scenario bands for a balanced
// estimate. Equity is always recomputed against the original purchase price.
func ScenariosForValue(baseValue int64, purchasePrice float64) models.Scenarios {
	return models.Scenarios{
		Hot:      scenarioFor(baseValue, purchasePrice, hotAdjustmentPercent, hotLabel),
		Balanced: scenarioFor(baseValue, purchasePrice, 0, balancedLabel),
		Soft:     scenarioFor(baseValue, purchasePrice, softAdjustmentPercent, softLabel),
	}
}

func scenarioFor(baseValue int64, purchasePrice float64, adjustment int, label string) models.MarketScenario {
	value := roundCurrency(float64(baseValue) * (1 + float64(adjustment)/100))
	return models.MarketScenario{
		Value:             value,
		Equity:            value - roundCurrency(purchasePrice),
		AdjustmentPercent: adjustment,
		Label:             label,
	}
}

// attachBenchmarks decorates a result with the regional benchmark prices.
// Missing benchmarks leave the fields nil; they never block the estimate.
func (c *Calculator) attachBenchmarks(result *models.AppreciationResult, record models.PurchaseRecord) {
	atPurchase, current := c.Benchmarks(record)

	if atPurchase != nil {
		result.BenchmarkAtPurchase = &atPurchase.Price
		result.BenchmarkAtPurchaseDate = &atPurchase.ReportMonth
	}
	if current != nil {
		result.BenchmarkCurrent = &current.Price
		result.BenchmarkCurrentDate = &current.ReportMonth
	}
}

// Benchmarks looks up the purchase-side and current benchmark prices for a
// purchase. The two reads are independent and run concurrently; the
// current-side lookup goes through the memoizing cache.
func (c *Calculator) Benchmarks(record models.PurchaseRecord) (atPurchase, current *models.BenchmarkObservation) {
	keys := config.LookupKeys(record.Region)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		obs, err := c.store.BenchmarkPrice(keys, record.PropertyCategory, monthKey(record.Year, record.Month))
		if err != nil {
			c.logger.WithError(err).Warn("Failed to load purchase benchmark price")
			return
		}
		atPurchase = obs
	}()
	go func() {
		defer wg.Done()
		current = c.currentBenchmark(keys, record.Region, record.PropertyCategory)
	}()
	wg.Wait()
	return atPurchase, current
}

// currentBenchmark memoizes the latest benchmark per region/category. Only
// successful lookups are cached, so a late-arriving report is picked up on
// the next request.
func (c *Calculator) currentBenchmark(keys []string, region, category string) *models.BenchmarkObservation {
	if obs, ok := c.cache.Get(region, category); ok {
		return obs
	}

	obs, err := c.store.LatestBenchmarkPrice(keys, category)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to load current benchmark price")
		return nil
	}
	if obs == nil {
		return nil
	}

	c.cache.Set(region, category, obs)
	return obs
}

func monthKey(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func roundCurrency(amount float64) int64 {
	return int64(math.Round(amount))
}

func roundTo(value float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(value*scale) / scale
}
