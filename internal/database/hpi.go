package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"equitybridge/server/internal/models"
)

// The index store queries below all match against a set of lookup keys,
// since historical rows may be filed under district codes rather than the
// modern area name.

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func keyArgs(keys []string, rest ...interface{}) []interface{} {
	args := make([]interface{}, 0, len(keys)+len(rest))
	for _, k := range keys {
		args = append(args, k)
	}
	return append(args, rest...)
}

func (d *Database) scanIndexRow(query string, args ...interface{}) (*models.IndexObservation, error) {
	var obs models.IndexObservation
	err := d.db.QueryRow(query, args...).Scan(&obs.IndexValue, &obs.ReportMonth)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

func (d *Database) scanBenchmarkRow(query string, args ...interface{}) (*models.BenchmarkObservation, error) {
	var obs models.BenchmarkObservation
	err := d.db.QueryRow(query, args...).Scan(&obs.Price, &obs.ReportMonth)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

// IndexValue returns the index observation for a report month, falling back
// to the nearest prior report when the exact month is missing. It never
// looks forward: a purchase-side value must not leak future data.
func (d *Database) IndexValue(keys []string, category, yearMonth string) (*models.IndexObservation, error) {
	exact := fmt.Sprintf(`
		SELECT hpi_index, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ? AND report_month = ?
		LIMIT 1`, placeholders(len(keys)))
	obs, err := d.scanIndexRow(exact, keyArgs(keys, category, yearMonth)...)
	if err != nil || obs != nil {
		return obs, err
	}

	prior := fmt.Sprintf(`
		SELECT hpi_index, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ? AND report_month <= ?
		ORDER BY report_month DESC
		LIMIT 1`, placeholders(len(keys)))
	return d.scanIndexRow(prior, keyArgs(keys, category, yearMonth)...)
}

// LatestIndexValue returns the most recent index observation for the
// selection, whatever its report month.
func (d *Database) LatestIndexValue(keys []string, category string) (*models.IndexObservation, error) {
	query := fmt.Sprintf(`
		SELECT hpi_index, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ?
		ORDER BY report_month DESC
		LIMIT 1`, placeholders(len(keys)))
	return d.scanIndexRow(query, keyArgs(keys, category)...)
}

// IndexTrend returns the ordered index series from a starting month to the
// most recent available report.
func (d *Database) IndexTrend(keys []string, category, fromYearMonth string) ([]models.IndexPoint, error) {
	query := fmt.Sprintf(`
		SELECT report_month, hpi_index, benchmark_price FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ? AND report_month >= ?
		ORDER BY report_month ASC`, placeholders(len(keys)))

	rows, err := d.db.Query(query, keyArgs(keys, category, fromYearMonth)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trend []models.IndexPoint
	for rows.Next() {
		var point models.IndexPoint
		var benchmark sql.NullFloat64
		if err := rows.Scan(&point.ReportMonth, &point.IndexValue, &benchmark); err != nil {
			return nil, err
		}
		if benchmark.Valid {
			price := benchmark.Float64
			point.BenchmarkPrice = &price
		}
		trend = append(trend, point)
	}
	return trend, rows.Err()
}

// BenchmarkPrice returns the benchmark price nearest to a report month:
// exact match, then nearest prior, then nearest future. Benchmarks are
// display-only, so the future fallback is acceptable here.
func (d *Database) BenchmarkPrice(keys []string, category, yearMonth string) (*models.BenchmarkObservation, error) {
	exact := fmt.Sprintf(`
		SELECT benchmark_price, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ? AND report_month = ?
			AND benchmark_price IS NOT NULL
		LIMIT 1`, placeholders(len(keys)))
	obs, err := d.scanBenchmarkRow(exact, keyArgs(keys, category, yearMonth)...)
	if err != nil || obs != nil {
		return obs, err
	}

	prior := fmt.Sprintf(`
		SELECT benchmark_price, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ? AND report_month <= ?
			AND benchmark_price IS NOT NULL
		ORDER BY report_month DESC
		LIMIT 1`, placeholders(len(keys)))
	obs, err = d.scanBenchmarkRow(prior, keyArgs(keys, category, yearMonth)...)
	if err != nil || obs != nil {
		return obs, err
	}

	future := fmt.Sprintf(`
		SELECT benchmark_price, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ? AND report_month >= ?
			AND benchmark_price IS NOT NULL
		ORDER BY report_month ASC
		LIMIT 1`, placeholders(len(keys)))
	return d.scanBenchmarkRow(future, keyArgs(keys, category, yearMonth)...)
}

// LatestBenchmarkPrice returns the most recent benchmark price for the
// selection.
func (d *Database) LatestBenchmarkPrice(keys []string, category string) (*models.BenchmarkObservation, error) {
	query := fmt.Sprintf(`
		SELECT benchmark_price, report_month FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ?
			AND benchmark_price IS NOT NULL
		ORDER BY report_month DESC
		LIMIT 1`, placeholders(len(keys)))
	return d.scanBenchmarkRow(query, keyArgs(keys, category)...)
}

// IndexDateRange returns the earliest and latest report months available for
// the selection, or nil when the store has no rows for it.
func (d *Database) IndexDateRange(keys []string, category string) (*models.IndexDateRange, error) {
	query := fmt.Sprintf(`
		SELECT MIN(report_month), MAX(report_month) FROM market_hpi
		WHERE area_name IN (%s) AND property_category = ?`, placeholders(len(keys)))

	var earliest, latest sql.NullString
	err := d.db.QueryRow(query, keyArgs(keys, category)...).Scan(&earliest, &latest)
	if err != nil {
		return nil, err
	}
	if !earliest.Valid || !latest.Valid {
		return nil, nil
	}
	return &models.IndexDateRange{Earliest: earliest.String, Latest: latest.String}, nil
}
