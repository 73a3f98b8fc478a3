package config

// HistoricalRates holds approximate average Canadian 5-year fixed mortgage
// rates per year. Used as the default rate assumption when estimating
// payments for historical purchases.
var HistoricalRates = map[int]float64{
	// 1980s, high inflation era
	1980: 14.25, 1981: 18.38, 1982: 17.89, 1983: 13.23, 1984: 13.58,
	1985: 11.75, 1986: 10.52, 1987: 10.78, 1988: 11.31, 1989: 12.06,

	// 1990s, rates declining
	1990: 13.40, 1991: 11.12, 1992: 9.56, 1993: 8.62, 1994: 9.52,
	1995: 9.21, 1996: 7.94, 1997: 7.07, 1998: 6.80, 1999: 7.08,

	// 2000s, moderate rates
	2000: 7.87, 2001: 7.02, 2002: 6.60, 2003: 5.94, 2004: 5.77,
	2005: 5.49, 2006: 5.95, 2007: 6.25, 2008: 5.75, 2009: 5.19,

	// 2010s, low rate environment
	2010: 5.25, 2011: 5.14, 2012: 5.14, 2013: 5.14, 2014: 4.79,
	2015: 4.64, 2016: 4.64, 2017: 4.84, 2018: 5.14, 2019: 5.19,

	// 2020s, COVID and recovery
	2020: 4.79, 2021: 4.59, 2022: 5.14, 2023: 6.49, 2024: 5.99,
	2025: 5.49,
}

const (
	EarliestRateYear = 1980
	LatestRateYear   = 2025
)

// RateForYear returns the historical rate for a year, clamping to the table
// bounds and falling back to the nearest covered year in between.
func RateForYear(year int) float64 {
	if rate, ok := HistoricalRates[year]; ok {
		return rate
	}
	if year < EarliestRateYear {
		return HistoricalRates[EarliestRateYear]
	}
	if year > LatestRateYear {
		return HistoricalRates[LatestRateYear]
	}

	closest := EarliestRateYear
	for y := range HistoricalRates {
		if abs(y-year) < abs(closest-year) {
			closest = y
		}
	}
	return HistoricalRates[closest]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
