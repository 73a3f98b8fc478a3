package config

import "fmt"

// HistoricAverages holds the board's annual average sale price per year.
// For purchase dates before continuous index coverage this table is the
// bridge used to estimate appreciation.
var HistoricAverages = map[int]float64{
	1980: 75694,
	1981: 90203,
	1982: 95496,
	1983: 101626,
	1984: 102318,
	1985: 109094,
	1986: 138925,
	1987: 189105,
	1988: 229635,
	1989: 273698,
	1990: 255020,
	1991: 234313,
	1992: 214971,
	1993: 206490,
	1994: 208921,
	1995: 203028,
	1996: 198150,
	1997: 211307,
	1998: 216815,
	1999: 228372,
	2000: 243255,
	2001: 251508,
	2002: 275231,
	2003: 293067,
	2004: 315231,
	2005: 335907,
	2006: 351941,
	2007: 376236,
	2008: 379347,
	2009: 395460,
	2010: 431276,
	2011: 465014,
	2012: 497298,
	2013: 523036,
	2014: 566726,
	2015: 622217,
	2016: 729922,
	2017: 822681,
	2018: 787300,
	2019: 819319,
	2020: 929699,
	2021: 1095475,
	2022: 1189850,
	2023: 1126604,
	2024: 1120241,
	2025: 1067968,
}

// HPIStartYear is the first year with continuous index coverage in the
// store. It partitions purchase years into the two data eras.
const HPIStartYear = 2012

// EarliestAverageYear is the first year covered by the averages table.
const EarliestAverageYear = 1980

// LatestAverageYear returns the most recent year in the averages table.
func LatestAverageYear() int {
	latest := EarliestAverageYear
	for y := range HistoricAverages {
		if y > latest {
			latest = y
		}
	}
	return latest
}

// AverageForYear returns the annual average price for a year. Years outside
// the table clamp to the nearest covered bound; the table has no interior
// gaps, so the nearest-year scan only matters at the edges.
func AverageForYear(year int) float64 {
	if avg, ok := HistoricAverages[year]; ok {
		return avg
	}
	if year < EarliestAverageYear {
		return HistoricAverages[EarliestAverageYear]
	}
	latest := LatestAverageYear()
	if year > latest {
		return HistoricAverages[latest]
	}

	closest := EarliestAverageYear
	for y := range HistoricAverages {
		if abs(y-year) < abs(closest-year) {
			closest = y
		}
	}
	return HistoricAverages[closest]
}

// ValidateTables checks the static tables at startup. A gap or non-positive
// entry means the binary was built from a broken table and must not serve
// requests.
func ValidateTables() error {
	latest := LatestAverageYear()
	for y := EarliestAverageYear; y <= latest; y++ {
		avg, ok := HistoricAverages[y]
		if !ok {
			return fmt.Errorf("historic averages: missing year %d", y)
		}
		if avg <= 0 {
			return fmt.Errorf("historic averages: non-positive value for year %d", y)
		}
	}
	for y := EarliestRateYear; y <= LatestRateYear; y++ {
		rate, ok := HistoricalRates[y]
		if !ok {
			return fmt.Errorf("historical rates: missing year %d", y)
		}
		if rate <= 0 {
			return fmt.Errorf("historical rates: non-positive value for year %d", y)
		}
	}
	for modern, codes := range DistrictMappings {
		if modern == "" {
			return fmt.Errorf("district mappings: empty modern name")
		}
		for _, code := range codes {
			if code == "" {
				return fmt.Errorf("district mappings: empty code for %q", modern)
			}
		}
	}
	return nil
}
