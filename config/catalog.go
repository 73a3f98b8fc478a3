package config

import "strings"

// Regions lists the area names accepted by the estimate funnel, grouped by
// board region. Returned as-is by the options endpoint so every community
// shows up even before its index data lands.
var Regions = []string{
	// Durham Region
	"Ajax", "Brock", "Clarington", "Oshawa", "Pickering", "Scugog",
	"Uxbridge", "Whitby",
	// Halton Region
	"Burlington", "Halton Hills", "Milton", "Oakville",
	// Peel Region
	"Brampton", "Caledon", "Mississauga",
	// Toronto West
	"Toronto W01", "Toronto W02", "Toronto W03", "Toronto W04", "Toronto W05",
	"Toronto W06", "Toronto W07", "Toronto W08", "Toronto W09", "Toronto W10",
	// Toronto Central
	"Toronto C01", "Toronto C02", "Toronto C03", "Toronto C04", "Toronto C06",
	"Toronto C07", "Toronto C08", "Toronto C09", "Toronto C10", "Toronto C11",
	"Toronto C12", "Toronto C13", "Toronto C14", "Toronto C15",
	// Toronto East
	"Toronto E01", "Toronto E02", "Toronto E03", "Toronto E04", "Toronto E05",
	"Toronto E06", "Toronto E07", "Toronto E08", "Toronto E09", "Toronto E10",
	"Toronto E11",
	// York Region
	"Aurora", "East Gwillimbury", "Georgina", "King", "Markham", "Newmarket",
	"Richmond Hill", "Vaughan", "Whitchurch-Stouffville",
	// Dufferin County
	"Orangeville",
	// Simcoe County
	"Adjala-Tosorontio", "Bradford West Gwillimbury", "Essa", "Innisfil",
	"New Tecumseth",
}

// PropertyCategories lists the canonical category names for display.
var PropertyCategories = []string{
	"Detached",
	"Semi-Detached",
	"Townhouse",
	"Condo Apt",
	"Condo Townhouse",
	"Link",
}

// categoryAliases maps source-report spellings onto canonical names.
var categoryAliases = map[string]string{
	"semi-detached":    "Semi-Detached",
	"att/row/twnhouse": "Townhouse",
	"townhouse":        "Townhouse",
	"condo apartment":  "Condo Apt",
	"condo apt":        "Condo Apt",
	"condo townhouse":  "Condo Townhouse",
	"detached":         "Detached",
	"link":             "Link",
}

// CanonicalCategory normalizes a property category to its display name.
// Unrecognized categories pass through unchanged.
func CanonicalCategory(name string) string {
	if canonical, ok := categoryAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical
	}
	return name
}
