package valuation

import (
	"fmt"
	"strings"
	"time"

	"equitybridge/server/config"
	"equitybridge/server/internal/models"
)

// ValidateRecord checks a purchase record before it reaches the engine.
// Returns a field -> reason map; an empty map means the record is valid.
func ValidateRecord(record models.PurchaseRecord, now time.Time) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(record.Region) == "" {
		errs["region"] = "region is required"
	}
	if strings.TrimSpace(record.PropertyCategory) == "" {
		errs["property_category"] = "property type is required"
	}

	switch {
	case record.Year == 0:
		errs["purchase_year"] = "purchase year is required"
	case record.Year < config.EarliestAverageYear || record.Year > now.Year():
		errs["purchase_year"] = fmt.Sprintf("purchase year must be between %d and %d",
			config.EarliestAverageYear, now.Year())
	}

	if record.Month < 1 || record.Month > 12 {
		errs["purchase_month"] = "purchase month must be between 1 and 12"
	}

	if record.Price <= 0 {
		errs["purchase_price"] = "purchase price must be greater than 0"
	}

	return errs
}
