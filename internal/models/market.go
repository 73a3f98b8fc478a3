package models

// IndexPoint is a single observation of the home price index for a
// region/category pair. BenchmarkPrice is nil when the source report did not
// publish an absolute price for that month.
type IndexPoint struct {
	ReportMonth    string   `json:"report_month"`
	IndexValue     float64  `json:"hpi_index"`
	BenchmarkPrice *float64 `json:"benchmark_price"`
}

// IndexObservation is the result of a point lookup against the index store.
// ReportMonth is the month that actually matched, which may be earlier than
// the requested month when the store fell back to a prior report.
type IndexObservation struct {
	IndexValue  float64 `json:"hpi_index"`
	ReportMonth string  `json:"report_month"`
}

// BenchmarkObservation is an absolute benchmark price with the report month
// it was taken from. Display-only; never used in the appreciation math.
type BenchmarkObservation struct {
	Price       float64 `json:"price"`
	ReportMonth string  `json:"report_month"`
}

// IndexDateRange is the coverage window of the index store for a selection.
type IndexDateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// IndexRecord is the persisted form of an index observation. Rows are
// uniquely identified by (area_name, property_category, report_month).
type IndexRecord struct {
	AreaName         string   `gorm:"column:area_name;primaryKey" json:"area_name"`
	PropertyCategory string   `gorm:"column:property_category;primaryKey" json:"property_category"`
	ReportMonth      string   `gorm:"column:report_month;primaryKey" json:"report_month"`
	IndexValue       float64  `gorm:"column:hpi_index" json:"hpi_index"`
	BenchmarkPrice   *float64 `gorm:"column:benchmark_price" json:"benchmark_price"`
}

// TableName maps IndexRecord onto the market_hpi table.
func (IndexRecord) TableName() string {
	return "market_hpi"
}
