package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equitybridge/server/internal/models"
)

// UpsertIndexRecords inserts a batch of index observations, replacing the
// index value and benchmark price when the report month already exists.
// Archives overlap at their edges, so re-imports must be idempotent.
func UpsertIndexRecords(tx *gorm.DB, batch []*models.IndexRecord) error {
	if len(batch) == 0 {
		return nil
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "area_name"},
			{Name: "property_category"},
			{Name: "report_month"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"hpi_index", "benchmark_price"}),
	}).Create(&batch).Error
}
