package database

import (
	"errors"

	"gorm.io/gorm"

	"equitybridge/server/internal/models"
)

// EstimateStore persists completed estimates so the results page can be
// reloaded without recalculating.
type EstimateStore struct {
	db *gorm.DB
}

func NewEstimateStore(db *gorm.DB) *EstimateStore {
	return &EstimateStore{db: db}
}

func (s *EstimateStore) Save(record *models.EstimateRecord) error {
	return s.db.Create(record).Error
}

// GetByID returns the stored estimate, or nil when no such estimate exists.
func (s *EstimateStore) GetByID(id string) (*models.EstimateRecord, error) {
	var record models.EstimateRecord
	err := s.db.First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
