package repositories

import (
	"fmt"

	"kahera/internal/models"

	"gorm.io/gorm"
)

// FeeSettingsRepository manages the tier-rate singleton.
type FeeSettingsRepository interface {
	// Get returns the singleton row, creating it with the column defaults
	// on first access.
	Get() (*models.FeeSetting, error)
	Update(settings *models.FeeSetting) error
}

type feeSettingsRepository struct {
	db *gorm.DB
}

func NewFeeSettingsRepository(db *gorm.DB) FeeSettingsRepository {
	return &feeSettingsRepository{db: db}
}

func (r *feeSettingsRepository) Get() (*models.FeeSetting, error) {
	var settings models.FeeSetting
	if err := r.db.FirstOrCreate(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to get fee settings: %w", err)
	}
	return &settings, nil
}

func (r *feeSettingsRepository) Update(settings *models.FeeSetting) error {
	if err := r.db.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to update fee settings: %w", err)
	}
	return nil
}
