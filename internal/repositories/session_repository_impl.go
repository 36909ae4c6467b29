package repositories

import (
	"fmt"

	"kahera/internal/models"

	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetOrCreate(date string, defaults *models.DailySession) (*models.DailySession, error) {
	var session models.DailySession
	err := r.db.Where(models.DailySession{Date: date}).
		Attrs(models.DailySession{
			StartingCash:  defaults.StartingCash,
			StartingGcash: defaults.StartingGcash,
			Notes:         defaults.Notes,
		}).
		FirstOrCreate(&session).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get or create session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Upsert(session *models.DailySession) (*models.DailySession, error) {
	var existing models.DailySession
	err := r.db.Where("date = ?", session.Date).First(&existing).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if err := r.db.Create(session).Error; err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		return session, nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	existing.StartingCash = session.StartingCash
	existing.StartingGcash = session.StartingGcash
	existing.Notes = session.Notes
	if err := r.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	return &existing, nil
}

func (r *sessionRepository) GetByDate(date string) (*models.DailySession, error) {
	var session models.DailySession
	if err := r.db.Where("date = ?", date).First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}
