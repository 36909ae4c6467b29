package repositories

import (
	"errors"

	"kahera/internal/models"
)

var ErrSessionNotFound = errors.New("daily session not found")

// SessionRepository owns DailySession records. It reads but never mutates
// account balances; snapshot values arrive from the caller.
type SessionRepository interface {
	// GetOrCreate returns the session for the date, inserting defaults only
	// when no row exists yet (first write wins).
	GetOrCreate(date string, defaults *models.DailySession) (*models.DailySession, error)
	// Upsert creates or overwrites the session for the date.
	Upsert(session *models.DailySession) (*models.DailySession, error)
	GetByDate(date string) (*models.DailySession, error)
}
