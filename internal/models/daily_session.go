package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySession is the per-date opening snapshot. The unique index on Date
// is what ultimately enforces at most one session per calendar day.
type DailySession struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Date          string          `gorm:"type:date;uniqueIndex;not null" json:"date"`
	StartingCash  decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"starting_cash"`
	StartingGcash decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"starting_gcash"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
