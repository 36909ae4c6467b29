package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeSetting is the singleton holding the four tier rates. It is created
// with defaults on first access and only mutated through the admin update.
type FeeSetting struct {
	ID                   uint            `gorm:"primarykey" json:"id"`
	Below500Fee          decimal.Decimal `gorm:"type:decimal(8,2);default:5" json:"below_500_fee"`
	FiveHundredTo999Fee  decimal.Decimal `gorm:"type:decimal(8,2);default:10" json:"five_hundred_to_999_fee"`
	Per1000Fee           decimal.Decimal `gorm:"type:decimal(8,2);default:15" json:"per_1000_fee"`
	DiscountedPer1000Fee decimal.Decimal `gorm:"type:decimal(8,2);default:10" json:"discounted_per_1000_fee"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}
