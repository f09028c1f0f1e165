package models

import (
	"time"

	"gorm.io/datatypes"
)

// ExchangeRate is the rate to convert one unit of BaseCurrency into
// TargetCurrency, effective on Date.
type ExchangeRate struct {
	ID             string         `gorm:"column:id;type:uuid;primary_key" json:"id"`
	BaseCurrency   string         `gorm:"column:base_currency;type:varchar(8);not null;uniqueIndex:idx_exchange_rate_pair_date,priority:1" json:"base_currency"`
	TargetCurrency string         `gorm:"column:target_currency;type:varchar(8);not null;uniqueIndex:idx_exchange_rate_pair_date,priority:2" json:"target_currency"`
	Date           datatypes.Date `gorm:"column:date;not null;uniqueIndex:idx_exchange_rate_pair_date,priority:3" json:"date"`
	Rate           float64        `gorm:"column:rate;type:numeric(20,10);not null" json:"rate"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (ExchangeRate) TableName() string {
	return "exchange_rate"
}

// EffectiveDate returns Date as a time.Time.
func (r *ExchangeRate) EffectiveDate() time.Time {
	return time.Time(r.Date)
}
