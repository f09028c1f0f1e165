package models

import (
	"strings"
	"time"

	"github.com/fatflowers/subtrack/pkg/types"
)

// Subscription is a recurring payment a tenant tracks (a streaming service, a
// gym membership), not a subscription to this platform.
type Subscription struct {
	ID       string  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	TenantID string  `gorm:"column:tenant_id;type:varchar(64);not null;index" json:"tenant_id"`
	Name     string  `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Amount   float64 `gorm:"column:amount;type:numeric(18,4);not null;default:0" json:"amount"`
	// Currency is an ISO 4217 code. Empty means the configured base currency.
	Currency     string                   `gorm:"column:currency;type:varchar(8)" json:"currency"`
	BillingCycle types.BillingCycle       `gorm:"column:billing_cycle;type:varchar(32);not null" json:"billing_cycle"`
	Status       types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	CategoryID   *string                  `gorm:"column:category_id;type:uuid;default:null" json:"category_id"`
	MemberID     *string                  `gorm:"column:member_id;type:uuid;default:null" json:"member_id"`
	StartDate    time.Time                `gorm:"column:start_date" json:"start_date"`
	NextBilling  *time.Time               `gorm:"column:next_billing;default:null" json:"next_billing"`
	// CreatedAt is managed by GORM and records the creation time.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is managed by GORM and records the update time.
	UpdatedAt time.Time `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscription"
}

// CurrencyOr returns the subscription currency, or base when none was recorded.
func (s *Subscription) CurrencyOr(base string) string {
	if c := strings.TrimSpace(s.Currency); c != "" {
		return strings.ToUpper(c)
	}
	return base
}
