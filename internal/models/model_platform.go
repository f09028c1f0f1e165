package models

import (
	"time"

	"github.com/fatflowers/subtrack/pkg/types"
)

// User is a platform account. Platform users pay for plans through
// PlanSubscription records, which feed revenue analytics.
type User struct {
	ID        string    `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "app_user"
}

type PlanSubscription struct {
	ID           string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	UserID       string                   `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	PlanID       string                   `gorm:"column:plan_id;type:varchar(64);not null" json:"plan_id"`
	Amount       float64                  `gorm:"column:amount;type:numeric(18,4);not null;default:0" json:"amount"`
	Currency     string                   `gorm:"column:currency;type:varchar(8)" json:"currency"`
	BillingCycle types.BillingCycle       `gorm:"column:billing_cycle;type:varchar(32);not null" json:"billing_cycle"`
	Status       types.SubscriptionStatus `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	// CanceledAt is set when Status moves to canceled.
	CanceledAt *time.Time `gorm:"column:canceled_at;default:null" json:"canceled_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (PlanSubscription) TableName() string {
	return "plan_subscription"
}
