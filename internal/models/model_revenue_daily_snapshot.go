package models

import (
	"time"

	"gorm.io/datatypes"
)

// RevenueDailySnapshot is a daily snapshot of platform recurring revenue.
// Snapshots are the only true history available; the live series are
// reconstructed from current subscription status.
type RevenueDailySnapshot struct {
	ID          string  `gorm:"column:id;type:uuid;primary_key" json:"id"`
	MRR         float64 `gorm:"column:mrr;type:numeric(18,2);not null" json:"mrr"`
	ARR         float64 `gorm:"column:arr;type:numeric(18,2);not null" json:"arr"`
	ActiveCount int64   `gorm:"column:active_count;not null" json:"active_count"`
	TrialCount  int64   `gorm:"column:trial_count;not null" json:"trial_count"`
	Currency    string  `gorm:"column:currency;type:varchar(8);not null" json:"currency"`
	// Breakdown stores the plan distribution at snapshot time.
	Breakdown         datatypes.JSON `gorm:"column:breakdown;type:jsonb;default:'[]'" json:"breakdown"`
	SnapshotDate      string         `gorm:"column:snapshot_date;uniqueIndex" json:"snapshot_date"`
	SnapshotCreatedAt time.Time      `gorm:"column:snapshot_created_at" json:"snapshot_created_at"`
}

func (RevenueDailySnapshot) TableName() string {
	return "revenue_daily_snapshot"
}
