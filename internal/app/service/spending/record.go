package spending

import (
	"time"

	"github.com/samber/lo"

	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/types"
)

// Record is the aggregation input for one tracked subscription. An empty
// Currency means the base currency.
type Record struct {
	ID           string
	Name         string
	Amount       float64
	Currency     string
	BillingCycle string
	Status       types.SubscriptionStatus
	CategoryID   *string
	MemberID     *string
	NextBilling  *time.Time
}

func RecordFromModel(m *models.Subscription) Record {
	return Record{
		ID:           m.ID,
		Name:         m.Name,
		Amount:       m.Amount,
		Currency:     m.Currency,
		BillingCycle: string(m.BillingCycle),
		Status:       m.Status,
		CategoryID:   m.CategoryID,
		MemberID:     m.MemberID,
		NextBilling:  m.NextBilling,
	}
}

func RecordsFromModels(ms []*models.Subscription) []Record {
	return lo.Map(ms, func(m *models.Subscription, _ int) Record { return RecordFromModel(m) })
}
