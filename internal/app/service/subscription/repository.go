// Package subscription reads tracked subscriptions, household lookups and
// platform billing records from Postgres.
package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/types"
)

var ErrInvalidFilter = errors.New("invalid filter field")

// filterableFields lists the subscription columns a caller may filter on.
var filterableFields = []string{"status", "billing_cycle", "category_id", "member_id", "currency", "next_billing", "start_date"}

// filtersWhere wraps a list of filters to a single clause.Expression
type filtersWhere struct{ filters []*types.CommonFilter }

func (w filtersWhere) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, f := range w.filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		f.Build(builder)
	}
}

// ValidateFilters rejects filters on columns outside filterableFields.
func ValidateFilters(filters []*types.CommonFilter) error {
	for _, f := range filters {
		if f == nil || !lo.Contains(filterableFields, f.Field) {
			field := ""
			if f != nil {
				field = f.Field
			}
			return fmt.Errorf("%w: %q", ErrInvalidFilter, field)
		}
	}
	return nil
}

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{db: db, log: log}
}

// ListTenantSubscriptions returns every tracked subscription of tenantID
// matching filters, in creation order.
func (s *Service) ListTenantSubscriptions(ctx context.Context, tenantID string, filters []*types.CommonFilter) ([]*models.Subscription, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}
	var subs []*models.Subscription
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(filtersWhere{filters: filters}).
		Order("created_at ASC").
		Find(&subs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	return subs, nil
}

// CategoryNames maps category id to name for tenantID.
func (s *Service) CategoryNames(ctx context.Context, tenantID string) (map[string]string, error) {
	var rows []*models.Category
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return lo.SliceToMap(rows, func(c *models.Category) (string, string) { return c.ID, c.Name }), nil
}

// MemberNames maps member id to name for tenantID.
func (s *Service) MemberNames(ctx context.Context, tenantID string) (map[string]string, error) {
	var rows []*models.Member
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return lo.SliceToMap(rows, func(m *models.Member) (string, string) { return m.ID, m.Name }), nil
}

func (s *Service) ListPlanSubscriptions(ctx context.Context) ([]*models.PlanSubscription, error) {
	var subs []*models.PlanSubscription
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list plan subscriptions: %w", err)
	}
	return subs, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := s.db.WithContext(ctx).Select("id", "created_at").Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
