package subscription

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/types"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []*types.CommonFilter
		wantErr bool
	}{
		{name: "none", filters: nil},
		{name: "status", filters: []*types.CommonFilter{{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{"active"}}}},
		{name: "category and member", filters: []*types.CommonFilter{
			{Field: "category_id", Operator: types.CommonFilterOperatorIn, Values: []any{"a", "b"}},
			{Field: "member_id", Operator: types.CommonFilterOperatorEq, Values: []any{"m"}},
		}},
		{name: "tenant column is not filterable", filters: []*types.CommonFilter{{Field: "tenant_id", Values: []any{"x"}}}, wantErr: true},
		{name: "raw sql field", filters: []*types.CommonFilter{{Field: "1=1 OR status", Values: []any{"x"}}}, wantErr: true},
		{name: "nil filter", filters: []*types.CommonFilter{nil}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilters(tt.filters)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidFilter))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFiltersWhere_BuildsConjunction(t *testing.T) {
	db := dryRunDB(t)

	stmt := db.Model(&models.Subscription{}).
		Where("tenant_id = ?", "t1").
		Where(filtersWhere{filters: []*types.CommonFilter{
			{Field: "status", Operator: types.CommonFilterOperatorEq, Values: []any{"active"}},
			{Field: "billing_cycle", Operator: types.CommonFilterOperatorIn, Values: []any{"monthly", "yearly"}},
		}}).
		Find(&[]*models.Subscription{}).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `"status" = $2`)
	assert.Contains(t, sql, " AND ")
	assert.Contains(t, sql, `"billing_cycle" IN ($3,$4)`)
	assert.Equal(t, []any{"t1", "active", "monthly", "yearly"}, stmt.Vars)
}

func TestFiltersWhere_EmptyMatchesAll(t *testing.T) {
	db := dryRunDB(t)
	stmt := db.Model(&models.Subscription{}).Where(filtersWhere{}).Find(&[]*models.Subscription{}).Statement
	assert.Contains(t, stmt.SQL.String(), "1=1")
}
