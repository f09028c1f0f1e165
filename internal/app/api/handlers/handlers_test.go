package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fatflowers/subtrack/internal/app/service/analytics"
	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/internal/app/service/spending"
	subsvc "github.com/fatflowers/subtrack/internal/app/service/subscription"
	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/response"
	"github.com/fatflowers/subtrack/pkg/types"
)

type fixedRates map[string]float64

func (r fixedRates) GetRate(_ context.Context, from, to string) (float64, bool) {
	if from == to {
		return 1, true
	}
	v, ok := r[from+"/"+to]
	return v, ok
}

type fakeTenantStore struct {
	subs       []*models.Subscription
	categories map[string]string
	members    map[string]string
	err        error
}

func (f *fakeTenantStore) ListTenantSubscriptions(_ context.Context, _ string, filters []*types.CommonFilter) ([]*models.Subscription, error) {
	if err := subsvc.ValidateFilters(filters); err != nil {
		return nil, err
	}
	return f.subs, f.err
}

func (f *fakeTenantStore) CategoryNames(context.Context, string) (map[string]string, error) {
	return f.categories, nil
}

func (f *fakeTenantStore) MemberNames(context.Context, string) (map[string]string, error) {
	return f.members, nil
}

type fakePlatform struct{}

func (fakePlatform) ListPlanSubscriptions(context.Context) ([]*models.PlanSubscription, error) {
	return []*models.PlanSubscription{
		{ID: "p1", PlanID: "pro", Amount: 10, Currency: "USD", BillingCycle: types.BillingCycleMonthly, Status: types.SubscriptionStatusActive},
	}, nil
}

func (fakePlatform) ListUsers(context.Context) ([]*models.User, error) { return nil, nil }

type fakeRateWriter struct {
	got *models.ExchangeRate
	err error
}

func (f *fakeRateWriter) UpsertRate(_ context.Context, rate *models.ExchangeRate) error {
	f.got = rate
	return f.err
}

type fakeSwitch struct{ active *bool }

func (f *fakeSwitch) SetActive(_ context.Context, active bool) error {
	f.active = &active
	return nil
}

type testDeps struct {
	store *fakeTenantStore
	rates *fakeRateWriter
	maint *fakeSwitch
}

func tenantFixture() *fakeTenantStore {
	return &fakeTenantStore{
		subs: []*models.Subscription{
			{ID: "s1", Name: "Netflix", Amount: 10, Currency: "USD", BillingCycle: types.BillingCycleMonthly,
				Status: types.SubscriptionStatusActive, CategoryID: lo.ToPtr("c1"), MemberID: lo.ToPtr("m1")},
			{ID: "s2", Name: "Gym", Amount: 300000, BillingCycle: types.BillingCycleMonthly, Status: types.SubscriptionStatusActive},
			{ID: "s3", Name: "Old", Amount: 99, Currency: "USD", BillingCycle: types.BillingCycleMonthly, Status: types.SubscriptionStatusCanceled},
		},
		categories: map[string]string{"c1": "Streaming"},
		members:    map[string]string{"m1": "Ana"},
	}
}

func newTestRouter(store *fakeTenantStore) (*gin.Engine, *testDeps) {
	gin.SetMode(gin.TestMode)
	conv := currency.NewConverter(fixedRates{"USD/IDR": 16000}, "IDR", 2, nil)
	deps := &testDeps{store: store, rates: &fakeRateWriter{}, maint: &fakeSwitch{}}

	r := gin.New()
	RegisterHealthRoutes(r)
	v1 := r.Group("/api/v1")
	RegisterDashboardRoutes(v1.Group("/dashboard"), store, spending.NewService(conv, 0, nil))
	RegisterCurrencyRoutes(v1.Group("/currency"), conv)
	stats := analytics.NewService(nil, fakePlatform{}, conv, analytics.Options{}, nil)
	RegisterAdminRoutes(v1.Group("/admin"), stats, deps.rates, deps.maint)
	return r, deps
}

func post(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) response.APIResponse[T] {
	t.Helper()
	var resp response.APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterRoutes_RegistersEndpoints(t *testing.T) {
	r, _ := newTestRouter(tenantFixture())
	routes := lo.Map(r.Routes(), func(rt gin.RouteInfo, _ int) string { return rt.Method + " " + rt.Path })

	assert.Subset(t, routes, []string{
		"GET /healthz",
		"POST /api/v1/dashboard/summary",
		"POST /api/v1/dashboard/category_totals",
		"POST /api/v1/dashboard/member_totals",
		"POST /api/v1/currency/convert",
		"POST /api/v1/admin/get_revenue_statistic",
		"POST /api/v1/admin/upsert_exchange_rate",
		"POST /api/v1/admin/set_maintenance",
	})
}

func TestDashboardSummary(t *testing.T) {
	r, _ := newTestRouter(tenantFixture())

	resp := decode[spending.Summary](t, post(t, r, "/api/v1/dashboard/summary", DashboardRequest{TenantID: "t1"}))

	require.Equal(t, response.APIResponseCodeOK, resp.Code)
	assert.Equal(t, "IDR", resp.Data.Currency)
	assert.Equal(t, 460000.0, resp.Data.MonthlyTotal)
	assert.Equal(t, 5520000.0, resp.Data.AnnualTotal)
	assert.Equal(t, 2, resp.Data.ActiveCount)
	require.Len(t, resp.Data.CategoryTotals, 2)
	assert.Equal(t, spending.UncategorizedName, resp.Data.CategoryTotals[0].Name)
	assert.Equal(t, "Streaming", resp.Data.CategoryTotals[1].Name)
	require.Len(t, resp.Data.MemberTotals, 2)
	assert.Equal(t, "Ana", resp.Data.MemberTotals[1].Name)
}

func TestDashboardBreakdowns(t *testing.T) {
	r, _ := newTestRouter(tenantFixture())

	cats := decode[[]spending.BreakdownRow](t, post(t, r, "/api/v1/dashboard/category_totals",
		DashboardRequest{TenantID: "t1", DisplayCurrency: "USD"}))
	require.Equal(t, response.APIResponseCodeOK, cats.Code)
	require.Len(t, cats.Data, 2)
	// no IDR/USD rate: the IDR amount is summed unconverted
	assert.Equal(t, 300000.0, cats.Data[0].Total)
	assert.Equal(t, 10.0, cats.Data[1].Total)

	members := decode[[]spending.BreakdownRow](t, post(t, r, "/api/v1/dashboard/member_totals",
		DashboardRequest{TenantID: "t1", IncludeInactive: true}))
	require.Equal(t, response.APIResponseCodeOK, members.Code)
	assert.Equal(t, 3, lo.SumBy(members.Data, func(row spending.BreakdownRow) int { return row.Count }))
}

func TestDashboard_Errors(t *testing.T) {
	tests := []struct {
		name     string
		store    *fakeTenantStore
		body     any
		wantCode response.APIResponseCode
	}{
		{name: "missing tenant", store: tenantFixture(), body: map[string]any{}, wantCode: response.APIResponseCodeBadRequest},
		{
			name:     "invalid filter",
			store:    tenantFixture(),
			body:     DashboardRequest{TenantID: "t1", Filters: []*types.CommonFilter{{Field: "tenant_id", Values: []any{"t2"}}}},
			wantCode: response.APIResponseCodeBadRequest,
		},
		{
			name:     "store failure",
			store:    &fakeTenantStore{err: errors.New("db down")},
			body:     DashboardRequest{TenantID: "t1"},
			wantCode: response.APIResponseCodeError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRouter(tt.store)
			resp := decode[any](t, post(t, r, "/api/v1/dashboard/summary", tt.body))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestConvert(t *testing.T) {
	r, _ := newTestRouter(tenantFixture())

	ok := decode[currency.Result](t, post(t, r, "/api/v1/currency/convert", ConvertRequest{Amount: 10, From: "usd", To: "IDR"}))
	assert.Equal(t, currency.Result{Value: 160000, Converted: true}, ok.Data)

	missing := decode[currency.Result](t, post(t, r, "/api/v1/currency/convert", ConvertRequest{Amount: 10, From: "EUR"}))
	assert.Equal(t, currency.Result{Value: 10, Converted: false}, missing.Data)
}

func TestGetRevenueStatistic(t *testing.T) {
	r, _ := newTestRouter(tenantFixture())

	resp := decode[map[string]any](t, post(t, r, "/api/v1/admin/get_revenue_statistic", map[string]any{
		"period":     "7d",
		"data_items": []map[string]string{{"id": "mrr"}},
	}))
	require.Equal(t, response.APIResponseCodeOK, resp.Code)
	assert.Equal(t, "IDR", resp.Data["currency"])
	assert.Equal(t, map[string]any{"mrr": 160000.0}, resp.Data["data_items"])

	bad := decode[any](t, post(t, r, "/api/v1/admin/get_revenue_statistic", map[string]any{
		"data_items": []map[string]string{{"id": "ltv"}},
	}))
	assert.Equal(t, response.APIResponseCodeBadRequest, bad.Code)

	null := decode[any](t, post(t, r, "/api/v1/admin/get_revenue_statistic", map[string]any{
		"data_items": []any{map[string]string{"id": "mrr"}, nil},
	}))
	assert.Equal(t, response.APIResponseCodeBadRequest, null.Code)
}

func TestUpsertExchangeRate(t *testing.T) {
	r, deps := newTestRouter(tenantFixture())

	resp := decode[any](t, post(t, r, "/api/v1/admin/upsert_exchange_rate", UpsertExchangeRateRequest{
		BaseCurrency: "USD", TargetCurrency: "IDR", Rate: 16250.5, Date: "2026-10-01",
	}))
	require.Equal(t, response.APIResponseCodeOK, resp.Code)
	require.NotNil(t, deps.rates.got)
	assert.Equal(t, 16250.5, deps.rates.got.Rate)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), deps.rates.got.EffectiveDate())

	tests := []struct {
		name string
		req  UpsertExchangeRateRequest
	}{
		{name: "zero rate", req: UpsertExchangeRateRequest{BaseCurrency: "USD", TargetCurrency: "IDR"}},
		{name: "bad code", req: UpsertExchangeRateRequest{BaseCurrency: "USDT", TargetCurrency: "IDR", Rate: 1}},
		{name: "bad date", req: UpsertExchangeRateRequest{BaseCurrency: "USD", TargetCurrency: "IDR", Rate: 1, Date: "01/10/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := decode[any](t, post(t, r, "/api/v1/admin/upsert_exchange_rate", tt.req))
			assert.Equal(t, response.APIResponseCodeBadRequest, resp.Code)
		})
	}
}

func TestSetMaintenance(t *testing.T) {
	r, deps := newTestRouter(tenantFixture())

	resp := decode[any](t, post(t, r, "/api/v1/admin/set_maintenance", SetMaintenanceRequest{Active: true}))
	require.Equal(t, response.APIResponseCodeOK, resp.Code)
	require.NotNil(t, deps.maint.active)
	assert.True(t, *deps.maint.active)
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(tenantFixture())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"ok","data":{"status":"ok"}}`, w.Body.String())
}
