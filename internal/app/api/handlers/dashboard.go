package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/fatflowers/subtrack/internal/app/service/spending"
	subsvc "github.com/fatflowers/subtrack/internal/app/service/subscription"
	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/response"
	"github.com/fatflowers/subtrack/pkg/types"
)

// TenantStore loads a tenant's tracked subscriptions and lookups.
type TenantStore interface {
	ListTenantSubscriptions(ctx context.Context, tenantID string, filters []*types.CommonFilter) ([]*models.Subscription, error)
	CategoryNames(ctx context.Context, tenantID string) (map[string]string, error)
	MemberNames(ctx context.Context, tenantID string) (map[string]string, error)
}

type DashboardRequest struct {
	TenantID        string `json:"tenant_id" binding:"required"`
	DisplayCurrency string `json:"display_currency"`
	IncludeInactive bool   `json:"include_inactive"`
	// SavingsPercent overrides the configured yearly-billing discount; 0 uses it.
	SavingsPercent float64               `json:"savings_percent"`
	Filters        []*types.CommonFilter `json:"filters"`
}

func (r *DashboardRequest) options() spending.Options {
	return spending.Options{IncludeInactive: r.IncludeInactive, DisplayCurrency: r.DisplayCurrency}
}

func bindDashboard(c *gin.Context) (*DashboardRequest, bool) {
	var req DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
		return nil, false
	}
	return &req, true
}

func loadError(c *gin.Context, err error) {
	if errors.Is(err, subsvc.ErrInvalidFilter) {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
}

// tenantData is everything a dashboard call reads for one tenant.
type tenantData struct {
	records []spending.Record
	lookups spending.Lookups
}

func loadTenant(ctx context.Context, store TenantStore, req *DashboardRequest, categories, members bool) (*tenantData, error) {
	var data tenantData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subs, err := store.ListTenantSubscriptions(gctx, req.TenantID, req.Filters)
		data.records = spending.RecordsFromModels(subs)
		return err
	})
	if categories {
		g.Go(func() (err error) {
			data.lookups.Categories, err = store.CategoryNames(gctx, req.TenantID)
			return err
		})
	}
	if members {
		g.Go(func() (err error) {
			data.lookups.Members, err = store.MemberNames(gctx, req.TenantID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// @Summary      Dashboard summary
// @Description  Returns monthly and annual totals, category and member breakdowns, savings estimate and upcoming renewals for a tenant in one display currency.
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Param        request body DashboardRequest true "Dashboard request"
// @Success      200  {object}  handlers.RespDashboardSummary
// @Router       /api/v1/dashboard/summary [post]
func ApiDashboardSummary(store TenantStore, svc *spending.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDashboard(c)
		if !ok {
			return
		}
		data, err := loadTenant(c.Request.Context(), store, req, true, true)
		if err != nil {
			loadError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(svc.Summary(c.Request.Context(), data.records, data.lookups, req.SavingsPercent, req.options())))
	}
}

// @Summary      Category totals
// @Description  Monthly spend per category, largest first.
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Param        request body DashboardRequest true "Dashboard request"
// @Success      200  {object}  handlers.RespBreakdown
// @Router       /api/v1/dashboard/category_totals [post]
func ApiCategoryTotals(store TenantStore, svc *spending.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDashboard(c)
		if !ok {
			return
		}
		data, err := loadTenant(c.Request.Context(), store, req, true, false)
		if err != nil {
			loadError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(svc.CategoryTotals(c.Request.Context(), data.records, data.lookups.Categories, req.options())))
	}
}

// @Summary      Member totals
// @Description  Monthly spend per household member, largest first.
// @Tags         Dashboard
// @Accept       json
// @Produce      json
// @Param        request body DashboardRequest true "Dashboard request"
// @Success      200  {object}  handlers.RespBreakdown
// @Router       /api/v1/dashboard/member_totals [post]
func ApiMemberTotals(store TenantStore, svc *spending.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, ok := bindDashboard(c)
		if !ok {
			return
		}
		data, err := loadTenant(c.Request.Context(), store, req, false, true)
		if err != nil {
			loadError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OKT(svc.MemberTotals(c.Request.Context(), data.records, data.lookups.Members, req.options())))
	}
}

func RegisterDashboardRoutes(r gin.IRouter, store TenantStore, svc *spending.Service) {
	r.POST("/summary", ApiDashboardSummary(store, svc))
	r.POST("/category_totals", ApiCategoryTotals(store, svc))
	r.POST("/member_totals", ApiMemberTotals(store, svc))
}
