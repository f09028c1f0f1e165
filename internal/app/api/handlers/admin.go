package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/fatflowers/subtrack/internal/app/service/analytics"
	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/response"
)

// RateWriter stores exchange rates.
type RateWriter interface {
	UpsertRate(ctx context.Context, rate *models.ExchangeRate) error
}

// MaintenanceSwitch toggles maintenance mode.
type MaintenanceSwitch interface {
	SetActive(ctx context.Context, active bool) error
}

type UpsertExchangeRateRequest struct {
	BaseCurrency   string  `json:"base_currency" binding:"required,len=3"`
	TargetCurrency string  `json:"target_currency" binding:"required,len=3"`
	Rate           float64 `json:"rate" binding:"required,gt=0"`
	// Date is YYYY-MM-DD; empty means today (UTC).
	Date string `json:"date"`
}

type SetMaintenanceRequest struct {
	Active bool `json:"active"`
}

// @Summary      Get Revenue Statistics (Admin)
// @Description  Evaluates the requested revenue statistics (MRR, ARR, churn, distributions, series, forecast) over all platform subscriptions in the base currency.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body analytics.RevenueStatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespRevenueStatistic
// @Router       /api/v1/admin/get_revenue_statistic [post]
func ApiGetRevenueStatistic(svc *analytics.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req analytics.RevenueStatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetRevenueStatistic(c.Request.Context(), &req)
		if errors.Is(err, analytics.ErrInvalidDataItem) || errors.Is(err, analytics.ErrInvalidPeriod) {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Upsert Exchange Rate (Admin)
// @Description  Stores the rate converting one unit of base_currency into target_currency on date, replacing an existing rate for the same pair and date.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body UpsertExchangeRateRequest true "Exchange rate"
// @Success      200  {object}  handlers.RespExchangeRate
// @Router       /api/v1/admin/upsert_exchange_rate [post]
func ApiUpsertExchangeRate(store RateWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertExchangeRateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		day := time.Now().UTC().Truncate(24 * time.Hour)
		if strings.TrimSpace(req.Date) != "" {
			parsed, err := time.Parse(time.DateOnly, strings.TrimSpace(req.Date))
			if err != nil {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid date, want YYYY-MM-DD"))
				return
			}
			day = parsed
		}
		rate := &models.ExchangeRate{
			BaseCurrency:   req.BaseCurrency,
			TargetCurrency: req.TargetCurrency,
			Date:           datatypes.Date(day),
			Rate:           req.Rate,
		}
		if err := store.UpsertRate(c.Request.Context(), rate); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rate))
	}
}

// @Summary      Set Maintenance Mode (Admin)
// @Description  Turns maintenance mode on or off. While on, non-admin API routes answer 503.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body SetMaintenanceRequest true "Maintenance flag"
// @Success      200  {object}  handlers.RespOK
// @Router       /api/v1/admin/set_maintenance [post]
func ApiSetMaintenance(sw MaintenanceSwitch) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetMaintenanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := sw.SetActive(c.Request.Context(), req.Active); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT[any](nil))
	}
}

func RegisterAdminRoutes(r gin.IRouter, stats *analytics.Service, rates RateWriter, sw MaintenanceSwitch) {
	r.POST("/get_revenue_statistic", ApiGetRevenueStatistic(stats))
	r.POST("/upsert_exchange_rate", ApiUpsertExchangeRate(rates))
	r.POST("/set_maintenance", ApiSetMaintenance(sw))
}
