package handlers

import (
	"github.com/fatflowers/subtrack/internal/app/service/analytics"
	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/internal/app/service/spending"
	"github.com/fatflowers/subtrack/internal/models"
	"github.com/fatflowers/subtrack/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespDashboardSummary wraps spending.Summary in the standard envelope.
type RespDashboardSummary struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    spending.Summary         `json:"data"`
}

type RespBreakdown struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    []spending.BreakdownRow  `json:"data"`
}

type RespConvert struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    currency.Result          `json:"data"`
}

// RespRevenueStatistic wraps analytics.RevenueStatisticResponse in the standard envelope.
type RespRevenueStatistic struct {
	Code    response.APIResponseCode           `json:"code"`
	Message string                             `json:"message"`
	Data    analytics.RevenueStatisticResponse `json:"data"`
}

type RespExchangeRate struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    models.ExchangeRate      `json:"data"`
}
