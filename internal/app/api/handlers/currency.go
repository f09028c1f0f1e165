package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fatflowers/subtrack/internal/app/service/currency"
	"github.com/fatflowers/subtrack/pkg/response"
)

type ConvertRequest struct {
	Amount float64 `json:"amount"`
	// From and To default to the base currency when empty.
	From string `json:"from"`
	To   string `json:"to"`
}

// @Summary      Convert an amount
// @Description  Converts amount from one currency to another using the latest stored rate. When no rate is available the amount is returned unchanged with converted=false.
// @Tags         Currency
// @Accept       json
// @Produce      json
// @Param        request body ConvertRequest true "Conversion request"
// @Success      200  {object}  handlers.RespConvert
// @Router       /api/v1/currency/convert [post]
func ApiConvert(conv *currency.Converter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConvertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(conv.ConvertResult(c.Request.Context(), req.Amount, req.From, req.To)))
	}
}

func RegisterCurrencyRoutes(r gin.IRouter, conv *currency.Converter) {
	r.POST("/convert", ApiConvert(conv))
}
