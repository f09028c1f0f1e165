package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestSubscription_CurrencyOr(t *testing.T) {
	require.Equal(t, "IDR", (&Subscription{}).CurrencyOr("IDR"))
	require.Equal(t, "IDR", (&Subscription{Currency: "  "}).CurrencyOr("IDR"))
	require.Equal(t, "USD", (&Subscription{Currency: "usd"}).CurrencyOr("IDR"))
}

func TestExchangeRate_EffectiveDate(t *testing.T) {
	d := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r := &ExchangeRate{Date: datatypes.Date(d)}
	require.True(t, r.EffectiveDate().Equal(d))
}
