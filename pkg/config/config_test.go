package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, EnvDev, c.Env)
	require.Equal(t, 8888, c.Server.Port)
	require.Equal(t, "IDR", c.Currency.BaseCurrency)
	require.Equal(t, time.Hour, c.Currency.CacheTTL)
	require.Equal(t, 4, c.Currency.LookupConcurrency)
	require.Equal(t, 15.0, c.Analytics.SavingsPercent)
	require.Equal(t, 24.0, c.Analytics.LifespanMonths)
	require.Equal(t, 10*time.Second, c.Maintenance.CacheTTL)
	require.True(t, c.Jobs.Enabled)
}

func TestNew_FileAndPlans(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.yaml")
	body := `
currency:
  base_currency: usd
  warm_pairs: ["USD/IDR", "eur / usd"]
plans:
  - id: pro_monthly
    name: Pro
    billing_cycle: monthly
  - id: team_yearly
    billing_cycle: yearly
`
	require.NoError(t, os.WriteFile(file, []byte(body), 0o600))
	t.Setenv("APP_CONFIG_FILE", file)

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, "USD", c.Currency.BaseCurrency)

	pairs, err := c.ParseWarmPairs()
	require.NoError(t, err)
	require.Equal(t, []CurrencyPair{{From: "USD", To: "IDR"}, {From: "EUR", To: "USD"}}, pairs)

	require.Equal(t, map[string]string{"pro_monthly": "Pro", "team_yearly": "team_yearly"}, c.PlanNames())
	require.NotNil(t, c.GetPlanByID("pro_monthly"))
	require.Nil(t, c.GetPlanByID("nope"))
}

func TestParseWarmPairs_Invalid(t *testing.T) {
	c := &Config{Currency: CurrencyConfig{WarmPairs: []string{"USDIDR"}}}
	_, err := c.ParseWarmPairs()
	require.Error(t, err)
}
