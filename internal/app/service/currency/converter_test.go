package currency

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubResolver returns fixed rates keyed by "FROM/TO" and counts lookups.
type stubResolver struct {
	mu    sync.Mutex
	rates map[string]float64
	calls map[string]int
}

func newStubResolver(rates map[string]float64) *stubResolver {
	return &stubResolver{rates: rates, calls: map[string]int{}}
}

func (s *stubResolver) GetRate(_ context.Context, from, to string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := from + "/" + to
	s.calls[key]++
	if from == to {
		return 1, true
	}
	r, ok := s.rates[key]
	return r, ok
}

func (s *stubResolver) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func TestConverter_SameCurrencyIsUnchanged(t *testing.T) {
	res := newStubResolver(nil)
	c := NewConverter(res, "IDR", 2, zap.NewNop().Sugar())
	ctx := context.Background()

	require.Equal(t, 50.0, c.Convert(ctx, 50, "USD", "USD"))
	require.Equal(t, 12.34, c.Convert(ctx, 12.34, "usd", " USD"))
	// empty codes mean the base currency on both sides
	require.Equal(t, 7.0, c.Convert(ctx, 7, "", "IDR"))
	require.Equal(t, 0, res.total())
}

func TestConverter_AppliesRate(t *testing.T) {
	c := NewConverter(newStubResolver(map[string]float64{"USD/IDR": 16000}), "IDR", 2, nil)

	r := c.ConvertResult(context.Background(), 2.5, "usd", "")
	require.True(t, r.Converted)
	require.Equal(t, 40000.0, r.Value)
}

func TestConverter_FailSoft(t *testing.T) {
	c := NewConverter(newStubResolver(nil), "IDR", 2, nil)

	r := c.ConvertResult(context.Background(), 99.9, "EUR", "IDR")
	require.False(t, r.Converted)
	require.Equal(t, 99.9, r.Value)
	require.Equal(t, 99.9, c.Convert(context.Background(), 99.9, "EUR", "IDR"))
}

func TestConverter_PrepareResolvesDistinctPairsOnce(t *testing.T) {
	res := newStubResolver(map[string]float64{"USD/IDR": 16000, "EUR/IDR": 17500})
	c := NewConverter(res, "IDR", 3, nil)

	table := c.Prepare(context.Background(), []Pair{
		{From: "USD", To: "IDR"},
		{From: "usd", To: "idr"},
		{From: "EUR", To: ""},
		{From: "", To: "IDR"},
		{From: "GBP", To: "IDR"},
		{From: "USD", To: "IDR"},
	})
	require.Equal(t, 3, res.total(), "USD, EUR and GBP are looked up once each")
	require.Equal(t, 2, table.Len())

	assert.Equal(t, Result{Value: 32000, Converted: true}, table.Convert(2, "USD", "IDR"))
	assert.Equal(t, Result{Value: 17500, Converted: true}, table.Convert(1, "eur", ""))
	assert.Equal(t, Result{Value: 5, Converted: true}, table.Convert(5, "", "IDR"))
	assert.Equal(t, Result{Value: 8, Converted: false}, table.Convert(8, "GBP", "IDR"))
	// pairs not prepared behave like missing rates
	assert.Equal(t, Result{Value: 1, Converted: false}, table.Convert(1, "JPY", "IDR"))
}
