package currency

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fatflowers/subtrack/pkg/logctx"
	"github.com/fatflowers/subtrack/pkg/metrics"
)

// Result is a conversion outcome. Converted is false when no rate was
// available and Value is the original, unconverted amount.
type Result struct {
	Value     float64 `json:"value"`
	Converted bool    `json:"converted"`
}

// Pair is a normalized from→to currency pair.
type Pair struct {
	From string
	To   string
}

// Converter applies resolved rates to amounts. Missing rates never fail a
// conversion: the amount is returned as-is and a warning is logged.
type Converter struct {
	resolver    RateResolver
	base        string
	concurrency int
	log         *zap.SugaredLogger
}

func NewConverter(resolver RateResolver, baseCurrency string, concurrency int, log *zap.SugaredLogger) *Converter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Converter{resolver: resolver, base: NormalizeCode(baseCurrency), concurrency: concurrency, log: log}
}

// BaseCurrency is assumed wherever a currency is missing.
func (c *Converter) BaseCurrency() string { return c.base }

func (c *Converter) code(code string) string {
	if code = NormalizeCode(code); code != "" {
		return code
	}
	return c.base
}

// Pair normalizes from and to, substituting the base currency for empty codes.
func (c *Converter) Pair(from, to string) Pair {
	return Pair{From: c.code(from), To: c.code(to)}
}

func (c *Converter) Convert(ctx context.Context, amount float64, from, to string) float64 {
	return c.ConvertResult(ctx, amount, from, to).Value
}

func (c *Converter) ConvertResult(ctx context.Context, amount float64, from, to string) Result {
	p := c.Pair(from, to)
	if p.From == p.To {
		return Result{Value: amount, Converted: true}
	}
	rate, ok := c.resolver.GetRate(ctx, p.From, p.To)
	if !ok {
		metrics.IncCounterVec(metrics.ConversionFallbacks, p.From, p.To)
		logctx.FromCtx(ctx, c.log).Warnw("currency conversion skipped, using original amount",
			"from", p.From, "to", p.To, "amount", amount)
		return Result{Value: amount, Converted: false}
	}
	return Result{Value: amount * rate, Converted: true}
}

// Prepare resolves every distinct pair once, concurrently, and returns a table
// that converts synchronously. Identity pairs need no lookup.
func (c *Converter) Prepare(ctx context.Context, pairs []Pair) *RateTable {
	table := &RateTable{rates: make(map[Pair]float64), base: c.base}

	distinct := make([]Pair, 0, len(pairs))
	seen := make(map[Pair]struct{}, len(pairs))
	for _, p := range pairs {
		p = c.Pair(p.From, p.To)
		if p.From == p.To {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		distinct = append(distinct, p)
	}

	rates := make([]float64, len(distinct))
	found := make([]bool, len(distinct))
	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, p := range distinct {
		g.Go(func() error {
			rates[i], found[i] = c.resolver.GetRate(ctx, p.From, p.To)
			return nil
		})
	}
	_ = g.Wait()

	log := logctx.FromCtx(ctx, c.log)
	for i, p := range distinct {
		if !found[i] {
			metrics.IncCounterVec(metrics.ConversionFallbacks, p.From, p.To)
			log.Warnw("currency conversion skipped, using original amounts", "from", p.From, "to", p.To)
			continue
		}
		table.rates[p] = rates[i]
	}
	return table
}

// RateTable is an immutable set of resolved rates produced by Prepare.
type RateTable struct {
	rates map[Pair]float64
	base  string
}

// Convert applies the prepared rate for from→to. Pairs without a rate return
// the original amount with Converted=false.
func (t *RateTable) Convert(amount float64, from, to string) Result {
	from, to = t.code(from), t.code(to)
	if from == to {
		return Result{Value: amount, Converted: true}
	}
	rate, ok := t.rates[Pair{From: from, To: to}]
	if !ok {
		return Result{Value: amount, Converted: false}
	}
	return Result{Value: amount * rate, Converted: true}
}

func (t *RateTable) code(code string) string {
	if code = NormalizeCode(code); code != "" {
		return code
	}
	return t.base
}

// Len reports how many non-identity pairs were resolved.
func (t *RateTable) Len() int { return len(t.rates) }
