package cost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
)

func TestEstimateCost(t *testing.T) {
	t.Run("prices known models per million tokens", func(t *testing.T) {
		// 1M input + 1M output on gpt-4o-mini: 0.15 + 0.60.
		assert.InDelta(t, 0.75, EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000), 1e-9)
		assert.InDelta(t, 12.50, EstimateCost("gpt-4o", 1_000_000, 1_000_000), 1e-9)
	})

	t.Run("embedding models price input only", func(t *testing.T) {
		assert.InDelta(t, 0.02, EstimateCost("text-embedding-3-small", 1_000_000, 0), 1e-9)
	})

	t.Run("unknown models cost nothing", func(t *testing.T) {
		assert.Zero(t, EstimateCost("llama3.1:8b", 1_000_000, 1_000_000))
		assert.Zero(t, EstimateCost("mock", 500, 500))
	})
}

func newTestTracker(cfg config.CostConfig, start time.Time) (*Tracker, *time.Time) {
	now := start
	tr := NewTracker(cfg, zap.NewNop())
	tr.nowFunc = func() time.Time { return now }
	return tr, &now
}

func TestTracker(t *testing.T) {
	start := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	t.Run("accumulates spend", func(t *testing.T) {
		tr, _ := newTestTracker(config.CostConfig{MonthlyBudgetUSD: 100, AlertThreshold: 0.8}, start)

		cost := tr.Record("gpt-4o-mini", 1_000_000, 0)
		assert.InDelta(t, 0.15, cost, 1e-9)
		assert.InDelta(t, 0.15, tr.SpentThisMonth(), 1e-9)
	})

	t.Run("authorize fails once the budget is spent", func(t *testing.T) {
		tr, _ := newTestTracker(config.CostConfig{MonthlyBudgetUSD: 10, AlertThreshold: 0.8}, start)

		require.NoError(t, tr.Authorize())

		// 4M in + 4M out on gpt-4o: 10 + 40 = 50 USD, far past the budget.
		tr.Record("gpt-4o", 4_000_000, 4_000_000)

		assert.ErrorIs(t, tr.Authorize(), entity.ErrBudgetExceeded)
	})

	t.Run("spend resets on month rollover", func(t *testing.T) {
		tr, now := newTestTracker(config.CostConfig{MonthlyBudgetUSD: 10, AlertThreshold: 0.8}, start)

		tr.Record("gpt-4o", 4_000_000, 4_000_000)
		require.ErrorIs(t, tr.Authorize(), entity.ErrBudgetExceeded)

		*now = time.Date(2026, 9, 1, 0, 0, 1, 0, time.UTC)

		assert.NoError(t, tr.Authorize())
		assert.Zero(t, tr.SpentThisMonth())
	})

	t.Run("zero budget disables the gate", func(t *testing.T) {
		tr, _ := newTestTracker(config.CostConfig{AlertThreshold: 0.8}, start)

		tr.Record("gpt-4o", 10_000_000, 10_000_000)
		assert.NoError(t, tr.Authorize())
	})
}
