package cost

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
)

// modelPricing holds per-model pricing in USD per 1M tokens.
type modelPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

var priceTable = map[string]modelPricing{
	"gpt-4o":                 {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":            {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"text-embedding-3-small": {InputPerMillion: 0.02},
	"text-embedding-3-large": {InputPerMillion: 0.13},
}

// EstimateCost returns the estimated cost in USD for the given model and
// token counts. Unknown models (self-hosted, mock) cost 0.
func EstimateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, ok := priceTable[model]
	if !ok {
		return 0
	}

	inputCost := float64(inputTokens) / 1_000_000.0 * pricing.InputPerMillion
	outputCost := float64(outputTokens) / 1_000_000.0 * pricing.OutputPerMillion
	return inputCost + outputCost
}

// Tracker accumulates completion spend against a monthly budget. Crossing
// the alert threshold logs a warning once per month; exhausting the budget
// makes Authorize fail until the month rolls over.
//
// Tracker is safe for concurrent use.
type Tracker struct {
	cfg    config.CostConfig
	logger *zap.Logger

	mu      sync.Mutex
	month   time.Month
	year    int
	spent   float64
	alerted bool
	nowFunc func() time.Time
}

func NewTracker(cfg config.CostConfig, logger *zap.Logger) *Tracker {
	return &Tracker{
		cfg:     cfg,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Authorize reports whether another completion may be spent this month.
func (t *Tracker) Authorize() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked()

	if t.cfg.MonthlyBudgetUSD > 0 && t.spent >= t.cfg.MonthlyBudgetUSD {
		return entity.ErrBudgetExceeded
	}

	return nil
}

// Record adds the cost of one completed call to the running monthly total.
func (t *Tracker) Record(model string, inputTokens, outputTokens int) float64 {
	cost := EstimateCost(model, inputTokens, outputTokens)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked()
	t.spent += cost

	if t.cfg.MonthlyBudgetUSD > 0 && !t.alerted &&
		t.spent >= t.cfg.MonthlyBudgetUSD*t.cfg.AlertThreshold {
		t.alerted = true
		t.logger.Warn("monthly AI spend crossed alert threshold",
			zap.Float64("spent_usd", t.spent),
			zap.Float64("budget_usd", t.cfg.MonthlyBudgetUSD),
			zap.Float64("alert_threshold", t.cfg.AlertThreshold),
		)
	}

	return cost
}

// SpentThisMonth returns the accumulated spend of the current month.
func (t *Tracker) SpentThisMonth() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked()
	return t.spent
}

// rolloverLocked resets the accumulator when the month changed. Must hold t.mu.
func (t *Tracker) rolloverLocked() {
	now := t.nowFunc()
	if now.Month() != t.month || now.Year() != t.year {
		t.month = now.Month()
		t.year = now.Year()
		t.spent = 0
		t.alerted = false
	}
}
