package ratelimit

import (
	"sync"
	"time"

	"github.com/odontosys/ai-backend/internal/config"
	"github.com/odontosys/ai-backend/internal/entity"
)

// Limiter enforces per-tenant sliding windows over requests per minute,
// hour and day. Windows with a zero ceiling are disabled.
//
// State is in-memory; a multi-instance deployment gets per-instance limits.
type Limiter struct {
	cfg config.RateLimitConfig

	mu      sync.Mutex
	events  map[string][]time.Time
	nowFunc func() time.Time
}

func NewLimiter(cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		cfg:     cfg,
		events:  make(map[string][]time.Time),
		nowFunc: time.Now,
	}
}

// Allow records one request for tenant and reports whether it is within all
// configured windows. Exceeding any window returns
// entity.ErrRateLimitExceeded without recording the request.
func (l *Limiter) Allow(tenant string) error {
	now := l.nowFunc()

	l.mu.Lock()
	defer l.mu.Unlock()

	events := l.pruneLocked(tenant, now)

	if err := checkWindow(events, now, time.Minute, l.cfg.PerMinute); err != nil {
		return err
	}
	if err := checkWindow(events, now, time.Hour, l.cfg.PerHour); err != nil {
		return err
	}
	if err := checkWindow(events, now, 24*time.Hour, l.cfg.PerDay); err != nil {
		return err
	}

	l.events[tenant] = append(events, now)
	return nil
}

// pruneLocked drops events older than the widest window. Must hold l.mu.
func (l *Limiter) pruneLocked(tenant string, now time.Time) []time.Time {
	cutoff := now.Add(-24 * time.Hour)

	events := l.events[tenant]
	kept := events[:0]
	for _, t := range events {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) == 0 {
		delete(l.events, tenant)
		return nil
	}

	l.events[tenant] = kept
	return kept
}

func checkWindow(events []time.Time, now time.Time, window time.Duration, limit int) error {
	if limit <= 0 {
		return nil
	}

	cutoff := now.Add(-window)
	count := 0
	for _, t := range events {
		if t.After(cutoff) {
			count++
		}
	}

	if count >= limit {
		return entity.ErrRateLimitExceeded
	}

	return nil
}
