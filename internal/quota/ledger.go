// Package quota bounds outbound call volume and cost per provider with a
// sliding-window ledger.
package quota

import (
	"sync"
	"time"

	"github.com/stefvuck/trailhead/internal/apperr"
)

const (
	WindowMinute = time.Minute
	WindowHour   = time.Hour
	WindowDay    = 24 * time.Hour
)

// Limits are the three ceilings enforced before every provider call.
// A zero value disables the corresponding ceiling.
type Limits struct {
	PerMinute    int
	PerHour      int
	DailyCostCap float64
}

type entry struct {
	at   time.Time
	cost float64
}

// Ledger tracks per-provider request cost over sliding time windows.
// Entries older than the longest window are pruned lazily on each access;
// no background timer is required. Safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	provider string
	limits   Limits
	entries  []entry
	now      func() time.Time
}

type LedgerOption func(*Ledger)

// WithClock injects the time source, used by tests.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

func NewLedger(provider string, limits Limits, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		provider: provider,
		limits:   limits,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Record appends one governed request with the given cost.
func (l *Ledger) Record(cost float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)
	l.entries = append(l.entries, entry{at: now, cost: cost})
}

// CountInWindow returns the number of requests recorded within the last
// window duration.
func (l *Ledger) CountInWindow(window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	count := 0
	cutoff := now.Add(-window)
	for _, e := range l.entries {
		if e.at.After(cutoff) {
			count++
		}
	}
	return count
}

// CostInWindow returns the summed cost of requests within the last window
// duration.
func (l *Ledger) CostInWindow(window time.Duration) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	cost := 0.0
	cutoff := now.Add(-window)
	for _, e := range l.entries {
		if e.at.After(cutoff) {
			cost += e.cost
		}
	}
	return cost
}

// Check verifies every ceiling for a prospective call of the given cost.
// It must be called before any network I/O; a breach yields a typed
// BudgetError so callers can skip instead of retrying.
func (l *Ledger) Check(cost float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if l.limits.PerMinute > 0 {
		if n := l.countLocked(now, WindowMinute); n >= l.limits.PerMinute {
			return apperr.NewBudget(l.provider, WindowMinute, float64(l.limits.PerMinute), float64(n))
		}
	}
	if l.limits.PerHour > 0 {
		if n := l.countLocked(now, WindowHour); n >= l.limits.PerHour {
			return apperr.NewBudget(l.provider, WindowHour, float64(l.limits.PerHour), float64(n))
		}
	}
	if l.limits.DailyCostCap > 0 {
		if c := l.costLocked(now, WindowDay); c+cost > l.limits.DailyCostCap {
			return apperr.NewBudget(l.provider, WindowDay, l.limits.DailyCostCap, c)
		}
	}
	return nil
}

func (l *Ledger) countLocked(now time.Time, window time.Duration) int {
	count := 0
	cutoff := now.Add(-window)
	for _, e := range l.entries {
		if e.at.After(cutoff) {
			count++
		}
	}
	return count
}

func (l *Ledger) costLocked(now time.Time, window time.Duration) float64 {
	cost := 0.0
	cutoff := now.Add(-window)
	for _, e := range l.entries {
		if e.at.After(cutoff) {
			cost += e.cost
		}
	}
	return cost
}

// prune drops entries older than the longest tracked window. Caller must
// hold the mutex.
func (l *Ledger) prune(now time.Time) {
	cutoff := now.Add(-WindowDay)
	idx := 0
	for idx < len(l.entries) && !l.entries[idx].at.After(cutoff) {
		idx++
	}
	if idx > 0 {
		l.entries = append(l.entries[:0], l.entries[idx:]...)
	}
}
