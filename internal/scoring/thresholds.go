package scoring

import (
	"time"

	"github.com/stefvuck/trailhead/internal/domain"
)

// Thresholds are the working filter cutoffs for one search. Within a
// single search invocation they are only ever relaxed, never tightened.
type Thresholds struct {
	MinQuality   int
	MinAuthority float64
	MinViews     int64
	MaxAgeDays   int
}

// DefaultThresholds returns the static minimums per content type.
func DefaultThresholds(ct domain.ContentType) Thresholds {
	if ct == domain.ContentTypeVideo {
		return Thresholds{
			MinQuality: 55,
			MinViews:   1000,
			MaxAgeDays: 730,
		}
	}
	return Thresholds{
		MinQuality:   50,
		MinAuthority: 50,
		MaxAgeDays:   1095,
	}
}

// Relaxed returns the thresholds after the given relaxation step. Step 0
// is the static configuration; step 1 relaxes minimums by ~30%; step 2
// relaxes them by ~60% and doubles the age window. Relaxation is monotonic
// and bounded: there is no step beyond 2.
func (t Thresholds) Relaxed(step int) Thresholds {
	switch {
	case step <= 0:
		return t
	case step == 1:
		return Thresholds{
			MinQuality:   int(float64(t.MinQuality) * 0.7),
			MinAuthority: t.MinAuthority * 0.7,
			MinViews:     int64(float64(t.MinViews) * 0.7),
			MaxAgeDays:   t.MaxAgeDays,
		}
	default:
		return Thresholds{
			MinQuality:   int(float64(t.MinQuality) * 0.4),
			MinAuthority: t.MinAuthority * 0.4,
			MinViews:     int64(float64(t.MinViews) * 0.4),
			MaxAgeDays:   t.MaxAgeDays * 2,
		}
	}
}

// MaxRelaxSteps bounds adaptive relaxation.
const MaxRelaxSteps = 2

// passes reports whether the scored candidate clears the thresholds.
func (t Thresholds) passes(c *domain.Candidate, now time.Time) bool {
	if c.QualityScore < t.MinQuality {
		return false
	}
	if t.MinAuthority > 0 && c.Quality.Authority < t.MinAuthority {
		return false
	}
	if t.MinViews > 0 && c.ContentType == domain.ContentTypeVideo && c.Metrics.Views < t.MinViews {
		return false
	}
	if t.MaxAgeDays > 0 {
		if age := c.AgeDays(now); age > t.MaxAgeDays {
			return false
		}
	}
	return true
}

// Filter returns the candidates passing the thresholds, preserving order.
func (e *Engine) Filter(candidates []domain.Candidate, t Thresholds) []domain.Candidate {
	now := e.now()
	var out []domain.Candidate
	for _, c := range candidates {
		if t.passes(&c, now) {
			out = append(out, c)
		}
	}
	return out
}

// FilterAdaptive applies the static thresholds, then relaxes them in at
// most MaxRelaxSteps steps until the surviving pool reaches target or the
// relaxed floor is hit. It returns the survivors, the thresholds finally
// applied, and the number of relaxation steps taken.
func (e *Engine) FilterAdaptive(candidates []domain.Candidate, static Thresholds, target int) ([]domain.Candidate, Thresholds, int) {
	applied := static
	survivors := e.Filter(candidates, applied)

	step := 0
	for len(survivors) < target && step < MaxRelaxSteps {
		step++
		applied = static.Relaxed(step)
		survivors = e.Filter(candidates, applied)
	}

	return survivors, applied, step
}
