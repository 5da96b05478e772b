package quota

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultDailyLimit is the number of upstream calls allowed per calendar day.
const DefaultDailyLimit = 20

const dateLayout = "2006-01-02"

// Tracker counts upstream calls made today and resets at the calendar-day
// boundary of its location. Running out is a soft signal to use fallback
// data, never an error.
//
// State is process-local; separate instances keep separate counts.
type Tracker struct {
	limit   int
	loc     *time.Location
	now     func() time.Time
	limiter *rate.Limiter

	mu    sync.Mutex
	count int
	day   string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the timezone whose calendar days bound the count.
// Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithPerMinute additionally caps calls per minute. Up to n calls may go
// out back to back; after that one call is refilled every minute/n.
// Zero disables the cap.
func WithPerMinute(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), n)
		}
	}
}

// New returns a tracker allowing limit calls per day. A non-positive limit
// falls back to DefaultDailyLimit.
func New(limit int, opts ...Option) *Tracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	t := &Tracker{limit: limit, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	t.day = t.today()
	return t
}

// ResetIfNewDay zeroes the count when the calendar date moved on.
func (t *Tracker) ResetIfNewDay() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

// CanConsume reports whether another upstream call is allowed right now.
func (t *Tracker) CanConsume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	return t.canLocked()
}

// Consume records one upstream attempt. Call it once per attempt, right
// before the call, so failed calls still count.
func (t *Tracker) Consume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	t.consumeLocked()
}

// TryConsume checks and records an attempt in one step. It returns false
// without recording anything when the quota is exhausted.
func (t *Tracker) TryConsume() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	if !t.canLocked() {
		return false
	}
	t.consumeLocked()
	return true
}

// Remaining returns how many calls are left today.
func (t *Tracker) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	if t.count >= t.limit {
		return 0
	}
	return t.limit - t.count
}

// Used returns the number of calls recorded today.
func (t *Tracker) Used() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	return t.count
}

// Limit returns the daily cap.
func (t *Tracker) Limit() int { return t.limit }

func (t *Tracker) today() string {
	return t.now().In(t.loc).Format(dateLayout)
}

func (t *Tracker) resetLocked() {
	if d := t.today(); d != t.day {
		t.count = 0
		t.day = d
	}
}

func (t *Tracker) canLocked() bool {
	if t.count >= t.limit {
		return false
	}
	return t.limiter == nil || t.limiter.TokensAt(t.now()) >= 1
}

func (t *Tracker) consumeLocked() {
	t.count++
	if t.limiter != nil {
		t.limiter.AllowN(t.now(), 1)
	}
}
