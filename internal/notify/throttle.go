package notify

import (
	"context"
	"sync"
	"time"
)

// Throttled wraps a Notifier with state-change tracking so that repeated
// failure reports inside the cooldown window are suppressed. Recovery
// notifications bypass the cooldown.
type Throttled struct {
	inner    Notifier
	cooldown time.Duration

	mu       sync.Mutex
	seen     bool // at least one verdict reported
	healthy  bool // last reported state
	lastSent time.Time
}

func NewThrottled(inner Notifier, cooldown time.Duration) *Throttled {
	return &Throttled{inner: inner, cooldown: cooldown}
}

// Report notifies about the outcome of one probe run. It sends on a
// healthy->unhealthy transition (and again once the cooldown elapses while
// still unhealthy), and on an unhealthy->healthy recovery.
func (t *Throttled) Report(ctx context.Context, healthy bool, text string) error {
	if t == nil || t.inner == nil {
		return nil
	}

	t.mu.Lock()
	now := time.Now()
	changed := !t.seen || t.healthy != healthy
	cooled := t.lastSent.IsZero() || now.Sub(t.lastSent) >= t.cooldown
	send := (!healthy && (changed || cooled)) || (healthy && t.seen && changed)
	t.seen = true
	t.healthy = healthy
	if send {
		t.lastSent = now
	}
	t.mu.Unlock()

	if !send {
		return nil
	}

	title := "🔴 Probe UNHEALTHY"
	if healthy {
		title = "🟢 Probe RECOVERED"
	}
	return t.inner.Send(ctx, title, text)
}
