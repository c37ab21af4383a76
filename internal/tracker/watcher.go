package tracker

import (
	"context"
	"fmt"
	"time"
)

// warnStage is one staged warning before the deadline.
type warnStage struct {
	before time.Duration
	urgent bool
}

// defaultStages: a heads-up at one minute out, an urgent warning at twenty
// seconds out. The deadline itself is handled by the forced-timeout step.
var defaultStages = []warnStage{
	{before: time.Minute, urgent: false},
	{before: 20 * time.Second, urgent: true},
}

// waitFunc blocks for d (or returns immediately when d <= 0) and reports
// false if ctx was cancelled first. Tests substitute a stepped fake.
type waitFunc func(ctx context.Context, d time.Duration) bool

func realWait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// watcher is the countdown handle stored alongside an active session.
// Cancel is idempotent and safe after natural completion.
type watcher struct {
	userID string
	seq    uint64
	cancel context.CancelFunc
	done   chan struct{}
}

func (w *watcher) Cancel() {
	w.cancel()
}

// spawnWatcher starts the countdown goroutine for the session instance
// identified by seq. Caller holds the controller lock.
func (c *Controller) spawnWatcher(userID string, seq uint64, deadline time.Time) *watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		userID: userID,
		seq:    seq,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go c.runWatcher(ctx, w, deadline)
	return w
}

// runWatcher sleeps through the staged warning points and finally drives a
// forced timeout. Stages already in the past when the watcher starts (a
// restored session after restart) are skipped, not replayed. Before every
// emission the session is re-checked to still be the same active instance.
func (c *Controller) runWatcher(ctx context.Context, w *watcher, deadline time.Time) {
	defer close(w.done)

	now := c.clock.Now()
	for _, stage := range c.stages {
		target := deadline.Add(-stage.before)
		if !target.After(now) {
			continue
		}
		if !c.waitUntil(ctx, target) {
			return
		}
		target2, text, ok := c.warnCheckpoint(w.userID, w.seq, stage)
		if !ok {
			return
		}
		if err := c.notifier.Notify(target2, text); err != nil {
			c.logf("warning delivery failed for %s: %v", w.userID, err)
		}
	}

	if !c.waitUntil(ctx, deadline) {
		return
	}
	c.forceTimeout(w.userID, w.seq)
}

func (c *Controller) waitUntil(ctx context.Context, target time.Time) bool {
	return c.wait(ctx, target.Sub(c.clock.Now()))
}

// warnCheckpoint re-checks the session under the lock and builds the
// warning message. ok is false when the session has closed or been
// replaced by a later instance, in which case the watcher exits silently.
func (c *Controller) warnCheckpoint(userID string, seq uint64, stage warnStage) (target, text string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.store.Get(userID)
	if sess == nil || !sess.Active() || sess.Seq != seq {
		return "", "", false
	}

	label := c.kindLabel(sess.Kind)
	if stage.urgent {
		text = fmt.Sprintf("🚨 URGENT: %s has only %d seconds left for %s! Return now!",
			sess.DisplayName, int(stage.before.Seconds()), label)
	} else {
		text = fmt.Sprintf("⚠️ WARNING: %s has 1 minute left for %s.",
			sess.DisplayName, label)
	}
	return sess.GroupID, text, true
}
