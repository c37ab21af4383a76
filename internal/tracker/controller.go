package tracker

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/nmthang/awaybot/internal/clock"
	"github.com/nmthang/awaybot/internal/db"
	"github.com/nmthang/awaybot/internal/models"
)

// Gateway is the durable store the controller writes through after every
// mutation and restores from at process start.
type Gateway interface {
	SaveSession(*models.Session) error
	CloseSession(*models.Session, *models.LedgerEntry) error
	RestoreSessions() ([]models.Session, error)
	DailyTotals(userID, day string) (db.DayTotals, error)
}

// GroupRegistry answers whether a group may host activities. Owned by the
// configuration collaborator; read-only here.
type GroupRegistry interface {
	IsRegistered(groupID string) (bool, error)
}

// ActiveView is a read-only snapshot of a running activity.
type ActiveView struct {
	UserID       string
	GroupID      string
	DisplayName  string
	Kind         string
	Label        string
	LimitMinutes int
	StartedAt    time.Time
	Deadline     time.Time
	Remaining    time.Duration
}

// ClosedSummary is returned when an activity closes, for display by the
// transport collaborator.
type ClosedSummary struct {
	Entry models.LedgerEntry
	Label string
	// Running totals for the user's day, including this entry.
	Day db.DayTotals
}

// Controller runs the per-user activity state machine. All mutations are
// serialized through one mutex, so a voluntary return and a watcher's
// forced timeout can never both close the same session instance.
type Controller struct {
	mu       sync.Mutex
	clock    clock.Clock
	catalog  *models.Catalog
	store    *Store
	gateway  Gateway
	registry GroupRegistry
	notifier Notifier

	watchers map[string]*watcher

	// test seams; defaults are real time waits and the standard stages
	wait   waitFunc
	stages []warnStage
}

// NewController wires the state machine to its collaborators.
func NewController(clk clock.Clock, catalog *models.Catalog, gateway Gateway, registry GroupRegistry, notifier Notifier) *Controller {
	return &Controller{
		clock:    clk,
		catalog:  catalog,
		store:    NewStore(),
		gateway:  gateway,
		registry: registry,
		notifier: notifier,
		watchers: make(map[string]*watcher),
		wait:     realWait,
		stages:   defaultStages,
	}
}

// Restore loads persisted session rows and re-arms a countdown watcher for
// every session that was active when the process last stopped. Watchers are
// computed against the current wall clock, so elapsed warning stages are
// skipped and an already-overdue session is force-closed promptly.
func (c *Controller) Restore() error {
	sessions, err := c.gateway.RestoreSessions()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Load(sessions)
	for _, sess := range c.store.Active() {
		c.watchers[sess.UserID] = c.spawnWatcher(sess.UserID, sess.Seq, sess.Deadline())
	}
	return nil
}

// StartActivity begins an away activity for the user.
//
// Preconditions, in order: the group must be registered, the user must not
// already be away, and the kind must exist in the catalog; each failure is
// a distinct Rejection. On success a countdown watcher is armed and the new
// state is persisted. If persisting fails the session is still started and
// the returned *PersistenceError reports the at-risk write alongside the
// non-nil view.
func (c *Controller) StartActivity(groupID, userID, kindName, displayName string) (*ActiveView, error) {
	registered, err := c.registry.IsRegistered(groupID)
	if err != nil {
		return nil, fmt.Errorf("group lookup failed: %w", err)
	}
	if !registered {
		return nil, &Rejection{Code: RejectGroupNotRegistered}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.store.GetOrCreate(userID)
	if sess.Active() {
		return nil, &Rejection{Code: RejectAlreadyActive, ActiveKind: c.kindLabel(sess.Kind)}
	}

	kind, ok := c.catalog.Lookup(kindName)
	if !ok {
		return nil, &Rejection{Code: RejectUnknownKind, Kind: kindName}
	}

	now := c.clock.Now()
	sess.Begin(groupID, displayName, kind, now)

	var persistErr error
	if err := c.gateway.SaveSession(sess); err != nil {
		persistErr = &PersistenceError{Op: "start", Err: err}
		c.logf("%v", persistErr)
	}

	c.watchers[userID] = c.spawnWatcher(userID, sess.Seq, sess.Deadline())
	view := c.viewOf(sess, now)
	return &view, persistErr
}

// EndActivity closes the user's activity voluntarily. The bound watcher is
// cancelled (a no-op if it already fired or was cancelled) and exactly one
// ledger entry is appended. Returns NoActiveSession if the user is idle.
func (c *Controller) EndActivity(userID string) (*ClosedSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.store.Get(userID)
	if sess == nil || !sess.Active() {
		return nil, &Rejection{Code: RejectNoActiveSession}
	}

	return c.closeLocked(sess, false)
}

// ForceTimeout closes the user's current activity as overdue. A no-op if
// the session already closed. Normally driven by the countdown engine; this
// entry point lets an operator force the same transition.
func (c *Controller) ForceTimeout(userID string) {
	c.mu.Lock()
	sess := c.store.Get(userID)
	if sess == nil || !sess.Active() {
		c.mu.Unlock()
		return
	}
	seq := sess.Seq
	c.mu.Unlock()

	c.forceTimeout(userID, seq)
}

// forceTimeout is the countdown engine's final transition. The seq guard
// makes it a no-op when the session instance it was armed for has already
// closed, so a raced EndActivity wins and the close happens exactly once.
func (c *Controller) forceTimeout(userID string, seq uint64) {
	c.mu.Lock()

	sess := c.store.Get(userID)
	if sess == nil || !sess.Active() || sess.Seq != seq {
		c.mu.Unlock()
		return
	}

	summary, err := c.closeLocked(sess, true)
	if err != nil {
		// closeLocked only errors on persistence; the close still stands.
		c.logf("forced timeout for %s: %v", userID, err)
	}
	groupID := summary.Entry.GroupID
	text := timeoutText(summary)
	c.mu.Unlock()

	if err := c.notifier.Notify(groupID, text); err != nil {
		c.logf("timeout notice delivery failed for %s: %v", userID, err)
	}
}

// closeLocked performs the shared Active -> Idle transition. Caller holds
// the lock and has verified the session is active.
func (c *Controller) closeLocked(sess *models.Session, forced bool) (*ClosedSummary, error) {
	if w, ok := c.watchers[sess.UserID]; ok {
		w.Cancel()
		delete(c.watchers, sess.UserID)
	}

	now := c.clock.Now()
	entry := models.CloseEntry(sess, now, forced)
	sess.Reset()

	var persistErr error
	if err := c.gateway.CloseSession(sess, &entry); err != nil {
		persistErr = &PersistenceError{Op: "close", Err: err}
		c.logf("%v", persistErr)
	}

	totals, err := c.gateway.DailyTotals(entry.UserID, entry.Day)
	if err != nil {
		c.logf("daily totals unavailable for %s: %v", entry.UserID, err)
	}

	return &ClosedSummary{
		Entry: entry,
		Label: c.kindLabel(entry.Kind),
		Day:   totals,
	}, persistErr
}

// QueryActive returns a snapshot of the user's running activity, or nil.
func (c *Controller) QueryActive(userID string) *ActiveView {
	c.mu.Lock()
	defer c.mu.Unlock()

	sess := c.store.Get(userID)
	if sess == nil || !sess.Active() {
		return nil
	}
	view := c.viewOf(sess, c.clock.Now())
	return &view
}

// Snapshot returns all running activities ordered by nearest deadline.
func (c *Controller) Snapshot() []ActiveView {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	views := make([]ActiveView, 0)
	for _, sess := range c.store.Active() {
		views = append(views, c.viewOf(sess, now))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Deadline.Before(views[j].Deadline) })
	return views
}

// Shutdown cancels every watcher and waits for them to exit.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	pending := make([]*watcher, 0, len(c.watchers))
	for userID, w := range c.watchers {
		w.Cancel()
		pending = append(pending, w)
		delete(c.watchers, userID)
	}
	c.mu.Unlock()

	for _, w := range pending {
		<-w.done
	}
}

func (c *Controller) viewOf(sess *models.Session, now time.Time) ActiveView {
	deadline := sess.Deadline()
	return ActiveView{
		UserID:       sess.UserID,
		GroupID:      sess.GroupID,
		DisplayName:  sess.DisplayName,
		Kind:         sess.Kind,
		Label:        c.kindLabel(sess.Kind),
		LimitMinutes: sess.LimitMinutes,
		StartedAt:    *sess.StartedAt,
		Deadline:     deadline,
		Remaining:    deadline.Sub(now),
	}
}

// kindLabel resolves a display label, falling back to the raw name for
// kinds no longer present in the catalog.
func (c *Controller) kindLabel(name string) string {
	if kind, ok := c.catalog.Lookup(name); ok {
		return kind.Label
	}
	return name
}

func (c *Controller) logf(format string, args ...any) {
	log.Printf("tracker: "+format, args...)
}

func timeoutText(s *ClosedSummary) string {
	minutes := int(s.Entry.DurationMinutes)
	seconds := int(s.Entry.DurationMinutes*60) % 60
	if s.Entry.Violation {
		return fmt.Sprintf("⛔ TIME LIMIT EXCEEDED!\nMember: %s\nActivity: %s\nAllowed: %d min\nActual: %02d:%02d\nRecorded as a violation.",
			s.Entry.DisplayName, s.Label, s.Entry.LimitMinutes, minutes, seconds)
	}
	return fmt.Sprintf("⏰ Time is up.\nMember: %s\nActivity: %s\nAllowed: %d min\nClosed at the limit and recorded.",
		s.Entry.DisplayName, s.Label, s.Entry.LimitMinutes)
}
