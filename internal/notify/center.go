// Package notify manages the transient per-session toast notification.
// One notification is visible per session at a time; showing a new one
// replaces the current. Expiry is deadline-based: reads past the TTL see no
// notification regardless of timer scheduling.
package notify

import (
	"sync"
	"time"

	"github.com/vellum-supply/storefront/internal/obs"
)

// DefaultTTL matches the storefront's auto-dismiss delay.
const DefaultTTL = 4 * time.Second

// Action is the optional call-to-action attached to a notification.
type Action struct {
	Label  string `json:"label"`
	Screen string `json:"screen"`
}

// Notification is a transient message shown to one session.
type Notification struct {
	Message   string    `json:"message"`
	Action    *Action   `json:"action,omitempty"`
	ShownAt   time.Time `json:"shownAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Center holds the visible notification per session.
type Center struct {
	mu        sync.Mutex
	ttl       time.Duration
	now       func() time.Time
	bySession map[string]Notification
}

// NewCenter constructs a Center with the given auto-dismiss TTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:       ttl,
		now:       time.Now,
		bySession: make(map[string]Notification),
	}
}

// Show displays a notification for the session, replacing any current one.
func (c *Center) Show(sessionID, message string, action *Action) Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := Notification{
		Message:   message,
		Action:    action,
		ShownAt:   now,
		ExpiresAt: now.Add(c.ttl),
	}
	c.bySession[sessionID] = n
	obs.ObserveNotificationShown()
	return n
}

// Current returns the visible notification for the session, if any.
// Expired entries are dropped on read.
func (c *Center) Current(sessionID string) (Notification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.bySession[sessionID]
	if !ok {
		return Notification{}, false
	}
	if !c.now().Before(n.ExpiresAt) {
		delete(c.bySession, sessionID)
		return Notification{}, false
	}
	return n, true
}

// Dismiss removes the session's notification. Absent sessions are a no-op.
func (c *Center) Dismiss(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bySession, sessionID)
}

// Sweep drops all expired notifications. Called periodically to reclaim
// memory for sessions that never read their toast.
func (c *Center) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	removed := 0
	for id, n := range c.bySession {
		if !now.Before(n.ExpiresAt) {
			delete(c.bySession, id)
			removed++
		}
	}
	return removed
}

// WithClock overrides the time source. Test hook.
func (c *Center) WithClock(now func() time.Time) *Center {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}
