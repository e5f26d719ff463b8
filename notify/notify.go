// Package notify carries transient user-facing notices, the terminal
// equivalent of the toast banners in the web front-end.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notice levels.
const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// DefaultTTL is how long a notice stays visible before auto-expiring.
const DefaultTTL = 5 * time.Second

// Notice is one dismissible message.
type Notice struct {
	ID      string
	Level   string
	Message string
	At      time.Time
}

// Listener receives the active notices after every change, including
// expiries.
type Listener func(active []Notice)

// Notifier fans notices out to listeners and expires them after a TTL.
type Notifier struct {
	ttl time.Duration

	mu        sync.Mutex
	active    []Notice
	listeners []Listener
}

// New creates a notifier with the default TTL.
func New() *Notifier {
	return NewWithTTL(DefaultTTL)
}

// NewWithTTL creates a notifier with a custom TTL (tests use a short one).
func NewWithTTL(ttl time.Duration) *Notifier {
	return &Notifier{ttl: ttl}
}

// Push publishes a notice and schedules its expiry.
func (n *Notifier) Push(level, message string) Notice {
	notice := Notice{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	}

	n.mu.Lock()
	n.active = append(n.active, notice)
	n.mu.Unlock()
	n.publish()

	time.AfterFunc(n.ttl, func() {
		n.Dismiss(notice.ID)
	})
	return notice
}

// Dismiss removes a notice by id. Dismissing an already-expired notice
// is a no-op.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	kept := n.active[:0]
	removed := false
	for _, notice := range n.active {
		if notice.ID == id {
			removed = true
			continue
		}
		kept = append(kept, notice)
	}
	n.active = kept
	n.mu.Unlock()

	if removed {
		n.publish()
	}
}

// Active returns a snapshot of the visible notices.
func (n *Notifier) Active() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.active))
	copy(out, n.active)
	return out
}

// Listen registers a listener for notice changes.
func (n *Notifier) Listen(fn Listener) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

func (n *Notifier) publish() {
	active := n.Active()
	n.mu.Lock()
	listeners := make([]Listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(active)
	}
}
