package notifications

import (
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-core/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-core/pkg/errors"
	"github.com/google/uuid"
)

// DefaultDismissAfter is how long a toast stays visible without a manual dismiss.
const DefaultDismissAfter = 5 * time.Second

// Options configures a Queue. Zero values fall back to defaults.
type Options struct {
	DismissAfter time.Duration
	Scheduler    Scheduler
	Now          func() time.Time
	// OnPush and OnRemove run after the queue lock is released.
	OnPush   func(Notification)
	OnRemove func(Notification, enums.RemovalReason)
}

type entry struct {
	notification Notification
	cancel       Cancel
}

// Queue is an ordered list of live notifications. Each push schedules its own
// removal; whichever of dismiss or expiry happens first removes the entry and the
// other becomes a no-op.
type Queue struct {
	mu      sync.Mutex
	entries []entry
	closed  bool

	dismissAfter time.Duration
	scheduler    Scheduler
	now          func() time.Time
	onPush       func(Notification)
	onRemove     func(Notification, enums.RemovalReason)
}

func NewQueue(opts Options) *Queue {
	q := &Queue{
		dismissAfter: opts.DismissAfter,
		scheduler:    opts.Scheduler,
		now:          opts.Now,
		onPush:       opts.OnPush,
		onRemove:     opts.OnRemove,
	}
	if q.dismissAfter <= 0 {
		q.dismissAfter = DefaultDismissAfter
	}
	if q.scheduler == nil {
		q.scheduler = RealScheduler()
	}
	if q.now == nil {
		q.now = time.Now
	}
	return q
}

// Push appends a notification and schedules its expiry. subjectName is ignored for
// kinds that do not show a subject.
func (q *Queue) Push(kind enums.NotificationKind, title, message, subjectName string) (uuid.UUID, error) {
	if !kind.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid notification kind").
			WithDetails(map[string]any{"kind": kind.String()})
	}
	if !kind.ShowsSubject() {
		subjectName = ""
	}

	n := Notification{
		ID:          uuid.New(),
		Kind:        kind,
		Title:       strings.TrimSpace(title),
		Message:     strings.TrimSpace(message),
		SubjectName: strings.TrimSpace(subjectName),
		CreatedAt:   q.now().UTC(),
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeConflict, "notification queue is closed")
	}
	q.entries = append(q.entries, entry{notification: n})
	q.mu.Unlock()

	if q.onPush != nil {
		q.onPush(n)
	}
	q.arm(n.ID)
	return n.ID, nil
}

// arm schedules expiry once the push has been observed, so a removal is never
// reported ahead of its push.
func (q *Queue) arm(id uuid.UUID) {
	cancel := q.scheduler.AfterFunc(q.dismissAfter, func() {
		q.remove(id, enums.RemovalReasonExpired)
	})

	q.mu.Lock()
	for i := range q.entries {
		if q.entries[i].notification.ID == id {
			q.entries[i].cancel = cancel
			q.mu.Unlock()
			return
		}
	}
	q.mu.Unlock()
	cancel()
}

// Dismiss removes id and cancels its timer. Unknown or already removed IDs return false.
func (q *Queue) Dismiss(id uuid.UUID) bool {
	return q.remove(id, enums.RemovalReasonDismissed)
}

// List returns the live notifications in creation order.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e.notification)
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Clear removes every live notification and cancels pending timers.
func (q *Queue) Clear() int {
	q.mu.Lock()
	removed := q.drainLocked()
	q.mu.Unlock()

	q.notifyRemoved(removed, enums.RemovalReasonCleared)
	return len(removed)
}

// Closed reports whether the queue rejects pushes.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// closeIfEmpty closes the queue only when nothing is live.
func (q *Queue) closeIfEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || len(q.entries) > 0 {
		return false
	}
	q.closed = true
	return true
}

// Close clears the queue and rejects further pushes.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	removed := q.drainLocked()
	q.mu.Unlock()

	q.notifyRemoved(removed, enums.RemovalReasonCleared)
}

func (q *Queue) remove(id uuid.UUID, reason enums.RemovalReason) bool {
	q.mu.Lock()
	idx := -1
	for i := range q.entries {
		if q.entries[i].notification.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	e := q.entries[idx]
	q.entries = append(q.entries[:idx], q.entries[idx+1:]...)
	q.mu.Unlock()

	if reason != enums.RemovalReasonExpired && e.cancel != nil {
		e.cancel()
	}
	q.notifyRemoved([]Notification{e.notification}, reason)
	return true
}

func (q *Queue) drainLocked() []Notification {
	removed := make([]Notification, 0, len(q.entries))
	for _, e := range q.entries {
		if e.cancel != nil {
			e.cancel()
		}
		removed = append(removed, e.notification)
	}
	q.entries = nil
	return removed
}

func (q *Queue) notifyRemoved(removed []Notification, reason enums.RemovalReason) {
	if q.onRemove == nil {
		return
	}
	for _, n := range removed {
		q.onRemove(n, reason)
	}
}
