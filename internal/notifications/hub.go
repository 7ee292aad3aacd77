package notifications

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/angelmondragon/storefront-core/pkg/logger"
	"github.com/google/uuid"
)

// MetricsRecorder receives queue lifecycle events.
type MetricsRecorder interface {
	ObservePush(kind string)
	ObserveRemoval(reason string)
}

// HubParams wires a Hub. Logger and Metrics are optional.
type HubParams struct {
	Options Options
	Logger  *logger.Logger
	Metrics MetricsRecorder
}

// Hub owns one Queue per browser session. A session's queue exists only while
// it holds live notifications; it is evicted after its last removal.
type Hub struct {
	mu     sync.Mutex
	queues map[string]*Queue
	opts   Options
	logg   *logger.Logger
}

func NewHub(params HubParams) *Hub {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	opts := params.Options
	if m := params.Metrics; m != nil {
		opts.OnPush = chainPush(opts.OnPush, func(n Notification) { m.ObservePush(n.Kind.String()) })
		opts.OnRemove = chainRemove(opts.OnRemove, func(_ Notification, reason enums.RemovalReason) {
			m.ObserveRemoval(reason.String())
		})
	}
	return &Hub{queues: make(map[string]*Queue), opts: opts, logg: logg}
}

// Lookup returns the session's queue or nil when the session has nothing live.
func (h *Hub) Lookup(sessionID string) *Queue {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queues[sessionID]
}

// Push appends a notification to the session's queue, creating it on demand.
func (h *Hub) Push(sessionID string, kind enums.NotificationKind, title, message, subjectName string) (uuid.UUID, error) {
	for {
		q := h.queue(sessionID)
		id, err := q.Push(kind, title, message, subjectName)
		if err == nil {
			return id, nil
		}
		// evicted between lookup and push
		if q.Closed() && h.Lookup(sessionID) != q {
			continue
		}
		h.evictIfEmpty(sessionID, q)
		return uuid.Nil, err
	}
}

// List returns the session's live notifications without creating a queue.
func (h *Hub) List(sessionID string) []Notification {
	q := h.Lookup(sessionID)
	if q == nil {
		return []Notification{}
	}
	return q.List()
}

// Dismiss removes id from the session's queue. Unknown sessions return false.
func (h *Hub) Dismiss(sessionID string, id uuid.UUID) bool {
	q := h.Lookup(sessionID)
	if q == nil {
		return false
	}
	return q.Dismiss(id)
}

// Drop closes and forgets the session's queue.
func (h *Hub) Drop(sessionID string) bool {
	h.mu.Lock()
	q, ok := h.queues[sessionID]
	delete(h.queues, sessionID)
	h.mu.Unlock()

	if ok {
		q.Close()
	}
	return ok
}

// Sessions returns how many session queues are open.
func (h *Hub) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queues)
}

// Close drops every queue.
func (h *Hub) Close() {
	h.mu.Lock()
	queues := h.queues
	h.queues = make(map[string]*Queue)
	h.mu.Unlock()

	for _, q := range queues {
		q.Close()
	}
}

func (h *Hub) queue(sessionID string) *Queue {
	h.mu.Lock()
	defer h.mu.Unlock()

	if q, ok := h.queues[sessionID]; ok {
		return q
	}

	var q *Queue
	opts := h.opts
	onRemove := opts.OnRemove
	opts.OnRemove = func(n Notification, reason enums.RemovalReason) {
		if onRemove != nil {
			onRemove(n, reason)
		}
		ctx := h.logg.WithFields(context.Background(), map[string]any{
			"session_id":      sessionID,
			"notification_id": n.ID.String(),
			"reason":          reason.String(),
		})
		h.logg.Debug(ctx, "notification removed")
		h.evictIfEmpty(sessionID, q)
	}
	q = NewQueue(opts)
	h.queues[sessionID] = q
	return q
}

// evictIfEmpty forgets q when it is still the session's queue and holds nothing.
// The queue is closed under the hub lock so a racing Push retries on a fresh one.
func (h *Hub) evictIfEmpty(sessionID string, q *Queue) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.queues[sessionID] != q || !q.closeIfEmpty() {
		return
	}
	delete(h.queues, sessionID)
}

func chainPush(a, b func(Notification)) func(Notification) {
	if a == nil {
		return b
	}
	return func(n Notification) {
		a(n)
		b(n)
	}
}

func chainRemove(a, b func(Notification, enums.RemovalReason)) func(Notification, enums.RemovalReason) {
	if a == nil {
		return b
	}
	return func(n Notification, r enums.RemovalReason) {
		a(n, r)
		b(n, r)
	}
}
