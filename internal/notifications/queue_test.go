package notifications

import (
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-core/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-core/pkg/errors"
	"github.com/google/uuid"
)

type manualTask struct {
	due       time.Duration
	fn        func()
	cancelled bool
	fired     bool
}

// manualScheduler fires callbacks only when Advance is called.
type manualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

func (m *manualScheduler) AfterFunc(d time.Duration, fn func()) Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	task := &manualTask{due: m.now + d, fn: fn}
	m.tasks = append(m.tasks, task)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if task.fired || task.cancelled {
			return false
		}
		task.cancelled = true
		return true
	}
}

func (m *manualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due []*manualTask
	for _, task := range m.tasks {
		if !task.fired && !task.cancelled && task.due <= m.now {
			task.fired = true
			due = append(due, task)
		}
	}
	m.mu.Unlock()

	for _, task := range due {
		task.fn()
	}
}

// fireAll runs every task regardless of cancellation, simulating a timer that
// raced with its own cancellation.
func (m *manualScheduler) fireAll() {
	m.mu.Lock()
	tasks := append([]*manualTask(nil), m.tasks...)
	m.mu.Unlock()
	for _, task := range tasks {
		task.fn()
	}
}

func (m *manualScheduler) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, task := range m.tasks {
		if !task.fired && !task.cancelled {
			n++
		}
	}
	return n
}

type removal struct {
	id     uuid.UUID
	reason enums.RemovalReason
}

func newTestQueue(sched *manualScheduler, removals *[]removal) *Queue {
	return NewQueue(Options{
		DismissAfter: 5 * time.Second,
		Scheduler:    sched,
		OnRemove: func(n Notification, reason enums.RemovalReason) {
			*removals = append(*removals, removal{id: n.ID, reason: reason})
		},
	})
}

func TestPushListsInCreationOrder(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	q := NewQueue(Options{Scheduler: sched})

	first, err := q.Push(enums.NotificationKindSuccess, "Saved", "Product saved", "ignored")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := q.Push(enums.NotificationKindLogin, "Welcome", "Signed in", "Admin User")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := q.List()
	if len(list) != 2 || list[0].ID != first || list[1].ID != second {
		t.Fatalf("unexpected order %+v", list)
	}
	if list[0].SubjectName != "" {
		t.Fatalf("expected subject dropped for success kind, got %q", list[0].SubjectName)
	}
	if list[1].SubjectName != "Admin User" {
		t.Fatalf("expected subject kept for login kind, got %q", list[1].SubjectName)
	}
	if sched.pending() != 2 {
		t.Fatalf("expected 2 pending timers, got %d", sched.pending())
	}
}

func TestPushRejectsInvalidKind(t *testing.T) {
	t.Parallel()

	q := NewQueue(Options{Scheduler: &manualScheduler{}})
	if _, err := q.Push("party", "t", "m", ""); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if q.Len() != 0 {
		t.Fatal("expected queue to stay empty")
	}
}

func TestExpiryRemovesAfterDelay(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	var removals []removal
	q := newTestQueue(sched, &removals)

	id, _ := q.Push(enums.NotificationKindInfo, "Heads up", "Something happened", "")
	sched.Advance(4 * time.Second)
	if q.Len() != 1 {
		t.Fatal("expected notification to be live before the delay")
	}
	sched.Advance(time.Second)
	if q.Len() != 0 {
		t.Fatal("expected notification expired after the delay")
	}
	if len(removals) != 1 || removals[0].id != id || removals[0].reason != enums.RemovalReasonExpired {
		t.Fatalf("unexpected removals %+v", removals)
	}
}

func TestDismissThenExpiryIsNoop(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	var removals []removal
	q := newTestQueue(sched, &removals)

	keep, _ := q.Push(enums.NotificationKindWarning, "Low stock", "Only 2 left", "")
	sched.Advance(2 * time.Second)
	id, _ := q.Push(enums.NotificationKindLogin, "Welcome", "Signed in", "Admin User")

	if !q.Dismiss(id) {
		t.Fatal("expected dismiss to remove the notification")
	}
	if sched.pending() != 1 {
		t.Fatalf("expected dismissed timer cancelled, %d pending", sched.pending())
	}

	before := q.List()
	sched.fireAll()
	after := q.List()

	if len(before) != 1 || before[0].ID != keep {
		t.Fatalf("unexpected state after dismiss %+v", before)
	}
	if len(after) != 0 {
		t.Fatalf("expected only the remaining notification to expire, got %+v", after)
	}
	if len(removals) != 2 || removals[0].reason != enums.RemovalReasonDismissed || removals[1].id != keep {
		t.Fatalf("expected one dismiss and one expiry, got %+v", removals)
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	var removals []removal
	q := newTestQueue(sched, &removals)

	id, _ := q.Push(enums.NotificationKindError, "Failed", "Try again", "")
	if !q.Dismiss(id) {
		t.Fatal("expected first dismiss to succeed")
	}
	if q.Dismiss(id) {
		t.Fatal("expected second dismiss to be a no-op")
	}
	if q.Dismiss(uuid.New()) {
		t.Fatal("expected unknown id to be a no-op")
	}
	if len(removals) != 1 {
		t.Fatalf("expected a single removal, got %d", len(removals))
	}
}

func TestClearAndClose(t *testing.T) {
	t.Parallel()

	sched := &manualScheduler{}
	var removals []removal
	q := newTestQueue(sched, &removals)

	_, _ = q.Push(enums.NotificationKindInfo, "a", "a", "")
	_, _ = q.Push(enums.NotificationKindInfo, "b", "b", "")
	if n := q.Clear(); n != 2 {
		t.Fatalf("expected 2 cleared, got %d", n)
	}
	if sched.pending() != 0 {
		t.Fatal("expected timers cancelled on clear")
	}
	for _, r := range removals {
		if r.reason != enums.RemovalReasonCleared {
			t.Fatalf("unexpected reason %s", r.reason)
		}
	}

	_, _ = q.Push(enums.NotificationKindInfo, "c", "c", "")
	q.Close()
	if q.Len() != 0 {
		t.Fatal("expected close to drain the queue")
	}
	if _, err := q.Push(enums.NotificationKindInfo, "d", "d", ""); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict after close, got %v", err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	t.Parallel()

	q := NewQueue(Options{Scheduler: &manualScheduler{}})
	_, _ = q.Push(enums.NotificationKindInfo, "title", "message", "")
	list := q.List()
	list[0].Title = "changed"

	if q.List()[0].Title != "title" {
		t.Fatal("expected queue state untouched")
	}
}

func TestRealSchedulerExpires(t *testing.T) {
	t.Parallel()

	removed := make(chan enums.RemovalReason, 1)
	q := NewQueue(Options{
		DismissAfter: 10 * time.Millisecond,
		OnRemove: func(_ Notification, reason enums.RemovalReason) {
			removed <- reason
		},
	})
	if _, err := q.Push(enums.NotificationKindSuccess, "ok", "ok", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case reason := <-removed:
		if reason != enums.RemovalReasonExpired {
			t.Fatalf("unexpected reason %s", reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for expiry")
	}
	if q.Len() != 0 {
		t.Fatal("expected queue empty after expiry")
	}
}

func TestConcurrentPushAndDismiss(t *testing.T) {
	t.Parallel()

	q := NewQueue(Options{Scheduler: &manualScheduler{}})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := q.Push(enums.NotificationKindInfo, "t", "m", "")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			q.Dismiss(id)
		}()
	}
	wg.Wait()

	if q.Len() != 0 {
		t.Fatalf("expected all dismissed, got %d", q.Len())
	}
}

// immediateScheduler fires every callback inside AfterFunc.
type immediateScheduler struct{}

func (immediateScheduler) AfterFunc(_ time.Duration, fn func()) Cancel {
	fn()
	return func() bool { return false }
}

func TestPushObservedBeforeExpiry(t *testing.T) {
	t.Parallel()

	var events []string
	q := NewQueue(Options{
		Scheduler: immediateScheduler{},
		OnPush:    func(Notification) { events = append(events, "push") },
		OnRemove: func(_ Notification, reason enums.RemovalReason) {
			events = append(events, "remove:"+reason.String())
		},
	})

	if _, err := q.Push(enums.NotificationKindInfo, "Flash", "Gone already", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0] != "push" || events[1] != "remove:expired" {
		t.Fatalf("expected push before expiry, got %v", events)
	}
	if q.Len() != 0 {
		t.Fatalf("expected queue empty, got %d", q.Len())
	}
}
