// Package taskqueue is a delay queue of cancellable deferred actions.
//
// A Queue does not own a timer goroutine. The host arms one timer for
// NextDeadline and calls RunDue when it fires; in the TUI that timer is a
// Bubble Tea tick delivered to the update loop. A Queue is not safe for
// concurrent use: it belongs to the single loop that drives it.
package taskqueue

import (
	"cmp"
	"maps"
	"slices"
	"time"
)

// ID identifies a pushed task. IDs are issued in increasing order starting
// at 1 and are never reused by a Queue.
type ID uint64

type task struct {
	id     ID
	due    time.Time
	action func()
}

// Queue holds pending tasks keyed by ID.
type Queue struct {
	now       func() time.Time
	lastID    ID
	tasks     map[ID]*task
	observers map[int]func()
	nextObs   int
}

// Option configures a Queue.
type Option func(*Queue)

// WithClock replaces time.Now as the queue's clock.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// New creates an empty Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		now:       time.Now,
		tasks:     make(map[ID]*task),
		observers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push schedules action to run once delay has elapsed and returns its ID.
func (q *Queue) Push(action func(), delay time.Duration) ID {
	if delay < 0 {
		delay = 0
	}
	q.lastID++
	id := q.lastID
	q.tasks[id] = &task{id: id, due: q.now().Add(delay), action: action}
	return id
}

// Remove cancels the task with id. Unknown or already fired IDs are ignored.
func (q *Queue) Remove(id ID) {
	delete(q.tasks, id)
}

// Clear cancels every pending task.
func (q *Queue) Clear() {
	clear(q.tasks)
}

// Len returns the number of pending tasks.
func (q *Queue) Len() int {
	return len(q.tasks)
}

// Pending reports whether id is still waiting to run.
func (q *Queue) Pending(id ID) bool {
	_, ok := q.tasks[id]
	return ok
}

// NextDeadline returns the earliest due time among pending tasks.
func (q *Queue) NextDeadline() (time.Time, bool) {
	var (
		earliest time.Time
		found    bool
	)
	for _, t := range q.tasks {
		if !found || t.due.Before(earliest) {
			earliest = t.due
			found = true
		}
	}
	return earliest, found
}

// RunDue runs every task due at or before now, ordered by due time and then
// by push order. Tasks pushed by a running action wait for a later call.
// It returns the number of tasks run.
func (q *Queue) RunDue(now time.Time) int {
	var due []*task
	for _, t := range q.tasks {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	slices.SortFunc(due, func(a, b *task) int {
		if c := a.due.Compare(b.due); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return q.runAll(due)
}

// RunAllNow synchronously runs every task pending at the time of the call,
// in push order, ignoring delays. Replay uses it to reach a settled state.
func (q *Queue) RunAllNow() int {
	pending := make([]*task, 0, len(q.tasks))
	for _, t := range q.tasks {
		pending = append(pending, t)
	}
	slices.SortFunc(pending, func(a, b *task) int { return cmp.Compare(a.id, b.id) })
	return q.runAll(pending)
}

// OnExecute registers fn to be called after every task execution. The
// returned function unregisters it.
func (q *Queue) OnExecute(fn func()) (cancel func()) {
	key := q.nextObs
	q.nextObs++
	q.observers[key] = fn
	return func() { delete(q.observers, key) }
}

// runAll executes tasks in the given order, skipping any that were removed
// by an earlier action in the same batch.
func (q *Queue) runAll(tasks []*task) int {
	ran := 0
	for _, t := range tasks {
		if !q.Pending(t.id) {
			continue
		}
		// Removed first so the action runs at most once.
		delete(q.tasks, t.id)
		t.action()
		ran++
		q.notify()
	}
	return ran
}

func (q *Queue) notify() {
	for _, k := range slices.Sorted(maps.Keys(q.observers)) {
		if fn, ok := q.observers[k]; ok {
			fn()
		}
	}
}
