package tracker

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback. The zero value means "none".
type TimerID uint64

// Scheduler defers callbacks onto the owner's thread.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) TimerID
	Cancel(id TimerID) bool
}

type timer struct {
	id  TimerID
	due time.Time
	fn  func()
}

// Queue is a single-threaded Scheduler. Callbacks never fire on their
// own; they run inside RunDue, which the render loop calls every frame.
// A Queue must only be used from one goroutine.
type Queue struct {
	now    func() time.Time
	nextID TimerID
	timers map[TimerID]timer
}

// NewQueue creates a Queue reading time from now (time.Now if nil).
func NewQueue(now func() time.Time) *Queue {
	if now == nil {
		now = time.Now
	}
	return &Queue{
		now:    now,
		timers: make(map[TimerID]timer),
	}
}

// AfterFunc schedules fn to run once d has elapsed.
func (q *Queue) AfterFunc(d time.Duration, fn func()) TimerID {
	q.nextID++
	id := q.nextID
	q.timers[id] = timer{id: id, due: q.now().Add(d), fn: fn}
	return id
}

// Cancel drops a pending callback. It reports whether one was removed.
func (q *Queue) Cancel(id TimerID) bool {
	if _, ok := q.timers[id]; !ok {
		return false
	}
	delete(q.timers, id)
	return true
}

// Pending returns the number of callbacks waiting to run.
func (q *Queue) Pending() int {
	return len(q.timers)
}

// RunDue runs every callback that is due, oldest first, and returns how
// many ran. Callbacks scheduled while running wait for the next call.
func (q *Queue) RunDue() int {
	now := q.now()
	var due []timer
	for _, t := range q.timers {
		if !t.due.After(now) {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].id < due[j].id
		}
		return due[i].due.Before(due[j].due)
	})

	ran := 0
	for _, t := range due {
		// An earlier callback in this batch may have cancelled it.
		if _, ok := q.timers[t.id]; !ok {
			continue
		}
		delete(q.timers, t.id)
		t.fn()
		ran++
	}
	return ran
}
