package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)}
}

func TestQueue_RunDueOrder(t *testing.T) {
	clock := newFakeClock()
	q := NewQueue(clock.Now)

	var got []string
	q.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	q.AfterFunc(time.Second, func() { got = append(got, "a") })
	q.AfterFunc(5*time.Second, func() { got = append(got, "c") })

	assert.Equal(t, 0, q.RunDue())
	clock.Advance(2 * time.Second)
	assert.Equal(t, 2, q.RunDue())
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, q.Pending())
}

func TestQueue_Cancel(t *testing.T) {
	clock := newFakeClock()
	q := NewQueue(clock.Now)

	ran := false
	id := q.AfterFunc(time.Second, func() { ran = true })
	assert.True(t, q.Cancel(id))
	assert.False(t, q.Cancel(id))
	assert.False(t, q.Cancel(0))

	clock.Advance(time.Hour)
	assert.Equal(t, 0, q.RunDue())
	assert.False(t, ran)
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_RescheduleWaitsForNextRun(t *testing.T) {
	clock := newFakeClock()
	q := NewQueue(clock.Now)

	count := 0
	var fn func()
	fn = func() {
		count++
		q.AfterFunc(0, fn)
	}
	q.AfterFunc(0, fn)

	assert.Equal(t, 1, q.RunDue())
	assert.Equal(t, 1, q.RunDue())
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, q.Pending())
}

func TestQueue_CallbackCancelsLaterOne(t *testing.T) {
	clock := newFakeClock()
	q := NewQueue(clock.Now)

	var second TimerID
	secondRan := false
	q.AfterFunc(time.Second, func() { q.Cancel(second) })
	second = q.AfterFunc(2*time.Second, func() { secondRan = true })

	clock.Advance(3 * time.Second)
	assert.Equal(t, 1, q.RunDue())
	assert.False(t, secondRan)
}
