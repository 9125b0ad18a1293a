package rush

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled task. Zero is never issued.
type TimerID uint64

// taskClass orders tasks that fall due at the same instant.
type taskClass int

const (
	classTimer    taskClass = iota // One-shot deferred callbacks (landing, expiry)
	classMovement                  // Motion + collision
	classSpawner                   // Spawner families
)

type task struct {
	id     TimerID
	due    time.Duration
	class  taskClass
	seq    uint64
	period time.Duration // 0 for one-shot
	fn     func()
	index  int
}

// taskQueue is a min-heap ordered by (due, class, seq).
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.due != b.due {
		return a.due < b.due
	}
	if a.class != b.class {
		return a.class < b.class
	}
	return a.seq < b.seq
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Scheduler runs periodic loops and one-shot timers on a discrete game
// clock. Time only moves when Advance is called; nothing runs in the
// background. A task always observes Now() equal to its due time.
type Scheduler struct {
	now        time.Duration
	queue      taskQueue
	byID       map[TimerID]*task
	nextID     TimerID
	seq        uint64
	generation uint64 // Bumped by CancelAll to abort an in-progress Advance
}

// NewScheduler creates an empty scheduler at game time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byID: make(map[TimerID]*task),
	}
}

// Now returns the current game time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// After schedules fn to run once, delay after the current game time.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	return s.schedule(delay, 0, classTimer, fn)
}

// every schedules fn to run each period, first firing one period from now.
func (s *Scheduler) every(period time.Duration, class taskClass, fn func()) TimerID {
	if period <= 0 {
		period = time.Millisecond
	}
	return s.schedule(period, period, class, fn)
}

func (s *Scheduler) schedule(delay, period time.Duration, class taskClass, fn func()) TimerID {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	s.seq++
	t := &task{
		id:     s.nextID,
		due:    s.now + delay,
		class:  class,
		seq:    s.seq,
		period: period,
		fn:     fn,
	}
	heap.Push(&s.queue, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a task. Returns false if it already fired or was cancelled.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
	return true
}

// Remaining returns the time until a task fires.
func (s *Scheduler) Remaining(id TimerID) (time.Duration, bool) {
	t, ok := s.byID[id]
	if !ok {
		return 0, false
	}
	return t.due - s.now, true
}

// CancelAll removes every task. An Advance in progress stops at the
// current instant.
func (s *Scheduler) CancelAll() {
	for i := range s.queue {
		s.queue[i].index = -1
		s.queue[i] = nil
	}
	s.queue = s.queue[:0]
	clear(s.byID)
	s.generation++
}

// Interrupt stops an in-progress Advance at the current instant without
// cancelling any task.
func (s *Scheduler) Interrupt() {
	s.generation++
}

// Reset cancels everything and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.CancelAll()
	s.now = 0
}

// Advance moves game time forward by dt, firing every task that falls due
// in order. Returns the number of tasks fired.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}

	target := s.now + dt
	gen := s.generation
	fired := 0

	for len(s.queue) > 0 && s.queue[0].due <= target {
		t := s.queue[0]
		s.now = t.due

		if t.period > 0 {
			t.due += t.period
			heap.Fix(&s.queue, 0)
		} else {
			heap.Pop(&s.queue)
			delete(s.byID, t.id)
		}

		t.fn()
		fired++

		if s.generation != gen {
			return fired
		}
	}

	s.now = target
	return fired
}
