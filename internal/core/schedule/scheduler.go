// Package schedule runs deferred callbacks on the host's frame loop.
//
// Nothing here starts goroutines or reads the wall clock: time only moves when
// the owner calls Advance, so every callback runs on the caller's goroutine in
// a deterministic order. Cancellation is explicit through Task and Group.
package schedule

import (
	"container/heap"
	"time"
)

// Scheduler is a virtual clock plus a queue of pending callbacks.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue taskQueue
}

// New returns a scheduler with its clock at zero.
func New() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.queue)
	return s
}

// Now returns the virtual time elapsed since creation.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of tasks that have neither fired nor been cancelled.
func (s *Scheduler) Pending() int {
	return s.queue.Len()
}

// After schedules fn to run once delay has elapsed. A non-positive delay runs
// fn on the next Advance call.
func (s *Scheduler) After(delay time.Duration, fn func()) *Task {
	return s.schedule(delay, fn, nil)
}

// Advance moves the clock forward by dt and runs every task that became due,
// ordered by due time and then by creation order. Each task runs with the
// clock at its own due time, so a task scheduled by a running callback is
// measured from its parent and fires in the same call if it falls within dt.
func (s *Scheduler) Advance(dt time.Duration) {
	target := s.now
	if dt > 0 {
		target += dt
	}
	for s.queue.Len() > 0 {
		next := s.queue.items[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)
		if next.due > s.now {
			s.now = next.due
		}
		next.fire()
	}
	s.now = target
}

func (s *Scheduler) schedule(delay time.Duration, fn func(), group *Group) *Task {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	t := &Task{
		scheduler: s,
		group:     group,
		fn:        fn,
		due:       s.now + delay,
		seq:       s.seq,
		index:     -1,
	}
	heap.Push(&s.queue, t)
	if group != nil {
		group.tasks[t] = struct{}{}
	}
	return t
}

func (s *Scheduler) remove(t *Task) {
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}

// Task is a handle to one scheduled callback.
type Task struct {
	scheduler *Scheduler
	group     *Group
	fn        func()
	due       time.Duration
	seq       uint64
	index     int
	done      bool
}

// Active reports whether the task is still waiting to fire.
func (t *Task) Active() bool {
	return t != nil && !t.done
}

// Remaining returns how long until the task fires, or zero once it is done.
func (t *Task) Remaining() time.Duration {
	if !t.Active() {
		return 0
	}
	if left := t.due - t.scheduler.now; left > 0 {
		return left
	}
	return 0
}

// Cancel stops the task from firing. It returns false if the task already
// fired or was cancelled before.
func (t *Task) Cancel() bool {
	if !t.Active() {
		return false
	}
	t.done = true
	t.scheduler.remove(t)
	t.detach()
	return true
}

func (t *Task) fire() {
	t.done = true
	t.detach()
	if t.fn != nil {
		t.fn()
	}
}

func (t *Task) detach() {
	if t.group != nil {
		delete(t.group.tasks, t)
		t.group = nil
	}
}

// Group collects tasks so they can be cancelled as a set. Fired tasks leave
// the group on their own.
type Group struct {
	scheduler *Scheduler
	tasks     map[*Task]struct{}
}

// NewGroup creates an empty group bound to the scheduler.
func (s *Scheduler) NewGroup() *Group {
	return &Group{
		scheduler: s,
		tasks:     make(map[*Task]struct{}),
	}
}

// After schedules fn through the group.
func (g *Group) After(delay time.Duration, fn func()) *Task {
	return g.scheduler.schedule(delay, fn, g)
}

// Len returns the number of tasks still pending in the group.
func (g *Group) Len() int {
	return len(g.tasks)
}

// CancelAll cancels every pending task in the group and returns how many
// were cancelled.
func (g *Group) CancelAll() int {
	n := 0
	for t := range g.tasks {
		if t.Cancel() {
			n++
		}
	}
	return n
}

// taskQueue is a min-heap on (due, seq).
type taskQueue struct {
	items []*Task
}

func (q *taskQueue) Len() int {
	return len(q.items)
}

func (q *taskQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if a.due != b.due {
		return a.due < b.due
	}
	return a.seq < b.seq
}

func (q *taskQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index = i
	q.items[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(q.items)
	q.items = append(q.items, t)
}

func (q *taskQueue) Pop() any {
	old := q.items
	n := len(old)
	t := old[n-1]
	old[n-1] = nil // avoid memory leak
	t.index = -1
	q.items = old[0 : n-1]
	return t
}
