// Package livereloadtest provides a deterministic livereload.Scheduler for tests.
package livereloadtest

import (
	"sort"
	"sync"
	"time"
)

type task struct {
	due time.Duration
	seq uint64
	f   func()
}

// Scheduler runs callbacks in virtual time. Nothing runs until Advance or Flush
// is called, and then only on the calling goroutine.
type Scheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) Post(f func()) {
	s.AfterFunc(0, f)
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.tasks = append(s.tasks, task{due: s.now + d, seq: s.seq, f: f})
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
}

// Elapsed is the virtual time passed since the scheduler was created.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending is the number of callbacks not run yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves virtual time forward by d and runs every callback that falls
// due, including the ones scheduled by callbacks run along the way.
func (s *Scheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].due > target {
			s.now = target
			s.mu.Unlock()
			return
		}
		next := s.tasks[0]
		s.tasks = s.tasks[1:]
		s.now = next.due
		s.mu.Unlock()

		next.f()
	}
}

// Flush runs the callbacks due at the current virtual time.
func (s *Scheduler) Flush() {
	s.Advance(0)
}
