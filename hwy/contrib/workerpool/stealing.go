// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
)

// deque is a mutex-guarded double-ended task queue. The owner pops from the
// bottom, thieves take from the top.
type deque struct {
	mu    sync.Mutex
	tasks []func()
}

func (d *deque) push(t func()) {
	d.mu.Lock()
	d.tasks = append(d.tasks, t)
	d.mu.Unlock()
}

func (d *deque) popBottom() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.tasks)
	if n == 0 {
		return nil
	}
	t := d.tasks[n-1]
	d.tasks[n-1] = nil
	d.tasks = d.tasks[:n-1]
	return t
}

func (d *deque) stealTop() func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.tasks) == 0 {
		return nil
	}
	t := d.tasks[0]
	d.tasks[0] = nil
	d.tasks = d.tasks[1:]
	return t
}

// Scheduler runs a batch of independent tasks on a fixed set of workers,
// each owning a deque. A worker whose deque runs dry steals from the others,
// so uneven task costs still keep every worker busy.
//
// Tasks are queued with Submit or SubmitTo and executed by Wait. Submit must
// not be called while Wait is running. A Scheduler can be reused for
// several batches.
type Scheduler struct {
	queues []deque
	next   int
	steals atomic.Int64
}

// NewScheduler returns a scheduler with the given number of workers.
// If workers <= 0, uses GOMAXPROCS.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scheduler{queues: make([]deque, workers)}
}

// NumWorkers returns the number of workers Wait will start.
func (s *Scheduler) NumWorkers() int {
	return len(s.queues)
}

// Submit queues a task, distributing tasks round-robin over the workers.
func (s *Scheduler) Submit(task func()) {
	s.queues[s.next].push(task)
	s.next = (s.next + 1) % len(s.queues)
}

// SubmitTo queues a task on a specific worker's deque. worker is taken
// modulo NumWorkers.
func (s *Scheduler) SubmitTo(worker int, task func()) {
	if worker < 0 {
		worker = -worker
	}
	s.queues[worker%len(s.queues)].push(task)
}

// Steals returns the total number of tasks executed by a worker other than
// the one they were queued on.
func (s *Scheduler) Steals() int64 {
	return s.steals.Load()
}

// Wait starts the workers, runs every queued task exactly once and returns
// when all queues are empty. A panicking task is recovered; the first panic
// is returned as a *PanicError once the remaining tasks have run.
func (s *Scheduler) Wait() error {
	var (
		firstErr atomic.Pointer[PanicError]
		wg       sync.WaitGroup
	)
	wg.Add(len(s.queues))
	for w := range s.queues {
		go func() {
			defer wg.Done()
			s.work(w, &firstErr)
		}()
	}
	wg.Wait()
	s.next = 0
	return loadErr(&firstErr)
}

func (s *Scheduler) work(self int, firstErr *atomic.Pointer[PanicError]) {
	n := len(s.queues)
	for {
		task := s.queues[self].popBottom()
		if task == nil {
			task = s.steal(self, n)
			if task == nil {
				// No task is added during Wait, so an empty scan means done.
				return
			}
		}
		if perr := protect(task); perr != nil {
			firstErr.CompareAndSwap(nil, perr)
		}
	}
}

func (s *Scheduler) steal(self, n int) func() {
	if n == 1 {
		return nil
	}
	start := rand.IntN(n)
	for i := range n {
		victim := (start + i) % n
		if victim == self {
			continue
		}
		if t := s.queues[victim].stealTop(); t != nil {
			s.steals.Add(1)
			return t
		}
	}
	return nil
}
