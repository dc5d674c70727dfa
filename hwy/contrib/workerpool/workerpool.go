// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the goroutine machinery behind the parallel
// matmul strategies: a persistent Pool that hands out balanced contiguous
// ranges, and a work-stealing Scheduler for many small independent tasks.
//
// A Pool is created once and reused across multiplications, so repeated
// calls pay no goroutine spawn cost:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for range iterations {
//	    if err := pool.ParallelFor(n, func(start, end int) {
//	        multiplyRows(start, end)
//	    }); err != nil {
//	        return err
//	    }
//	}
package workerpool

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// PanicError is returned when a function run by a Pool or Scheduler panics.
// The panic is recovered on the worker goroutine so one bad range cannot
// take the process down.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v", e.Value)
}

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// ParallelFor splits [0, n) into NumWorkers balanced ranges (see Split) and
// runs fn on each non-empty one. It blocks until every range is done.
//
// If fn panics the panic is recovered and the first one is returned as a
// *PanicError after all ranges have finished. A closed pool runs fn(0, n)
// on the calling goroutine.
//
// The pool must not be closed while a ParallelFor call is in progress:
// Close closes the work channel, and a concurrent send from ParallelFor
// would panic.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) error {
	if n <= 0 {
		return nil
	}

	var (
		firstErr atomic.Pointer[PanicError]
		wg       sync.WaitGroup
	)
	run := func(r Range) {
		if perr := protect(func() { fn(r.Start, r.End) }); perr != nil {
			firstErr.CompareAndSwap(nil, perr)
		}
	}

	if p.closed.Load() || p.numWorkers == 1 {
		run(Range{0, n})
		return loadErr(&firstErr)
	}

	for _, r := range Split(n, p.numWorkers) {
		if r.Empty() {
			continue
		}
		wg.Add(1)
		p.workC <- workItem{
			fn:      func() { run(r) },
			barrier: &wg,
		}
	}
	wg.Wait()
	return loadErr(&firstErr)
}

// protect runs fn and converts a panic into a *PanicError.
func protect(fn func()) (perr *PanicError) {
	defer func() {
		if v := recover(); v != nil {
			perr = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}

func loadErr(p *atomic.Pointer[PanicError]) error {
	if e := p.Load(); e != nil {
		return e
	}
	return nil
}
