// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/hwy-lab/dgemm/hwy/contrib/workerpool"
)

// rowKernel is the per-worker unit of the parallel strategies. Tests swap
// it to inject failures.
var rowKernel = referenceRows

// StaticThreads splits the output rows with PartitionRows and runs the
// reference kernel on each range in its own goroutine. Workers write
// disjoint rows of C and only read A and B.
//
// All goroutines are launched before any of them starts computing. If a
// launch is refused the already-launched workers exit without touching C,
// they are joined, and Multiply returns a KindWorkerSpawn error.
type StaticThreads struct {
	// Threads is the number of row ranges: a positive count, MaxThreads, or
	// zero for DefaultThreads.
	Threads int

	// SpawnLimit caps concurrent goroutines; zero means DefaultSpawnLimit.
	SpawnLimit int
}

func (StaticThreads) Name() string { return KindThreads.String() }

func (s StaticThreads) Multiply(a, b, c []float64, n int) error {
	const op = "threads"
	if err := checkOperands(op, a, b, c, n); err != nil {
		return err
	}
	threads, err := workerCount(op, s.Threads)
	if err != nil {
		return err
	}
	limit := s.SpawnLimit
	if limit == 0 {
		limit = DefaultSpawnLimit
	}
	if limit < 0 {
		return newInvalidConfig(op, "spawn limit must not be negative, got %d", limit)
	}

	ranges := PartitionRows(n, threads)
	klog.V(2).Infof("matmul: threads n=%d ranges=%v", n, ranges)

	var (
		g       errgroup.Group
		start   = make(chan struct{})
		aborted atomic.Bool
	)
	g.SetLimit(limit)

	launched := 0
	for w, r := range ranges {
		if r.Empty() {
			continue
		}
		ok := g.TryGo(func() error {
			<-start
			if aborted.Load() {
				return nil
			}
			return runRows(op, w, r, a, b, c, n)
		})
		if !ok {
			aborted.Store(true)
			close(start)
			// Launched workers see aborted and return nil without touching
			// C, so Wait only joins them and has no error to report.
			_ = g.Wait()
			klog.Errorf("matmul: threads: worker %d refused after %d launches (limit %d)", w, launched, limit)
			return newWorkerSpawn(op, "could not launch worker %d of %d: %d running (limit %d)", w, threads, launched, limit)
		}
		launched++
	}
	close(start)
	return g.Wait()
}

// PooledThreads is StaticThreads on a persistent workerpool.Pool: the rows
// are split into Pool.NumWorkers() balanced ranges and no goroutine is
// created per call.
type PooledThreads struct {
	Pool *workerpool.Pool
}

func (PooledThreads) Name() string { return KindPooled.String() }

func (p PooledThreads) Multiply(a, b, c []float64, n int) error {
	const op = "pooled"
	if err := checkOperands(op, a, b, c, n); err != nil {
		return err
	}
	if p.Pool == nil {
		return newInvalidConfig(op, "nil worker pool")
	}
	klog.V(2).Infof("matmul: pooled n=%d workers=%d", n, p.Pool.NumWorkers())

	err := p.Pool.ParallelFor(n, func(start, end int) {
		rowKernel(a, b, c, n, start, end)
	})
	return wrapPanic(op, err)
}

// WorkStealing submits one task per output row to a work-stealing
// workerpool.Scheduler with Workers workers and waits for all of them.
type WorkStealing struct {
	// Workers is a positive count, MaxThreads, or zero for DefaultThreads.
	Workers int
}

func (WorkStealing) Name() string { return KindTasks.String() }

func (s WorkStealing) Multiply(a, b, c []float64, n int) error {
	const op = "tasks"
	if err := checkOperands(op, a, b, c, n); err != nil {
		return err
	}
	workers, err := workerCount(op, s.Workers)
	if err != nil {
		return err
	}

	sched := workerpool.NewScheduler(workers)
	for i := range n {
		sched.Submit(func() {
			rowKernel(a, b, c, n, i, i+1)
		})
	}
	err = sched.Wait()
	klog.V(2).Infof("matmul: tasks n=%d workers=%d steals=%d", n, workers, sched.Steals())
	return wrapPanic(op, err)
}

func workerCount(op string, t int) (int, error) {
	switch {
	case t == 0:
		return DefaultThreads, nil
	case t == MaxThreads:
		return resolveThreads(t), nil
	case t < 0:
		return 0, newInvalidConfig(op, "thread count must be positive or MaxThreads, got %d", t)
	}
	return t, nil
}

// runRows runs rowKernel on one range, converting a panic into a
// KindExecution error.
func runRows(op string, worker int, r RowRange, a, b, c []float64, n int) (err error) {
	defer func() {
		if v := recover(); v != nil {
			klog.Errorf("matmul: %s: worker %d rows [%d,%d) panicked: %v", op, worker, r.Start, r.End, v)
			err = newExecution(op, panicCause(v), "worker %d rows [%d,%d) panicked", worker, r.Start, r.End)
		}
	}()
	rowKernel(a, b, c, n, r.Start, r.End)
	return nil
}

func wrapPanic(op string, err error) error {
	if err == nil {
		return nil
	}
	var perr *workerpool.PanicError
	if errors.As(err, &perr) {
		klog.Errorf("matmul: %s: worker panicked: %v", op, perr.Value)
		return newExecution(op, perr, "worker panicked")
	}
	return newExecution(op, err, "worker failed")
}
