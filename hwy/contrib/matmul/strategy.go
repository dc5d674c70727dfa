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

import "github.com/hwy-lab/dgemm/hwy/contrib/workerpool"

// Strategy is one way of computing C += A * B for n×n row-major matrices.
// Implementations validate their operands and return *Error values; they
// never resize or reallocate the caller's slices.
type Strategy interface {
	Name() string
	Multiply(a, b, c []float64, n int) error
}

// ReferenceStrategy runs Reference.
type ReferenceStrategy struct{}

func (ReferenceStrategy) Name() string { return KindReference.String() }

func (ReferenceStrategy) Multiply(a, b, c []float64, n int) error {
	if err := checkOperands(KindReference.String(), a, b, c, n); err != nil {
		return err
	}
	Reference(a, b, c, n)
	return nil
}

// ReorderedStrategy runs Reordered.
type ReorderedStrategy struct{}

func (ReorderedStrategy) Name() string { return KindReordered.String() }

func (ReorderedStrategy) Multiply(a, b, c []float64, n int) error {
	if err := checkOperands(KindReordered.String(), a, b, c, n); err != nil {
		return err
	}
	Reordered(a, b, c, n)
	return nil
}

// BlockedStrategy runs BlockedMatMul. A zero BlockSize means
// DefaultBlockSize.
type BlockedStrategy struct {
	BlockSize int
}

func (BlockedStrategy) Name() string { return KindBlocked.String() }

func (s BlockedStrategy) Multiply(a, b, c []float64, n int) error {
	bs := s.BlockSize
	if bs == 0 {
		bs = DefaultBlockSize
	}
	return BlockedMatMul(a, b, c, n, bs)
}

// NewStrategy builds the strategy cfg selects. pool backs KindPooled and is
// ignored otherwise; it must be non-nil for KindPooled. cfg is validated
// and resolved first.
func NewStrategy(cfg Config, pool *workerpool.Pool) (Strategy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Resolve()
	switch cfg.Strategy {
	case KindReference:
		return ReferenceStrategy{}, nil
	case KindReordered:
		return ReorderedStrategy{}, nil
	case KindBlocked:
		return BlockedStrategy{BlockSize: cfg.BlockSize}, nil
	case KindThreads:
		return StaticThreads{Threads: cfg.Threads, SpawnLimit: cfg.SpawnLimit}, nil
	case KindPooled:
		if pool == nil {
			return nil, newInvalidConfig("config", "pooled strategy needs a worker pool")
		}
		return PooledThreads{Pool: pool}, nil
	case KindTasks:
		return WorkStealing{Workers: cfg.Threads}, nil
	}
	return nil, newInvalidConfig("config", "unknown strategy %v", cfg.Strategy)
}

// Multiply runs the strategy selected by cfg on n×n operands. cfg.N may be
// left zero; otherwise it must equal n. For KindPooled a pool with
// cfg.Threads workers is created for the call and closed afterwards; use
// NewStrategy with a long-lived pool to avoid that.
func Multiply(cfg Config, a, b, c []float64, n int) error {
	if cfg.N == 0 {
		cfg.N = n
	} else if cfg.N != n {
		return newInvalidConfig("config", "config is for n=%d but operands are n=%d", cfg.N, n)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.Resolve()

	var pool *workerpool.Pool
	if cfg.Strategy == KindPooled {
		pool = workerpool.New(cfg.Threads)
		defer pool.Close()
	}
	s, err := NewStrategy(cfg, pool)
	if err != nil {
		return err
	}
	return s.Multiply(a, b, c, n)
}
