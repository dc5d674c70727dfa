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
	"runtime"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Kind selects a multiplication strategy.
type Kind int

const (
	KindReference Kind = iota // naive i-j-k loop
	KindReordered             // i-k-j loop
	KindBlocked               // cache-blocked with the 4x4 micro-kernel
	KindThreads               // reference kernel over static row ranges, one goroutine each
	KindPooled                // as KindThreads on a persistent worker pool
	KindTasks                 // reference kernel, one work-stealing task per row
)

var kindNames = map[Kind]string{
	KindReference: "reference",
	KindReordered: "reordered",
	KindBlocked:   "blocked",
	KindThreads:   "threads",
	KindPooled:    "pooled",
	KindTasks:     "tasks",
}

// AllKinds returns every strategy kind in declaration order.
func AllKinds() []Kind {
	return []Kind{KindReference, KindReordered, KindBlocked, KindThreads, KindPooled, KindTasks}
}

// KindNames returns the accepted strategy names in declaration order.
func KindNames() []string {
	return lo.Map(AllKinds(), func(k Kind, _ int) string { return k.String() })
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Parallel reports whether the strategy runs on more than one goroutine.
func (k Kind) Parallel() bool {
	return k == KindThreads || k == KindPooled || k == KindTasks
}

// ParseKind maps a strategy name (case-insensitive) to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := lo.FindKey(kindNames, name); ok {
		return k, nil
	}
	return 0, newInvalidConfig("parse", "unknown strategy %q (want one of %s)", s, strings.Join(KindNames(), ", "))
}

const (
	// DefaultBlockSize is the tile edge used when none is configured.
	DefaultBlockSize = 32

	// DefaultThreads is the worker count used when none is configured.
	DefaultThreads = 4

	// MaxThreads asks for one worker per logical CPU.
	MaxThreads = -1

	// DefaultSpawnLimit caps the goroutines a single StaticThreads run may
	// launch. Requests above it fail with KindWorkerSpawn.
	DefaultSpawnLimit = 4096
)

// ParseThreads parses a worker count: a positive integer, or "m", "M" or
// "max" for MaxThreads.
func ParseThreads(s string) (int, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "m", "M", "max":
		return MaxThreads, nil
	}
	t, err := strconv.Atoi(s)
	if err != nil || t <= 0 {
		return 0, newInvalidConfig("parse", "thread count must be a positive integer or \"m\", got %q", s)
	}
	return t, nil
}

// Config describes a single multiplication run.
type Config struct {
	N          int  // matrix dimension
	BlockSize  int  // tile edge for KindBlocked
	Threads    int  // worker count for parallel kinds, or MaxThreads
	Strategy   Kind // which strategy Multiply runs
	SpawnLimit int  // launch cap for KindThreads; 0 means DefaultSpawnLimit
}

// DefaultConfig returns the blocked strategy with a 32-element tile and
// four workers for the parallel kinds.
func DefaultConfig(n int) Config {
	return Config{
		N:          n,
		BlockSize:  DefaultBlockSize,
		Threads:    DefaultThreads,
		Strategy:   KindBlocked,
		SpawnLimit: DefaultSpawnLimit,
	}
}

// Validate checks the configuration without allocating anything. Fields
// that the selected strategy does not use are not checked.
func (c Config) Validate() error {
	if c.N <= 0 {
		return newInvalidConfig("config", "matrix size must be positive, got %d", c.N)
	}
	if _, ok := kindNames[c.Strategy]; !ok {
		return newInvalidConfig("config", "unknown strategy %v", c.Strategy)
	}
	if c.Strategy == KindBlocked && c.BlockSize <= 0 {
		return newInvalidConfig("config", "block size must be positive, got %d", c.BlockSize)
	}
	if c.Strategy.Parallel() && c.Threads <= 0 && c.Threads != MaxThreads {
		return newInvalidConfig("config", "thread count must be positive or MaxThreads, got %d", c.Threads)
	}
	if c.SpawnLimit < 0 {
		return newInvalidConfig("config", "spawn limit must not be negative, got %d", c.SpawnLimit)
	}
	return nil
}

// Resolve returns a copy with MaxThreads expanded to runtime.NumCPU() and
// a zero SpawnLimit replaced by DefaultSpawnLimit.
func (c Config) Resolve() Config {
	c.Threads = resolveThreads(c.Threads)
	if c.SpawnLimit == 0 {
		c.SpawnLimit = DefaultSpawnLimit
	}
	return c
}

func resolveThreads(t int) int {
	if t == MaxThreads {
		return runtime.NumCPU()
	}
	return t
}
