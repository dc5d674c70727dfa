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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hwy-lab/dgemm/hwy/contrib/workerpool"
)

func TestParseKind(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}

	got, err := ParseKind("  Blocked ")
	require.NoError(t, err)
	require.Equal(t, KindBlocked, got)

	_, err = ParseKind("strassen")
	require.True(t, IsInvalidConfig(err))
}

func TestKindNames(t *testing.T) {
	want := []string{"reference", "reordered", "blocked", "threads", "pooled", "tasks"}
	if diff := cmp.Diff(want, KindNames()); diff != "" {
		t.Errorf("KindNames() mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "Kind(99)", Kind(99).String())
	require.True(t, KindTasks.Parallel())
	require.False(t, KindBlocked.Parallel())
}

func TestParseThreads(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "4", want: 4},
		{in: " 16 ", want: 16},
		{in: "m", want: MaxThreads},
		{in: "M", want: MaxThreads},
		{in: "max", want: MaxThreads},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "many", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseThreads(tt.in)
		if tt.wantErr {
			require.True(t, IsInvalidConfig(err), "ParseThreads(%q) error = %v", tt.in, err)
			continue
		}
		require.NoError(t, err, "ParseThreads(%q)", tt.in)
		require.Equal(t, tt.want, got, "ParseThreads(%q)", tt.in)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(100)
	require.NoError(t, cfg.Validate())
	require.Equal(t, Config{N: 100, BlockSize: 32, Threads: 4, Strategy: KindBlocked, SpawnLimit: 4096}, cfg)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero n", func(c *Config) { c.N = 0 }, false},
		{"negative n", func(c *Config) { c.N = -4 }, false},
		{"zero block", func(c *Config) { c.BlockSize = 0 }, false},
		{"zero block unused", func(c *Config) { c.BlockSize = 0; c.Strategy = KindReference }, true},
		{"small block", func(c *Config) { c.BlockSize = 2 }, true},
		{"zero threads", func(c *Config) { c.Threads = 0; c.Strategy = KindThreads }, false},
		{"max threads", func(c *Config) { c.Threads = MaxThreads; c.Strategy = KindTasks }, true},
		{"bad threads", func(c *Config) { c.Threads = -2; c.Strategy = KindPooled }, false},
		{"threads unused", func(c *Config) { c.Threads = 0 }, true},
		{"unknown strategy", func(c *Config) { c.Strategy = Kind(42) }, false},
		{"negative spawn limit", func(c *Config) { c.SpawnLimit = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(8)
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.True(t, IsInvalidConfig(err), "got %v", err)
			}
		})
	}
}

func TestConfigResolve(t *testing.T) {
	cfg := Config{N: 4, Threads: MaxThreads, Strategy: KindThreads}.Resolve()
	require.Equal(t, runtime.NumCPU(), cfg.Threads)
	require.Equal(t, DefaultSpawnLimit, cfg.SpawnLimit)

	cfg = Config{N: 4, Threads: 3, SpawnLimit: 7}.Resolve()
	require.Equal(t, 3, cfg.Threads)
	require.Equal(t, 7, cfg.SpawnLimit)
}

func TestMultiplyConfig(t *testing.T) {
	const n = 10
	a, b, want := randomOperands(n, 9)
	Reference(a, b, want, n)

	for _, k := range AllKinds() {
		t.Run(k.String(), func(t *testing.T) {
			cfg := DefaultConfig(n)
			cfg.Strategy = k
			c := make(Matrix, n*n)
			require.NoError(t, Multiply(cfg, a, b, c, n))
			require.LessOrEqual(t, MaxRelDiff(c, want), relTol)
		})
	}

	// N left zero is taken from the operands.
	c := make(Matrix, n*n)
	require.NoError(t, Multiply(Config{BlockSize: 4, Strategy: KindBlocked}, a, b, c, n))

	err := Multiply(DefaultConfig(n+1), a, b, c, n)
	require.True(t, IsInvalidConfig(err), "mismatched n: got %v", err)
}

func TestNewStrategy(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Close()

	tests := []struct {
		kind Kind
		want Strategy
	}{
		{KindReference, ReferenceStrategy{}},
		{KindReordered, ReorderedStrategy{}},
		{KindBlocked, BlockedStrategy{BlockSize: 32}},
		{KindThreads, StaticThreads{Threads: 4, SpawnLimit: DefaultSpawnLimit}},
		{KindPooled, PooledThreads{Pool: pool}},
		{KindTasks, WorkStealing{Workers: 4}},
	}
	for _, tt := range tests {
		cfg := DefaultConfig(8)
		cfg.Strategy = tt.kind
		s, err := NewStrategy(cfg, pool)
		require.NoError(t, err)
		require.Equal(t, tt.want, s)
		require.Equal(t, tt.kind.String(), s.Name())
	}

	cfg := DefaultConfig(8)
	cfg.Strategy = KindPooled
	_, err := NewStrategy(cfg, nil)
	require.True(t, IsInvalidConfig(err))
}
