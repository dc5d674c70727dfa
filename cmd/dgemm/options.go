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

package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/hwy-lab/dgemm/hwy/contrib/matmul"
)

// options are the flags shared by run and verify.
type options struct {
	n          int
	block      string
	l1         int
	threads    string
	strategies []string
	seed       uint64
}

func (o *options) bind(fs *pflag.FlagSet) {
	fs.IntVarP(&o.n, "size", "n", 512, "matrix dimension")
	fs.StringVar(&o.block, "block", strconv.Itoa(matmul.DefaultBlockSize), "tile edge for the blocked strategy, or \"auto\" to size it from --l1")
	fs.IntVar(&o.l1, "l1", matmul.DefaultL1Bytes, "L1 data cache size in bytes, used by --block auto")
	fs.StringVar(&o.threads, "threads", strconv.Itoa(matmul.DefaultThreads), "worker count for threads, pooled and tasks, or \"m\" for one per CPU")
	fs.StringSliceVar(&o.strategies, "strategies", []string{"all"}, "strategies to run: "+strings.Join(matmul.KindNames(), ", ")+" or all")
	fs.Uint64Var(&o.seed, "seed", 1, "random seed for the operands")
}

// config turns the flags into a base configuration and the ordered list of
// strategies to run with it.
func (o *options) config() (matmul.Config, []matmul.Kind, error) {
	cfg := matmul.DefaultConfig(o.n)

	bs, err := parseBlock(o.block, o.l1)
	if err != nil {
		return cfg, nil, err
	}
	cfg.BlockSize = bs

	if cfg.Threads, err = matmul.ParseThreads(o.threads); err != nil {
		return cfg, nil, err
	}

	kinds, err := parseStrategies(o.strategies)
	if err != nil {
		return cfg, nil, err
	}
	for _, k := range kinds {
		c := cfg
		c.Strategy = k
		if err := c.Validate(); err != nil {
			return cfg, nil, err
		}
	}
	return cfg, kinds, nil
}

func parseBlock(s string, l1 int) (int, error) {
	if strings.EqualFold(strings.TrimSpace(s), "auto") {
		return matmul.BlockSizeForL1(l1), nil
	}
	bs, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || bs <= 0 {
		return 0, fmt.Errorf("invalid --block %q: want a positive integer or auto", s)
	}
	return bs, nil
}

// parseStrategies resolves strategy names, keeping the first occurrence of
// each. "all" expands to every strategy in declaration order.
func parseStrategies(names []string) ([]matmul.Kind, error) {
	names = lo.Map(names, func(s string, _ int) string { return strings.ToLower(strings.TrimSpace(s)) })
	names = lo.Compact(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no strategies given")
	}

	var kinds []matmul.Kind
	for _, name := range names {
		if name == "all" {
			kinds = append(kinds, matmul.AllKinds()...)
			continue
		}
		k, err := matmul.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return lo.Uniq(kinds), nil
}

// operands allocates A, B and a zeroed C and fills A and B with random
// values.
func operands(n int, seed uint64) (a, b, c matmul.Matrix, err error) {
	if a, err = matmul.NewMatrix(n); err != nil {
		return
	}
	if b, err = matmul.NewMatrix(n); err != nil {
		return
	}
	if c, err = matmul.NewMatrix(n); err != nil {
		return
	}
	rng := rand.New(rand.NewPCG(seed, seed+1))
	matmul.FillRandom(a, rng)
	matmul.FillRandom(b, rng)
	return a, b, c, nil
}
