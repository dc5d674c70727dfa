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
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"k8s.io/klog/v2"

	"github.com/hwy-lab/dgemm/hwy"
	"github.com/hwy-lab/dgemm/hwy/contrib/matmul"
	"github.com/hwy-lab/dgemm/hwy/contrib/workerpool"
)

func newRunCmd(o *options) *cobra.Command {
	var (
		fresh  bool
		repeat int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time the selected strategies on random operands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, kinds, err := o.config()
			if err != nil {
				return err
			}
			if repeat <= 0 {
				repeat = 1
			}
			a, b, c, err := operands(cfg.N, o.seed)
			if err != nil {
				return err
			}

			resolved := cfg.Resolve()
			pool := workerpool.New(resolved.Threads)
			defer pool.Close()

			n := cfg.N
			flops := 2 * int64(n) * int64(n) * int64(n)
			p := message.NewPrinter(language.English)
			out := cmd.OutOrStdout()
			p.Fprintf(out, "n=%d block=%d threads=%d simd=%s flops/run=%d\n",
				n, cfg.BlockSize, resolved.Threads, hwy.CurrentName(), flops)

			for _, k := range kinds {
				kc := cfg
				kc.Strategy = k
				s, err := matmul.NewStrategy(kc, pool)
				if err != nil {
					return err
				}
				if fresh {
					c.Zero()
				}

				var elapsed time.Duration
				for range repeat {
					start := time.Now()
					err = s.Multiply(a, b, c, n)
					elapsed += time.Since(start)
					if matmul.IsWorkerSpawn(err) {
						klog.Exitf("%s: %v", s.Name(), err)
					}
					if err != nil {
						return err
					}
				}

				per := elapsed / time.Duration(repeat)
				gflops := float64(flops) / per.Seconds() / 1e9
				p.Fprintf(out, "%-10s %12v %10.3f GFLOPS\n", s.Name(), per.Round(time.Microsecond), gflops)
				klog.V(1).Infof("%s: %d runs, %v total", s.Name(), repeat, elapsed)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&fresh, "fresh", false, "zero the output before each strategy instead of accumulating")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "runs per strategy; the reported time is the mean")
	return cmd
}
