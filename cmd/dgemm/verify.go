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

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/hwy-lab/dgemm/hwy/contrib/matmul"
	"github.com/hwy-lab/dgemm/hwy/contrib/workerpool"
)

func newVerifyCmd(o *options) *cobra.Command {
	var tol float64
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check every selected strategy against the reference kernel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, kinds, err := o.config()
			if err != nil {
				return err
			}
			a, b, want, err := operands(cfg.N, o.seed)
			if err != nil {
				return err
			}
			n := cfg.N
			matmul.Reference(a, b, want, n)

			pool := workerpool.New(cfg.Resolve().Threads)
			defer pool.Close()

			got, err := matmul.NewMatrix(n)
			if err != nil {
				return err
			}
			p := message.NewPrinter(language.English)
			out := cmd.OutOrStdout()

			var failed []string
			for _, k := range kinds {
				kc := cfg
				kc.Strategy = k
				s, err := matmul.NewStrategy(kc, pool)
				if err != nil {
					return err
				}
				got.Zero()
				if err := s.Multiply(a, b, got, n); err != nil {
					return err
				}
				d := matmul.MaxRelDiff(got, want)
				status := "ok"
				if !(d <= tol) {
					status = "FAIL"
					failed = append(failed, s.Name())
				}
				p.Fprintf(out, "%-10s %-4s max rel diff %.3e\n", s.Name(), status, d)
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d strategies disagree with the reference: %v", len(failed), failed)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&tol, "tol", 1e-9, "maximum element-wise relative difference")
	return cmd
}
