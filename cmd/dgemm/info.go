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
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hwy-lab/dgemm/hwy"
	"github.com/hwy-lab/dgemm/hwy/contrib/matmul"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the SIMD dispatch level and CPU count",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "simd:       %s\n", hwy.CurrentName())
			fmt.Fprintf(out, "width:      %d bytes (%d float64 lanes)\n", hwy.CurrentWidth(), hwy.Float64Lanes())
			fmt.Fprintf(out, "fma:        %v\n", hwy.HasFMA())
			fmt.Fprintf(out, "cpus:       %d (GOMAXPROCS %d)\n", runtime.NumCPU(), runtime.GOMAXPROCS(0))
			fmt.Fprintf(out, "auto block: %d (L1 %d bytes)\n", matmul.BlockSizeForL1(0), matmul.DefaultL1Bytes)
		},
	}
}
