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

// Command dgemm multiplies random square matrices with the strategies of the
// matmul package and reports timings.
//
// Usage:
//
//	dgemm run -n 1024 --block 32 --threads m --strategies blocked,threads
//	dgemm verify -n 77 --block auto
//	dgemm info
//
// run executes the selected strategies in order on one output matrix, so
// each strategy adds its product to what the previous ones left (pass
// --fresh to zero the output between strategies). verify checks every
// strategy against the reference kernel. info prints the detected SIMD
// dispatch level.
//
// Logging flags (-v, --logtostderr, ...) are those of klog.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func main() {
	defer klog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:          "dgemm",
		Short:        "Dense float64 matrix multiplication benchmarks",
		SilenceUsage: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	root.PersistentFlags().AddGoFlagSet(klogFlags)
	o.bind(root.PersistentFlags())

	root.AddCommand(newRunCmd(o), newVerifyCmd(o), newInfoCmd())
	return root
}
