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
	"fmt"
)

// ErrorKind classifies the failures a multiplication run can report.
type ErrorKind int

const (
	// KindInvalidConfig: non-positive size, block size or thread count,
	// operand slices shorter than n*n, or an unknown strategy. Reported
	// before any work or allocation happens.
	KindInvalidConfig ErrorKind = iota + 1

	// KindAllocation: a matrix or scratch buffer could not be allocated.
	KindAllocation

	// KindWorkerSpawn: the runtime refused to launch a worker. The run is
	// abandoned after joining the workers that did start.
	KindWorkerSpawn

	// KindExecution: a worker or tile panicked. The output matrix holds a
	// partial result and must not be trusted.
	KindExecution
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidConfig:
		return "invalid config"
	case KindAllocation:
		return "allocation failed"
	case KindWorkerSpawn:
		return "worker spawn failed"
	case KindExecution:
		return "execution failed"
	default:
		return "unknown error"
	}
}

// Error is the error type returned by every fallible operation in this
// package.
type Error struct {
	Kind    ErrorKind
	Op      string // operation or strategy name, e.g. "blocked"
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := "matmul"
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else {
		msg += ": " + e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrWorkerSpawn)
// works for every spawn failure regardless of op or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidConfig = &Error{Kind: KindInvalidConfig}
	ErrAllocation    = &Error{Kind: KindAllocation}
	ErrWorkerSpawn   = &Error{Kind: KindWorkerSpawn}
	ErrExecution     = &Error{Kind: KindExecution}
)

// IsInvalidConfig reports whether err is a configuration error.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsAllocation reports whether err is an allocation failure.
func IsAllocation(err error) bool {
	return errors.Is(err, ErrAllocation)
}

// IsWorkerSpawn reports whether err is a worker launch failure.
func IsWorkerSpawn(err error) bool {
	return errors.Is(err, ErrWorkerSpawn)
}

// IsExecution reports whether err is a recovered worker or tile panic.
func IsExecution(err error) bool {
	return errors.Is(err, ErrExecution)
}

func newInvalidConfig(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidConfig, Op: op, Message: fmt.Sprintf(format, args...)}
}

func newAllocation(op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: KindAllocation, Op: op, Message: fmt.Sprintf(format, args...), Err: cause}
}

func newWorkerSpawn(op, format string, args ...any) *Error {
	return &Error{Kind: KindWorkerSpawn, Op: op, Message: fmt.Sprintf(format, args...)}
}

func newExecution(op string, cause error, format string, args ...any) *Error {
	return &Error{Kind: KindExecution, Op: op, Message: fmt.Sprintf(format, args...), Err: cause}
}

// panicCause turns a recovered value into an error suitable for Error.Err.
func panicCause(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("panic: %v", v)
}
