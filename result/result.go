// Copyright 2025 The Rivaas Authors
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

// Package result provides a tagged success/failure value for endpoint
// handlers. A handler that wants the registrar to translate its outcome into
// an HTTP response returns a [Result] instead of writing the response itself;
// the registrar dispatches the result to the configured callback.
//
// Example:
//
//	func (e *UserEndpoint) get(c *router.Context) result.Result[any] {
//	    user, err := e.store.Find(c.Param("id"))
//	    if err != nil {
//	        return result.Err[any](err)
//	    }
//	    return result.Ok[any](user)
//	}
package result

// Result is a tagged variant holding either a success value or an error,
// never both. The zero value is a success holding the zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Ok returns a success result wrapping v.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// Err returns a failure result wrapping err.
// A nil err produces a success result, matching errors-as-values semantics.
func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// IsErr reports whether the result is a failure.
func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the success value. For failure results it returns the zero
// value of T.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the contained error, or nil for success results.
func (r Result[T]) Err() error {
	return r.err
}
