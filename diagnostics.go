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

package endpoints

// DiagnosticEvent represents a registration diagnostic or anomaly, such as a
// duplicate route being skipped. Diagnostic events are optional - registration
// behaves identically whether they are collected or not. They give
// observability systems visibility into skip decisions that are otherwise
// only logged.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any // Structured context
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagRouteRegistered is emitted for every route mounted on the host router.
	DiagRouteRegistered DiagnosticKind = "route_registered"

	// DiagDuplicateRoute is emitted when a (path, method) pair is already
	// taken in the current pass and the later registration is skipped.
	DiagDuplicateRoute DiagnosticKind = "duplicate_route_skipped"

	// DiagDuplicateMiddleware is emitted when a middleware key is already
	// installed on a route node and the later install is skipped.
	DiagDuplicateMiddleware DiagnosticKind = "duplicate_middleware_skipped"

	// DiagResultDiscarded is emitted when a handler returned a result while
	// result handling is enabled but no callback is configured.
	DiagResultDiscarded DiagnosticKind = "result_discarded"
)

// DiagnosticHandler receives diagnostic events from the registrar.
// Implementations may log, emit metrics, trace events, or ignore them.
//
// Example with logging:
//
//	handler := endpoints.DiagnosticHandlerFunc(func(e endpoints.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	endpoints.MustRegister(r, endpoints.WithDiagnostics(handler), ...)
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
