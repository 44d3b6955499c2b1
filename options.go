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

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option defines functional options for a registration pass.
type Option func(*config)

// config holds the configuration of one registration pass.
type config struct {
	basePrefix     string
	trailingSlash  bool
	source         Source
	direct         []Endpoint
	resultHandling bool
	resultCallback ResultCallback
	logger         *slog.Logger
	diagnostics    DiagnosticHandler
	meterProvider  metric.MeterProvider
}

// defaultConfig returns a configuration with default values.
func defaultConfig() *config {
	return &config{
		basePrefix: "/",
	}
}

// WithBasePrefix sets the prefix joined in front of every registered route
// path. Defaults to "/".
//
// Example:
//
//	endpoints.MustRegister(r, endpoints.WithBasePrefix("/api"), ...)
func WithBasePrefix(prefix string) Option {
	return func(c *config) {
		c.basePrefix = prefix
	}
}

// WithTrailingSlash also registers the trailing-slash variant of every
// non-root route path, bound to the same handler chain. Disabled by default.
func WithTrailingSlash() Option {
	return func(c *config) {
		c.trailingSlash = true
	}
}

// WithSource sets the active endpoint source for the pass. Endpoints from the
// source are registered before any directly-registered endpoints. When no
// source is configured, only the directly-registered endpoints are used.
func WithSource(src Source) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithEndpoints registers endpoints directly, without going through a source.
// May be combined with [WithSource]; direct endpoints are concatenated after
// the source's result.
func WithEndpoints(eps ...Endpoint) Option {
	return func(c *config) {
		c.direct = append(c.direct, eps...)
	}
}

// WithResultHandling enables dispatch of handler results declared via
// [Descriptor.HandleResult]. Disabled by default; with the feature disabled,
// returned results are ignored.
func WithResultHandling() Option {
	return func(c *config) {
		c.resultHandling = true
	}
}

// WithResultCallback sets the single response-translation callback invoked
// for every handler result. Configuring a callback without
// [WithResultHandling] is a configuration error, fatal at registration.
func WithResultCallback(cb ResultCallback) Option {
	return func(c *config) {
		c.resultCallback = cb
	}
}

// WithLogger sets the logger used for registration warnings (duplicate
// routes, duplicate middleware installs, discarded results). Defaults to a
// no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDiagnostics sets an optional diagnostic handler receiving structured
// registration events. Registration behaves identically without one.
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(c *config) {
		c.diagnostics = handler
	}
}

// WithMeterProvider enables OpenTelemetry counters for the pass
// (endpoints.routes.registered, endpoints.routes.skipped).
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = provider
	}
}
