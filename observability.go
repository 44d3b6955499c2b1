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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope used for registration metrics.
const meterName = "rivaas.dev/endpoints"

// passMetrics records per-pass registration counters when a meter provider is
// configured. A nil *passMetrics is a valid no-op recorder, so the registrar
// never branches on whether metrics are enabled.
type passMetrics struct {
	registered metric.Int64Counter
	skipped    metric.Int64Counter
}

// newPassMetrics builds the counters for one registration pass.
// Returns nil when no provider is configured or instrument creation fails;
// metrics are best-effort and never fail registration.
func newPassMetrics(provider metric.MeterProvider) *passMetrics {
	if provider == nil {
		return nil
	}
	meter := provider.Meter(meterName)

	registered, err := meter.Int64Counter("endpoints.routes.registered",
		metric.WithDescription("Routes mounted on the host router during a registration pass"))
	if err != nil {
		return nil
	}
	skipped, err := meter.Int64Counter("endpoints.routes.skipped",
		metric.WithDescription("Duplicate routes skipped during a registration pass"))
	if err != nil {
		return nil
	}

	return &passMetrics{registered: registered, skipped: skipped}
}

func (pm *passMetrics) recordRegistered(method, path string) {
	if pm == nil {
		return
	}
	pm.registered.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", path),
		))
}

func (pm *passMetrics) recordSkipped(method, path string) {
	if pm == nil {
		return
	}
	pm.skipped.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("http.route", path),
		))
}
