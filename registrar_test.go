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
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/endpoints/result"
	"rivaas.dev/router"
)

// testEndpoint wraps a prebuilt descriptor for registration tests.
type testEndpoint struct {
	d *Descriptor
}

func (e *testEndpoint) Describe() *Descriptor { return e.d }

// mockDiagnosticHandler collects diagnostic events for assertions.
type mockDiagnosticHandler struct {
	events []DiagnosticEvent
}

func (m *mockDiagnosticHandler) OnDiagnostic(e DiagnosticEvent) {
	m.events = append(m.events, e)
}

func (m *mockDiagnosticHandler) kinds() []DiagnosticKind {
	out := make([]DiagnosticKind, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Kind)
	}
	return out
}

func get(t *testing.T, r *router.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// textHandler returns a handler writing the given body with status 200.
func textHandler(body string) router.HandlerFunc {
	return func(c *router.Context) {
		//nolint:errcheck // Test handler
		c.String(http.StatusOK, body)
	}
}

func TestRegisterPrefixCrossProduct(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New(WithPrefixes("/", "/api")).GET("/", textHandler("hello"))}

	r := router.MustNew()
	require.NoError(t, Register(r, WithEndpoints(ep)))

	assert.Equal(t, http.StatusOK, get(t, r, http.MethodGet, "/").Code)
	assert.Equal(t, "hello", get(t, r, http.MethodGet, "/").Body.String())
	assert.Equal(t, http.StatusOK, get(t, r, http.MethodGet, "/api").Code)
	assert.Equal(t, "hello", get(t, r, http.MethodGet, "/api").Body.String())

	// Any other path is not found.
	assert.Equal(t, http.StatusNotFound, get(t, r, http.MethodGet, "/other").Code)
}

func TestRegisterFirstRegistrationWins(t *testing.T) {
	t.Parallel()

	first := &testEndpoint{d: New().GET("/api", textHandler("first"))}
	second := &testEndpoint{d: New().GET("/api", textHandler("second"))}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	diags := &mockDiagnosticHandler{}

	r := router.MustNew()
	require.NoError(t, Register(r,
		WithEndpoints(first, second),
		WithLogger(logger),
		WithDiagnostics(diags),
	))

	// The first-registered handler serves; the duplicate is skipped, not an error.
	assert.Equal(t, "first", get(t, r, http.MethodGet, "/api").Body.String())
	assert.Contains(t, logs.String(), "duplicate route skipped")
	assert.Contains(t, diags.kinds(), DiagDuplicateRoute)
}

func TestRegisterTrailingSlashVariant(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New().GET("/", textHandler("api root"))}

	r := router.MustNew()
	require.NoError(t, Register(r,
		WithBasePrefix("/api"),
		WithTrailingSlash(),
		WithEndpoints(ep),
	))

	assert.Equal(t, "api root", get(t, r, http.MethodGet, "/api").Body.String())
	assert.Equal(t, "api root", get(t, r, http.MethodGet, "/api/").Body.String())
}

func TestRegisterBasePrefixJoin(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New(WithPrefixes("/users")).GET("/:id", func(c *router.Context) {
		//nolint:errcheck // Test handler
		c.String(http.StatusOK, c.Param("id"))
	})}

	r := router.MustNew()
	require.NoError(t, Register(r, WithBasePrefix("/api/"), WithEndpoints(ep)))

	w := get(t, r, http.MethodGet, "/api/users/42")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())
}

func TestRegisterMultiMethodExpansion(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New().Handle("/items", textHandler("items"), http.MethodGet, http.MethodPost)}

	r := router.MustNew()
	require.NoError(t, Register(r, WithEndpoints(ep)))

	assert.Equal(t, http.StatusOK, get(t, r, http.MethodGet, "/items").Code)
	assert.Equal(t, http.StatusOK, get(t, r, http.MethodPost, "/items").Code)
}

func TestRegisterNilRouter(t *testing.T) {
	t.Parallel()

	err := Register(nil, WithEndpoints(&testEndpoint{d: New().GET("/", textHandler("x"))}))
	assert.ErrorIs(t, err, ErrNilRouter)
}

func TestRegisterResultCallbackRequiresHandling(t *testing.T) {
	t.Parallel()

	err := Register(router.MustNew(),
		WithResultCallback(func(*router.Context, result.Result[any], error) {}),
	)
	assert.ErrorIs(t, err, ErrResultCallbackDisabled)
}

func TestRegisterResultCallbackDispatch(t *testing.T) {
	t.Parallel()

	failure := errors.New("user not found")
	ep := &testEndpoint{d: New().HandleResult("/users/:id", func(c *router.Context) result.Result[any] {
		return result.Err[any](failure)
	}, http.MethodGet)}

	r := router.MustNew()
	require.NoError(t, Register(r,
		WithEndpoints(ep),
		WithResultHandling(),
		WithResultCallback(func(c *router.Context, res result.Result[any], err error) {
			require.True(t, res.IsErr())
			require.ErrorIs(t, err, failure)
			//nolint:errcheck // Test callback
			c.String(http.StatusNotFound, err.Error())
		}),
	))

	w := get(t, r, http.MethodGet, "/users/7")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "user not found", w.Body.String())
}

func TestRegisterResultDiscardedWithoutCallback(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New().HandleResult("/ok", func(c *router.Context) result.Result[any] {
		return result.Ok[any]("fine")
	}, http.MethodGet)}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := router.MustNew()
	require.NoError(t, Register(r,
		WithEndpoints(ep),
		WithResultHandling(),
		WithLogger(logger),
	))

	w := get(t, r, http.MethodGet, "/ok")
	assert.Equal(t, http.StatusOK, w.Code) // nothing written, default status
	assert.Contains(t, logs.String(), "result discarded")
}

func TestRegisterResultIgnoredWhenDisabled(t *testing.T) {
	t.Parallel()

	called := false
	ep := &testEndpoint{d: New().HandleResult("/ok", func(c *router.Context) result.Result[any] {
		called = true
		return result.Ok[any]("fine")
	}, http.MethodGet)}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	r := router.MustNew()
	require.NoError(t, Register(r, WithEndpoints(ep), WithLogger(logger)))

	get(t, r, http.MethodGet, "/ok")
	assert.True(t, called, "handler should still run with result handling disabled")
	assert.NotContains(t, logs.String(), "result discarded")
}

func TestRegisterSourceAndDirectConcatenated(t *testing.T) {
	t.Parallel()

	fromSource := &testEndpoint{d: New().GET("/from-source", textHandler("source"))}
	direct := &testEndpoint{d: New().GET("/direct", textHandler("direct"))}

	r := router.MustNew()
	require.NoError(t, Register(r,
		WithSource(Static(fromSource)),
		WithEndpoints(direct),
	))

	assert.Equal(t, "source", get(t, r, http.MethodGet, "/from-source").Body.String())
	assert.Equal(t, "direct", get(t, r, http.MethodGet, "/direct").Body.String())
}

func TestRegisterSourcePrecedesDirect(t *testing.T) {
	t.Parallel()

	fromSource := &testEndpoint{d: New().GET("/shared", textHandler("source"))}
	direct := &testEndpoint{d: New().GET("/shared", textHandler("direct"))}

	r := router.MustNew()
	require.NoError(t, Register(r,
		WithSource(Static(fromSource)),
		WithEndpoints(direct),
	))

	// Source endpoints register first, so the source's handler wins.
	assert.Equal(t, "source", get(t, r, http.MethodGet, "/shared").Body.String())
}

func TestRegisterSourceLoadError(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("container unavailable")
	r := router.MustNew()
	err := Register(r, WithSource(SourceFunc(func() ([]Endpoint, error) {
		return nil, loadErr
	})))
	assert.ErrorIs(t, err, loadErr)
}

func TestRegisterNilEndpoint(t *testing.T) {
	t.Parallel()

	err := Register(router.MustNew(), WithEndpoints(nil))
	assert.ErrorIs(t, err, ErrNilEndpoint)
}

func TestRegisterDescriptorErrorIsFatal(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New().GET("broken", textHandler("x"))}
	err := Register(router.MustNew(), WithEndpoints(ep))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRelativePath)
	assert.Contains(t, err.Error(), fmt.Sprintf("%T", ep))
}

func TestRegisterRelativeBasePrefix(t *testing.T) {
	t.Parallel()

	err := Register(router.MustNew(), WithBasePrefix("api"))
	assert.ErrorIs(t, err, ErrRelativePath)
}

func TestMustRegisterPanicsOnError(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustRegister(nil) })
}

func TestRegisterDiagnosticsForRegisteredRoutes(t *testing.T) {
	t.Parallel()

	ep := &testEndpoint{d: New().GET("/a", textHandler("a")).POST("/b", textHandler("b"))}
	diags := &mockDiagnosticHandler{}

	r := router.MustNew()
	require.NoError(t, Register(r, WithEndpoints(ep), WithDiagnostics(diags)))

	registered := 0
	for _, e := range diags.events {
		if e.Kind == DiagRouteRegistered {
			registered++
		}
	}
	assert.Equal(t, 2, registered)
}
