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
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/net/websocket"

	"rivaas.dev/router"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// routeKey identifies one registered (path, method) pair for de-duplication.
// Upgrade routes use the reserved [UpgradeMethod].
type routeKey struct {
	path   string
	method string
}

// Register resolves every endpoint from the configured source and the
// directly-registered list, flattens their routes, de-duplicates by
// (path, method), and mounts each survivor on the host router with its
// middleware chain installed.
//
// Registration is a single synchronous pass, run once at startup before the
// server accepts connections. De-duplication is scoped to the pass:
// first registration wins, later ones are skipped with a warning, never
// merged or replaced. The pass is not safe for concurrent invocation; one
// pass per application lifecycle is expected.
//
// Configuration errors - a nil router, a result callback without result
// handling, a failing endpoint source - are fatal and reported before any
// further route is registered.
//
// Example:
//
//	r := router.MustNew()
//	err := endpoints.Register(r,
//	    endpoints.WithBasePrefix("/api"),
//	    endpoints.WithEndpoints(NewUserEndpoint(), NewOrderEndpoint()),
//	    endpoints.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatalf("endpoint registration failed: %v", err)
//	}
//	http.ListenAndServe(":8080", r)
func Register(r *router.Router, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = noopLogger
	}

	if r == nil {
		return ErrNilRouter
	}
	if cfg.resultCallback != nil && !cfg.resultHandling {
		return ErrResultCallbackDisabled
	}
	if err := validatePath(cfg.basePrefix); err != nil {
		return fmt.Errorf("base prefix: %w", err)
	}

	eps, err := resolveEndpoints(cfg)
	if err != nil {
		return err
	}

	reg := &registrar{
		router:  r,
		cfg:     cfg,
		seen:    make(map[routeKey]struct{}),
		metrics: newPassMetrics(cfg.meterProvider),
	}
	for _, ep := range eps {
		if err := reg.registerEndpoint(ep); err != nil {
			return err
		}
	}

	cfg.logger.Info("endpoint registration complete",
		"endpoints", len(eps),
		"routes", len(reg.seen),
	)
	return nil
}

// MustRegister is like [Register] but panics on error. Registration errors
// are configuration errors; panicking aborts startup immediately.
func MustRegister(r *router.Router, opts ...Option) {
	if err := Register(r, opts...); err != nil {
		panic(fmt.Sprintf("endpoints.MustRegister: %v", err))
	}
}

// resolveEndpoints produces the full endpoint list for the pass: the active
// source's endpoints followed by the directly-registered ones.
func resolveEndpoints(cfg *config) ([]Endpoint, error) {
	var eps []Endpoint
	if cfg.source != nil {
		loaded, err := cfg.source.Load()
		if err != nil {
			return nil, fmt.Errorf("loading endpoints: %w", err)
		}
		eps = append(eps, loaded...)
	}
	eps = append(eps, cfg.direct...)

	for _, ep := range eps {
		if ep == nil {
			return nil, ErrNilEndpoint
		}
	}
	return eps, nil
}

// registrar holds the transient state of one registration pass. It borrows
// endpoint and route data from whichever source produced them and owns only
// the de-duplication set, which dies with the pass.
type registrar struct {
	router  *router.Router
	cfg     *config
	seen    map[routeKey]struct{}
	metrics *passMetrics
}

func (reg *registrar) registerEndpoint(ep Endpoint) error {
	d := ep.Describe()
	if d == nil {
		return fmt.Errorf("%w: %T", ErrNilDescriptor, ep)
	}
	routes, err := d.Routes()
	if err != nil {
		return fmt.Errorf("endpoint %T: %w", ep, err)
	}

	for _, rt := range routes {
		path := joinBase(reg.cfg.basePrefix, rt.Path)
		if rt.Upgrade {
			reg.registerUpgrade(path, rt)
			continue
		}
		reg.registerHTTP(path, rt)
	}
	return nil
}

// registerUpgrade mounts one upgrade route. Upgrade routes de-duplicate on
// (path, UpgradeMethod) and mount as GET routes whose handler runs the
// WebSocket handshake and hands the live session to the endpoint's handler.
//
// Because the mount occupies the host's GET slot, the (path, GET) key is
// claimed as well: a plain GET and an upgrade route on the same path contend
// for one slot, and first registration wins for both.
func (reg *registrar) registerUpgrade(path string, rt Route) {
	key := routeKey{path: path, method: UpgradeMethod}
	if _, ok := reg.seen[key]; ok {
		reg.skipDuplicate(path, UpgradeMethod)
		return
	}
	getKey := routeKey{path: path, method: http.MethodGet}
	if _, ok := reg.seen[getKey]; ok {
		reg.skipDuplicate(path, UpgradeMethod)
		return
	}
	reg.seen[key] = struct{}{}
	reg.seen[getKey] = struct{}{}

	reg.router.GET(path, bindUpgrade(rt.wsHandler))
	reg.recordRegistered(path, UpgradeMethod)
}

// registerHTTP mounts one plain route, expanded per HTTP verb. The handler
// chain is assembled once per (path, verb): endpoint-level middlewares in
// declaration order, targeted middlewares for the exact path, then the bound
// handler. With the trailing-slash option, the variant path is mounted with
// the same chain and shares the de-dup fate of its base.
func (reg *registrar) registerHTTP(path string, rt Route) {
	bound := reg.bind(rt)

	for _, method := range rt.Methods {
		key := routeKey{path: path, method: method}
		if _, ok := reg.seen[key]; ok {
			reg.skipDuplicate(path, method)
			continue
		}
		reg.seen[key] = struct{}{}

		chain := reg.assembleChain(path, rt, bound)
		reg.mount(method, path, chain)
		reg.recordRegistered(path, method)

		if reg.cfg.trailingSlash && path != "/" {
			variant := path + "/"
			vkey := routeKey{path: variant, method: method}
			if _, ok := reg.seen[vkey]; ok {
				reg.skipDuplicate(variant, method)
				continue
			}
			reg.seen[vkey] = struct{}{}
			reg.mount(method, variant, chain)
			reg.recordRegistered(variant, method)
		}
	}
}

// assembleChain installs the route's middlewares onto a fresh route node.
// A middleware already present by key is skipped with a warning.
func (reg *registrar) assembleChain(path string, rt Route, bound router.HandlerFunc) []router.HandlerFunc {
	in := newInstaller(path)
	for _, mw := range rt.middlewares {
		if !in.install(mw) {
			reg.warn("duplicate middleware skipped", DiagDuplicateMiddleware, map[string]any{
				"path": path,
				"key":  string(mw.Key),
			})
		}
	}
	return in.handlers(bound)
}

// bind adapts the route's declared calling convention to router.HandlerFunc.
func (reg *registrar) bind(rt Route) router.HandlerFunc {
	if rt.resultHandler != nil {
		return reg.bindResult(rt.resultHandler)
	}
	return rt.handler
}

// bindResult wraps a result handler. With result handling enabled, every
// result is dispatched to the configured callback together with its contained
// error; without a callback the result is dropped with a warning. With the
// feature disabled, the result is ignored.
//
// The closure captures only the pass configuration, not the registrar: the
// de-duplication set must not outlive the pass.
func (reg *registrar) bindResult(h ResultHandlerFunc) router.HandlerFunc {
	cfg := reg.cfg
	return func(c *router.Context) {
		res := h(c)
		if !cfg.resultHandling {
			return
		}
		if cfg.resultCallback == nil {
			cfg.logger.Warn("handler result discarded: no result callback configured",
				"path", c.Request.URL.Path)
			if cfg.diagnostics != nil {
				cfg.diagnostics.OnDiagnostic(DiagnosticEvent{
					Kind:    DiagResultDiscarded,
					Message: "handler result discarded: no result callback configured",
					Fields:  map[string]any{"path": c.Request.URL.Path},
				})
			}
			return
		}
		cfg.resultCallback(c, res, res.Err())
	}
}

// bindUpgrade wraps an upgrade handler behind the WebSocket handshake.
// The wrapping handler blocks for the lifetime of the session, so the request
// context stays valid until the endpoint's handler returns.
func bindUpgrade(h WebSocketHandlerFunc) router.HandlerFunc {
	return func(c *router.Context) {
		srv := websocket.Server{
			Handler: func(conn *websocket.Conn) {
				h(c, conn)
			},
		}
		srv.ServeHTTP(c.Response, c.Request)
	}
}

// mount registers the chain on the host router under the given verb.
func (reg *registrar) mount(method, path string, chain []router.HandlerFunc) {
	switch method {
	case http.MethodGet:
		reg.router.GET(path, chain...)
	case http.MethodPost:
		reg.router.POST(path, chain...)
	case http.MethodPut:
		reg.router.PUT(path, chain...)
	case http.MethodPatch:
		reg.router.PATCH(path, chain...)
	case http.MethodDelete:
		reg.router.DELETE(path, chain...)
	case http.MethodHead:
		reg.router.HEAD(path, chain...)
	case http.MethodOptions:
		reg.router.OPTIONS(path, chain...)
	}
}

func (reg *registrar) skipDuplicate(path, method string) {
	reg.warn("duplicate route skipped", DiagDuplicateRoute, map[string]any{
		"path":   path,
		"method": method,
	})
	reg.metrics.recordSkipped(method, path)
}

func (reg *registrar) recordRegistered(path, method string) {
	reg.emit(DiagRouteRegistered, "route registered", map[string]any{
		"path":   path,
		"method": method,
	})
	reg.metrics.recordRegistered(method, path)
}

// warn logs at warning level and emits the matching diagnostic event.
func (reg *registrar) warn(msg string, kind DiagnosticKind, fields map[string]any) {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	reg.cfg.logger.Warn(msg, args...)
	reg.emit(kind, msg, fields)
}

// emit sends a diagnostic event if a handler is configured.
func (reg *registrar) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if reg.cfg.diagnostics != nil {
		reg.cfg.diagnostics.OnDiagnostic(DiagnosticEvent{
			Kind:    kind,
			Message: message,
			Fields:  fields,
		})
	}
}
