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
	"net/http"
	"sync"

	"rivaas.dev/router"
)

// Endpoint is a user-defined grouping of related HTTP handlers sharing one or
// more path prefixes. Implementations describe their routes declaratively
// through a [Descriptor]; the registrar materializes and mounts them during
// one startup pass.
//
// Example:
//
//	type UserEndpoint struct {
//	    store *UserStore
//	}
//
//	func (e *UserEndpoint) Describe() *endpoints.Descriptor {
//	    return endpoints.New(endpoints.WithPrefixes("/users")).
//	        GET("/", e.list).
//	        GET("/:id", e.get).
//	        POST("/", e.create)
//	}
type Endpoint interface {
	Describe() *Descriptor
}

// EndpointOption configures a [Descriptor] at construction time.
type EndpointOption func(*Descriptor)

// WithPrefixes sets the path prefixes shared by every route of the endpoint.
// Each declared route is expanded once per prefix (cross product). When no
// prefixes are given the endpoint mounts at "/".
//
// Example:
//
//	endpoints.New(endpoints.WithPrefixes("/", "/api"))
func WithPrefixes(prefixes ...string) EndpointOption {
	return func(d *Descriptor) {
		d.prefixes = prefixes
	}
}

// declaration is one route declaration before prefix expansion.
type declaration struct {
	path          string
	methods       []string
	upgrade       bool
	handler       router.HandlerFunc
	resultHandler ResultHandlerFunc
	wsHandler     WebSocketHandlerFunc
}

// targetedInstall is a middleware install targeted at one exact route path.
type targetedInstall struct {
	path string
	mw   Middleware
}

// Descriptor is the compile-time route table of one endpoint: declared
// routes, endpoint-level middlewares, and targeted middleware installs.
//
// A Descriptor has two phases. While being built it accepts declarations
// through the fluent API. The first call to [Descriptor.Routes] - normally
// made by the registrar - validates the declarations, expands the
// prefix x declaration cross product, and freezes the descriptor. Declaring
// routes on a frozen descriptor panics: that is a construction-time misuse,
// not a runtime condition.
//
// Descriptors perform no I/O at any point.
type Descriptor struct {
	prefixes    []string
	decls       []declaration
	middlewares []Middleware
	targeted    []targetedInstall

	buildOnce sync.Once
	routes    []Route
	buildErr  error
	frozen    bool
}

// New creates an empty descriptor. Routes are declared through the fluent
// verb methods, [Descriptor.Handle], [Descriptor.HandleResult], and
// [Descriptor.WebSocket].
func New(opts ...EndpointOption) *Descriptor {
	d := &Descriptor{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// mutate guards the building phase.
func (d *Descriptor) mutate() {
	if d.frozen {
		panic("endpoints: descriptor is frozen; declare routes before registration")
	}
}

// Handle declares a route serving the given HTTP methods with an ordinary
// handler. A single call may declare several verbs at once; the registrar
// expands and de-duplicates per verb.
//
// Example:
//
//	d.Handle("/items", e.items, http.MethodGet, http.MethodPost)
func (d *Descriptor) Handle(path string, h router.HandlerFunc, methods ...string) *Descriptor {
	d.mutate()
	d.decls = append(d.decls, declaration{path: path, methods: methods, handler: h})
	return d
}

// HandleResult declares a route whose handler returns a tagged
// success/failure result instead of writing the response itself.
// Result routes require [WithResultHandling] at registration; with the
// feature disabled the returned value is ignored.
func (d *Descriptor) HandleResult(path string, h ResultHandlerFunc, methods ...string) *Descriptor {
	d.mutate()
	d.decls = append(d.decls, declaration{path: path, methods: methods, resultHandler: h})
	return d
}

// GET declares a GET route.
func (d *Descriptor) GET(path string, h router.HandlerFunc) *Descriptor {
	return d.Handle(path, h, http.MethodGet)
}

// POST declares a POST route.
func (d *Descriptor) POST(path string, h router.HandlerFunc) *Descriptor {
	return d.Handle(path, h, http.MethodPost)
}

// PUT declares a PUT route.
func (d *Descriptor) PUT(path string, h router.HandlerFunc) *Descriptor {
	return d.Handle(path, h, http.MethodPut)
}

// PATCH declares a PATCH route.
func (d *Descriptor) PATCH(path string, h router.HandlerFunc) *Descriptor {
	return d.Handle(path, h, http.MethodPatch)
}

// DELETE declares a DELETE route.
func (d *Descriptor) DELETE(path string, h router.HandlerFunc) *Descriptor {
	return d.Handle(path, h, http.MethodDelete)
}

// HEAD declares a HEAD route.
func (d *Descriptor) HEAD(path string, h router.HandlerFunc) *Descriptor {
	return d.Handle(path, h, http.MethodHead)
}

// WebSocket declares an upgrade route. The handler receives the live
// bidirectional session once the handshake completes. Upgrade routes carry no
// HTTP method; they de-duplicate under the reserved [UpgradeMethod].
func (d *Descriptor) WebSocket(path string, h WebSocketHandlerFunc) *Descriptor {
	d.mutate()
	d.decls = append(d.decls, declaration{path: path, upgrade: true, wsHandler: h})
	return d
}

// Use adds endpoint-level middlewares, installed on every route of the
// endpoint in declaration order. A middleware already present on a route by
// key is skipped with a warning, never replaced or stacked.
func (d *Descriptor) Use(mw ...Middleware) *Descriptor {
	d.mutate()
	d.middlewares = append(d.middlewares, mw...)
	return d
}

// UseAt adds middlewares installed only on routes whose merged path (prefix
// plus sub-path, before the registrar's base prefix is applied) equals the
// given path exactly. Targeted installs run after the endpoint-level
// middlewares, with the same collision policy.
func (d *Descriptor) UseAt(path string, mw ...Middleware) *Descriptor {
	d.mutate()
	for _, m := range mw {
		d.targeted = append(d.targeted, targetedInstall{path: path, mw: m})
	}
	return d
}

// Routes materializes and returns the complete route list, freezing the
// descriptor on first call. The list is stable and complete afterwards:
// repeated calls return the same routes.
//
// Construction fails on malformed declarations - a relative path, a missing
// handler, a route without methods, an invalid middleware - and the error is
// fatal to endpoint registration.
func (d *Descriptor) Routes() ([]Route, error) {
	d.buildOnce.Do(func() {
		d.frozen = true
		d.routes, d.buildErr = d.build()
	})
	return d.routes, d.buildErr
}

// build expands the prefix x declaration cross product.
// Duplicate (path, method) pairs inside one endpoint are legal here; the
// registrar resolves duplicates across the whole pass.
func (d *Descriptor) build() ([]Route, error) {
	prefixes := d.prefixes
	if len(prefixes) == 0 {
		prefixes = []string{"/"}
	}
	for _, p := range prefixes {
		if err := validatePath(p); err != nil {
			return nil, fmt.Errorf("prefix: %w", err)
		}
	}
	for _, mw := range d.middlewares {
		if !mw.valid() {
			return nil, ErrInvalidMiddleware
		}
	}
	for _, t := range d.targeted {
		if err := validatePath(t.path); err != nil {
			return nil, fmt.Errorf("targeted middleware: %w", err)
		}
		if !t.mw.valid() {
			return nil, ErrInvalidMiddleware
		}
	}

	routes := make([]Route, 0, len(d.decls)*len(prefixes))
	for _, decl := range d.decls {
		if err := d.validateDeclaration(decl); err != nil {
			return nil, err
		}
		for _, prefix := range prefixes {
			path := mergePrefix(prefix, decl.path)
			routes = append(routes, Route{
				Path:          path,
				Methods:       decl.methods,
				Upgrade:       decl.upgrade,
				handler:       decl.handler,
				resultHandler: decl.resultHandler,
				wsHandler:     decl.wsHandler,
				middlewares:   d.middlewaresFor(path),
			})
		}
	}
	return routes, nil
}

func (d *Descriptor) validateDeclaration(decl declaration) error {
	if err := validatePath(decl.path); err != nil {
		return err
	}
	if decl.upgrade {
		if decl.wsHandler == nil {
			return fmt.Errorf("%w: upgrade route %q", ErrNilHandler, decl.path)
		}
		return nil
	}
	if decl.handler == nil && decl.resultHandler == nil {
		return fmt.Errorf("%w: route %q", ErrNilHandler, decl.path)
	}
	if err := validateMethods(decl.methods); err != nil {
		return fmt.Errorf("route %q: %w", decl.path, err)
	}
	return nil
}

// middlewaresFor resolves the install list for one merged route path:
// endpoint-level middlewares first, then targeted installs matching exactly.
func (d *Descriptor) middlewaresFor(path string) []Middleware {
	mws := make([]Middleware, 0, len(d.middlewares))
	mws = append(mws, d.middlewares...)
	for _, t := range d.targeted {
		if normalizePath(t.path) == path {
			mws = append(mws, t.mw)
		}
	}
	return mws
}
