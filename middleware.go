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

import "rivaas.dev/router"

// Key identifies a middleware for per-route collision detection.
// Two middlewares with the same key are considered the same middleware:
// installing the second onto a route that already carries the first is a
// no-op with a warning, never a replacement.
type Key string

// Middleware pairs a collision key with a provider that produces the
// configured middleware instance. The provider is invoked once per route the
// middleware is installed on, at registration time.
//
// The rivaas middleware family composes directly, since every middleware
// package exposes New(opts...) router.HandlerFunc:
//
//	endpoints.Middleware{
//	    Key:     "requestid",
//	    Provide: func() router.HandlerFunc { return requestid.New() },
//	}
type Middleware struct {
	Key     Key
	Provide func() router.HandlerFunc
}

// valid reports whether the middleware carries both a key and a provider.
// Invalid middlewares fail descriptor construction, not registration.
func (m Middleware) valid() bool {
	return m.Key != "" && m.Provide != nil
}

// installer accumulates the handler chain for a single route node during one
// registration pass. Installation is idempotent by key: the first install of
// a key wins, later installs of the same key are skipped. There is no
// rollback; a partial multi-middleware install is never unwound.
type installer struct {
	path      string
	installed map[Key]struct{}
	chain     []router.HandlerFunc
}

func newInstaller(path string) *installer {
	return &installer{
		path:      path,
		installed: make(map[Key]struct{}),
	}
}

// install attaches the configured middleware to the route node unless its key
// is already present. It reports whether the middleware was installed.
func (in *installer) install(mw Middleware) bool {
	if _, ok := in.installed[mw.Key]; ok {
		return false
	}
	in.installed[mw.Key] = struct{}{}
	in.chain = append(in.chain, mw.Provide())
	return true
}

// handlers returns the final chain for the route: installed middlewares in
// install order, then the bound handler.
func (in *installer) handlers(handler router.HandlerFunc) []router.HandlerFunc {
	return append(in.chain, handler)
}
