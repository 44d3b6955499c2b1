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
	"strings"

	"rivaas.dev/router"
)

// UpgradeMethod is the reserved pseudo-method used to de-duplicate upgrade
// (WebSocket) routes. It never reaches the host router; upgrade routes are
// mounted as GET routes that hijack the connection during the handshake.
const UpgradeMethod = "UPGRADE"

// Route is one resolved registration unit derived from an endpoint: a
// normalized path, the HTTP methods it serves, and its bound handler.
// Routes are materialized exactly once, when the owning [Descriptor] is
// frozen, and are immutable afterwards.
//
// Exactly one of the three handler forms is set, depending on how the route
// was declared (Handle/verb sugar, HandleResult, or WebSocket).
type Route struct {
	// Path is the endpoint-relative path, already merged with the endpoint's
	// prefix and normalized. The registrar joins it with the base prefix.
	Path string

	// Methods holds the HTTP methods this route serves. Empty for upgrade routes.
	Methods []string

	// Upgrade reports whether this route transitions the connection to a
	// persistent bidirectional session instead of a single request/response.
	Upgrade bool

	handler       router.HandlerFunc
	resultHandler ResultHandlerFunc
	wsHandler     WebSocketHandlerFunc

	// middlewares is the resolved install list for this route: the endpoint's
	// global middlewares in declaration order, then any targeted installs
	// matching this exact path.
	middlewares []Middleware
}

// supportedMethods is the method vocabulary accepted by route declarations.
// It mirrors the per-method registration surface of rivaas.dev/router.
var supportedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodHead:    {},
	http.MethodOptions: {},
}

// validatePath checks the absolute-or-empty rule for declared paths.
// An empty path is shorthand for "/".
func validatePath(path string) error {
	if path == "" {
		return nil
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q", ErrRelativePath, path)
	}
	return nil
}

// validateMethods checks that every declared method is part of the supported
// vocabulary and that at least one method was declared.
func validateMethods(methods []string) error {
	if len(methods) == 0 {
		return ErrNoMethods
	}
	for _, m := range methods {
		if _, ok := supportedMethods[m]; !ok {
			return fmt.Errorf("%w: %q", ErrUnsupportedMethod, m)
		}
	}
	return nil
}

// normalizePath collapses duplicate slashes and strips a trailing slash.
// The root path "/" is preserved as-is.
func normalizePath(path string) string {
	if path == "" {
		return "/"
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// mergePrefix merges an endpoint prefix with a declared sub-path.
// A sub-path of "/" (or empty) leaves the prefix unchanged; a prefix of "/"
// leaves the sub-path unchanged; otherwise the two are concatenated without
// doubling the separator.
func mergePrefix(prefix, sub string) string {
	prefix = normalizePath(prefix)
	sub = normalizePath(sub)
	if sub == "/" {
		return prefix
	}
	if prefix == "/" {
		return sub
	}
	return prefix + sub
}

// joinBase joins the registrar's base prefix with a route path. The base is
// stripped of its trailing slash and the path of its leading slash before
// joining, so the result never contains a doubled separator.
func joinBase(base, path string) string {
	base = strings.TrimSuffix(normalizePath(base), "/")
	path = strings.TrimPrefix(normalizePath(path), "/")
	switch {
	case base == "" && path == "":
		return "/"
	case path == "":
		return base
	default:
		return base + "/" + path
	}
}
