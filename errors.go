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

import "errors"

var (
	// ErrNilRouter indicates that Register was called without a router.
	// Registration fails before any route is touched; there is no fallback router.
	ErrNilRouter = errors.New("router must not be nil")

	// ErrNilEndpoint indicates that an endpoint source produced a nil endpoint.
	ErrNilEndpoint = errors.New("endpoint must not be nil")

	// ErrNilDescriptor indicates that an endpoint returned a nil descriptor from Describe.
	ErrNilDescriptor = errors.New("endpoint descriptor must not be nil")

	// ErrNilHandler indicates that a route was declared without a handler.
	ErrNilHandler = errors.New("route handler must not be nil")

	// ErrRelativePath indicates a route path that is neither empty nor absolute.
	ErrRelativePath = errors.New("route path must be empty or start with '/'")

	// ErrNoMethods indicates a non-upgrade route declared without any HTTP method.
	ErrNoMethods = errors.New("route must declare at least one HTTP method")

	// ErrUnsupportedMethod indicates an HTTP method outside the supported set.
	ErrUnsupportedMethod = errors.New("unsupported HTTP method")

	// ErrInvalidMiddleware indicates a middleware with an empty key or nil provider.
	ErrInvalidMiddleware = errors.New("middleware must have a key and a provider")

	// ErrResultCallbackDisabled indicates that a result callback was configured
	// without enabling result handling.
	ErrResultCallbackDisabled = errors.New("result callback requires result handling to be enabled")
)
