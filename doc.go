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

/*
Package endpoints provides declarative endpoint registration for
rivaas.dev/router. Instead of registering routes imperatively, application
code declares them on endpoint types - user-defined units grouping related
handlers under one or more path prefixes - and mounts the whole set in a
single startup pass.

# Declaring endpoints

An endpoint implements the single-method [Endpoint] interface, returning its
route table as a [Descriptor]:

	type HelloEndpoint struct{}

	func (e *HelloEndpoint) Describe() *endpoints.Descriptor {
	    return endpoints.New(endpoints.WithPrefixes("/", "/api")).
	        GET("/", e.hello)
	}

	func (e *HelloEndpoint) hello(c *router.Context) {
	    c.String(http.StatusOK, "hello")
	}

Registering the endpoint above mounts GET / and GET /api - one route per
declared prefix.

# Registration

Registration is one synchronous pass at startup, before the server accepts
connections:

	r := router.MustNew()
	endpoints.MustRegister(r,
	    endpoints.WithEndpoints(&HelloEndpoint{}),
	)
	http.ListenAndServe(":8080", r)

Routes are de-duplicated by (path, method) across the whole pass: the first
registration wins, later ones are skipped with a warning. Endpoints come from
an [Source] - a static list, a container query, or the explicit constructor
registry in rivaas.dev/endpoints/registry - plus any endpoints passed
directly with [WithEndpoints].

# Middleware

Endpoint-level middlewares install on every route of the endpoint; targeted
installs apply to one exact path. Installation is keyed: installing the same
[Key] twice on one route is a no-op with a warning. The rivaas middleware
family plugs in directly:

	d.Use(endpoints.Middleware{
	    Key:     "requestid",
	    Provide: func() router.HandlerFunc { return requestid.New() },
	})

# Result handlers and WebSockets

Handlers may return a tagged success/failure value (see the result
sub-package) dispatched to a single configured translation callback, and
endpoints may declare WebSocket upgrade routes whose handlers own the live
session:

	d.HandleResult("/users/:id", e.get, http.MethodGet)
	d.WebSocket("/ws", e.stream)

Dispatch-time concurrency is owned entirely by the router: one handler
reference is bound per route and invoked for every matching request, so
handlers must be safe for concurrent use.
*/
package endpoints
