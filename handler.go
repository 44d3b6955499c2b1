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
	"golang.org/x/net/websocket"

	"rivaas.dev/endpoints/result"
	"rivaas.dev/router"
)

// Handlers come in three calling conventions, all dispatched transparently by
// the registrar:
//
//   - router.HandlerFunc: the ordinary convention. The handler writes the
//     response itself through the context.
//   - ResultHandlerFunc: the handler returns a tagged success/failure value
//     that the registrar hands to the configured result callback.
//   - WebSocketHandlerFunc: the handler owns a live bidirectional session for
//     the lifetime of the connection.
//
// All three are bound once at registration and invoked for every matching
// request, so handlers must be safe for concurrent invocation and must not
// rely on shared mutable state across invocations.

// ResultHandlerFunc is a handler that returns a [result.Result] instead of
// writing the response directly. Declared via [Descriptor.HandleResult];
// requires [WithResultHandling] at registration.
type ResultHandlerFunc func(*router.Context) result.Result[any]

// ResultCallback translates a handler result into an HTTP response. It
// receives the request context, the wrapper, and the contained error (nil for
// success results). Whatever status and body it emits are returned verbatim
// to the client. Exactly one callback is configured per registration pass,
// via [WithResultCallback].
type ResultCallback func(c *router.Context, res result.Result[any], err error)

// WebSocketHandlerFunc is a handler for upgrade routes. It is invoked once
// per accepted upgrade with the request context and the live session, and
// owns the session until it returns; returning closes the connection.
type WebSocketHandlerFunc func(c *router.Context, conn *websocket.Conn)
