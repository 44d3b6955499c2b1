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

// Package registry provides a process-wide, explicitly initialized endpoint
// registry: a mapping from name to constructor function, populated at startup
// by hand-written (or generated) Register calls, typically from init
// functions next to the endpoint they construct.
//
// The registry replaces runtime classpath scanning with explicit
// registration. Each constructor is invoked exactly once per registration
// pass; a constructor error aborts the pass.
//
// Example:
//
//	func init() {
//	    registry.MustRegister("users", func() (endpoints.Endpoint, error) {
//	        return NewUserEndpoint()
//	    })
//	}
//
//	// At startup:
//	endpoints.MustRegister(r, endpoints.WithSource(registry.Source()))
package registry

import (
	"errors"
	"fmt"
	"sync"

	"rivaas.dev/endpoints"
)

var (
	// ErrDuplicateName indicates that a constructor is already registered
	// under the given name. Duplicate registration is a configuration error,
	// fatal at registration time.
	ErrDuplicateName = errors.New("endpoint constructor already registered")

	// ErrNilConstructor indicates that Register was called without a constructor.
	ErrNilConstructor = errors.New("endpoint constructor must not be nil")
)

// Constructor builds one endpoint instance. Constructors must not require
// arguments; dependencies are captured by the closure at registration time.
type Constructor func() (endpoints.Endpoint, error)

var (
	mu    sync.Mutex
	ctors = make(map[string]Constructor)
	names []string // registration order
)

// Register adds a named constructor to the registry. Registering the same
// name twice is a configuration error.
func Register(name string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("%w: %q", ErrNilConstructor, name)
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := ctors[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	ctors[name] = ctor
	names = append(names, name)
	return nil
}

// MustRegister is like [Register] but panics on error. Intended for init
// functions, where a duplicate name should abort startup immediately.
func MustRegister(name string, ctor Constructor) {
	if err := Register(name, ctor); err != nil {
		panic(fmt.Sprintf("registry.MustRegister: %v", err))
	}
}

// Names returns the registered names in registration order.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Source returns an endpoint source that instantiates every registered
// constructor exactly once per Load, in registration order. A constructor
// error fails the load and propagates, aborting registration.
func Source() endpoints.Source {
	return endpoints.SourceFunc(func() ([]endpoints.Endpoint, error) {
		mu.Lock()
		ordered := make([]string, len(names))
		copy(ordered, names)
		byName := make(map[string]Constructor, len(ctors))
		for name, ctor := range ctors {
			byName[name] = ctor
		}
		mu.Unlock()

		eps := make([]endpoints.Endpoint, 0, len(ordered))
		for _, name := range ordered {
			ep, err := byName[name]()
			if err != nil {
				return nil, fmt.Errorf("constructing endpoint %q: %w", name, err)
			}
			eps = append(eps, ep)
		}
		return eps, nil
	})
}

// Reset removes every registered constructor. It exists for tests that need
// a clean registry; production code registers once at startup and never resets.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ctors = make(map[string]Constructor)
	names = nil
}
