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

// Source supplies the set of endpoints to register. Exactly one source is
// active per registration pass; endpoints added directly with [WithEndpoints]
// are concatenated after the source's result. When no source is configured,
// the implicit default is [Static] over the directly-registered endpoints.
//
// Built-in strategies:
//
//   - [Static]: a fixed, caller-provided list, returned verbatim.
//   - [FromContainer]: whatever an external container resolves; order is
//     container-defined and not guaranteed stable.
//   - registry.Source (rivaas.dev/endpoints/registry): one instance per
//     explicitly registered constructor.
type Source interface {
	Load() ([]Endpoint, error)
}

// SourceFunc is a function adapter for Source.
type SourceFunc func() ([]Endpoint, error)

func (f SourceFunc) Load() ([]Endpoint, error) {
	return f()
}

// Static returns a source that yields the given endpoints verbatim, in the
// given order, on every Load.
func Static(eps ...Endpoint) Source {
	return SourceFunc(func() ([]Endpoint, error) {
		return eps, nil
	})
}

// Container is the capability a dependency container exposes to act as an
// endpoint source: resolve every object assignable to [Endpoint].
type Container interface {
	Endpoints() []Endpoint
}

// FromContainer returns a source backed by a container query.
func FromContainer(c Container) Source {
	return SourceFunc(func() ([]Endpoint, error) {
		return c.Endpoints(), nil
	})
}
