// Copyright 2026 The reservoir-go Authors.
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

package reservoir

// View is a read-only, live window onto a sampler's reservoir. It is
// backed directly by the sampler's storage: a later Feed call is visible
// through a View obtained earlier. Callers that need a stable snapshot
// must copy it themselves, e.g. with Collect.
type View[T any] interface {
	// Len returns the number of items currently retained.
	Len() int
	// At returns the item at position i, 0 <= i < Len().
	At(i int) T
}

// Collect copies a View into a plain, independent slice.
func Collect[T any](v View[T]) []T {
	out := make([]T, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// reservoirView is the View implementation shared by the unweighted
// Reservoir engine.
type reservoirView[T any] struct {
	r *Reservoir[T]
}

func (v reservoirView[T]) Len() int   { return len(v.r.data) }
func (v reservoirView[T]) At(i int) T { return v.r.data[i] }
