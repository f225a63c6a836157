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

import "math/rand"

// RandomSource is the random number dependency shared by every sampler in
// this package. Implementations must produce a uniform real in [0,1) and a
// uniform integer in [0,n) for positive n.
//
// A single RandomSource must not be shared between concurrently active
// samplers unless the implementation is itself safe for concurrent use;
// the default implementation, backed by the math/rand package-level
// functions, is.
type RandomSource interface {
	// Float64 returns a pseudo-random number in [0.0,1.0).
	Float64() float64
	// Intn returns a pseudo-random number in [0,n). It panics if n <= 0.
	Intn(n int) int
}

// globalRandomSource delegates to the math/rand package-level generator,
// which is safe for concurrent use by multiple goroutines.
type globalRandomSource struct{}

func (globalRandomSource) Float64() float64 { return rand.Float64() }
func (globalRandomSource) Intn(n int) int   { return rand.Intn(n) }

// DefaultRandomSource is the RandomSource used by constructors that are not
// given an explicit one.
var DefaultRandomSource RandomSource = globalRandomSource{}

// randSource adapts a caller-supplied *rand.Rand, typically seeded for
// reproducible tests, to RandomSource.
type randSource struct {
	r *rand.Rand
}

// NewRandomSource wraps r as a RandomSource. r is not safe for concurrent
// use unless r itself was constructed with a concurrency-safe rand.Source;
// the thread-safe sampler documents this requirement separately.
func NewRandomSource(r *rand.Rand) RandomSource {
	return randSource{r: r}
}

func (s randSource) Float64() float64 { return s.r.Float64() }
func (s randSource) Intn(n int) int   { return s.r.Intn(n) }

// openUnit draws from rng until it returns a strictly positive value,
// yielding a uniform sample on the open interval (0,1). Several algorithms
// compute log(u) or u^x for non-integer x and cannot tolerate u=0.
func openUnit(rng RandomSource) float64 {
	for {
		u := rng.Float64()
		if u > 0 {
			return u
		}
	}
}
