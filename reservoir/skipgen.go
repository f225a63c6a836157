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

// SkipGenerator produces the number of stream items to ignore between two
// accepted items in an unweighted reservoir. The first call returns the
// number of items to skip immediately after the reservoir first fills;
// every later call returns the gap since the previous acceptance.
//
// A SkipGenerator carries its own state and is not safe for concurrent use.
// ThreadSafeLiLReservoir (threadsafe.go) does not use a SkipGenerator; it
// calls liLStep directly and keeps W in an atomic.
type SkipGenerator interface {
	// Next advances the generator's internal state and returns the next
	// skip count. It returns ErrStreamOverflow once the generator's state
	// has saturated; the generator must not be used again afterward.
	Next() (int64, error)
}

// SkipGeneratorFactory builds a SkipGenerator for a reservoir of size k
// using the given random source. It lets Reservoir be instantiated with any
// of the unweighted variants without a type switch.
type SkipGeneratorFactory func(k int, rng RandomSource) SkipGenerator
