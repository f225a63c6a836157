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

import "sync/atomic"

// tieBreakerCounter hands out the monotonically increasing tie-breakers
// that keep WeightedKey ordering total even when two items draw the exact
// same key. This supersedes the historical design of a per-instance, lazily
// grown list of random integers: a shared atomic counter gives every key a
// distinct tie-breaker in O(1) with no unbounded growth under adversarial
// collisions.
var tieBreakerCounter atomic.Uint64

// WeightedKey pairs a payload with the real-valued sort key a key-ordered
// weighted sampler generated for it. Ordering is total: two WeightedKey
// values compare equal if and only if they are the same value, because
// every key carries a unique tie-breaker assigned at construction.
type WeightedKey[T any] struct {
	Item T
	Key  float64
	tie  uint64
}

func newWeightedKey[T any](item T, key float64) WeightedKey[T] {
	return WeightedKey[T]{Item: item, Key: key, tie: tieBreakerCounter.Add(1)}
}

// less reports whether a sorts strictly before b: by Key first, and by
// tie-breaker to resolve exact ties.
func (a WeightedKey[T]) less(b WeightedKey[T]) bool {
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.tie < b.tie
}
