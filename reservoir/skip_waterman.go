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

import "math"

// watermanSkipGenerator implements Waterman's Algorithm R by the equivalent
// skip-count formulation: rather than flipping a coin for every incoming
// item, it draws directly for the number of items to pass over before the
// next acceptance.
type watermanSkipGenerator struct {
	k   int64
	t   int64
	rng RandomSource
}

// NewWatermanSkipGenerator builds the skip generator behind Algorithm R.
func NewWatermanSkipGenerator(k int, rng RandomSource) SkipGenerator {
	return &watermanSkipGenerator{k: int64(k), t: int64(k), rng: rng}
}

func (g *watermanSkipGenerator) Next() (int64, error) {
	var skip int64
	for {
		if g.t == math.MaxInt64 {
			return 0, ErrStreamOverflow
		}
		g.t++
		u := g.rng.Float64()
		if u*float64(g.t) < float64(g.k) {
			return skip, nil
		}
		skip++
	}
}
