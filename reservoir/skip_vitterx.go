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

// vitterXSkipGenerator implements Vitter's Algorithm X. quot tracks the
// probability of skipping at least the current number of items; the skip
// count is the first iteration at which quot drops to or below the drawn
// uniform.
type vitterXSkipGenerator struct {
	k   int64
	t   int64
	rng RandomSource
}

// NewVitterXSkipGenerator builds the skip generator behind Vitter's
// Algorithm X.
func NewVitterXSkipGenerator(k int, rng RandomSource) SkipGenerator {
	return &vitterXSkipGenerator{k: int64(k), t: int64(k), rng: rng}
}

func (g *vitterXSkipGenerator) Next() (int64, error) {
	r := g.rng.Float64()
	quot := 1.0
	var iterations int64
	for {
		if g.t == math.MaxInt64 {
			return 0, ErrStreamOverflow
		}
		g.t++
		iterations++
		quot *= float64(g.t-g.k) / float64(g.t)
		if quot <= r {
			return iterations - 1, nil
		}
	}
}
