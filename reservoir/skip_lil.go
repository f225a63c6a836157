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

// liLSkipGenerator implements Li's Algorithm L. Unlike Algorithm X (a
// sequential search) and Algorithm Z (a rejection loop), its per-call update
// is a single closed-form draw with no internal loop, which is what makes it
// amenable to a lock-free variant (see threadsafe.go).
type liLSkipGenerator struct {
	k   float64
	w   float64
	rng RandomSource
}

// NewLiLSkipGenerator builds the skip generator behind Li's Algorithm L.
func NewLiLSkipGenerator(k int, rng RandomSource) SkipGenerator {
	kf := float64(k)
	w := math.Pow(openUnit(rng), 1.0/kf)
	return &liLSkipGenerator{k: kf, w: w, rng: rng}
}

func (g *liLSkipGenerator) Next() (int64, error) {
	skip, nextW, err := liLStep(g.k, g.w, g.rng)
	if err != nil {
		return 0, err
	}
	g.w = nextW
	return skip, nil
}

// liLStep performs one closed-form update of Algorithm L given the current
// W, returning the next skip count and the updated W without mutating any
// shared state. It is shared between the single-threaded generator above
// and ThreadSafeLiLReservoir in threadsafe.go.
func liLStep(k, w float64, rng RandomSource) (skip int64, nextW float64, err error) {
	r1 := openUnit(rng)
	r2 := openUnit(rng)

	skipReal := math.Log(r1) / math.Log(1-w)
	if math.IsInf(skipReal, -1) || skipReal > float64(math.MaxInt64) {
		return 0, 0, ErrStreamOverflow
	}

	return int64(skipReal), w * math.Pow(r2, 1.0/k), nil
}
