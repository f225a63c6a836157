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

// vitterZSkipGenerator implements Vitter's Algorithm Z, the O(1)-amortized
// rejection-sampling refinement of Algorithm X.
//
// Reference: J. S. Vitter, "Random Sampling with a Reservoir", ACM
// Transactions on Mathematical Software, 11(1), 1985.
type vitterZSkipGenerator struct {
	k   int64
	t   int64
	w   float64
	rng RandomSource
}

// NewVitterZSkipGenerator builds the skip generator behind Vitter's
// Algorithm Z.
func NewVitterZSkipGenerator(k int, rng RandomSource) SkipGenerator {
	kk := int64(k)
	w := math.Pow(openUnit(rng), -1.0/float64(kk))
	return &vitterZSkipGenerator{k: kk, t: kk, w: w, rng: rng}
}

func (g *vitterZSkipGenerator) Next() (int64, error) {
	for {
		u := openUnit(g.rng)
		t := float64(g.t)
		k := float64(g.k)
		x := t * (g.w - 1)
		gFloat := math.Floor(x)
		gInt := int64(gFloat)

		term := t - k + 1
		t1 := t + 1

		lhs := math.Exp((1.0 / k) * math.Log(u*((t1/term)*(t1/term))*(t+gFloat)/(t+x)))
		rhs := ((t + x) / (t + gFloat)) * (term / t)

		if lhs <= rhs {
			g.w = rhs / lhs
			return g.advance(gInt)
		}

		y := (u * (t1 / term) * (t + gFloat + 1)) / (t + x + 1)
		var denom, numerLimit float64
		if k < gFloat {
			denom = t
			numerLimit = t - k + gFloat
			for numer := t + gFloat; numer > numerLimit; numer-- {
				y = y * numer / denom
				denom--
			}
		} else {
			denom = t + gFloat - k
			for numer := t + gFloat; numer > t; numer-- {
				y = y * numer / denom
				denom--
			}
		}

		wNext := math.Pow(openUnit(g.rng), -1.0/k)
		if math.Exp(math.Log(y)/k) <= (t+x)/t {
			g.w = wNext
			return g.advance(gInt)
		}
		g.w = wNext
	}
}

func (g *vitterZSkipGenerator) advance(skip int64) (int64, error) {
	if g.t > math.MaxInt64-skip-1 {
		return 0, ErrStreamOverflow
	}
	g.t += skip + 1
	return skip, nil
}
