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

import (
	"math"
	"sort"
)

type chaoEntry[T any] struct {
	item   T
	weight float64
}

// possibleEntry is a candidate demoted out of the overweight set during one
// feed's re-evaluation pass: still retained unless selectWeightedIndex
// picks it for removal against the other demoted candidates' drop
// densities.
type possibleEntry[T any] struct {
	entry       chaoEntry[T]
	dropDensity float64
}

// ChaoSampler implements Chao's strictly-proportional sampling scheme: the
// first-order inclusion probability of every fed item converges to
// k*weight/weightSum, clipped to 1.
//
// Two collections partition the current sample: overweight holds items
// whose inclusion probability has reached 1 and are therefore forced in,
// kept sorted by descending weight so each feed's re-evaluation pass can
// walk it from the heaviest entry down; feasible holds the remaining
// items, each implicitly sharing the rest of the sample's inclusion mass.
// A sorted slice, rather than a balanced tree, is sufficient here because
// k is always small.
type ChaoSampler[T any] struct {
	k          int
	n          int64
	weightSum  float64
	overweight []chaoEntry[T]
	feasible   []T
	rng        RandomSource
}

// NewChaoSampler builds a Chao sampler retaining up to k items.
func NewChaoSampler[T any](k int, opts ...Option) (*ChaoSampler[T], error) {
	if k <= 0 {
		return nil, ErrInvalidSampleSize
	}
	cfg, err := newEngineConfig(opts)
	if err != nil {
		return nil, err
	}
	return &ChaoSampler[T]{
		k:          k,
		overweight: make([]chaoEntry[T], 0, k),
		feasible:   make([]T, 0, k),
		rng:        cfg.rng,
	}, nil
}

// Feed offers item with weight, which must be finite and strictly
// positive. It returns true if item entered the sample.
func (s *ChaoSampler[T]) Feed(item T, weight float64) (bool, error) {
	if !validatePositiveFiniteWeight(weight) {
		return false, &IllegalWeightError{Weight: weight, Range: "(0, +Inf)"}
	}
	if isNilItem(item) {
		return false, ErrNullItem
	}
	if s.n == math.MaxInt64 {
		return false, ErrStreamOverflow
	}
	if newSum := s.weightSum + weight; math.IsInf(newSum, 0) || math.IsNaN(newSum) {
		return false, ErrStreamOverflow
	}

	s.n++
	s.weightSum += weight

	if int64(len(s.overweight)+len(s.feasible)) < int64(s.k) {
		s.insertOverweight(chaoEntry[T]{item: item, weight: weight})
		return true, nil
	}

	w := weight * float64(s.k) / s.weightSum
	isOverweight := w >= 1

	impossibleCount := 0
	impossibleSum := 0.0
	if isOverweight {
		impossibleCount = 1
		impossibleSum = weight
	}

	var retained []chaoEntry[T]
	var possible []possibleEntry[T]
	for _, e := range s.overweight {
		revised := e.weight * float64(s.k-impossibleCount) / (s.weightSum - impossibleSum)
		if revised >= 1 {
			retained = append(retained, e)
			impossibleCount++
			impossibleSum += e.weight
		} else {
			possible = append(possible, possibleEntry[T]{entry: e, dropDensity: (1 - revised) / clamp(w, 0, 1)})
		}
	}
	s.overweight = retained

	add := s.rng.Float64()
	entering := w > add

	if entering {
		densities := make([]float64, len(possible))
		for i, p := range possible {
			densities[i] = p.dropDensity
		}
		idx := selectWeightedIndex(densities, openUnit(s.rng))
		if idx >= 0 {
			possible = append(possible[:idx], possible[idx+1:]...)
		} else if len(s.feasible) > 0 {
			evict := s.rng.Intn(len(s.feasible))
			s.feasible[evict] = s.feasible[len(s.feasible)-1]
			s.feasible = s.feasible[:len(s.feasible)-1]
		}
	}

	switch {
	case w >= 1:
		s.insertOverweight(chaoEntry[T]{item: item, weight: weight})
	case entering:
		s.feasible = append(s.feasible, item)
	}

	for _, p := range possible {
		s.feasible = append(s.feasible, p.entry.item)
	}

	return entering, nil
}

// insertOverweight inserts e into the overweight slice, keeping it sorted
// by descending weight.
func (s *ChaoSampler[T]) insertOverweight(e chaoEntry[T]) {
	i := sort.Search(len(s.overweight), func(i int) bool {
		return s.overweight[i].weight <= e.weight
	})
	s.overweight = append(s.overweight, chaoEntry[T]{})
	copy(s.overweight[i+1:], s.overweight[i:])
	s.overweight[i] = e
}

// Sample returns a live, read-only view of the current sample: the
// concatenation of the feasible set and the overweight set's payloads.
func (s *ChaoSampler[T]) Sample() View[T] {
	return chaoView[T]{s: s}
}

// SampleSize returns k, the sampler's configured capacity.
func (s *ChaoSampler[T]) SampleSize() int { return s.k }

// StreamSize returns the number of items fed so far.
func (s *ChaoSampler[T]) StreamSize() int64 { return s.n }

// IsEmpty reports whether any items have been fed yet.
func (s *ChaoSampler[T]) IsEmpty() bool { return s.n == 0 }

type chaoView[T any] struct {
	s *ChaoSampler[T]
}

func (v chaoView[T]) Len() int { return len(v.s.feasible) + len(v.s.overweight) }

func (v chaoView[T]) At(i int) T {
	if i < len(v.s.feasible) {
		return v.s.feasible[i]
	}
	return v.s.overweight[i-len(v.s.feasible)].item
}
