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
)

// keyFunc draws a sort key for an item given its weight. It must route any
// randomness it needs through openUnit to avoid log(0) or 0^x blowups.
type keyFunc func(weight float64, rng RandomSource) float64

// weightValidator reports whether weight falls within an algorithm's
// declared valid range.
type weightValidator func(weight float64) bool

// KeyedWeightedSampler implements order sampling: every item
// is assigned an independent key drawn from a weight-dependent
// distribution, and the k items with the largest keys form the sample. It
// maintains a bounded min-heap of at most k keys so the weakest retained
// key - the one to evict when a stronger item arrives - is always at the
// root.
type KeyedWeightedSampler[T any] struct {
	k             int
	n             int64
	heap          []WeightedKey[T]
	validate      weightValidator
	weightRange   string
	key           keyFunc
	defaultWeight float64
	rng           RandomSource
}

func newKeyedWeightedSampler[T any](
	k int,
	validate weightValidator,
	weightRange string,
	key keyFunc,
	defaultWeight float64,
	opts []Option,
) (*KeyedWeightedSampler[T], error) {
	if k <= 0 {
		return nil, ErrInvalidSampleSize
	}
	cfg, err := newEngineConfig(opts)
	if err != nil {
		return nil, err
	}
	return &KeyedWeightedSampler[T]{
		k:             k,
		heap:          make([]WeightedKey[T], 0, k),
		validate:      validate,
		weightRange:   weightRange,
		key:           key,
		defaultWeight: defaultWeight,
		rng:           cfg.rng,
	}, nil
}

// NewEfraimidisSampler builds an order-sampling engine using the
// Efraimidis-Spirakis A-Res key, r^(1/w), valid for weights in (0,+Inf).
func NewEfraimidisSampler[T any](k int, opts ...Option) (*KeyedWeightedSampler[T], error) {
	return newKeyedWeightedSampler[T](k, validatePositiveFiniteWeight, "(0, +Inf)", efraimidisKey, 1.0, opts)
}

// NewSequentialPoissonSampler builds an order-sampling engine using the
// Sequential Poisson key, w/r, valid for weights in (0,+Inf).
func NewSequentialPoissonSampler[T any](k int, opts ...Option) (*KeyedWeightedSampler[T], error) {
	return newKeyedWeightedSampler[T](k, validatePositiveFiniteWeight, "(0, +Inf)", sequentialPoissonKey, 1.0, opts)
}

// NewParetoSampler builds an order-sampling engine using the Pareto key,
// (r*w)/((1-r)*(1-w)), valid for weights in the open interval (0,1).
//
// Its default weight, used by FeedDefault, is 0.5, the midpoint of the valid
// range. Items fed only through FeedDefault all share that weight, so their
// keys are drawn from one distribution and the sample is an
// equal-probability one.
func NewParetoSampler[T any](k int, opts ...Option) (*KeyedWeightedSampler[T], error) {
	return newKeyedWeightedSampler[T](k, validateUnitIntervalWeight, "(0, 1)", paretoKey, 0.5, opts)
}

func validatePositiveFiniteWeight(w float64) bool {
	return w > 0 && !math.IsNaN(w) && !math.IsInf(w, 0)
}

func validateUnitIntervalWeight(w float64) bool {
	return w > 0 && w < 1 && !math.IsNaN(w)
}

func efraimidisKey(w float64, rng RandomSource) float64 {
	r := openUnit(rng)
	return math.Pow(r, 1.0/w)
}

func sequentialPoissonKey(w float64, rng RandomSource) float64 {
	r := openUnit(rng)
	return w / r
}

func paretoKey(w float64, rng RandomSource) float64 {
	r := openUnit(rng)
	return (r * w) / ((1 - r) * (1 - w))
}

// Feed offers item with an explicit weight. It returns true if item entered
// the sample, whether because the heap was still filling or because item's
// key beat the current weakest retained key.
func (s *KeyedWeightedSampler[T]) Feed(item T, weight float64) (bool, error) {
	if !s.validate(weight) {
		return false, &IllegalWeightError{Weight: weight, Range: s.weightRange}
	}
	if isNilItem(item) {
		return false, ErrNullItem
	}
	if s.n == math.MaxInt64 {
		return false, ErrStreamOverflow
	}
	s.n++

	wk := newWeightedKey(item, s.key(weight, s.rng))

	if len(s.heap) < s.k {
		s.push(wk)
		return true, nil
	}
	if wk.less(s.heap[0]) {
		return false, nil
	}
	s.replaceRoot(wk)
	return true, nil
}

// FeedDefault offers item using the algorithm's declared default weight.
func (s *KeyedWeightedSampler[T]) FeedDefault(item T) (bool, error) {
	return s.Feed(item, s.defaultWeight)
}

// FeedPairs feeds paired item/weight slices of equal length, in order.
func (s *KeyedWeightedSampler[T]) FeedPairs(items []T, weights []float64) (bool, error) {
	if len(items) != len(weights) {
		return false, ErrMismatchedLengths
	}
	var changed bool
	for i, item := range items {
		ok, err := s.Feed(item, weights[i])
		changed = changed || ok
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// Sample returns a live, read-only view over the retained weighted keys, in
// the sampler's internal min-heap iteration order.
func (s *KeyedWeightedSampler[T]) Sample() View[WeightedKey[T]] {
	return keyedView[T]{s: s}
}

// SampleSize returns k, the sampler's configured capacity.
func (s *KeyedWeightedSampler[T]) SampleSize() int { return s.k }

// StreamSize returns the number of items fed so far.
func (s *KeyedWeightedSampler[T]) StreamSize() int64 { return s.n }

// IsEmpty reports whether any items have been fed yet.
func (s *KeyedWeightedSampler[T]) IsEmpty() bool { return s.n == 0 }

type keyedView[T any] struct {
	s *KeyedWeightedSampler[T]
}

func (v keyedView[T]) Len() int                { return len(v.s.heap) }
func (v keyedView[T]) At(i int) WeightedKey[T] { return v.s.heap[i] }

// push inserts wk into the bounded min-heap and restores the heap property.
func (s *KeyedWeightedSampler[T]) push(wk WeightedKey[T]) {
	s.heap = append(s.heap, wk)
	s.siftUp(len(s.heap) - 1)
}

// replaceRoot evicts the current root (the weakest retained key) in favor
// of wk, which the caller has already established is stronger.
func (s *KeyedWeightedSampler[T]) replaceRoot(wk WeightedKey[T]) {
	s.heap[0] = wk
	s.siftDown(0)
}

func (s *KeyedWeightedSampler[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !s.heap[i].less(s.heap[parent]) {
			break
		}
		s.heap[i], s.heap[parent] = s.heap[parent], s.heap[i]
		i = parent
	}
}

func (s *KeyedWeightedSampler[T]) siftDown(i int) {
	n := len(s.heap)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		smallest := left
		if right := left + 1; right < n && s.heap[right].less(s.heap[left]) {
			smallest = right
		}
		if !s.heap[smallest].less(s.heap[i]) {
			return
		}
		s.heap[i], s.heap[smallest] = s.heap[smallest], s.heap[i]
		i = smallest
	}
}
