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

import "errors"

// ErrCannotCombine signals that two partial accumulators built by the same
// Collector cannot be merged into one without breaking the sampler's
// uniformity guarantees.
var ErrCannotCombine = errors.New("reservoir: samplers of this kind cannot be combined across shards")

// Collector packages a sampler's lifecycle into the four verbs a generic
// stream-reduction pipeline expects: New creates a fresh accumulator, Fold
// feeds one element into it, Finish extracts the caller-facing result, and
// Combine attempts to merge two partial accumulators built independently
// (for example by two workers over disjoint shards of a stream).
//
// Every constructor below returns a Collector whose Combine always fails
// with ErrCannotCombine: every sampler in this package relies on a running
// stream counter to keep inclusion probabilities correct, and reconciling
// two such counters after the fact would require rererunning the skip
// math against a synthetic merged stream, which defeats the point of
// sampling online in the first place.
type Collector[S, T, R any] struct {
	New     func() S
	Fold    func(state S, item T) (S, error)
	Finish  func(state S) R
	Combine func(a, b S) (S, error)
}

func cannotCombine[S any](S, S) (S, error) {
	var zero S
	return zero, ErrCannotCombine
}

// NewUnweightedCollector adapts a skip-generator factory (one of
// NewWatermanSkipGenerator, NewVitterXSkipGenerator,
// NewVitterZSkipGenerator, NewLiLSkipGenerator, or a custom
// SkipGeneratorFactory) into a Collector whose New step builds a Reservoir
// via NewReservoir and whose Finish step materializes the final sample as a
// slice.
func NewUnweightedCollector[T any](k int, factory SkipGeneratorFactory, opts ...Option) Collector[*Reservoir[T], T, []T] {
	return Collector[*Reservoir[T], T, []T]{
		New: func() *Reservoir[T] {
			s, err := NewReservoir[T](k, factory, opts...)
			if err != nil {
				panic(err)
			}
			return s
		},
		Fold: func(s *Reservoir[T], item T) (*Reservoir[T], error) {
			_, err := s.Feed(item)
			return s, err
		},
		Finish: func(s *Reservoir[T]) []T {
			return Collect[T](s.Sample())
		},
		Combine: cannotCombine[*Reservoir[T]],
	}
}

// keyedWeightedCollectorCtor is the common shape of NewEfraimidisSampler,
// NewSequentialPoissonSampler and NewParetoSampler.
type keyedWeightedCollectorCtor[T any] func(int, ...Option) (*KeyedWeightedSampler[T], error)

// NewKeyedWeightedCollector adapts one of the order-sampling constructors
// into a Collector whose Fold step takes item/weight pairs and whose
// Finish step materializes the retained WeightedKey values as a slice.
func NewKeyedWeightedCollector[T any](ctor keyedWeightedCollectorCtor[T], k int, opts ...Option) Collector[*KeyedWeightedSampler[T], WeightedPair[T], []WeightedKey[T]] {
	return Collector[*KeyedWeightedSampler[T], WeightedPair[T], []WeightedKey[T]]{
		New: func() *KeyedWeightedSampler[T] {
			s, err := ctor(k, opts...)
			if err != nil {
				panic(err)
			}
			return s
		},
		Fold: func(s *KeyedWeightedSampler[T], pair WeightedPair[T]) (*KeyedWeightedSampler[T], error) {
			_, err := s.Feed(pair.Item, pair.Weight)
			return s, err
		},
		Finish: func(s *KeyedWeightedSampler[T]) []WeightedKey[T] {
			return Collect[WeightedKey[T]](s.Sample())
		},
		Combine: cannotCombine[*KeyedWeightedSampler[T]],
	}
}

// WeightedPair is the Fold input for a keyed-weighted Collector: an item
// paired with the weight it should be fed with.
type WeightedPair[T any] struct {
	Item   T
	Weight float64
}

// NewChaoCollector adapts NewChaoSampler into a Collector whose Fold step
// takes item/weight pairs and whose Finish step materializes the retained
// items as a slice.
func NewChaoCollector[T any](k int, opts ...Option) Collector[*ChaoSampler[T], WeightedPair[T], []T] {
	return Collector[*ChaoSampler[T], WeightedPair[T], []T]{
		New: func() *ChaoSampler[T] {
			s, err := NewChaoSampler[T](k, opts...)
			if err != nil {
				panic(err)
			}
			return s
		},
		Fold: func(s *ChaoSampler[T], pair WeightedPair[T]) (*ChaoSampler[T], error) {
			_, err := s.Feed(pair.Item, pair.Weight)
			return s, err
		},
		Finish: func(s *ChaoSampler[T]) []T {
			return Collect[T](s.Sample())
		},
		Combine: cannotCombine[*ChaoSampler[T]],
	}
}

// Run feeds every element of items through c in order, starting from a
// fresh accumulator, and returns the finished result.
func Run[S, T, R any](c Collector[S, T, R], items []T) (R, error) {
	state := c.New()
	for _, item := range items {
		var err error
		state, err = c.Fold(state, item)
		if err != nil {
			var zero R
			return zero, err
		}
	}
	return c.Finish(state), nil
}
