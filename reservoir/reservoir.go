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
	"fmt"
	"iter"
	"math"
	"strings"
)

// Reservoir is the unweighted reservoir sampling engine: it
// holds up to k items, drives a pluggable SkipGenerator, and accepts or
// discards each incoming item so that every item fed has equal probability
// k/n of surviving to the final sample.
type Reservoir[T any] struct {
	k           int
	n           int64
	data        []T
	skipGen     SkipGenerator
	pendingSkip int64
	rng         RandomSource
}

// Option configures a sampler constructor.
type Option func(*engineConfig)

type engineConfig struct {
	rng RandomSource
}

// WithRandomSource overrides the default, global RandomSource.
func WithRandomSource(rng RandomSource) Option {
	return func(c *engineConfig) { c.rng = rng }
}

func newEngineConfig(opts []Option) (*engineConfig, error) {
	cfg := &engineConfig{rng: DefaultRandomSource}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rng == nil {
		return nil, ErrNullRandom
	}
	return cfg, nil
}

// NewReservoir builds an unweighted reservoir of capacity k driven by the
// SkipGenerator that factory produces. Most callers want one of the named
// constructors below instead (NewWatermanReservoir, NewVitterXReservoir,
// NewVitterZReservoir, NewLiLReservoir); NewReservoir exists so the engine
// can be exercised with any conforming skip-count variant.
func NewReservoir[T any](k int, factory SkipGeneratorFactory, opts ...Option) (*Reservoir[T], error) {
	if k <= 0 {
		return nil, ErrInvalidSampleSize
	}
	cfg, err := newEngineConfig(opts)
	if err != nil {
		return nil, err
	}

	skipGen := factory(k, cfg.rng)
	skip, err := skipGen.Next()
	if err != nil {
		return nil, err
	}

	return &Reservoir[T]{
		k:           k,
		data:        make([]T, 0, k),
		skipGen:     skipGen,
		pendingSkip: skip,
		rng:         cfg.rng,
	}, nil
}

// NewWatermanReservoir builds an unweighted reservoir sampler using
// Waterman's Algorithm R.
func NewWatermanReservoir[T any](k int, opts ...Option) (*Reservoir[T], error) {
	return NewReservoir[T](k, NewWatermanSkipGenerator, opts...)
}

// NewVitterXReservoir builds an unweighted reservoir sampler using Vitter's
// Algorithm X.
func NewVitterXReservoir[T any](k int, opts ...Option) (*Reservoir[T], error) {
	return NewReservoir[T](k, NewVitterXSkipGenerator, opts...)
}

// NewVitterZReservoir builds an unweighted reservoir sampler using Vitter's
// Algorithm Z.
func NewVitterZReservoir[T any](k int, opts ...Option) (*Reservoir[T], error) {
	return NewReservoir[T](k, NewVitterZSkipGenerator, opts...)
}

// NewLiLReservoir builds an unweighted reservoir sampler using Li's
// Algorithm L.
func NewLiLReservoir[T any](k int, opts ...Option) (*Reservoir[T], error) {
	return NewReservoir[T](k, NewLiLSkipGenerator, opts...)
}

// Feed offers one item to the sampler. It returns true if the reservoir
// changed as a result (the item was stored, whether because the reservoir
// was still filling or because it replaced an existing slot).
func (r *Reservoir[T]) Feed(item T) (bool, error) {
	if isNilItem(item) {
		return false, ErrNullItem
	}
	if r.n == math.MaxInt64 {
		return false, ErrStreamOverflow
	}
	r.n++

	if len(r.data) < r.k {
		r.data = append(r.data, item)
		return true, nil
	}

	if r.pendingSkip > 0 {
		r.pendingSkip--
		return false, nil
	}

	j := r.rng.Intn(r.k)
	r.data[j] = item

	skip, err := r.skipGen.Next()
	if err != nil {
		return true, err
	}
	r.pendingSkip = skip
	return true, nil
}

// FeedSlice feeds every element of items in order. It returns true iff any
// individual Feed call returned true, and stops at the first error.
func (r *Reservoir[T]) FeedSlice(items []T) (bool, error) {
	var changed bool
	for _, item := range items {
		ok, err := r.Feed(item)
		changed = changed || ok
		if err != nil {
			return changed, err
		}
	}
	return changed, nil
}

// FeedSeq feeds every element produced by seq, in iteration order.
func (r *Reservoir[T]) FeedSeq(seq iter.Seq[T]) (bool, error) {
	var changed bool
	var feedErr error
	seq(func(item T) bool {
		var ok bool
		ok, feedErr = r.Feed(item)
		changed = changed || ok
		return feedErr == nil
	})
	return changed, feedErr
}

// Sample returns a live, read-only view of the reservoir.
func (r *Reservoir[T]) Sample() View[T] {
	return reservoirView[T]{r: r}
}

// SampleSize returns k, the sampler's configured capacity.
func (r *Reservoir[T]) SampleSize() int {
	return r.k
}

// StreamSize returns the number of items fed so far.
func (r *Reservoir[T]) StreamSize() int64 {
	return r.n
}

// IsEmpty reports whether any items have been fed yet.
func (r *Reservoir[T]) IsEmpty() bool {
	return r.n == 0
}

// ImplicitSampleWeight returns n/k once the sampler has left exact mode
// (n >= k), or 1.0 while every fed item is still being retained outright.
func (r *Reservoir[T]) ImplicitSampleWeight() float64 {
	if r.n < int64(r.k) {
		return 1.0
	}
	return float64(r.n) / float64(r.k)
}

// EstimateSubsetSum estimates, from the current reservoir, how many items
// in the full stream would satisfy predicate. It returns an exact count
// while the sampler is still in exact mode (n <= k), and otherwise a
// two-standard-deviation confidence band around a pseudo-hypergeometric
// estimate.
func (r *Reservoir[T]) EstimateSubsetSum(predicate func(T) bool) (SampleSubsetSummary, error) {
	if r.n == 0 {
		return SampleSubsetSummary{}, nil
	}

	numSamples := len(r.data)
	samplingRate := float64(numSamples) / float64(r.n)

	trueCount := 0
	for _, sample := range r.data {
		if predicate(sample) {
			trueCount++
		}
	}

	if r.n <= int64(r.k) {
		return SampleSubsetSummary{
			LowerBound:        float64(trueCount),
			Estimate:          float64(trueCount),
			UpperBound:        float64(trueCount),
			TotalSketchWeight: float64(numSamples),
		}, nil
	}

	lower, err := pseudoHypergeometricLowerBoundOnP(uint64(numSamples), uint64(trueCount), samplingRate)
	if err != nil {
		return SampleSubsetSummary{}, err
	}
	upper, err := pseudoHypergeometricUpperBoundOnP(uint64(numSamples), uint64(trueCount), samplingRate)
	if err != nil {
		return SampleSubsetSummary{}, err
	}
	estimate := float64(trueCount) / float64(numSamples)
	return SampleSubsetSummary{
		LowerBound:        float64(r.n) * lower,
		Estimate:          float64(r.n) * estimate,
		UpperBound:        float64(r.n) * upper,
		TotalSketchWeight: float64(r.n),
	}, nil
}

// String returns a human-readable summary of the sampler, without items.
func (r *Reservoir[T]) String() string {
	var sb strings.Builder
	sb.WriteString("### Reservoir SUMMARY:\n")
	sb.WriteString(fmt.Sprintf("   k            : %d\n", r.k))
	sb.WriteString(fmt.Sprintf("   n            : %d\n", r.n))
	sb.WriteString(fmt.Sprintf("   Current size : %d\n", len(r.data)))
	sb.WriteString("### END SUMMARY\n")
	return sb.String()
}
