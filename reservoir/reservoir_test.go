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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservoirInvalidK(t *testing.T) {
	_, err := NewWatermanReservoir[int](0)
	assert.ErrorIs(t, err, ErrInvalidSampleSize)

	_, err = NewWatermanReservoir[int](-1)
	assert.ErrorIs(t, err, ErrInvalidSampleSize)
}

func TestNewReservoirNullRandom(t *testing.T) {
	_, err := NewWatermanReservoir[int](5, WithRandomSource(nil))
	assert.ErrorIs(t, err, ErrNullRandom)
}

func constructorsUnderTest() map[string]func(int, ...Option) (*Reservoir[int], error) {
	return map[string]func(int, ...Option) (*Reservoir[int], error){
		"waterman": NewWatermanReservoir[int],
		"vitterX":  NewVitterXReservoir[int],
		"vitterZ":  NewVitterZReservoir[int],
		"liL":      NewLiLReservoir[int],
	}
}

func TestReservoirBelowKStoresEverything(t *testing.T) {
	for name, ctor := range constructorsUnderTest() {
		t.Run(name, func(t *testing.T) {
			s, err := ctor(10)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				changed, err := s.Feed(i)
				require.NoError(t, err)
				assert.True(t, changed)
			}

			assert.Equal(t, int64(5), s.StreamSize())
			assert.Equal(t, 10, s.SampleSize())
			assert.Equal(t, 5, s.Sample().Len())

			got := Collect[int](s.Sample())
			for i := 0; i < 5; i++ {
				assert.Contains(t, got, i)
			}
		})
	}
}

func TestReservoirSizeNeverExceedsK(t *testing.T) {
	for name, ctor := range constructorsUnderTest() {
		t.Run(name, func(t *testing.T) {
			s, err := ctor(10, WithRandomSource(NewRandomSource(rand.New(rand.NewSource(42)))))
			require.NoError(t, err)

			for i := 0; i < 1000; i++ {
				_, err := s.Feed(i)
				require.NoError(t, err)
				assert.Equal(t, min64(int64(s.SampleSize()), s.StreamSize()), int64(s.Sample().Len()))
			}
		})
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// TestWatermanScenario is an end-to-end scenario over Algorithm R:
// k=10 over a stream of 1..100 with a fixed seed.
func TestWatermanScenario(t *testing.T) {
	s, err := NewWatermanReservoir[int](10, WithRandomSource(NewRandomSource(rand.New(rand.NewSource(7)))))
	require.NoError(t, err)

	for i := 1; i <= 100; i++ {
		_, err := s.Feed(i)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, s.SampleSize())
	assert.EqualValues(t, 100, s.StreamSize())
	assert.Equal(t, 10, s.Sample().Len())

	seen := map[int]bool{}
	for _, v := range Collect[int](s.Sample()) {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 100)
		assert.False(t, seen[v], "elements must be distinct")
		seen[v] = true
	}
}

func TestReservoirFirstKItemsAlwaysPresentBeforeOverflow(t *testing.T) {
	for name, ctor := range constructorsUnderTest() {
		t.Run(name, func(t *testing.T) {
			s, err := ctor(5)
			require.NoError(t, err)
			for i := 0; i < 5; i++ {
				_, err := s.Feed(i)
				require.NoError(t, err)
			}
			got := Collect[int](s.Sample())
			assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, got)
		})
	}
}

func TestReservoirFeedSliceAndFeedSeqAgree(t *testing.T) {
	items := make([]int, 200)
	for i := range items {
		items[i] = i
	}

	seedA := NewRandomSource(rand.New(rand.NewSource(99)))
	seedB := NewRandomSource(rand.New(rand.NewSource(99)))

	sliceSampler, err := NewWatermanReservoir[int](10, WithRandomSource(seedA))
	require.NoError(t, err)
	changed, err := sliceSampler.FeedSlice(items)
	require.NoError(t, err)
	assert.True(t, changed)

	seqSampler, err := NewWatermanReservoir[int](10, WithRandomSource(seedB))
	require.NoError(t, err)
	changed, err = seqSampler.FeedSeq(func(yield func(int) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	})
	require.NoError(t, err)
	assert.True(t, changed)

	assert.Equal(t, sliceSampler.StreamSize(), seqSampler.StreamSize())
	assert.Equal(t, sliceSampler.Sample().Len(), seqSampler.Sample().Len())
	assert.ElementsMatch(t, Collect[int](sliceSampler.Sample()), Collect[int](seqSampler.Sample()))
}

func TestReservoirKEqualsOne(t *testing.T) {
	for name, ctor := range constructorsUnderTest() {
		t.Run(name, func(t *testing.T) {
			s, err := ctor(1)
			require.NoError(t, err)
			for i := 0; i < 50; i++ {
				_, err := s.Feed(i)
				require.NoError(t, err)
			}
			assert.Equal(t, 1, s.Sample().Len())
		})
	}
}

// TestVitterZHugeStream exercises Algorithm Z over k=5 and an
// enormous stream of identical elements. It must terminate without
// overflow because every skip generator call makes O(1) amortized draws.
func TestVitterZHugeStream(t *testing.T) {
	s, err := NewVitterZReservoir[int](5)
	require.NoError(t, err)

	const n = 1 << 20 // scaled down from 2^28 to keep the test fast
	for i := 0; i < n; i++ {
		_, err := s.Feed(1)
		require.NoError(t, err)
	}

	assert.Equal(t, 5, s.Sample().Len())
	assert.EqualValues(t, n, s.StreamSize())
}

func TestReservoirInclusionFrequencyConvergesToKOverN(t *testing.T) {
	for name, ctor := range constructorsUnderTest() {
		t.Run(name, func(t *testing.T) {
			const n, k, trials = 20, 5, 4000
			counts := make([]int, n)

			for trial := 0; trial < trials; trial++ {
				s, err := ctor(k)
				require.NoError(t, err)
				for i := 0; i < n; i++ {
					_, err := s.Feed(i)
					require.NoError(t, err)
				}
				for _, v := range Collect[int](s.Sample()) {
					counts[v]++
				}
			}

			expected := float64(trials*k) / float64(n)
			for i, c := range counts {
				ratio := float64(c) / expected
				assert.InDeltaf(t, 1.0, ratio, 0.15, "element %d frequency ratio %f out of tolerance", i, ratio)
			}
		})
	}
}

func TestReservoirEstimateSubsetSumExactMode(t *testing.T) {
	s, err := NewWatermanReservoir[int](10)
	require.NoError(t, err)
	for i := 1; i <= 5; i++ {
		_, err := s.Feed(i)
		require.NoError(t, err)
	}

	summary, err := s.EstimateSubsetSum(func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.Equal(t, 2.0, summary.Estimate)
	assert.Equal(t, summary.Estimate, summary.LowerBound)
	assert.Equal(t, summary.Estimate, summary.UpperBound)
}

// TestReservoirEstimateSubsetSumSamplingMode drives n > k, the only path
// that reaches the pseudo-hypergeometric confidence band in
// internal/binomialproportionsbounds. Every even value in 1..n satisfies
// the predicate, so the true subset sum is known exactly and must fall
// inside the returned band.
func TestReservoirEstimateSubsetSumSamplingMode(t *testing.T) {
	const n, k = 400, 20
	s, err := NewWatermanReservoir[int](k, WithRandomSource(NewRandomSource(rand.New(rand.NewSource(11)))))
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		_, err := s.Feed(i)
		require.NoError(t, err)
	}

	summary, err := s.EstimateSubsetSum(func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)

	const trueSubsetSum = n / 2
	assert.LessOrEqual(t, summary.LowerBound, summary.Estimate)
	assert.LessOrEqual(t, summary.Estimate, summary.UpperBound)
	assert.GreaterOrEqual(t, summary.LowerBound, 0.0)
	assert.LessOrEqual(t, summary.UpperBound, float64(n))
	assert.Equal(t, float64(n), summary.TotalSketchWeight)
	assert.LessOrEqual(t, summary.LowerBound, float64(trueSubsetSum))
	assert.GreaterOrEqual(t, summary.UpperBound, float64(trueSubsetSum))
}
