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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThreadSafeLiLReservoirInvalidK(t *testing.T) {
	_, err := NewThreadSafeLiLReservoir[int](0)
	assert.ErrorIs(t, err, ErrInvalidSampleSize)
}

func TestThreadSafeLiLReservoirSingleGoroutine(t *testing.T) {
	r, err := NewThreadSafeLiLReservoir[int](10)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		_, err := r.Feed(i)
		require.NoError(t, err)
	}

	assert.Equal(t, 10, r.Sample().Len())
	assert.EqualValues(t, 1000, r.StreamSize())
}

// TestThreadSafeLiLReservoirConcurrentProducers feeds the reservoir from
// many goroutines at once and checks the invariants that must hold
// regardless of interleaving: the stream counter accounts for every feed,
// the sample never exceeds k, and it fills exactly to k once enough items
// have arrived.
func TestThreadSafeLiLReservoirConcurrentProducers(t *testing.T) {
	const k = 20
	const producers = 50
	const perProducer = 500

	r, err := NewThreadSafeLiLReservoir[int](k)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				_, err := r.Feed(base*perProducer + i)
				assert.NoError(t, err)
			}
		}(p)
	}
	wg.Wait()

	assert.EqualValues(t, producers*perProducer, r.StreamSize())
	assert.Equal(t, k, r.Sample().Len())

	seen := map[int]bool{}
	for _, v := range Collect[int](r.Sample()) {
		assert.False(t, seen[v], "sample must not contain duplicates from racy slot writes")
		seen[v] = true
	}
}

func TestThreadSafeLiLReservoirRejectsNilItem(t *testing.T) {
	r, err := NewThreadSafeLiLReservoir[*int](5)
	require.NoError(t, err)

	_, err = r.Feed(nil)
	assert.ErrorIs(t, err, ErrNullItem)
}
