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
	"runtime"
	"sync/atomic"
)

// pendingSkipClaimed marks the pendingSkip counter as "a replacement is in
// progress": every legitimate skip count is non-negative, so -1 can never
// collide with a real value.
const pendingSkipClaimed int64 = -1

// ThreadSafeLiLReservoir is a lock-free unweighted reservoir sampler driven
// by Li's Algorithm L. Algorithm L is the only unweighted
// engine whose skip update, liLStep, is a pure closed-form draw with no
// internal rejection loop, which is what makes a concurrent-safe variant
// possible: the fast paths (filling a slot, declining an item) are plain
// CAS retries, and only the rare event of accepting a replacement briefly
// serializes concurrent callers against each other.
type ThreadSafeLiLReservoir[T any] struct {
	k           int
	n           atomic.Int64
	fill        atomic.Int32
	data        []atomic.Pointer[T]
	pendingSkip atomic.Int64
	wBits       atomic.Uint64
	rng         RandomSource
}

// NewThreadSafeLiLReservoir builds a lock-free reservoir of capacity k. The
// supplied RandomSource must itself be safe for concurrent use; the package
// DefaultRandomSource is, since it delegates to the math/rand package-level
// functions, which serialize internally.
func NewThreadSafeLiLReservoir[T any](k int, opts ...Option) (*ThreadSafeLiLReservoir[T], error) {
	if k <= 0 {
		return nil, ErrInvalidSampleSize
	}
	cfg, err := newEngineConfig(opts)
	if err != nil {
		return nil, err
	}

	kf := float64(k)
	w0 := math.Pow(openUnit(cfg.rng), 1.0/kf)
	skip0, w1, err := liLStep(kf, w0, cfg.rng)
	if err != nil {
		return nil, err
	}

	r := &ThreadSafeLiLReservoir[T]{
		k:    k,
		data: make([]atomic.Pointer[T], k),
		rng:  cfg.rng,
	}
	r.pendingSkip.Store(skip0)
	r.wBits.Store(math.Float64bits(w1))
	return r, nil
}

// Feed offers one item to the sampler. It is safe to call concurrently from
// any number of goroutines.
func (r *ThreadSafeLiLReservoir[T]) Feed(item T) (bool, error) {
	if isNilItem(item) {
		return false, ErrNullItem
	}
	if n := r.n.Add(1); n < 0 {
		return false, ErrStreamOverflow
	}

	for {
		f := r.fill.Load()
		if f >= int32(r.k) {
			break
		}
		if r.fill.CompareAndSwap(f, f+1) {
			v := item
			r.data[f].Store(&v)
			return true, nil
		}
	}

	for {
		p := r.pendingSkip.Load()
		switch {
		case p > 0:
			if r.pendingSkip.CompareAndSwap(p, p-1) {
				return false, nil
			}
		case p == 0:
			if r.pendingSkip.CompareAndSwap(0, pendingSkipClaimed) {
				return r.replace(item)
			}
		default:
			runtime.Gosched()
		}
	}
}

// replace installs item into a uniformly random slot and draws the next
// skip count, releasing the claim that Feed took on pendingSkip. The
// caller is already known to hold that claim.
func (r *ThreadSafeLiLReservoir[T]) replace(item T) (bool, error) {
	idx := r.rng.Intn(r.k)
	v := item
	r.data[idx].Store(&v)

	wBits := r.wBits.Load()
	w := math.Float64frombits(wBits)
	skip, nextW, err := liLStep(float64(r.k), w, r.rng)
	if err != nil {
		r.pendingSkip.Store(0)
		return true, err
	}
	r.wBits.Store(math.Float64bits(nextW))
	r.pendingSkip.Store(skip)
	return true, nil
}

// Sample returns a live, read-only view of the reservoir.
func (r *ThreadSafeLiLReservoir[T]) Sample() View[T] {
	return threadSafeView[T]{r: r}
}

// SampleSize returns k, the sampler's configured capacity.
func (r *ThreadSafeLiLReservoir[T]) SampleSize() int { return r.k }

// StreamSize returns the number of items fed so far.
func (r *ThreadSafeLiLReservoir[T]) StreamSize() int64 { return r.n.Load() }

// IsEmpty reports whether any items have been fed yet.
func (r *ThreadSafeLiLReservoir[T]) IsEmpty() bool { return r.n.Load() == 0 }

type threadSafeView[T any] struct {
	r *ThreadSafeLiLReservoir[T]
}

// Len scans from slot 0 for the longest contiguous prefix of written
// slots, rather than trusting fill directly: fill is incremented the
// moment a slot index is claimed, before the corresponding Store
// completes, so a concurrent reader observing the post-claim value of
// fill could otherwise index a slot nothing has been written to yet.
// Scanning only ever reports a length for which every At(i) below it is
// backed by a completed Store; it may lag the true count by the spread
// of in-flight claims, which concurrent readers are already expected to
// tolerate.
func (v threadSafeView[T]) Len() int {
	n := 0
	for n < v.r.k && v.r.data[n].Load() != nil {
		n++
	}
	return n
}

func (v threadSafeView[T]) At(i int) T {
	return *v.r.data[i].Load()
}
