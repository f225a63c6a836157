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

// Caller-contract errors, surfaced immediately without any state change.
var (
	// ErrInvalidSampleSize is returned when a sampler is constructed with a
	// non-positive or otherwise unsupported k.
	ErrInvalidSampleSize = errors.New("reservoir: sample size k must be positive")

	// ErrNullRandom is returned when a sampler is constructed with an
	// explicit nil random source.
	ErrNullRandom = errors.New("reservoir: random source must not be nil")

	// ErrNullItem is returned by Feed when T is a nilable type (pointer,
	// interface, slice, map, chan, or func) and the fed value is nil.
	ErrNullItem = errors.New("reservoir: item must not be nil")

	// ErrMismatchedLengths is returned by the paired-sequence form of Feed
	// when the item and weight iterators disagree in length.
	ErrMismatchedLengths = errors.New("reservoir: item and weight sequences have different lengths")
)

// ErrStreamOverflow is returned once a sampler's internal stream counter, a
// skip generator's internal state, or a weighted sampler's running weight
// sum saturates. The sampler must be discarded after this error; there is
// no retry and no reset.
var ErrStreamOverflow = errors.New("reservoir: stream counter or skip generator overflowed")

// IllegalWeightError reports that a weight fed to a weighted sampler falls
// outside the algorithm's declared valid range. It carries the human
// readable range so the message is self-explanatory regardless of variant.
type IllegalWeightError struct {
	Weight float64
	Range  string
}

func (e *IllegalWeightError) Error() string {
	return "reservoir: weight " + formatFloat(e.Weight) + " is not in the valid range " + e.Range
}
