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

// selectWeightedIndex picks an index from a discrete distribution given by
// probs (which need not sum to exactly 1) by a running prefix-sum scan: it
// returns the least index i such that the prefix sum of probs[0..i] exceeds
// u, or -1 if u exceeds the sum of all of probs. It is used only by the
// Chao engine, to choose which demoted candidate is permanently dropped.
func selectWeightedIndex(probs []float64, u float64) int {
	var running float64
	for i, p := range probs {
		running += p
		if running > u {
			return i
		}
	}
	return -1
}
