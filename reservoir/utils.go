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
	"strconv"

	"github.com/streamsample/reservoir-go/internal/binomialproportionsbounds"
)

// defaultKappa is the number of standard deviations used for subset sum
// error bounds.
const defaultKappa = 2.0

// SampleSubsetSummary captures the result of a subset-sum query against a
// sampler's reservoir: a point estimate together with a two-standard
// deviation confidence band.
type SampleSubsetSummary struct {
	LowerBound        float64
	Estimate          float64
	UpperBound        float64
	TotalSketchWeight float64
}

func pseudoHypergeometricUpperBoundOnP(n, k uint64, samplingRate float64) (float64, error) {
	return binomialproportionsbounds.ApproximateUpperBoundOnP(n, k, defaultKappa*math.Sqrt(1-samplingRate))
}

func pseudoHypergeometricLowerBoundOnP(n, k uint64, samplingRate float64) (float64, error) {
	return binomialproportionsbounds.ApproximateLowerBoundOnP(n, k, defaultKappa*math.Sqrt(1-samplingRate))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
