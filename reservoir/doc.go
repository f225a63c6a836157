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

// Package reservoir implements single-pass reservoir sampling over streams
// of unknown or unbounded length.
//
// A sampler maintains a bounded reservoir of size k drawn from a sequence of
// items fed one at a time through Feed. The reservoir can be read at any
// point through Sample without disturbing the sampler's state, and reflects
// every Feed call that precedes it.
//
// Three families of engine are provided:
//
//   - Reservoir, an unweighted engine driven by a pluggable SkipGenerator
//     (Waterman's Algorithm R, Vitter's Algorithm X and Algorithm Z, and
//     Li's Algorithm L).
//   - KeyedWeightedSampler, a weighted order-sampling engine backed by a
//     bounded min-heap of generated keys, used to implement
//     Efraimidis-Spirakis A-Res, Sequential Poisson, and Pareto sampling.
//   - ChaoSampler, a strictly proportional weighted engine that tracks exact
//     first-order inclusion probabilities as the stream's weight accumulates.
//
// ThreadSafeLiLReservoir offers a fourth, lock-free variant of the
// unweighted engine for callers with concurrent producers.
//
// All engines share the same streaming contract: Feed, Sample, SampleSize,
// and StreamSize. None of them retry after a reported error; once Feed
// returns ErrStreamOverflow the sampler is no longer fit for use.
package reservoir
