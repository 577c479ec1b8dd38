// BSD 3-Clause License

// Copyright (c) 2023, Stephen Fletcher
// All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:

// 1. Redistributions of source code must retain the above copyright notice, this
//    list of conditions and the following disclaimer.

// 2. Redistributions in binary form must reproduce the above copyright notice,
//    this list of conditions and the following disclaimer in the documentation
//    and/or other materials provided with the distribution.

// 3. Neither the name of the copyright holder nor the names of its
//    contributors may be used to endorse or promote products derived from
//    this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package genome

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"cbtools/internal/apperr"
)

// Bin is one histogram bucket [Lo, Hi); the last bucket also holds Hi.
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Histogram counts xs into n equal bins over [lo, hi]. Values outside the
// range are left out and counted in dropped.
func Histogram(xs []float64, n int, lo, hi float64) (bins []Bin, dropped int, err error) {
	if n <= 0 || !(hi > lo) {
		return nil, 0, apperr.InvalidArgument("histogram needs bins > 0 and hi > lo, got %d over [%g, %g]", n, lo, hi)
	}
	in := make([]float64, 0, len(xs))
	for _, x := range xs {
		if x < lo || x > hi || math.IsNaN(x) {
			dropped++
			continue
		}
		in = append(in, x)
	}
	slices.Sort(in)

	edges := floats.Span(make([]float64, n+1), lo, hi)
	dividers := slices.Clone(edges)
	dividers[n] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, in, nil)

	bins = make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{Lo: edges[i], Hi: edges[i+1], Count: int(counts[i])}
	}
	return bins, dropped, nil
}
