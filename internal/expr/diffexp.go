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

package expr

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// TTest is the two-sided Student t-test with pooled variance. Groups that
// leave no degrees of freedom give NaN.
func TTest(a, b []float64) (t, p float64) {
	n1, n2 := float64(len(a)), float64(len(b))
	df := n1 + n2 - 2
	if len(a) == 0 || len(b) == 0 || df <= 0 {
		return math.NaN(), math.NaN()
	}
	m1, v1 := stat.MeanVariance(a, nil)
	m2, v2 := stat.MeanVariance(b, nil)
	if len(a) == 1 {
		v1 = 0
	}
	if len(b) == 1 {
		v2 = 0
	}
	pooled := ((n1-1)*v1 + (n2-1)*v2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	t = (m1 - m2) / se
	if math.IsNaN(t) {
		return math.NaN(), math.NaN()
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return t, 2 * dist.Survival(math.Abs(t))
}

// DEResult is one gene tested between two stage groups.
type DEResult struct {
	Gene string
	T    float64
	P    float64
}

// DiffExp tests every gene with complete values for the early and late
// columns and keeps those with p < alpha, in table order.
func DiffExp(f *Frame, early, late []string, alpha float64) ([]DEResult, error) {
	genes, vals, err := f.Select(append(append([]string(nil), early...), late...))
	if err != nil {
		return nil, err
	}
	var out []DEResult
	for i, row := range vals {
		t, p := TTest(row[:len(early)], row[len(early):])
		if p < alpha {
			out = append(out, DEResult{Gene: genes[i], T: t, P: p})
		}
	}
	return out, nil
}
