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
	"slices"

	"gonum.org/v1/gonum/floats"
)

// ContigStats summarizes an assembly.
type ContigStats struct {
	Count int
	Total int
	Mean  float64
	Min   int
	Max   int
	N50   int
}

// SummarizeContigs reports false for an empty assembly.
func SummarizeContigs(lengths []int) (ContigStats, bool) {
	if len(lengths) == 0 {
		return ContigStats{}, false
	}
	sorted := slices.Clone(lengths)
	slices.Sort(sorted)
	slices.Reverse(sorted)

	fl := make([]float64, len(sorted))
	for i, l := range sorted {
		fl[i] = float64(l)
	}
	total := floats.Sum(fl)
	s := ContigStats{
		Count: len(sorted),
		Total: int(total),
		Mean:  total / float64(len(sorted)),
		Min:   sorted[len(sorted)-1],
		Max:   sorted[0],
	}
	s.N50 = n50(sorted, total/2)
	return s, true
}

// n50 is the length of the contig at which the running total over contigs
// sorted longest first reaches half the assembly.
func n50(desc []int, half float64) int {
	cum := 0.0
	for _, l := range desc {
		cum += float64(l)
		if cum >= half {
			return l
		}
	}
	return 0
}
