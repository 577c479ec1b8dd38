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

package kmer

import (
	"math"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"cbtools/internal/fasta"
)

// TargetSummary counts the matches of one query against one target.
type TargetSummary struct {
	Target string
	Query  string
	Hits   int
	// Similarity is the Smith-Waterman-Gotoh similarity of the two
	// sequences as a percentage, NaN when either is longer than the
	// alignment limit.
	Similarity float64
}

func newSWG() *metrics.SmithWatermanGotoh {
	swg := metrics.NewSmithWatermanGotoh()
	swg.GapPenalty = -2
	swg.Substitution = metrics.MatchMismatch{
		Match:    1,
		Mismatch: -2,
	}
	return swg
}

// Summarize reports one row per target in index order, including targets
// without hits. Alignment cost grows with the product of the lengths, so
// similarity is only computed when both sequences are at most maxAlign
// bases; maxAlign <= 0 removes the limit.
func Summarize(idx *Index, query fasta.Record, matches []Match, maxAlign int) []TargetSummary {
	hits := make([]int, len(idx.targets))
	for _, m := range matches {
		hits[m.TargetIndex]++
	}
	swg := newSWG()
	out := make([]TargetSummary, 0, len(idx.targets))
	for i, t := range idx.targets {
		sim := math.NaN()
		if maxAlign <= 0 || (len(t.Seq) <= maxAlign && len(query.Seq) <= maxAlign) {
			sim = strutil.Similarity(t.Seq, query.Seq, swg) * 100
		}
		out = append(out, TargetSummary{
			Target:     t.ID,
			Query:      query.ID,
			Hits:       hits[i],
			Similarity: sim,
		})
	}
	return out
}
