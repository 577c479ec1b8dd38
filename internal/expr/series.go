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

	"cbtools/internal/accum"
)

// Timecourse is the FPKM of tname in each table, NaN where it is absent.
func Timecourse(tables []*Table, tname string) []float64 {
	out := make([]float64, len(tables))
	for i, t := range tables {
		v, ok := t.FPKMOf(tname)
		if !ok {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}

// CumulativeGeneMeans walks the tables in order and reports, after each one,
// the mean FPKM of every transcript of gene seen so far. Entries before the
// first transcript is found are NaN.
func CumulativeGeneMeans(tables []*Table, gene string) []float64 {
	var s accum.Stats
	out := make([]float64, len(tables))
	for i, t := range tables {
		for _, v := range t.GeneFPKMs(gene) {
			s.Add(v)
		}
		m, _ := s.Mean()
		out[i] = m
	}
	return out
}

// MAPoint compares one transcript across two samples.
type MAPoint struct {
	TName string
	M     float64
	A     float64
}

// MA computes M = log2((f1+1)/(f2+1)) and A = 0.5*log2((f1+1)(f2+1)) for every
// transcript of a that also appears in b, in the order of a.
func MA(a, b *Table) []MAPoint {
	var out []MAPoint
	seen := make(map[string]bool)
	for _, tr := range a.Rows {
		if seen[tr.TName] {
			continue
		}
		seen[tr.TName] = true
		f2, ok := b.FPKMOf(tr.TName)
		if !ok {
			continue
		}
		x, y := tr.FPKM+1, f2+1
		out = append(out, MAPoint{
			TName: tr.TName,
			M:     math.Log2(x / y),
			A:     0.5 * math.Log2(x*y),
		})
	}
	return out
}

// DefaultPromoterFlank is the distance kept on each side of a TSS.
const DefaultPromoterFlank = 500

// Interval is a BED row.
type Interval struct {
	Chr   string
	Start int
	End   int
	Name  string
}

// Promoters returns TSS ± flank per transcript. The TSS is start on the plus
// strand and end on the minus strand; a TSS closer than flank to the
// chromosome start yields the empty interval 0 0.
func Promoters(t *Table, flank int) []Interval {
	out := make([]Interval, 0, len(t.Rows))
	for _, tr := range t.Rows {
		tss := tr.Start
		if tr.Strand == "-" {
			tss = tr.End
		}
		iv := Interval{Chr: tr.Chr, Name: tr.TName}
		if tss >= flank {
			iv.Start, iv.End = tss-flank, tss+flank
		}
		out = append(out, iv)
	}
	return out
}
