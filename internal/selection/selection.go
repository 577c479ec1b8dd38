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

// Package selection counts synonymous and non-synonymous codon changes in a
// protein-guided nucleotide alignment and tests each position for selection.
package selection

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"cbtools/internal/apperr"
	"cbtools/internal/fasta"
)

const (
	Gap      = "-"
	GapCodon = "---"
	// DefaultZ is the two-sided p < 0.001 cutoff.
	DefaultZ = -3.29
)

// Alignment is one sequence as parallel codon and amino-acid columns.
type Alignment struct {
	ID     string
	Codons []string
	AAs    []string
}

// Thread walks the aligned protein and consumes one codon of the ungapped
// nucleotide sequence per residue; gap columns get a gap codon.
func Thread(nuc, aa fasta.Record) Alignment {
	al := Alignment{
		ID:     nuc.ID,
		Codons: make([]string, 0, len(aa.Seq)),
		AAs:    make([]string, 0, len(aa.Seq)),
	}
	j := 0
	for i := 0; i < len(aa.Seq); i++ {
		a := aa.Seq[i : i+1]
		al.AAs = append(al.AAs, a)
		if a == Gap {
			al.Codons = append(al.Codons, GapCodon)
			continue
		}
		al.Codons = append(al.Codons, codonAt(nuc.Seq, j))
		j++
	}
	return al
}

// codonAt returns the j-th codon, truncated at the end of seq.
func codonAt(seq string, j int) string {
	lo, hi := min(j*3, len(seq)), min((j+1)*3, len(seq))
	return seq[lo:hi]
}

// ThreadAll pairs nucleotide and protein records in order; extra records on
// either side are ignored.
func ThreadAll(nucs, aas []fasta.Record) []Alignment {
	n := min(len(nucs), len(aas))
	out := make([]Alignment, n)
	for i := 0; i < n; i++ {
		out[i] = Thread(nucs[i], aas[i])
	}
	return out
}

// Counts holds per-position change counts against the query.
type Counts struct {
	DN      []int
	DS      []int
	Changes []int
	// Indels counts comparisons skipped because the query has a gap codon.
	Indels     int
	Alignments int
}

// Count compares every alignment after the first with the first (the query).
func Count(aligns []Alignment) (Counts, error) {
	if len(aligns) == 0 {
		return Counts{}, apperr.InvalidArgument("no alignments to compare")
	}
	q := aligns[0]
	n := len(q.Codons)
	c := Counts{DN: make([]int, n), DS: make([]int, n), Changes: make([]int, n), Alignments: len(aligns)}
	for _, al := range aligns[1:] {
		for i := 0; i < min(n, len(al.Codons)); i++ {
			switch {
			case q.Codons[i] == GapCodon:
				c.Indels++
			case al.Codons[i] != q.Codons[i]:
				c.Changes[i]++
				if al.AAs[i] == q.AAs[i] {
					c.DS[i]++
				} else {
					c.DN[i]++
				}
			}
		}
	}
	return c, nil
}

func sum(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}

func (c Counts) TotalDN() int { return sum(c.DN) }
func (c Counts) TotalDS() int { return sum(c.DS) }

// Site is the test result of one codon position with at least one change.
type Site struct {
	Position int
	DN       int
	DS       int
	Changes  int
	// Ratio is dN/(dS+1).
	Ratio float64
	Z     float64
	// Selected is set when Z falls below the threshold.
	Selected bool
}

// Test computes z = (dN-dS) / (sd / sqrt(changes)) for every position that
// changed, where sd is the population standard deviation of dN-dS over all
// positions.
func Test(c Counts, threshold float64) []Site {
	diffs := make([]float64, len(c.DN))
	for i := range c.DN {
		diffs[i] = float64(c.DN[i] - c.DS[i])
	}
	sd := stat.PopStdDev(diffs, nil)

	var sites []Site
	for i, d := range diffs {
		if c.Changes[i] == 0 {
			continue
		}
		z := d / (sd / math.Sqrt(float64(c.Changes[i])))
		sites = append(sites, Site{
			Position: i,
			DN:       c.DN[i],
			DS:       c.DS[i],
			Changes:  c.Changes[i],
			Ratio:    float64(c.DN[i]) / float64(c.DS[i]+1),
			Z:        z,
			Selected: z < threshold,
		})
	}
	return sites
}
