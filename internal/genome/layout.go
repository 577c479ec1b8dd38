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
	"io"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// Segment places one LASTZ alignment on a dot plot: contig coordinates run
// along X, reference coordinates along Y.
type Segment struct {
	XStart int
	XEnd   int
	YStart int
	YEnd   int
}

// LastzLayout lays alignments end to end along X in file order.
func LastzLayout(r io.Reader) ([]Segment, int, error) {
	var segs []Segment
	x := 0
	opts := record.Options{Delim: record.Tab, MinFields: schema.LastzMinFields, SkipPrefixes: []string{"#"}}
	skipped, err := record.Each(r, opts, func(rec record.Record) error {
		start, err := schema.ZStart(rec)
		if err != nil {
			return err
		}
		end, err := schema.ZEnd(rec)
		if err != nil {
			return err
		}
		length := end - start
		segs = append(segs, Segment{XStart: x, XEnd: x + length, YStart: start, YEnd: end})
		x += length
		return nil
	})
	return segs, skipped, err
}

// MotifPositions reads bedtools intersect output of peaks with motifs and
// returns each motif start relative to its peak, 0 at the peak start and 1
// at its end. Zero-length peaks are skipped.
func MotifPositions(r io.Reader) ([]float64, int, error) {
	var out []float64
	opts := record.Options{Delim: record.Whitespace, MinFields: schema.MotifMinFields}
	skipped, err := record.Each(r, opts, func(rec record.Record) error {
		start, err := schema.ChromStart(rec)
		if err != nil {
			return err
		}
		end, err := schema.ChromEnd(rec)
		if err != nil {
			return err
		}
		motif, err := schema.MotifStart(rec)
		if err != nil {
			return err
		}
		if end == start {
			return apperr.Malformed("line %d: zero-length peak", rec.Line)
		}
		out = append(out, float64(motif-start)/float64(end-start))
		return nil
	})
	return out, skipped, err
}
