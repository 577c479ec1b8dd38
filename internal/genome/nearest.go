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

// Package genome holds the interval and coordinate utilities shared by the
// annotation, peak and assembly commands.
package genome

import (
	"io"

	"cbtools/internal/accum"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// Nearest-gene categories.
const (
	CategoryCoding = "protein_coding"
	CategoryOther  = "other"
)

// Gene is the part of a GTF gene record the nearest-gene search reports.
type Gene struct {
	Name    string
	Biotype string
	Start   int
	End     int
}

// Distance is start-pos before the interval, pos-end after it and 0 inside.
func Distance(pos, start, end int) int {
	switch {
	case pos < start:
		return start - pos
	case pos > end:
		return pos - end
	default:
		return 0
	}
}

// NearestGenes scans GTF gene records on chrom and keeps, per category, the
// gene closest to pos. Ties keep the gene that comes first in the file.
func NearestGenes(r io.Reader, chrom string, pos int) (*accum.Nearest[string, Gene], int, error) {
	best := accum.NewNearest[string, Gene]()
	opts := record.Options{Delim: record.Tab, MinFields: schema.GTFMinFields, SkipPrefixes: []string{"#"}}
	skipped, err := record.Each(r, opts, func(rec record.Record) error {
		seq, err := schema.Seqname(rec)
		if err != nil {
			return err
		}
		if seq != chrom || !schema.IsGene(rec) {
			return nil
		}
		g, err := geneOf(rec)
		if err != nil {
			return err
		}
		cat := CategoryOther
		if g.Biotype == schema.BiotypeProteinCoding {
			cat = CategoryCoding
		}
		best.Offer(cat, Distance(pos, g.Start, g.End), g)
		return nil
	})
	return best, skipped, err
}

func geneOf(rec record.Record) (Gene, error) {
	var g Gene
	var err error
	if g.Start, err = schema.Start(rec); err != nil {
		return g, err
	}
	if g.End, err = schema.End(rec); err != nil {
		return g, err
	}
	g.Name, _ = schema.GeneName(rec)
	g.Biotype, _ = schema.GeneBiotype(rec)
	return g, nil
}
