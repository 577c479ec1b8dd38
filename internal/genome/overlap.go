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
	"slices"

	"cbtools/internal/accum"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// FeatureOther counts sites outside every annotated feature.
const FeatureOther = "other"

type feature struct {
	start int
	end   int
	kind  string
}

// Features is an annotation of half-open [start, end) intervals per
// chromosome. Where features overlap, the one loaded last wins.
type Features struct {
	byChrom map[string][]feature
	kinds   []string
}

func (f *Features) add(chrom string, ft feature) {
	if !slices.Contains(f.kinds, ft.kind) {
		f.kinds = append(f.kinds, ft.kind)
	}
	f.byChrom[chrom] = append(f.byChrom[chrom], ft)
}

// Kinds lists feature types in first-seen order.
func (f *Features) Kinds() []string { return append([]string(nil), f.kinds...) }

// ReadFeatures parses chrom, start, end, type rows.
func ReadFeatures(r io.Reader) (*Features, int, error) {
	f := &Features{byChrom: make(map[string][]feature)}
	opts := record.Options{Delim: record.Whitespace, MinFields: schema.FeatureFields, SkipPrefixes: []string{"#", "track"}}
	skipped, err := record.Each(r, opts, func(rec record.Record) error {
		chrom, err := schema.Chrom(rec)
		if err != nil {
			return err
		}
		start, err := schema.ChromStart(rec)
		if err != nil {
			return err
		}
		end, err := schema.ChromEnd(rec)
		if err != nil {
			return err
		}
		kind, err := schema.FeatureType(rec)
		if err != nil {
			return err
		}
		f.add(chrom, feature{start: start, end: end, kind: kind})
		return nil
	})
	return f, skipped, err
}

// At returns the type of the last loaded feature containing pos.
func (f *Features) At(chrom string, pos int) (string, bool) {
	fs := f.byChrom[chrom]
	for i := len(fs) - 1; i >= 0; i-- {
		if pos >= fs[i].start && pos < fs[i].end {
			return fs[i].kind, true
		}
	}
	return "", false
}

// CountSites tallies the feature type holding each site's start. Every
// feature type is reported, then "other".
func (f *Features) CountSites(r io.Reader) (*accum.Tally[string], int, error) {
	tally := accum.NewTally[string]()
	for _, k := range f.kinds {
		tally.AddN(k, 0)
	}
	tally.AddN(FeatureOther, 0)
	opts := record.Options{Delim: record.Whitespace, MinFields: schema.BEDMinFields, SkipPrefixes: []string{"#", "track"}}
	skipped, err := record.Each(r, opts, func(rec record.Record) error {
		chrom, err := schema.Chrom(rec)
		if err != nil {
			return err
		}
		start, err := schema.ChromStart(rec)
		if err != nil {
			return err
		}
		kind, ok := f.At(chrom, start)
		if !ok {
			kind = FeatureOther
		}
		tally.Add(kind)
		return nil
	})
	return tally, skipped, err
}

// CountRecords counts the interval records of a site file.
func CountRecords(r io.Reader) (int, error) {
	var c accum.Counter
	opts := record.Options{Delim: record.Whitespace, SkipPrefixes: []string{"#", "track"}}
	_, err := record.Each(r, opts, func(record.Record) error {
		c.Add()
		return nil
	})
	return c.Value(), err
}
