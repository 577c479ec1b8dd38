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
	"math"
	"path/filepath"
	"strings"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// DefaultManhattanThreshold flags SNPs with p < 1e-5.
const DefaultManhattanThreshold = 5.0

// SNP is one association test laid out for a Manhattan plot.
type SNP struct {
	Chr  string
	BP   int
	P    float64
	LogP float64
	// Position places SNPs of consecutive chromosomes one after another.
	Position    int
	Significant bool
}

// Treatment is the second dot field of the file name, e.g. vitamin for
// gwas.vitamin.qassoc.
func Treatment(path string) string {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[1]
}

// ReadQassoc parses a PLINK .qassoc file and lays its SNPs out. SNPs whose
// -log10 P exceeds threshold are flagged. Rows with P = NA take part in the
// layout and are then dropped and counted as skipped.
func ReadQassoc(r io.Reader, threshold float64) ([]SNP, int, error) {
	rd := record.NewReader(r, record.Options{Delim: record.Whitespace})
	if !rd.Next() {
		if err := rd.Err(); err != nil {
			return nil, 0, err
		}
		return nil, 0, apperr.FormatMismatch("empty qassoc file")
	}
	cols := schema.NewColumns(rd.Record().Fields)
	if err := cols.Require(schema.QassocChr, schema.QassocBP, schema.QassocP); err != nil {
		return nil, 0, err
	}
	var snps []SNP
	skipped := 0
	for rd.Next() {
		rec := rd.Record()
		chr, err1 := cols.Field(rec, schema.QassocChr)
		bp, err2 := cols.Int(rec, schema.QassocBP)
		if err1 != nil || err2 != nil {
			skipped++
			continue
		}
		p, err := cols.Float(rec, schema.QassocP)
		if err != nil {
			p = math.NaN()
		}
		lp := -math.Log10(p)
		snps = append(snps, SNP{Chr: chr, BP: bp, P: p, LogP: lp, Significant: lp > threshold})
	}
	if err := rd.Err(); err != nil {
		return nil, skipped, err
	}
	Layout(snps)
	tested := snps[:0]
	for _, s := range snps {
		if math.IsNaN(s.P) {
			skipped++
			continue
		}
		tested = append(tested, s)
	}
	return tested, skipped, nil
}

// Layout assigns cumulative positions: a SNP advances the running position
// by its distance from the previous SNP, and by one when BP drops, which
// marks the start of the next chromosome.
func Layout(snps []SNP) {
	count := 0
	for i := range snps {
		switch {
		case i == 0:
		case snps[i].BP < snps[i-1].BP:
			count++
		default:
			count += snps[i].BP - snps[i-1].BP
		}
		snps[i].Position = count
	}
}
