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

package main

import (
	"cbtools/internal/apperr"
	"cbtools/internal/emit"
	"cbtools/internal/genome"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// emitValues prints one value per row, or with bins > 0 their histogram over
// [lo, hi].
func (e *env) emitValues(name string, xs []float64, bins int, lo, hi float64) error {
	if bins <= 0 {
		e.out.Header([]string{name})
		for _, x := range xs {
			e.out.Row([]string{emit.Float(x)})
		}
		return nil
	}
	hist, dropped, err := genome.Histogram(xs, bins, lo, hi)
	if err != nil {
		return err
	}
	if dropped > 0 {
		e.log.Warn("values outside the histogram range dropped", "count", dropped, "lo", lo, "hi", hi)
	}
	e.out.Header([]string{"bin_lo", "bin_hi", "count"})
	for _, b := range hist {
		e.out.Row([]string{emit.Float(b.Lo), emit.Float(b.Hi), emit.Int(b.Count)})
	}
	return nil
}

func runAlleleFreqs(e *env, args []string) error {
	fs := e.flags("allele-freqs")
	bins := fs.Int("bins", 0, "Report a histogram with this many bins over [0, 1] instead of values")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	if *bins < 0 {
		return apperr.InvalidArgument("bins must not be negative, got %d", *bins)
	}
	path := optional(pos, 0)
	var afs []float64
	opts := record.Options{Delim: record.Tab, MinFields: schema.VCFMinFields, SkipPrefixes: []string{"#"}}
	skipped, err := record.EachFile(path, opts, func(r record.Record) error {
		vs, err := schema.AlleleFrequencies(r)
		if err != nil {
			return err
		}
		afs = append(afs, vs...)
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	e.log.Infof("%s allele frequencies", intWithCommas(len(afs)))
	return e.emitValues("af", afs, *bins, 0, 1)
}

func runManhattan(e *env, args []string) error {
	fs := e.flags("manhattan")
	threshold := fs.Float64("threshold", e.cfg.Manhattan.Threshold, "-log10 P above which a SNP is significant")
	pos, err := e.parse(fs, args, 1, -1)
	if err != nil {
		return err
	}
	e.out.Header([]string{"treatment", "chr", "bp", "p", "neg_log10_p", "position", "significant"})
	for _, path := range pos {
		snps, skipped, err := readQassocFile(path, *threshold)
		if err != nil {
			return err
		}
		e.skipped(path, skipped)
		treatment := genome.Treatment(path)
		sig := 0
		for _, s := range snps {
			flag := "no"
			if s.Significant {
				flag = "yes"
				sig++
			}
			e.out.Row([]string{
				treatment, s.Chr, emit.Int(s.BP), emit.Float(s.P),
				emit.Fixed(s.LogP, 4), emit.Int(s.Position), flag,
			})
		}
		e.log.Info("Association results", "treatment", treatment, "snps", intWithCommas(len(snps)), "significant", sig)
	}
	return nil
}

func readQassocFile(path string, threshold float64) ([]genome.SNP, int, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()
	return genome.ReadQassoc(rc, threshold)
}

func runEigenvec(e *env, args []string) error {
	fs := e.flags("eigenvec")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	path := optional(pos, 0)
	e.out.Header([]string{"PC1", "PC2"})
	opts := record.Options{Delim: record.Whitespace, MinFields: schema.EigenvecMinFields}
	skipped, err := record.EachFile(path, opts, func(r record.Record) error {
		pc1, err := schema.PC1(r)
		if err != nil {
			return err
		}
		pc2, err := schema.PC2(r)
		if err != nil {
			return err
		}
		e.out.Row([]string{emit.Float(pc1), emit.Float(pc2)})
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	return nil
}
