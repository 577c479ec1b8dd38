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
	"cbtools/internal/emit"
	"cbtools/internal/fasta"
	"cbtools/internal/kmer"
)

// queries returns the query records to scan, each followed by its reverse
// complement when revcomp is set.
func queries(recs []fasta.Record, revcomp bool) []fasta.Record {
	if !revcomp {
		return recs
	}
	out := make([]fasta.Record, 0, 2*len(recs))
	for _, q := range recs {
		out = append(out, q, fasta.Record{ID: q.ID + "_rc", Desc: q.Desc, Seq: fasta.ReverseComplement(q.Seq)})
	}
	return out
}

func runKmerMatch(e *env, args []string) error {
	fs := e.flags("kmer-match")
	maskFile := fs.String("mask", "", "Mask file written by kmer-dump; masked query k-mers are ignored")
	summary := fs.Bool("summary", false, "Report hits and similarity per target instead of every match")
	revcomp := fs.Bool("revcomp", false, "Also scan the reverse complement of each query")
	maxAlign := fs.Int("max-align", e.cfg.Kmer.MaxAlign, "Longest sequence aligned for --summary similarity; 0 for no limit")
	pos, err := e.parse(fs, args, 2, 3)
	if err != nil {
		return err
	}
	k := e.cfg.Kmer.K
	if len(pos) == 3 {
		if k, err = atoi("K", pos[2]); err != nil {
			return err
		}
	}

	e.log.Info("Loading target sequences", "file", pos[0])
	targets, err := fasta.ReadFile(pos[0], fasta.Options{Upper: true})
	if err != nil {
		return err
	}
	idx, err := kmer.NewIndex(targets, k)
	if err != nil {
		return err
	}
	e.log.Infof("%s target kmers loaded from %d sequences", intWithCommas(idx.Len()), len(targets))

	var skip func(string) bool
	if *maskFile != "" {
		if skip, err = loadMaskFilter(e, *maskFile, k); err != nil {
			return err
		}
	}

	recs, err := fasta.ReadFile(pos[1], fasta.Options{Upper: true})
	if err != nil {
		return err
	}
	if *summary {
		e.out.Header(summaryHeader)
	} else {
		e.out.Header([]string{"target", "target_starts", "query", "query_start", "kmer"})
	}
	total := 0
	for _, q := range queries(recs, *revcomp) {
		if err := e.ctx.Err(); err != nil {
			return err
		}
		matches := idx.Match(q, skip)
		total += len(matches)
		if *summary {
			writeSummary(e.out, kmer.Summarize(idx, q, matches, *maxAlign))
			continue
		}
		for _, m := range matches {
			e.out.Row([]string{m.Target, emit.Ints(m.TargetStarts, ","), m.Query, emit.Int(m.QueryStart), m.Kmer})
		}
	}
	e.log.Infof("%s matching query kmers", intWithCommas(total))
	return nil
}
