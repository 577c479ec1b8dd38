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
	"bufio"

	"cbtools/internal/emit"
	"cbtools/internal/fasta"
	"cbtools/internal/genome"
	"cbtools/internal/record"
	"cbtools/internal/schema"
	"cbtools/internal/selection"
)

// runBlastToFasta writes FASTA directly; the output format flag does not apply.
func runBlastToFasta(e *env, args []string) error {
	fs := e.flags("blast-to-fasta")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	path := optional(pos, 0)
	w := bufio.NewWriter(e.stdout)
	opts := record.Options{Delim: record.Tab, MinFields: schema.BlastMinFields}
	skipped, err := record.EachFile(path, opts, func(r record.Record) error {
		id, err := schema.SSeqID(r)
		if err != nil {
			return err
		}
		seq, err := schema.SSeq(r)
		if err != nil {
			return err
		}
		return fasta.Write(w, []fasta.Record{{ID: id, Seq: seq}})
	})
	if ferr := w.Flush(); err == nil && !emit.IsBrokenPipe(ferr) {
		err = ferr
	}
	if err != nil && !emit.IsBrokenPipe(err) {
		return err
	}
	e.skipped(path, skipped)
	return nil
}

func runDNDS(e *env, args []string) error {
	fs := e.flags("dnds")
	z := fs.Float64("z", e.cfg.Selection.ZThreshold, "z score below which a position is reported as selected")
	pos, err := e.parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	nucs, err := fasta.ReadFile(pos[0], fasta.Options{Upper: true})
	if err != nil {
		return err
	}
	aas, err := fasta.ReadFile(pos[1], fasta.Options{Upper: true, Protein: true})
	if err != nil {
		return err
	}
	if len(nucs) != len(aas) {
		e.log.Warn("record counts differ, extra records ignored", "nucleotide", len(nucs), "protein", len(aas))
	}
	counts, err := selection.Count(selection.ThreadAll(nucs, aas))
	if err != nil {
		return err
	}
	e.log.Info("Codons compared", "alignments", counts.Alignments, "positions", len(counts.DN))

	e.out.Header([]string{"position", "dN", "dS", "changes", "dN_dS", "z", "selected"})
	selected := 0
	for _, s := range selection.Test(counts, *z) {
		flag := "no"
		if s.Selected {
			flag = "yes"
			selected++
		}
		e.out.Row([]string{
			emit.Int(s.Position), emit.Int(s.DN), emit.Int(s.DS), emit.Int(s.Changes),
			emit.Fixed(s.Ratio, 4), emit.Fixed(s.Z, 4), flag,
		})
	}
	e.out.Line("# alignments\t" + emit.Int(counts.Alignments))
	e.out.Line("# indels\t" + emit.Int(counts.Indels))
	e.out.Line("# total_dN\t" + emit.Int(counts.TotalDN()))
	e.out.Line("# total_dS\t" + emit.Int(counts.TotalDS()))
	e.out.Line("# selected\t" + emit.Int(selected))
	return nil
}

func runContigStats(e *env, args []string) error {
	fs := e.flags("contig-stats")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	recs, err := fasta.ReadFile(optional(pos, 0), fasta.Options{})
	if err != nil {
		return err
	}
	lengths := make([]int, len(recs))
	for i, r := range recs {
		lengths[i] = len(r.Seq)
	}
	e.out.Header([]string{"contigs", "total", "mean", "min", "max", "n50"})
	s, ok := genome.SummarizeContigs(lengths)
	if !ok {
		e.out.Row([]string{"0", "0", "NA", "NA", "NA", "NA"})
		return nil
	}
	e.out.Row([]string{
		emit.Int(s.Count), emit.Int(s.Total), emit.Fixed(s.Mean, 2),
		emit.Int(s.Min), emit.Int(s.Max), emit.Int(s.N50),
	})
	return nil
}

func runLastzLayout(e *env, args []string) error {
	fs := e.flags("lastz-layout")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	path := optional(pos, 0)
	rc, err := record.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	segs, skipped, err := genome.LastzLayout(rc)
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	e.out.Header([]string{"x_start", "x_end", "y_start", "y_end"})
	for _, s := range segs {
		e.out.Row([]string{emit.Int(s.XStart), emit.Int(s.XEnd), emit.Int(s.YStart), emit.Int(s.YEnd)})
	}
	return nil
}
