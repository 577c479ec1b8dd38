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
	"cbtools/internal/accum"
	"cbtools/internal/emit"
	"cbtools/internal/genome"
	"cbtools/internal/pred"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

func gtfOptions() record.Options {
	return record.Options{Delim: record.Tab, MinFields: schema.GTFMinFields, SkipPrefixes: []string{"#"}}
}

func runCountCoding(e *env, args []string) error {
	fs := e.flags("count-coding")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	p := pred.All(schema.IsGene, schema.IsProteinCoding)
	return e.countMatching(optional(pos, 0), gtfOptions(), p)
}

func runBiotypes(e *env, args []string) error {
	fs := e.flags("biotypes")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	path := optional(pos, 0)
	tally := accum.NewTally[string]()
	skipped, err := record.EachFile(path, gtfOptions(), func(r record.Record) error {
		if !schema.IsGene(r) {
			return nil
		}
		if b, ok := schema.GeneBiotype(r); ok {
			tally.Add(b)
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	e.out.Header([]string{"biotype", "genes"})
	for _, b := range tally.Keys() {
		e.out.Row([]string{b, emit.Int(tally.Count(b))})
	}
	return nil
}

func runNearestGene(e *env, args []string) error {
	fs := e.flags("nearest-gene")
	pos, err := e.parse(fs, args, 3, 3)
	if err != nil {
		return err
	}
	at, err := atoi("POS", pos[2])
	if err != nil {
		return err
	}
	rc, err := record.Open(pos[0])
	if err != nil {
		return err
	}
	defer rc.Close()

	best, skipped, err := genome.NearestGenes(rc, pos[1], at)
	if err != nil {
		return err
	}
	e.skipped(pos[0], skipped)
	e.out.Header([]string{"category", "gene", "distance"})
	for _, cat := range []string{genome.CategoryCoding, genome.CategoryOther} {
		d, g, ok := best.Best(cat)
		if !ok {
			e.out.Row([]string{cat, "none", "NA"})
			continue
		}
		e.out.Row([]string{cat, g.Name, emit.Int(d)})
	}
	return nil
}
