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
	"cbtools/internal/pred"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

func runUniProtMap(e *env, args []string) error {
	fs := e.flags("uniprot-map")
	pos, err := e.parse(fs, args, 1, 1)
	if err != nil {
		return err
	}
	opts := record.Options{Delim: record.Whitespace, MinFields: schema.UniProtMinFields}
	fly := pred.All(pred.Contains(schema.DrosophilaTag), schema.HasFlyBaseXref)
	skipped, err := record.EachFile(pos[0], opts, func(r record.Record) error {
		if !fly(r) {
			return nil
		}
		fb, err := schema.UniProtFlyBase(r)
		if err != nil {
			return err
		}
		acc, err := schema.UniProtAccession(r)
		if err != nil {
			return err
		}
		e.out.Row([]string{fb, acc})
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(pos[0], skipped)
	return nil
}

// loadIDMap reads "key <ws> value" lines; a repeated key keeps its last value.
func loadIDMap(path string) (map[string]string, int, error) {
	ids := make(map[string]string)
	opts := record.Options{Delim: record.Whitespace, MinFields: schema.MapMinFields}
	skipped, err := record.EachFile(path, opts, func(r record.Record) error {
		k, err := schema.MapKey(r)
		if err != nil {
			return err
		}
		v, err := schema.MapValue(r)
		if err != nil {
			return err
		}
		ids[k] = v
		return nil
	})
	return ids, skipped, err
}

func runIdentMap(e *env, args []string) error {
	fs := e.flags("ident-map")
	misses := fs.Bool("m", false, "Also print ids without a mapping")
	label := fs.String("label", e.cfg.Output.NoMatchLabel, "Value printed for unmapped ids with -m")
	pos, err := e.parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	ids, skipped, err := loadIDMap(pos[0])
	if err != nil {
		return err
	}
	e.skipped(pos[0], skipped)
	e.log.Debug("id map loaded", "entries", intWithCommas(len(ids)))

	skipped, err = record.EachFile(pos[1], record.Options{Delim: record.Tab}, func(r record.Record) error {
		fly, err := schema.FlyBaseID(r)
		if err != nil {
			return err
		}
		switch v, ok := ids[fly]; {
		case ok:
			e.out.Row([]string{fly, v})
		case *misses:
			e.out.Row([]string{fly, *label})
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(pos[1], skipped)
	return nil
}
