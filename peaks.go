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
	"path/filepath"

	"cbtools/internal/apperr"
	"cbtools/internal/emit"
	"cbtools/internal/genome"
	"cbtools/internal/record"
)

func countFileRecords(path string) (int, error) {
	rc, err := record.Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return genome.CountRecords(rc)
}

func runFeatureOverlap(e *env, args []string) error {
	fs := e.flags("feature-overlap")
	pos, err := e.parse(fs, args, 5, 5)
	if err != nil {
		return err
	}
	gained, lost, sitesA, sitesB, featFile := pos[0], pos[1], pos[2], pos[3], pos[4]

	rc, err := record.Open(featFile)
	if err != nil {
		return err
	}
	features, skipped, err := genome.ReadFeatures(rc)
	rc.Close()
	if err != nil {
		return err
	}
	e.skipped(featFile, skipped)
	e.log.Info("Features loaded", "types", len(features.Kinds()))

	e.out.Header([]string{"set", "category", "sites"})
	for _, c := range []struct{ name, path string }{{"gained", gained}, {"lost", lost}} {
		n, err := countFileRecords(c.path)
		if err != nil {
			return err
		}
		e.out.Row([]string{"change", c.name, emit.Int(n)})
	}
	for _, path := range []string{sitesA, sitesB} {
		rc, err := record.Open(path)
		if err != nil {
			return err
		}
		tally, skipped, err := features.CountSites(rc)
		rc.Close()
		if err != nil {
			return err
		}
		e.skipped(path, skipped)
		set := filepath.Base(path)
		for _, kind := range tally.Keys() {
			e.out.Row([]string{set, kind, emit.Int(tally.Count(kind))})
		}
	}
	return nil
}

func runMotifPositions(e *env, args []string) error {
	fs := e.flags("motif-positions")
	bins := fs.Int("bins", 0, "Report a histogram with this many bins over [0, 1] instead of values")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	if *bins < 0 {
		return apperr.InvalidArgument("bins must not be negative, got %d", *bins)
	}
	path := optional(pos, 0)
	rc, err := record.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	rel, skipped, err := genome.MotifPositions(rc)
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	return e.emitValues("relative_position", rel, *bins, 0, 1)
}
