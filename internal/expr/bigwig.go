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

package expr

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// Track is the per-transcript mean signal of one bigWigAverageOverBed run.
type Track struct {
	Name    string
	Means   map[string]float64
	Skipped int
}

// TrackName takes the second-to-last dot field of the file name, so
// promoters.H3K4me3.tab becomes H3K4me3.
func TrackName(path string) string {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) < 2 {
		return parts[0]
	}
	return parts[len(parts)-2]
}

// ReadTrack parses headerless bigWigAverageOverBed output.
func ReadTrack(r io.Reader, name string) (*Track, error) {
	tr := &Track{Name: name, Means: make(map[string]float64)}
	skipped, err := record.Each(r, record.Options{Delim: record.Tab, MinFields: schema.BigWigMinFields}, func(rec record.Record) error {
		n, err := schema.BigWigName(rec)
		if err != nil {
			return err
		}
		mean, err := schema.BigWigMean(rec)
		if err != nil {
			return err
		}
		tr.Means[n] = mean
		return nil
	})
	tr.Skipped = skipped
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tr, nil
}

func ReadTrackFile(path string) (*Track, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadTrack(rc, TrackName(path))
}

// JoinedRow is one transcript with its FPKM and the mean of every track.
type JoinedRow struct {
	TName string
	FPKM  float64
	Means []float64
}

// Join attaches track means to the transcripts of t in file order; a
// transcript missing from a track gets NaN.
func Join(t *Table, tracks []*Track) []JoinedRow {
	out := make([]JoinedRow, 0, len(t.Rows))
	for _, tr := range t.Rows {
		row := JoinedRow{TName: tr.TName, FPKM: tr.FPKM, Means: make([]float64, len(tracks))}
		for i, trk := range tracks {
			v, ok := trk.Means[tr.TName]
			if !ok {
				v = math.NaN()
			}
			row.Means[i] = v
		}
		out = append(out, row)
	}
	return out
}
