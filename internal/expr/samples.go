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

// Package expr loads transcript quantification tables (ctab) and derives the
// expression summaries built on them.
package expr

import (
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// CtabFile is the per-sample file name under the ctab directory.
const CtabFile = "t_data.ctab"

// Sample is one row of a sample sheet (sample,sex,stage).
type Sample struct {
	Name  string
	Sex   string
	Stage string
}

// Label is the matrix column name, sex_stage.
func (s Sample) Label() string { return s.Sex + "_" + s.Stage }

// CtabPath locates the sample's table below dir.
func (s Sample) CtabPath(dir string) string {
	return filepath.Join(dir, s.Name, CtabFile)
}

// ReadSamples parses a CSV sample sheet with sample, sex and stage columns.
func ReadSamples(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, apperr.FormatMismatch("sample sheet header: %v", err)
	}
	cols := schema.NewColumns(header)
	if err := cols.Require("sample", "sex", "stage"); err != nil {
		return nil, err
	}
	iSample, _ := cols.Index("sample")
	iSex, _ := cols.Index("sex")
	iStage, _ := cols.Index("stage")

	var out []Sample
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, apperr.FormatMismatch("sample sheet: %v", err)
		}
		out = append(out, Sample{
			Name:  strings.TrimSpace(row[iSample]),
			Sex:   strings.TrimSpace(row[iSex]),
			Stage: strings.TrimSpace(row[iStage]),
		})
	}
}

func ReadSamplesFile(path string) ([]Sample, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadSamples(rc)
}

// BySex keeps the samples of one sex in sheet order.
func BySex(samples []Sample, sex string) []Sample {
	var out []Sample
	for _, s := range samples {
		if s.Sex == sex {
			out = append(out, s)
		}
	}
	return out
}

// Sexes lists the distinct sexes in first-seen order.
func Sexes(samples []Sample) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range samples {
		if !seen[s.Sex] {
			seen[s.Sex] = true
			out = append(out, s.Sex)
		}
	}
	return out
}
