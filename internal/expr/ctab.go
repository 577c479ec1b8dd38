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
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// Transcript is one ctab row. Columns absent from the file stay zero.
type Transcript struct {
	TName    string
	GeneName string
	Chr      string
	Strand   string
	Start    int
	End      int
	FPKM     float64
}

// Table is a ctab file held in memory, rows in file order.
type Table struct {
	Name    string
	Rows    []Transcript
	Skipped int
	index   map[string]int
}

// ReadCtab parses a headed, tab separated ctab. t_name and FPKM are always
// required, required names the other columns the caller reads. Rows that
// cannot be parsed are skipped and counted.
func ReadCtab(r io.Reader, name string, required ...string) (*Table, error) {
	rd := record.NewReader(r, record.Options{Delim: record.Tab})
	if !rd.Next() {
		if err := rd.Err(); err != nil {
			return nil, err
		}
		return nil, apperr.FormatMismatch("%s: empty ctab", name)
	}
	cols := append([]string{schema.CtabTName, schema.CtabFPKM}, required...)
	c, err := schema.NewCtab(rd.Record(), cols...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	t := &Table{Name: name, index: make(map[string]int)}
	for rd.Next() {
		tr, err := parseTranscript(c, rd.Record())
		if err != nil {
			t.Skipped++
			continue
		}
		if _, dup := t.index[tr.TName]; !dup {
			t.index[tr.TName] = len(t.Rows)
		}
		t.Rows = append(t.Rows, tr)
	}
	if err := rd.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

func parseTranscript(c *schema.Ctab, r record.Record) (Transcript, error) {
	var tr Transcript
	var err error
	if tr.TName, err = c.TName(r); err != nil {
		return tr, err
	}
	if tr.FPKM, err = c.FPKM(r); err != nil {
		return tr, err
	}
	if c.Has(schema.CtabGeneName) {
		if tr.GeneName, err = c.GeneName(r); err != nil {
			return tr, err
		}
	}
	if c.Has(schema.CtabChr) {
		if tr.Chr, err = c.Chr(r); err != nil {
			return tr, err
		}
	}
	if c.Has(schema.CtabStrand) {
		if tr.Strand, err = c.Strand(r); err != nil {
			return tr, err
		}
	}
	if c.Has(schema.CtabStart) {
		if tr.Start, err = c.Start(r); err != nil {
			return tr, err
		}
	}
	if c.Has(schema.CtabEnd) {
		if tr.End, err = c.End(r); err != nil {
			return tr, err
		}
	}
	return tr, nil
}

// SampleName is the directory holding a ctab, e.g. SRR072893 for
// SRR072893/t_data.ctab.
func SampleName(path string) string {
	return filepath.Base(filepath.Dir(path))
}

// ReadCtabFile reads path and names the table after its parent directory.
func ReadCtabFile(path string, required ...string) (*Table, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadCtab(rc, SampleName(path), required...)
}

// Get returns the first row for tname.
func (t *Table) Get(tname string) (Transcript, bool) {
	i, ok := t.index[tname]
	if !ok {
		return Transcript{}, false
	}
	return t.Rows[i], true
}

// FPKMOf returns the FPKM of tname.
func (t *Table) FPKMOf(tname string) (float64, bool) {
	tr, ok := t.Get(tname)
	return tr.FPKM, ok
}

// GeneFPKMs lists the FPKMs of every transcript of gene in file order.
func (t *Table) GeneFPKMs(gene string) []float64 {
	var out []float64
	for _, tr := range t.Rows {
		if tr.GeneName == gene {
			out = append(out, tr.FPKM)
		}
	}
	return out
}

// LoadAll reads every path with at most workers files open at once. The
// result is indexed like paths.
func LoadAll(ctx context.Context, paths []string, workers int, required ...string) ([]*Table, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	tables := make([]*Table, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := ReadCtabFile(p, required...)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// LoadSamples loads the ctab of each sample below dir, indexed like samples.
// Tables are named by sample label.
func LoadSamples(ctx context.Context, dir string, samples []Sample, workers int, required ...string) ([]*Table, error) {
	paths := make([]string, len(samples))
	for i, s := range samples {
		paths[i] = s.CtabPath(dir)
	}
	tables, err := LoadAll(ctx, paths, workers, required...)
	if err != nil {
		return nil, err
	}
	for i, t := range tables {
		t.Name = samples[i].Label()
	}
	return tables, nil
}
