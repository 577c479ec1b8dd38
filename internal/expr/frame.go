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
	"io"
	"math"
	"strconv"
	"strings"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// Frame is a headed numeric table whose first column names the rows.
type Frame struct {
	Index   string
	Columns []string
	Names   []string
	Data    [][]float64
	cols    *schema.Columns
}

// ReadFrame parses a tab separated table. A header one field shorter than
// the data rows is taken to omit the index column name. Cells that are not
// numbers (NA, empty) become NaN.
func ReadFrame(r io.Reader) (*Frame, error) {
	rd := record.NewReader(r, record.Options{Delim: record.Tab})
	if !rd.Next() {
		if err := rd.Err(); err != nil {
			return nil, err
		}
		return nil, apperr.FormatMismatch("empty table")
	}
	header := rd.Record().Fields
	f := &Frame{}
	var width int
	for rd.Next() {
		rec := rd.Record()
		if width == 0 {
			width = rec.Len()
			switch {
			case len(header) == width:
				f.Index, f.Columns = header[0], header[1:]
			case len(header) == width-1:
				f.Columns = header
			default:
				return nil, apperr.FormatMismatch("header has %d columns, first row %d", len(header), width)
			}
			f.cols = schema.NewColumns(f.Columns)
		}
		if rec.Len() != width {
			continue
		}
		row := make([]float64, width-1)
		for j, s := range rec.Fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				v = math.NaN()
			}
			row[j] = v
		}
		f.Names = append(f.Names, rec.Fields[0])
		f.Data = append(f.Data, row)
	}
	if err := rd.Err(); err != nil {
		return nil, err
	}
	if f.cols == nil {
		f.Columns = header[1:]
		f.Index = header[0]
		f.cols = schema.NewColumns(f.Columns)
	}
	return f, nil
}

func ReadFrameFile(path string) (*Frame, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return ReadFrame(rc)
}

// Col returns the position of a value column.
func (f *Frame) Col(name string) (int, error) { return f.cols.Index(name) }

// Select returns, for every row whose selected cells are all numbers, the
// row name and those cells in the order of names.
func (f *Frame) Select(names []string) ([]string, [][]float64, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, err := f.Col(n)
		if err != nil {
			return nil, nil, err
		}
		idx[i] = j
	}
	var rows []string
	var out [][]float64
rowLoop:
	for r, data := range f.Data {
		vals := make([]float64, len(idx))
		for i, j := range idx {
			if math.IsNaN(data[j]) {
				continue rowLoop
			}
			vals[i] = data[j]
		}
		rows = append(rows, f.Names[r])
		out = append(out, vals)
	}
	return rows, out, nil
}
