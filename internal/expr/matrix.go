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
	"math"

	"cbtools/internal/accum"
)

// Matrix holds FPKMs with one column per table and one row per transcript.
// Rows appear in the order transcripts are first seen across the tables;
// a transcript missing from a table is NaN in that column.
type Matrix struct {
	Columns []string
	rows    *accum.Group[string, float64]
}

// NewMatrix merges tables column by column.
func NewMatrix(tables []*Table) *Matrix {
	m := &Matrix{Columns: make([]string, len(tables))}
	var order []string
	seen := make(map[string]bool)
	for i, t := range tables {
		m.Columns[i] = t.Name
		for _, tr := range t.Rows {
			if !seen[tr.TName] {
				seen[tr.TName] = true
				order = append(order, tr.TName)
			}
		}
	}
	m.rows = accum.NewGroup[string, float64]()
	for _, name := range order {
		for _, t := range tables {
			v, ok := t.FPKMOf(name)
			if !ok {
				v = math.NaN()
			}
			m.rows.Append(name, v)
		}
	}
	return m
}

func (m *Matrix) Rows() []string { return m.rows.Keys() }
func (m *Matrix) Len() int       { return m.rows.Len() }

// Row returns the values of one transcript, nil when absent.
func (m *Matrix) Row(name string) []float64 {
	v, _ := m.rows.Get(name)
	return v
}

// Sum adds the non-missing values of a row.
func (m *Matrix) Sum(name string) float64 {
	var s accum.Stats
	for _, v := range m.Row(name) {
		if !math.IsNaN(v) {
			s.Add(v)
		}
	}
	return s.Sum()
}

// Above lists the rows whose sum is strictly greater than threshold.
func (m *Matrix) Above(threshold float64) []string {
	var out []string
	for _, name := range m.rows.Keys() {
		if m.Sum(name) > threshold {
			out = append(out, name)
		}
	}
	return out
}
