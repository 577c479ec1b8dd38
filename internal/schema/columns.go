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

package schema

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
)

// Columns resolves named columns of a headed table.
type Columns struct {
	names []string
	index map[string]int
}

func NewColumns(header []string) *Columns {
	c := &Columns{names: append([]string(nil), header...), index: make(map[string]int, len(header))}
	for i, h := range header {
		if _, dup := c.index[h]; !dup {
			c.index[h] = i
		}
	}
	return c
}

// Index returns the position of name or a format mismatch naming the
// closest existing column.
func (c *Columns) Index(name string) (int, error) {
	if i, ok := c.index[name]; ok {
		return i, nil
	}
	if near := c.closest(name); near != "" {
		return -1, apperr.FormatMismatch("column %q not found (did you mean %q?)", name, near)
	}
	return -1, apperr.FormatMismatch("column %q not found", name)
}

func (c *Columns) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Require checks that every name is present.
func (c *Columns) Require(names ...string) error {
	for _, n := range names {
		if _, err := c.Index(n); err != nil {
			return err
		}
	}
	return nil
}

func (c *Columns) Field(r record.Record, name string) (string, error) {
	i, err := c.Index(name)
	if err != nil {
		return "", err
	}
	return r.Field(i)
}

func (c *Columns) Float(r record.Record, name string) (float64, error) {
	i, err := c.Index(name)
	if err != nil {
		return 0, err
	}
	return r.Float(i)
}

func (c *Columns) Int(r record.Record, name string) (int, error) {
	i, err := c.Index(name)
	if err != nil {
		return 0, err
	}
	return r.Int(i)
}

func (c *Columns) closest(name string) string {
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false
	best, bestScore := "", 0.5
	for _, n := range c.names {
		if s := strutil.Similarity(name, n, lev); s > bestScore {
			best, bestScore = n, s
		}
	}
	return best
}
