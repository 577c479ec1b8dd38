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
	"cbtools/internal/record"
)

// ctab column names.
const (
	CtabTName    = "t_name"
	CtabFPKM     = "FPKM"
	CtabGeneName = "gene_name"
	CtabChr      = "chr"
	CtabStrand   = "strand"
	CtabStart    = "start"
	CtabEnd      = "end"
)

// Ctab reads rows of a transcript quantification table through its header.
type Ctab struct {
	*Columns
}

// NewCtab validates the header against the columns the caller needs.
func NewCtab(header record.Record, required ...string) (*Ctab, error) {
	cols := NewColumns(header.Fields)
	if err := cols.Require(required...); err != nil {
		return nil, err
	}
	return &Ctab{Columns: cols}, nil
}

func (c *Ctab) TName(r record.Record) (string, error)    { return c.Field(r, CtabTName) }
func (c *Ctab) FPKM(r record.Record) (float64, error)    { return c.Float(r, CtabFPKM) }
func (c *Ctab) GeneName(r record.Record) (string, error) { return c.Field(r, CtabGeneName) }
func (c *Ctab) Chr(r record.Record) (string, error)      { return c.Field(r, CtabChr) }
func (c *Ctab) Strand(r record.Record) (string, error)   { return c.Field(r, CtabStrand) }
func (c *Ctab) Start(r record.Record) (int, error)       { return c.Int(r, CtabStart) }
func (c *Ctab) End(r record.Record) (int, error)         { return c.Int(r, CtabEnd) }
