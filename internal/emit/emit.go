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

// Package emit renders accumulated results as tab-separated text or as an
// aligned table.
package emit

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
)

const (
	FormatTSV   = "tsv"
	FormatTable = "table"
)

// Emitter receives rows in output order. Nothing is guaranteed to reach the
// destination before Flush.
type Emitter interface {
	Header(cols []string)
	Row(cols []string)
	// Line writes free text (summaries, FASTA) outside the row grid.
	Line(s string)
	Flush() error
}

// New returns the emitter for format, defaulting to TSV.
func New(format string, w io.Writer) (Emitter, error) {
	switch strings.ToLower(format) {
	case "", FormatTSV:
		return NewTSV(w), nil
	case FormatTable:
		return NewTable(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// TSV writes one tab-separated line per row as rows arrive.
type TSV struct {
	w   *bufio.Writer
	err error
}

func NewTSV(w io.Writer) *TSV {
	return &TSV{w: bufio.NewWriter(w)}
}

func (t *TSV) Header(cols []string) { t.Row(cols) }

func (t *TSV) Row(cols []string) {
	t.Line(strings.Join(cols, "\t"))
}

func (t *TSV) Line(s string) {
	if t.err != nil {
		return
	}
	if _, err := t.w.WriteString(s + "\n"); err != nil {
		t.err = err
	}
}

func (t *TSV) Flush() error {
	if t.err == nil {
		t.err = t.w.Flush()
	}
	if IsBrokenPipe(t.err) {
		return nil
	}
	return t.err
}

// Table buffers rows and renders them with tablewriter on Flush. Free text
// lines are written after the table.
type Table struct {
	out   io.Writer
	table *tablewriter.Table
	lines []string
	rows  int
}

func NewTable(w io.Writer) *Table {
	tw := tablewriter.NewWriter(w)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	return &Table{out: w, table: tw}
}

func (t *Table) Header(cols []string) { t.table.SetHeader(cols) }

func (t *Table) Row(cols []string) {
	t.table.Append(cols)
	t.rows++
}

func (t *Table) Line(s string) { t.lines = append(t.lines, s) }

func (t *Table) Flush() error {
	if t.rows > 0 {
		t.table.Render()
	}
	for _, l := range t.lines {
		if _, err := fmt.Fprintln(t.out, l); err != nil {
			if IsBrokenPipe(err) {
				return nil
			}
			return err
		}
	}
	return nil
}

// IsBrokenPipe reports whether the reader of our output went away early
// (e.g. piped into head).
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Float formats v with the shortest representation that round-trips; NaN is
// rendered as NA.
func Float(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Fixed formats v with prec decimals.
func Fixed(v float64, prec int) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func Int(v int) string { return strconv.Itoa(v) }

// Ints joins integers with sep.
func Ints(vs []int, sep string) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
