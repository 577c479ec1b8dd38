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

// Package record turns line-oriented text into tokenized records.
//
// A Reader splits every line on a configurable delimiter, drops blank and
// header lines and silently skips lines that carry fewer fields than the
// caller requires. Field access on a Record never panics: an out-of-range or
// unparsable field yields an error wrapping apperr.ErrMalformedRecord.
package record

import (
	"strconv"
	"strings"

	"cbtools/internal/apperr"
)

type delimKind int

const (
	kindTab delimKind = iota
	kindWhitespace
	kindLiteral
)

// Delimiter selects how a line is split into fields.
type Delimiter struct {
	kind delimKind
	sep  string
}

var (
	// Tab splits on every tab; adjacent tabs produce empty fields.
	Tab = Delimiter{kind: kindTab, sep: "\t"}
	// Whitespace splits on runs of spaces and tabs.
	Whitespace = Delimiter{kind: kindWhitespace}
)

// Literal splits on an exact substring such as "; ".
func Literal(sep string) Delimiter {
	return Delimiter{kind: kindLiteral, sep: sep}
}

func (d Delimiter) String() string {
	switch d.kind {
	case kindWhitespace:
		return "whitespace"
	default:
		return strconv.Quote(d.sep)
	}
}

// Split tokenizes a single line.
func Split(line string, d Delimiter) []string {
	switch d.kind {
	case kindWhitespace:
		return strings.Fields(line)
	default:
		return strings.Split(line, d.sep)
	}
}

// Record is one tokenized line.
type Record struct {
	Fields []string
	Line   int
	Text   string
}

func (r Record) Len() int { return len(r.Fields) }

// Field returns the i-th field (0-based).
func (r Record) Field(i int) (string, error) {
	if i < 0 || i >= len(r.Fields) {
		return "", apperr.Malformed("line %d: field %d requested, %d present", r.Line, i+1, len(r.Fields))
	}
	return r.Fields[i], nil
}

// Int parses the i-th field as a base-10 integer.
func (r Record) Int(i int) (int, error) {
	s, err := r.Field(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperr.Malformed("line %d: field %d: %q is not an integer", r.Line, i+1, s)
	}
	return v, nil
}

// Float parses the i-th field as a float64.
func (r Record) Float(i int) (float64, error) {
	s, err := r.Field(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, apperr.Malformed("line %d: field %d: %q is not a number", r.Line, i+1, s)
	}
	return v, nil
}

// Last returns the final field, or "" for an empty record.
func (r Record) Last() string {
	if len(r.Fields) == 0 {
		return ""
	}
	return r.Fields[len(r.Fields)-1]
}
