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
	"strings"

	"cbtools/internal/record"
)

const (
	gtfSeqname    = 0
	gtfFeature    = 2
	gtfStart      = 3
	gtfEnd        = 4
	gtfStrand     = 6
	gtfAttributes = 8

	GTFMinFields = 9

	BiotypeProteinCoding = "protein_coding"
)

func Seqname(r record.Record) (string, error)    { return r.Field(gtfSeqname) }
func Feature(r record.Record) (string, error)    { return r.Field(gtfFeature) }
func Start(r record.Record) (int, error)         { return r.Int(gtfStart) }
func End(r record.Record) (int, error)           { return r.Int(gtfEnd) }
func Strand(r record.Record) (string, error)     { return r.Field(gtfStrand) }
func Attributes(r record.Record) (string, error) { return r.Field(gtfAttributes) }

// IsGene reports whether the feature column is "gene".
func IsGene(r record.Record) bool {
	f, err := Feature(r)
	return err == nil && f == "gene"
}

// Attr is one key/value pair of a GTF attribute column.
type Attr struct {
	Key   string
	Value string
}

// ParseAttributes splits `key "value"; key "value";` into pairs, in order.
func ParseAttributes(col string) []Attr {
	var attrs []Attr
	for _, item := range record.Split(col, record.Literal(";")) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, val, _ := strings.Cut(item, " ")
		attrs = append(attrs, Attr{Key: key, Value: strings.Trim(strings.TrimSpace(val), `"`)})
	}
	return attrs
}

// Attribute returns the first value stored under name.
func Attribute(r record.Record, name string) (string, bool) {
	col, err := Attributes(r)
	if err != nil {
		return "", false
	}
	for _, a := range ParseAttributes(col) {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

func GeneBiotype(r record.Record) (string, bool) { return Attribute(r, "gene_biotype") }
func GeneName(r record.Record) (string, bool)    { return Attribute(r, "gene_name") }

// IsProteinCoding reports a gene_biotype of protein_coding.
func IsProteinCoding(r record.Record) bool {
	b, ok := GeneBiotype(r)
	return ok && b == BiotypeProteinCoding
}
