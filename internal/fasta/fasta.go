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

// Package fasta loads FASTA files into memory using biogo's streaming reader.
package fasta

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"cbtools/internal/record"
)

// Record is one FASTA entry.
type Record struct {
	ID   string
	Desc string
	Seq  string
}

// Header rebuilds the full header line without the leading '>'.
func (r Record) Header() string {
	if r.Desc == "" {
		return r.ID
	}
	return r.ID + " " + r.Desc
}

type Options struct {
	// Upper converts sequence letters to upper case.
	Upper bool
	// Protein selects the protein alphabet; the default is gapped DNA.
	Protein bool
}

// Read returns every record of r in file order.
func Read(r io.Reader, opts Options) ([]Record, error) {
	alpha := alphabet.Alphabet(alphabet.DNAgapped)
	if opts.Protein {
		alpha = alphabet.Protein
	}
	template := linear.NewSeq("", nil, alpha)
	sc := seqio.NewScanner(biofasta.NewReader(r, template))

	var recs []Record
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}
		seq := lettersToString(s.Seq)
		if opts.Upper {
			seq = strings.ToUpper(seq)
		}
		recs = append(recs, Record{ID: s.Name(), Desc: s.Description(), Seq: seq})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("reading fasta: %w", err)
	}
	return recs, nil
}

// ReadFile is Read over a path; "-" reads standard input.
func ReadFile(path string, opts Options) ([]Record, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	recs, err := Read(rc, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Write emits records with the sequence on a single line.
func Write(w io.Writer, recs []Record) error {
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", r.Header(), r.Seq); err != nil {
			return err
		}
	}
	return nil
}

func lettersToString(ls alphabet.Letters) string {
	b := make([]byte, len(ls))
	for i, l := range ls {
		b[i] = byte(l)
	}
	return string(b)
}

// ReverseComplement complements upper-case ACGT and reverses the sequence.
// Any other letter is kept as is.
func ReverseComplement(s string) string {
	var dnaComplement = strings.NewReplacer(
		"A", "T", "T", "A", "G", "C", "C", "G",
	)
	complement := dnaComplement.Replace(s)
	rc := make([]byte, len(complement))
	for i, j := 0, len(rc)-1; i < len(rc); i, j = i+1, j-1 {
		rc[i] = complement[j]
	}
	return string(rc)
}
