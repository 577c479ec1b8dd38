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

package kmer

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/shenwei356/kmers"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
)

// MaxK is the longest k-mer that fits a 2-bit uint64 code.
const MaxK = 32

// Mask is a set of 2-bit encoded k-mers. On disk it is a little-endian
// uint64 k followed by one little-endian uint64 code per k-mer.
type Mask struct {
	k     int
	codes map[uint64]struct{}
}

func NewMask(k int) (*Mask, error) {
	if k <= 0 || k > MaxK {
		return nil, apperr.InvalidArgument("mask k must be in 1..%d, got %d", MaxK, k)
	}
	return &Mask{k: k, codes: make(map[uint64]struct{})}, nil
}

func (m *Mask) K() int   { return m.k }
func (m *Mask) Len() int { return len(m.codes) }

// AddSeq adds every window of seq made only of A, C, G and T and returns the
// number of windows skipped for other letters.
func (m *Mask) AddSeq(seq string) int {
	skipped := 0
	EachWindow(strings.ToUpper(seq), m.k, func(_ int, kmer string) {
		code, err := kmers.Encode([]byte(kmer))
		if err != nil {
			skipped++
			return
		}
		m.codes[code] = struct{}{}
	})
	return skipped
}

// Contains reports whether kmer is in the mask. A k-mer of the wrong length
// or with ambiguous bases is never contained.
func (m *Mask) Contains(kmer string) bool {
	if len(kmer) != m.k {
		return false
	}
	code, err := kmers.Encode([]byte(strings.ToUpper(kmer)))
	if err != nil {
		return false
	}
	_, ok := m.codes[code]
	return ok
}

// Merge adds every code of o, which must have the same k.
func (m *Mask) Merge(o *Mask) error {
	if o.k != m.k {
		return apperr.InvalidArgument("cannot merge %d-mer mask into %d-mer mask", o.k, m.k)
	}
	for c := range o.codes {
		m.codes[c] = struct{}{}
	}
	return nil
}

// Kmers returns the decoded k-mers in code order.
func (m *Mask) Kmers() []string {
	codes := m.sortedCodes()
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(kmers.MustDecode(c, m.k))
	}
	return out
}

func (m *Mask) sortedCodes() []uint64 {
	codes := make([]uint64, 0, len(m.codes))
	for c := range m.codes {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// WriteTo writes the header and the codes in ascending order.
func (m *Mask) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint64(m.k)); err != nil {
		return 0, err
	}
	n := int64(8)
	for _, c := range m.sortedCodes() {
		if err := binary.Write(bw, binary.LittleEndian, c); err != nil {
			return n, err
		}
		n += 8
	}
	return n, bw.Flush()
}

// ReadMask loads a mask written by WriteTo.
func ReadMask(r io.Reader) (*Mask, error) {
	br := bufio.NewReader(r)
	var k64 uint64
	if err := binary.Read(br, binary.LittleEndian, &k64); err != nil {
		return nil, apperr.FormatMismatch("reading mask k-mer length: %v", err)
	}
	m, err := NewMask(int(k64))
	if err != nil {
		return nil, apperr.FormatMismatch("mask header: %v", err)
	}
	for {
		var code uint64
		err := binary.Read(br, binary.LittleEndian, &code)
		if errors.Is(err, io.EOF) {
			return m, nil
		}
		if err != nil {
			return nil, apperr.FormatMismatch("reading mask codes: %v", err)
		}
		m.codes[code] = struct{}{}
	}
}

func ReadMaskFile(path string) (*Mask, error) {
	rc, err := record.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	m, err := ReadMask(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Mask) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return apperr.InvalidArgument("cannot create %s: %v", path, err)
	}
	if _, err := m.WriteTo(fh); err != nil {
		fh.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return fh.Close()
}
