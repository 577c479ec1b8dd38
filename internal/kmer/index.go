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

// Package kmer indexes the fixed-length windows of target sequences and looks
// query windows up in that index.
package kmer

import (
	"cbtools/internal/apperr"
	"cbtools/internal/fasta"
)

// Occurrence lists the start positions of one k-mer inside one target.
// Starts are ascending.
type Occurrence struct {
	Target int
	Starts []int
}

// Index maps every k-mer of the targets to where it occurs.
type Index struct {
	k       int
	targets []fasta.Record
	table   map[string][]Occurrence
}

// EachWindow calls fn for every window seq[i:i+k], 0 <= i <= len(seq)-k, in
// ascending order of i.
func EachWindow(seq string, k int, fn func(pos int, kmer string)) {
	for pos := 0; pos <= len(seq)-k; pos++ {
		fn(pos, seq[pos:pos+k])
	}
}

// NewIndex builds the index over targets in file order.
func NewIndex(targets []fasta.Record, k int) (*Index, error) {
	if k <= 0 {
		return nil, apperr.InvalidArgument("k must be positive, got %d", k)
	}
	idx := &Index{k: k, targets: targets, table: make(map[string][]Occurrence)}
	for t, rec := range targets {
		EachWindow(rec.Seq, k, func(pos int, kmer string) {
			occ := idx.table[kmer]
			if n := len(occ); n > 0 && occ[n-1].Target == t {
				occ[n-1].Starts = append(occ[n-1].Starts, pos)
			} else {
				occ = append(occ, Occurrence{Target: t, Starts: []int{pos}})
			}
			idx.table[kmer] = occ
		})
	}
	return idx, nil
}

func (idx *Index) K() int { return idx.k }

// Len is the number of distinct k-mers.
func (idx *Index) Len() int { return len(idx.table) }

func (idx *Index) Targets() []fasta.Record { return idx.targets }

func (idx *Index) Lookup(kmer string) []Occurrence { return idx.table[kmer] }

// Match is one query window found in one target.
type Match struct {
	// TargetIndex is the position of the target in the index, Target its ID.
	TargetIndex  int
	Target       string
	TargetStarts []int
	Query        string
	QueryStart   int
	Kmer         string
}

// Match looks up every window of query. Windows for which skip returns true
// are ignored; skip may be nil.
func (idx *Index) Match(query fasta.Record, skip func(kmer string) bool) []Match {
	var out []Match
	EachWindow(query.Seq, idx.k, func(pos int, kmer string) {
		occ, ok := idx.table[kmer]
		if !ok || (skip != nil && skip(kmer)) {
			return
		}
		for _, o := range occ {
			out = append(out, Match{
				TargetIndex:  o.Target,
				Target:       idx.targets[o.Target].ID,
				TargetStarts: o.Starts,
				Query:        query.ID,
				QueryStart:   pos,
				Kmer:         kmer,
			})
		}
	})
	return out
}
