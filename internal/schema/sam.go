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

// Package schema names the columns of every file layout cbtools reads, so
// commands never index record fields by bare position.
package schema

import "cbtools/internal/record"

// SAM alignment columns.
const (
	samQName = 0
	samFlag  = 1
	samRName = 2
	samPos   = 3
	samMapQ  = 4

	// SAMMinFields is the number of columns the SAM accessors rely on.
	SAMMinFields = 5
	// FlagReverse is the SAM FLAG bit set for reverse-strand alignments.
	FlagReverse = 4
)

func Flag(r record.Record) (int, error)     { return r.Int(samFlag) }
func RName(r record.Record) (string, error) { return r.Field(samRName) }
func Pos(r record.Record) (int, error)      { return r.Int(samPos) }
func MapQ(r record.Record) (int, error)     { return r.Int(samMapQ) }

// SAM column indices for use with the pred constructors.
const (
	SAMQNameColumn = samQName
	SAMFlagColumn  = samFlag
	SAMRNameColumn = samRName
	SAMPosColumn   = samPos
)

// HasTag reports whether any TAG:TYPE:VALUE field equals tag exactly.
func HasTag(r record.Record, tag string) bool {
	for _, f := range r.Fields {
		if f == tag {
			return true
		}
	}
	return false
}
