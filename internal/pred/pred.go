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

// Package pred holds the small vocabulary of record tests used by the
// counting commands. A field that is missing or does not parse makes the
// predicate reject the record.
package pred

import (
	"strings"

	"cbtools/internal/record"
)

type Predicate func(record.Record) bool

// HasPrefix tests the raw line.
func HasPrefix(prefix string) Predicate {
	return func(r record.Record) bool {
		return strings.HasPrefix(r.Text, prefix)
	}
}

// Contains tests the raw line for a substring.
func Contains(sub string) Predicate {
	return func(r record.Record) bool {
		return strings.Contains(r.Text, sub)
	}
}

func FieldEquals(i int, want string) Predicate {
	return func(r record.Record) bool {
		v, err := r.Field(i)
		return err == nil && v == want
	}
}

func FieldHasPrefix(i int, prefix string) Predicate {
	return func(r record.Record) bool {
		v, err := r.Field(i)
		return err == nil && strings.HasPrefix(v, prefix)
	}
}

// IntInRange accepts lo <= field(i) <= hi.
func IntInRange(i, lo, hi int) Predicate {
	return func(r record.Record) bool {
		v, err := r.Int(i)
		return err == nil && v >= lo && v <= hi
	}
}

// BitSet accepts records whose integer field i has bit set, i.e.
// field & (1 << bit) > 0.
func BitSet(i int, bit uint) Predicate {
	return func(r record.Record) bool {
		v, err := r.Int(i)
		return err == nil && v&(1<<bit) > 0
	}
}

func All(ps ...Predicate) Predicate {
	return func(r record.Record) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func Any(ps ...Predicate) Predicate {
	return func(r record.Record) bool {
		for _, p := range ps {
			if p(r) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	return func(r record.Record) bool { return !p(r) }
}
