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

package fasta

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := ">seq1\nacgt\nAC\n>seq2 some description\nGGTT\n"
	recs, err := Read(strings.NewReader(input), Options{Upper: true})
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	want := []Record{
		{ID: "seq1", Seq: "ACGTAC"},
		{ID: "seq2", Desc: "some description", Seq: "GGTT"},
	}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("Read() = %+v, want %+v", recs, want)
	}
}

func TestReadEmpty(t *testing.T) {
	recs, err := Read(strings.NewReader(""), Options{})
	if err != nil || len(recs) != 0 {
		t.Errorf("Read(empty) = %v, %v", recs, err)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, []Record{{ID: "gi|1", Seq: "ATG"}, {ID: "x", Desc: "d", Seq: "C"}}); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), ">gi|1\nATG\n>x d\nC\n"; got != want {
		t.Errorf("Write() = %q, want %q", got, want)
	}
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{name: "reverseComplementSuccess", seq: "AACT", want: "AGTT"},
		{name: "badNuc", seq: "AACH", want: "HGTT"},
		{name: "empty", seq: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReverseComplement(tt.seq); got != tt.want {
				t.Errorf("ReverseComplement() = %v, want %v", got, tt.want)
			}
		})
	}
}
