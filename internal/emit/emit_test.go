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

package emit

import (
	"bytes"
	"math"
	"strings"
	"testing"
)

func TestTSV(t *testing.T) {
	var buf bytes.Buffer
	e := NewTSV(&buf)
	e.Header([]string{"id", "uniprot"})
	e.Row([]string{"FBgn001", "P001"})
	e.Line("done")
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got, want := buf.String(), "id\tuniprot\nFBgn001\tP001\ndone\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestTableRendersRows(t *testing.T) {
	var buf bytes.Buffer
	e, err := New("table", &buf)
	if err != nil {
		t.Fatal(err)
	}
	e.Header([]string{"biotype", "count"})
	e.Row([]string{"protein_coding", "13"})
	e.Line("total 13")
	if err := e.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"biotype", "protein_coding", "13", "total 13"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New("xml", &bytes.Buffer{}); err == nil {
		t.Errorf("New(xml) error = nil")
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "float", got: Float(2.5), want: "2.5"},
		{name: "nan", got: Float(math.NaN()), want: "NA"},
		{name: "fixed", got: Fixed(1.0/3.0, 2), want: "0.33"},
		{name: "ints", got: Ints([]int{0, 4, 9}, ", "), want: "0, 4, 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
