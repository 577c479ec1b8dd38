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

package selection

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"cbtools/internal/apperr"
	"cbtools/internal/fasta"
)

func TestThread(t *testing.T) {
	tests := []struct {
		name       string
		nuc        string
		aa         string
		wantCodons []string
	}{
		{name: "noGaps", nuc: "ATGAAATTT", aa: "MKF", wantCodons: []string{"ATG", "AAA", "TTT"}},
		{name: "gap", nuc: "ATGTTT", aa: "M-F", wantCodons: []string{"ATG", "---", "TTT"}},
		{name: "shortNuc", nuc: "ATGAA", aa: "MKF", wantCodons: []string{"ATG", "AA", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			al := Thread(fasta.Record{ID: "s", Seq: tt.nuc}, fasta.Record{ID: "s", Seq: tt.aa})
			if !reflect.DeepEqual(al.Codons, tt.wantCodons) {
				t.Errorf("Codons = %q, want %q", al.Codons, tt.wantCodons)
			}
			if len(al.AAs) != len(tt.aa) {
				t.Errorf("len(AAs) = %d, want %d", len(al.AAs), len(tt.aa))
			}
		})
	}
}

func TestCount(t *testing.T) {
	nucs := []fasta.Record{
		{ID: "query", Seq: "ATGAAATTT"},
		{ID: "syn", Seq: "ATGAAGTTT"},
		{ID: "nonsyn", Seq: "CTGAAATTT"},
		{ID: "same", Seq: "ATGAAATTT"},
	}
	aas := []fasta.Record{
		{ID: "query", Seq: "MKF"},
		{ID: "syn", Seq: "MKF"},
		{ID: "nonsyn", Seq: "LKF"},
		{ID: "same", Seq: "MKF"},
	}
	c, err := Count(ThreadAll(nucs, aas))
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 0, 0}; !reflect.DeepEqual(c.DN, want) {
		t.Errorf("DN = %v, want %v", c.DN, want)
	}
	if want := []int{0, 1, 0}; !reflect.DeepEqual(c.DS, want) {
		t.Errorf("DS = %v, want %v", c.DS, want)
	}
	if want := []int{1, 1, 0}; !reflect.DeepEqual(c.Changes, want) {
		t.Errorf("Changes = %v, want %v", c.Changes, want)
	}
	if c.TotalDN() != 1 || c.TotalDS() != 1 || c.Alignments != 4 {
		t.Errorf("totals = %d, %d, %d", c.TotalDN(), c.TotalDS(), c.Alignments)
	}
}

func TestCountQueryGaps(t *testing.T) {
	aligns := []Alignment{
		{ID: "q", Codons: []string{"ATG", "---"}, AAs: []string{"M", "-"}},
		{ID: "a", Codons: []string{"ATG", "AAA"}, AAs: []string{"M", "K"}},
		{ID: "b", Codons: []string{"ATG", "---"}, AAs: []string{"M", "-"}},
	}
	c, err := Count(aligns)
	if err != nil {
		t.Fatal(err)
	}
	if c.Indels != 2 {
		t.Errorf("Indels = %d, want 2", c.Indels)
	}
	if c.TotalDN()+c.TotalDS() != 0 {
		t.Errorf("changes counted at gap position: %+v", c)
	}
	if _, err := Count(nil); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("Count(nil) error = %v", err)
	}
}

func TestZ(t *testing.T) {
	c := Counts{DN: []int{2, 0, 0}, DS: []int{0, 2, 0}, Changes: []int{2, 2, 0}}
	sites := Test(c, -1)
	if len(sites) != 2 {
		t.Fatalf("Test() = %+v, want 2 sites", sites)
	}
	const eps = 1e-9
	if math.Abs(sites[0].Z-math.Sqrt(3)) > eps || math.Abs(sites[1].Z+math.Sqrt(3)) > eps {
		t.Errorf("z = %v, %v, want ±sqrt(3)", sites[0].Z, sites[1].Z)
	}
	if sites[0].Selected || !sites[1].Selected {
		t.Errorf("Selected = %v, %v, want false, true", sites[0].Selected, sites[1].Selected)
	}
	if sites[0].Ratio != 2 || sites[1].Ratio != 0 {
		t.Errorf("Ratio = %v, %v", sites[0].Ratio, sites[1].Ratio)
	}
	if sites[1].Position != 1 {
		t.Errorf("Position = %d, want 1", sites[1].Position)
	}
}
