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
	"errors"
	"reflect"
	"strings"
	"testing"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
)

func tabRec(line string) record.Record {
	return record.Record{Fields: record.Split(line, record.Tab), Line: 1, Text: line}
}

func wsRec(line string) record.Record {
	return record.Record{Fields: record.Split(line, record.Whitespace), Line: 1, Text: line}
}

func TestSAMAccessors(t *testing.T) {
	r := tabRec("SRR072893.1\t16\t2L\t10050\t42\t36M\t*\t0\t0\tACGT\tIIII\tNM:i:0")
	if f, _ := Flag(r); f != 16 {
		t.Errorf("Flag() = %d", f)
	}
	if p, _ := Pos(r); p != 10050 {
		t.Errorf("Pos() = %d", p)
	}
	if m, _ := MapQ(r); m != 42 {
		t.Errorf("MapQ() = %d", m)
	}
	if !HasTag(r, "NM:i:0") || HasTag(r, "NM:i:1") {
		t.Error("HasTag() wrong")
	}
	if name, _ := r.Field(SAMQNameColumn); name != "SRR072893.1" {
		t.Errorf("QNAME = %q", name)
	}
}

func TestParseAttributes(t *testing.T) {
	col := `gene_id "FBgn0031208"; gene_name "CG11023"; gene_source "FlyBase"; gene_biotype "protein_coding";`
	want := []Attr{
		{Key: "gene_id", Value: "FBgn0031208"},
		{Key: "gene_name", Value: "CG11023"},
		{Key: "gene_source", Value: "FlyBase"},
		{Key: "gene_biotype", Value: "protein_coding"},
	}
	if got := ParseAttributes(col); !reflect.DeepEqual(got, want) {
		t.Errorf("ParseAttributes() = %v, want %v", got, want)
	}
}

func TestGTFGene(t *testing.T) {
	line := "2L\tFlyBase\tgene\t7529\t9484\t.\t+\t.\t" + `gene_id "FBgn0031208"; gene_name "CG11023"; gene_biotype "protein_coding";`
	r := tabRec(line)
	if !IsGene(r) {
		t.Error("IsGene() = false")
	}
	if !IsProteinCoding(r) {
		t.Error("IsProteinCoding() = false")
	}
	if n, ok := GeneName(r); !ok || n != "CG11023" {
		t.Errorf("GeneName() = %q, %v", n, ok)
	}
	if s, _ := Start(r); s != 7529 {
		t.Errorf("Start() = %d", s)
	}
	if e, _ := End(r); e != 9484 {
		t.Errorf("End() = %d", e)
	}
	if _, ok := Attribute(r, "transcript_id"); ok {
		t.Error("Attribute(transcript_id) found")
	}

	pseudo := tabRec(strings.Replace(line, "protein_coding", "pseudogene", 1))
	if IsProteinCoding(pseudo) {
		t.Error("IsProteinCoding() = true for pseudogene")
	}
}

func TestColumns(t *testing.T) {
	cols := NewColumns([]string{"t_id", "chr", "strand", "start", "end", "t_name", "FPKM", "t_name"})
	if i, err := cols.Index("t_name"); err != nil || i != 5 {
		t.Errorf("Index(t_name) = %d, %v", i, err)
	}
	_, err := cols.Index("fpkm")
	if !errors.Is(err, apperr.ErrFormatMismatch) {
		t.Fatalf("Index(fpkm) error = %v, want ErrFormatMismatch", err)
	}
	if !strings.Contains(err.Error(), `"FPKM"`) {
		t.Errorf("error %q does not suggest FPKM", err)
	}
	if err := cols.Require("chr", "nope_at_all_xyz"); !errors.Is(err, apperr.ErrFormatMismatch) {
		t.Errorf("Require() = %v", err)
	}
}

func TestCtab(t *testing.T) {
	header := tabRec("t_id\tchr\tstrand\tstart\tend\tt_name\tnum_exons\tlength\tgene_id\tgene_name\tcov\tFPKM")
	c, err := NewCtab(header, CtabTName, CtabFPKM)
	if err != nil {
		t.Fatal(err)
	}
	row := tabRec("1\t2L\t+\t7529\t9484\tFBtr0300689\t2\t2919\tFBgn0031208\tCG11023\t3.4\t12.5")
	if n, _ := c.TName(row); n != "FBtr0300689" {
		t.Errorf("TName() = %q", n)
	}
	if f, _ := c.FPKM(row); f != 12.5 {
		t.Errorf("FPKM() = %v", f)
	}
	if s, _ := c.Strand(row); s != "+" {
		t.Errorf("Strand() = %q", s)
	}
	if _, err := NewCtab(header, "t_nam"); !errors.Is(err, apperr.ErrFormatMismatch) {
		t.Errorf("NewCtab(t_nam) = %v", err)
	}
}

func TestUniProt(t *testing.T) {
	r := wsRec("Drosophila melanogaster  Q9VRQ4  Q9VRQ4_DROME  FBgn0038196")
	hit := wsRec("DROME  x  P12345  FBgn0000001")
	if !HasFlyBaseXref(r) || HasFlyBaseXref(wsRec("DROME  x  P12345  Q0001")) {
		t.Error("HasFlyBaseXref() wrong")
	}
	if acc, _ := UniProtAccession(hit); acc != "P12345" {
		t.Errorf("UniProtAccession() = %q", acc)
	}
	if fb, _ := UniProtFlyBase(hit); fb != "FBgn0000001" {
		t.Errorf("UniProtFlyBase() = %q", fb)
	}
}

func TestAlleleFrequencies(t *testing.T) {
	tests := []struct {
		name    string
		info    string
		want    []float64
		wantErr bool
	}{
		{name: "single", info: "AC=1;AF=0.25;AN=4", want: []float64{0.25}},
		{name: "multi", info: "AF=0.1,0.4;DP=10", want: []float64{0.1, 0.4}},
		{name: "missing", info: "DP=10", wantErr: true},
		{name: "bad", info: "AF=x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tabRec("2L\t100\t.\tA\tG\t50\tPASS\t" + tt.info)
			got, err := AlleleFrequencies(r)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrMalformedRecord) {
					t.Errorf("error = %v, want ErrMalformedRecord", err)
				}
				return
			}
			if err != nil || !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AlleleFrequencies() = %v, %v, want %v", got, err, tt.want)
			}
		})
	}
}

func TestPositionalAccessors(t *testing.T) {
	eig := wsRec("fam1 ind1 0.0123 -0.045 0.2")
	if v, _ := PC1(eig); v != 0.0123 {
		t.Errorf("PC1() = %v", v)
	}
	if v, _ := PC2(eig); v != -0.045 {
		t.Errorf("PC2() = %v", v)
	}

	blast := tabRec("sp|P1|X\tMK-LV")
	if id, _ := SSeqID(blast); id != "sp|P1|X" {
		t.Errorf("SSeqID() = %q", id)
	}
	if s, _ := SSeq(blast); s != "MK-LV" {
		t.Errorf("SSeq() = %q", s)
	}

	bw := tabRec("FBtr1\t1000\t900\t450\t0.45\t0.5")
	if n, _ := BigWigName(bw); n != "FBtr1" {
		t.Errorf("BigWigName() = %q", n)
	}
	if m, _ := BigWigMean(bw); m != 0.5 {
		t.Errorf("BigWigMean() = %v", m)
	}

	lz := tabRec("chr1\t120\t480")
	if s, _ := ZStart(lz); s != 120 {
		t.Errorf("ZStart() = %d", s)
	}
	if e, _ := ZEnd(lz); e != 480 {
		t.Errorf("ZEnd() = %d", e)
	}

	ct := tabRec("1\t2\t3\t4\t5\t6\t7\t8\tFBgn001")
	if id, _ := FlyBaseID(ct); id != "FBgn001" {
		t.Errorf("FlyBaseID() = %q", id)
	}
	if _, err := FlyBaseID(tabRec("a\tb")); !errors.Is(err, apperr.ErrMalformedRecord) {
		t.Errorf("FlyBaseID(short) error = %v", err)
	}
}
