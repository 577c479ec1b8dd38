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

package genome

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"cbtools/internal/apperr"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name            string
		pos, start, end int
		want            int
	}{
		{"before", 90, 100, 200, 10},
		{"after", 250, 100, 200, 50},
		{"inside", 150, 100, 200, 0},
		{"atStart", 100, 100, 200, 0},
		{"atEnd", 200, 100, 200, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.pos, tt.start, tt.end); got != tt.want {
				t.Errorf("Distance() = %d, want %d", got, tt.want)
			}
		})
	}
}

func gtfGene(chrom string, start, end, name, biotype string) string {
	return chrom + "\tFlyBase\tgene\t" + start + "\t" + end + "\t.\t+\t.\t" +
		`gene_id "FB` + name + `"; gene_name "` + name + `"; gene_biotype "` + biotype + `";`
}

func TestNearestGenes(t *testing.T) {
	gtf := strings.Join([]string{
		"#!genome-build BDGP6",
		gtfGene("2L", "100", "200", "g1", "protein_coding"),
		"2L\tFlyBase\texon\t100\t200\t.\t+\t.\tgene_id \"FBg1\";",
		gtfGene("2L", "300", "400", "nc1", "ncRNA"),
		gtfGene("2L", "300", "350", "tie", "protein_coding"),
		gtfGene("2L", "500", "600", "g3", "protein_coding"),
		gtfGene("3R", "240", "260", "elsewhere", "protein_coding"),
		"2L\tshort",
	}, "\n")

	tests := []struct {
		name       string
		pos        int
		wantCoding string
		wantDist   int
		wantOther  string
		otherDist  int
	}{
		{name: "tieKeepsFirst", pos: 250, wantCoding: "g1", wantDist: 50, wantOther: "nc1", otherDist: 50},
		{name: "inside", pos: 150, wantCoding: "g1", wantDist: 0, wantOther: "nc1", otherDist: 150},
		{name: "afterAll", pos: 700, wantCoding: "g3", wantDist: 100, wantOther: "nc1", otherDist: 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, skipped, err := NearestGenes(strings.NewReader(gtf), "2L", tt.pos)
			if err != nil {
				t.Fatal(err)
			}
			if skipped != 1 {
				t.Errorf("skipped = %d, want 1", skipped)
			}
			d, g, ok := best.Best(CategoryCoding)
			if !ok || g.Name != tt.wantCoding || d != tt.wantDist {
				t.Errorf("coding = %s %d, want %s %d", g.Name, d, tt.wantCoding, tt.wantDist)
			}
			d, g, ok = best.Best(CategoryOther)
			if !ok || g.Name != tt.wantOther || d != tt.otherDist {
				t.Errorf("other = %s %d, want %s %d", g.Name, d, tt.wantOther, tt.otherDist)
			}
		})
	}

	best, _, err := NearestGenes(strings.NewReader(gtf), "X", 10)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := best.Best(CategoryCoding); ok {
		t.Error("found a gene on a chromosome without genes")
	}
}

func TestFeatureOverlap(t *testing.T) {
	features, _, err := ReadFeatures(strings.NewReader("chr1 100 200 exon\nchr1 150 300 intron\nchr1 500 600 promoter\n"))
	if err != nil {
		t.Fatal(err)
	}
	sites := "chr1 160 170\nchr1 120 130\nchr1 50 60\nchr2 120 130\nchr1 200 210\n"
	tally, _, err := features.CountSites(strings.NewReader(sites))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"exon", "intron", "promoter", FeatureOther}; !reflect.DeepEqual(tally.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", tally.Keys(), want)
	}
	got := map[string]int{}
	for _, k := range tally.Keys() {
		got[k] = tally.Count(k)
	}
	want := map[string]int{"exon": 1, "intron": 2, "promoter": 0, FeatureOther: 2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("counts = %v, want %v", got, want)
	}

	n, err := CountRecords(strings.NewReader(sites))
	if err != nil || n != 5 {
		t.Errorf("CountRecords() = %d, %v", n, err)
	}
	if n, _ := CountRecords(strings.NewReader("")); n != 0 {
		t.Errorf("CountRecords(empty) = %d", n)
	}
}

func TestSummarizeContigs(t *testing.T) {
	got, ok := SummarizeContigs([]int{100, 50, 200, 150})
	want := ContigStats{Count: 4, Total: 500, Mean: 125, Min: 50, Max: 200, N50: 150}
	if !ok || got != want {
		t.Errorf("SummarizeContigs() = %+v, want %+v", got, want)
	}
	if one, _ := SummarizeContigs([]int{42}); one.N50 != 42 {
		t.Errorf("single contig N50 = %d", one.N50)
	}
	if _, ok := SummarizeContigs(nil); ok {
		t.Error("SummarizeContigs(nil) ok = true")
	}
}

func TestReadQassoc(t *testing.T) {
	in := " CHR  SNP  BP  NMISS  BETA  SE  R2  T  P\n" +
		"chrI  s1  100  50  0.1  0.1  0.1  1  1e-06\n" +
		"chrI  s2  150  50  0.1  0.1  0.1  1  0.5\n" +
		"chrII s3  20   50  NA   NA   NA   NA NA\n" +
		"chrII s4  30   50  0.1  0.1  0.1  1  0.01\n"
	snps, skipped, err := ReadQassoc(strings.NewReader(in), DefaultManhattanThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 || len(snps) != 3 {
		t.Fatalf("snps = %d skipped = %d", len(snps), skipped)
	}
	var pos []int
	var sig []bool
	for _, s := range snps {
		pos = append(pos, s.Position)
		sig = append(sig, s.Significant)
	}
	if !reflect.DeepEqual(pos, []int{0, 50, 61}) {
		t.Errorf("positions = %v", pos)
	}
	if !reflect.DeepEqual(sig, []bool{true, false, false}) {
		t.Errorf("significant = %v", sig)
	}
	if _, _, err := ReadQassoc(strings.NewReader("CHR BP\n"), 5); !errors.Is(err, apperr.ErrFormatMismatch) {
		t.Errorf("missing P error = %v", err)
	}
	if got := Treatment("/x/gwas.vitamin.qassoc"); got != "vitamin" {
		t.Errorf("Treatment() = %q", got)
	}
}

func TestLastzLayout(t *testing.T) {
	in := "#name1\tzstart1\tend1\nref\t100\t150\nref\t10\t40\nref\tbad\t1\n"
	segs, skipped, err := LastzLayout(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{{XStart: 0, XEnd: 50, YStart: 100, YEnd: 150}, {XStart: 50, XEnd: 80, YStart: 10, YEnd: 40}}
	if !reflect.DeepEqual(segs, want) || skipped != 1 {
		t.Errorf("LastzLayout() = %+v, skipped %d", segs, skipped)
	}
}

func TestMotifPositions(t *testing.T) {
	peak := "chr1 100 200 p1 0 . 1 1 1 50"
	motif := " m1 chr1 + 150"
	in := peak + motif + "\n" + "chr1 100 100 p2 0 . 1 1 1 50 m2 chr1 + 100\n"
	got, skipped, err := MotifPositions(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{0.5}) || skipped != 1 {
		t.Errorf("MotifPositions() = %v, skipped %d", got, skipped)
	}
}

func TestHistogram(t *testing.T) {
	bins, dropped, err := Histogram([]float64{0, 0.1, 0.5, 0.99, 1, 1.5}, 2, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []Bin{{Lo: 0, Hi: 0.5, Count: 2}, {Lo: 0.5, Hi: 1, Count: 3}}
	if !reflect.DeepEqual(bins, want) || dropped != 1 {
		t.Errorf("Histogram() = %+v, dropped %d", bins, dropped)
	}
	if _, _, err := Histogram(nil, 0, 0, 1); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("Histogram(0 bins) error = %v", err)
	}
	empty, _, _ := Histogram(nil, 4, 0, 1)
	if len(empty) != 4 || empty[3].Count != 0 {
		t.Errorf("Histogram(nil) = %+v", empty)
	}
}
