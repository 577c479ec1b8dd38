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

package expr

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"cbtools/internal/apperr"
)

const ctabHeader = "t_id\tchr\tstrand\tstart\tend\tt_name\tgene_name\tFPKM\n"

func ctab(rows ...string) string {
	return ctabHeader + strings.Join(rows, "\n") + "\n"
}

func mustCtab(t *testing.T, name, body string) *Table {
	t.Helper()
	tb, err := ReadCtab(strings.NewReader(body), name)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestReadCtab(t *testing.T) {
	tb := mustCtab(t, "s1", ctab(
		"1\t2L\t+\t7529\t9484\tFBtr1\tCG1\t12.5",
		"2\t2L\t-\t9839\t21376\tFBtr2\tCG2\tnotanumber",
		"3\t2R\t-\t100\t900\tFBtr3\tCG1\t0",
	))
	if len(tb.Rows) != 2 || tb.Skipped != 1 {
		t.Fatalf("rows = %d skipped = %d, want 2 and 1", len(tb.Rows), tb.Skipped)
	}
	want := Transcript{TName: "FBtr1", GeneName: "CG1", Chr: "2L", Strand: "+", Start: 7529, End: 9484, FPKM: 12.5}
	if got, ok := tb.Get("FBtr1"); !ok || got != want {
		t.Errorf("Get(FBtr1) = %+v, %v", got, ok)
	}
	if got := tb.GeneFPKMs("CG1"); !reflect.DeepEqual(got, []float64{12.5, 0}) {
		t.Errorf("GeneFPKMs(CG1) = %v", got)
	}

	_, err := ReadCtab(strings.NewReader("t_id\tname\tFPKM\n1\tx\t2\n"), "bad")
	if !errors.Is(err, apperr.ErrFormatMismatch) {
		t.Errorf("missing t_name error = %v", err)
	}

	body := "t_name\tFPKM\tchrom\nFBtr1\t1\t2L\n"
	if _, err := ReadCtab(strings.NewReader(body), "plain"); err != nil {
		t.Errorf("optional columns absent error = %v", err)
	}
	_, err = ReadCtab(strings.NewReader(body), "coords", "chr", "strand")
	if !errors.Is(err, apperr.ErrFormatMismatch) || !strings.Contains(err.Error(), `did you mean "chrom"`) {
		t.Errorf("missing chr error = %v", err)
	}
}

func TestMatrix(t *testing.T) {
	a := mustCtab(t, "A", ctab("1\t2L\t+\t1\t2\tt1\tg\t1", "2\t2L\t+\t1\t2\tt2\tg\t2"))
	b := mustCtab(t, "B", ctab("1\t2L\t+\t1\t2\tt2\tg\t3", "2\t2L\t+\t1\t2\tt3\tg\t4"))
	m := NewMatrix([]*Table{a, b})

	if !reflect.DeepEqual(m.Columns, []string{"A", "B"}) {
		t.Errorf("Columns = %v", m.Columns)
	}
	if !reflect.DeepEqual(m.Rows(), []string{"t1", "t2", "t3"}) {
		t.Errorf("Rows() = %v", m.Rows())
	}
	if r := m.Row("t1"); r[0] != 1 || !math.IsNaN(r[1]) {
		t.Errorf("Row(t1) = %v", r)
	}
	if m.Sum("t2") != 5 || m.Sum("t1") != 1 {
		t.Errorf("Sum = %v, %v", m.Sum("t2"), m.Sum("t1"))
	}
	if got := m.Above(3); !reflect.DeepEqual(got, []string{"t2", "t3"}) {
		t.Errorf("Above(3) = %v", got)
	}
	if got := m.Above(100); got != nil {
		t.Errorf("Above(100) = %v, want none", got)
	}
}

func TestSeries(t *testing.T) {
	t1 := mustCtab(t, "1", ctab("1\t2L\t+\t1\t2\ttA\tg\t2", "2\t2L\t+\t1\t2\ttB\tg\t4"))
	t2 := mustCtab(t, "2", ctab("1\t2L\t+\t1\t2\ttC\th\t9"))
	t3 := mustCtab(t, "3", ctab("1\t2L\t+\t1\t2\ttA\tg\t6"))
	tables := []*Table{t1, t2, t3}

	tc := Timecourse(tables, "tA")
	if tc[0] != 2 || !math.IsNaN(tc[1]) || tc[2] != 6 {
		t.Errorf("Timecourse(tA) = %v", tc)
	}
	if got := CumulativeGeneMeans(tables, "g"); !reflect.DeepEqual(got, []float64{3, 3, 4}) {
		t.Errorf("CumulativeGeneMeans(g) = %v", got)
	}
	if got := CumulativeGeneMeans(tables, "h"); !math.IsNaN(got[0]) || got[1] != 9 {
		t.Errorf("CumulativeGeneMeans(h) = %v", got)
	}
}

func TestMA(t *testing.T) {
	a := mustCtab(t, "a", ctab("1\t2L\t+\t1\t2\tt1\tg\t3", "2\t2L\t+\t1\t2\tonlyA\tg\t1"))
	b := mustCtab(t, "b", ctab("1\t2L\t+\t1\t2\tt1\tg\t1"))
	got := MA(a, b)
	if len(got) != 1 || got[0].TName != "t1" || !near(got[0].M, 1) || !near(got[0].A, 1.5) {
		t.Errorf("MA() = %+v", got)
	}
}

func TestPromoters(t *testing.T) {
	tb := mustCtab(t, "p", ctab(
		"1\t2L\t+\t1000\t5000\tplus\tg\t1",
		"2\t2L\t-\t100\t2000\tminus\tg\t1",
		"3\t2L\t+\t499\t5000\tclamped\tg\t1",
		"4\t2L\t+\t500\t5000\tedge\tg\t1",
		"5\t2L\t-\t1\t300\tclampedMinus\tg\t1",
	))
	want := []Interval{
		{Chr: "2L", Start: 500, End: 1500, Name: "plus"},
		{Chr: "2L", Start: 1500, End: 2500, Name: "minus"},
		{Chr: "2L", Start: 0, End: 0, Name: "clamped"},
		{Chr: "2L", Start: 0, End: 1000, Name: "edge"},
		{Chr: "2L", Start: 0, End: 0, Name: "clampedMinus"},
	}
	if got := Promoters(tb, DefaultPromoterFlank); !reflect.DeepEqual(got, want) {
		t.Errorf("Promoters() = %+v\nwant %+v", got, want)
	}
}

func TestTracks(t *testing.T) {
	if got := TrackName("/data/promoters.H3K4me3.tab"); got != "H3K4me3" {
		t.Errorf("TrackName() = %q", got)
	}
	if got := TrackName("plain"); got != "plain" {
		t.Errorf("TrackName(plain) = %q", got)
	}
	trk, err := ReadTrack(strings.NewReader("t1\t1000\t900\t450\t0.45\t0.5\nshort\t1\n"), "H3K27me3")
	if err != nil {
		t.Fatal(err)
	}
	if trk.Skipped != 1 || trk.Means["t1"] != 0.5 {
		t.Errorf("track = %+v", trk)
	}
	tb := mustCtab(t, "s", ctab("1\t2L\t+\t1\t2\tt1\tg\t7", "2\t2L\t+\t1\t2\tt2\tg\t8"))
	rows := Join(tb, []*Track{trk})
	if len(rows) != 2 || rows[0].Means[0] != 0.5 || !math.IsNaN(rows[1].Means[0]) || rows[1].FPKM != 8 {
		t.Errorf("Join() = %+v", rows)
	}
}

func TestOLS(t *testing.T) {
	y := []float64{1, 3, 5, 7}
	x := [][]float64{{0}, {1}, {2}, {3}}
	fit, err := OLS(y, x, []string{"x"})
	if err != nil {
		t.Fatal(err)
	}
	if !near(fit.Coef[0], 1) || !near(fit.Coef[1], 2) {
		t.Errorf("Coef = %v, want [1 2]", fit.Coef)
	}
	if !near(fit.R2, 1) {
		t.Errorf("R2 = %v", fit.R2)
	}
	if !reflect.DeepEqual(fit.Terms, []string{Intercept, "x"}) {
		t.Errorf("Terms = %v", fit.Terms)
	}
	if _, err := OLS([]float64{1}, [][]float64{{1}}, []string{"x"}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("underdetermined error = %v", err)
	}
}

func TestRegressFPKM(t *testing.T) {
	body := "t_name\tFPKM\tH3K4me3\nt1\t1\t0\nt2\t3\t1\nt3\t5\t2\nt4\tNA\t5\nt5\t7\t3\n"
	f, err := ReadFrame(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	fit, err := RegressFPKM(f, false)
	if err != nil {
		t.Fatal(err)
	}
	if fit.N != 4 || !near(fit.Coef[1], 2) {
		t.Errorf("fit = %+v", fit)
	}
	logFit, err := RegressFPKM(f, true)
	if err != nil {
		t.Fatal(err)
	}
	if logFit.Coef[1] >= fit.Coef[1] {
		t.Errorf("log slope %v not below linear slope %v", logFit.Coef[1], fit.Coef[1])
	}
}

func TestTTest(t *testing.T) {
	tt, p := TTest([]float64{1, 2, 3}, []float64{4, 5, 6})
	if math.Abs(tt+3.674235) > 1e-5 || math.Abs(p-0.021311) > 1e-4 {
		t.Errorf("TTest() = %v, %v", tt, p)
	}
	if _, p := TTest([]float64{1}, []float64{2}); !math.IsNaN(p) {
		t.Errorf("TTest(no df) p = %v, want NaN", p)
	}
}

func TestDiffExp(t *testing.T) {
	body := "gene\tunk\tCFU\tmys\tmid\textra\n" +
		"g1\t1\t1.1\t10\t10.2\t0\n" +
		"g2\t5\t5.1\t5\t5.2\t0\n" +
		"g3\tNA\t1\t2\t3\t0\n"
	f, err := ReadFrame(strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	got, err := DiffExp(f, []string{"unk", "CFU"}, []string{"mys", "mid"}, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Gene != "g1" || got[0].T >= 0 {
		t.Errorf("DiffExp() = %+v", got)
	}
	if _, err := DiffExp(f, []string{"unknown"}, []string{"mys"}, 0.05); !errors.Is(err, apperr.ErrFormatMismatch) {
		t.Errorf("missing column error = %v", err)
	}
}

func TestReadFrameHeaderWithoutIndexName(t *testing.T) {
	f, err := ReadFrame(strings.NewReader("a\tb\nr1\t1\t2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if f.Index != "" || !reflect.DeepEqual(f.Columns, []string{"a", "b"}) || !reflect.DeepEqual(f.Data, [][]float64{{1, 2}}) {
		t.Errorf("frame = %+v", f)
	}
}

func TestLoadSamples(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "samples.csv"), "sample,sex,stage\nSRR1,male,10\nSRR2,female,10\nSRR3,male,11\n")
	writeFile(t, filepath.Join(dir, "SRR1", CtabFile), ctab("1\t2L\t+\t1\t2\tt1\tg\t1"))
	writeFile(t, filepath.Join(dir, "SRR2", CtabFile), ctab("1\t2L\t+\t1\t2\tt1\tg\t2"))
	writeFile(t, filepath.Join(dir, "SRR3", CtabFile), ctab("1\t2L\t+\t1\t2\tt1\tg\t3"))

	samples, err := ReadSamplesFile(filepath.Join(dir, "samples.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(Sexes(samples), []string{"male", "female"}) {
		t.Errorf("Sexes() = %v", Sexes(samples))
	}
	males := BySex(samples, "male")
	tables, err := LoadSamples(context.Background(), dir, males, 1)
	if err != nil {
		t.Fatal(err)
	}
	if tables[0].Name != "male_10" || tables[1].Name != "male_11" {
		t.Errorf("names = %s, %s", tables[0].Name, tables[1].Name)
	}
	if got := Timecourse(tables, "t1"); !reflect.DeepEqual(got, []float64{1, 3}) {
		t.Errorf("Timecourse() = %v", got)
	}

	_, err = LoadSamples(context.Background(), dir, []Sample{{Name: "missing"}}, 2)
	if !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("missing ctab error = %v", err)
	}
}

func TestSampleName(t *testing.T) {
	if got := SampleName(filepath.Join("data", "SRR072893", CtabFile)); got != "SRR072893" {
		t.Errorf("SampleName() = %q", got)
	}
}
