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

package main

import (
	"strings"

	"cbtools/internal/apperr"
	"cbtools/internal/emit"
	"cbtools/internal/expr"
	"cbtools/internal/schema"
)

// loadTables reads the ctab of every sample below dir.
func loadTables(e *env, samples []expr.Sample, dir string, required ...string) ([]*expr.Table, error) {
	tables, err := expr.LoadSamples(e.ctx, dir, samples, e.cfg.Workers, required...)
	if err != nil {
		return nil, err
	}
	for i, t := range tables {
		e.skipped(samples[i].CtabPath(dir), t.Skipped)
	}
	return tables, nil
}

// sexGroup holds the samples of one sex in sheet order with their tables.
type sexGroup struct {
	sex     string
	samples []expr.Sample
	tables  []*expr.Table
}

// loadBySex reads a sample sheet and the tables of each sex, sexes in
// first-seen order.
func loadBySex(e *env, sheet, dir string, required ...string) ([]sexGroup, error) {
	samples, err := expr.ReadSamplesFile(sheet)
	if err != nil {
		return nil, err
	}
	e.log.Info("Loading ctab files", "samples", len(samples), "dir", dir)
	var groups []sexGroup
	for _, sex := range expr.Sexes(samples) {
		g := sexGroup{sex: sex, samples: expr.BySex(samples, sex)}
		if g.tables, err = loadTables(e, g.samples, dir, required...); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func floatRow(lead []string, vs []float64) []string {
	row := append([]string(nil), lead...)
	for _, v := range vs {
		row = append(row, emit.Float(v))
	}
	return row
}

func runFPKMMatrix(e *env, args []string) error {
	fs := e.flags("fpkm-matrix")
	pos, err := e.parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	samples, err := expr.ReadSamplesFile(pos[0])
	if err != nil {
		return err
	}
	e.log.Info("Loading ctab files", "samples", len(samples), "dir", pos[1])
	tables, err := loadTables(e, samples, pos[1])
	if err != nil {
		return err
	}
	m := expr.NewMatrix(tables)
	e.log.Infof("%s transcripts in %d samples", intWithCommas(m.Len()), len(m.Columns))
	e.out.Header(append([]string{"t_name"}, m.Columns...))
	for _, name := range m.Rows() {
		e.out.Row(floatRow([]string{name}, m.Row(name)))
	}
	return nil
}

func runTimecourse(e *env, args []string) error {
	fs := e.flags("timecourse")
	pos, err := e.parse(fs, args, 3, 4)
	if err != nil {
		return err
	}
	tname := pos[0]
	e.out.Header([]string{"series", "sex", "stage", "sample", "fpkm"})
	series := []struct{ name, sheet string }{{"samples", pos[1]}}
	if len(pos) == 4 {
		series = append(series, struct{ name, sheet string }{"replicates", pos[3]})
	}
	for _, sr := range series {
		groups, err := loadBySex(e, sr.sheet, pos[2])
		if err != nil {
			return err
		}
		for _, g := range groups {
			values := expr.Timecourse(g.tables, tname)
			for i, s := range g.samples {
				e.out.Row([]string{sr.name, g.sex, s.Stage, s.Name, emit.Float(values[i])})
			}
		}
	}
	return nil
}

func runGeneMeans(e *env, args []string) error {
	fs := e.flags("gene-means")
	pos, err := e.parse(fs, args, 3, -1)
	if err != nil {
		return err
	}
	groups, err := loadBySex(e, pos[0], pos[1], schema.CtabGeneName)
	if err != nil {
		return err
	}
	e.out.Header([]string{"gene", "sex", "stage", "sample", "mean_fpkm"})
	for _, gene := range pos[2:] {
		for _, g := range groups {
			means := expr.CumulativeGeneMeans(g.tables, gene)
			for i, s := range g.samples {
				e.out.Row([]string{gene, g.sex, s.Stage, s.Name, emit.Float(means[i])})
			}
		}
	}
	return nil
}

func runMA(e *env, args []string) error {
	fs := e.flags("ma")
	pos, err := e.parse(fs, args, 2, 2)
	if err != nil {
		return err
	}
	a, err := expr.ReadCtabFile(pos[0])
	if err != nil {
		return err
	}
	b, err := expr.ReadCtabFile(pos[1])
	if err != nil {
		return err
	}
	e.skipped(pos[0], a.Skipped)
	e.skipped(pos[1], b.Skipped)
	points := expr.MA(a, b)
	e.log.Info("Comparing samples", "a", a.Name, "b", b.Name, "shared", intWithCommas(len(points)))
	e.out.Header([]string{"t_name", "M", "A"})
	for _, p := range points {
		e.out.Row([]string{p.TName, emit.Float(p.M), emit.Float(p.A)})
	}
	return nil
}

func runFPKMFilter(e *env, args []string) error {
	fs := e.flags("fpkm-filter")
	pos, err := e.parse(fs, args, 2, -1)
	if err != nil {
		return err
	}
	threshold, err := atof("THRESHOLD", pos[0])
	if err != nil {
		return err
	}
	tables, err := expr.LoadAll(e.ctx, pos[1:], e.cfg.Workers)
	if err != nil {
		return err
	}
	m := expr.NewMatrix(tables)
	keep := m.Above(threshold)
	e.log.Infof("%s of %s transcripts above %g", intWithCommas(len(keep)), intWithCommas(m.Len()), threshold)
	e.out.Header(append(append([]string{"t_name"}, m.Columns...), "sums"))
	for _, name := range keep {
		row := floatRow([]string{name}, m.Row(name))
		e.out.Row(append(row, emit.Float(m.Sum(name))))
	}
	return nil
}

func runPromoters(e *env, args []string) error {
	fs := e.flags("promoters")
	flank := fs.Int("flank", e.cfg.Expr.PromoterFlank, "Bases kept on each side of the transcription start site")
	pos, err := e.parse(fs, args, 1, 1)
	if err != nil {
		return err
	}
	if *flank < 0 {
		return apperr.InvalidArgument("flank must not be negative, got %d", *flank)
	}
	t, err := expr.ReadCtabFile(pos[0], schema.CtabChr, schema.CtabStrand, schema.CtabStart, schema.CtabEnd)
	if err != nil {
		return err
	}
	e.skipped(pos[0], t.Skipped)
	for _, iv := range expr.Promoters(t, *flank) {
		e.out.Row([]string{iv.Chr, emit.Int(iv.Start), emit.Int(iv.End), iv.Name})
	}
	return nil
}

func runBigWigJoin(e *env, args []string) error {
	fs := e.flags("bigwig-join")
	pos, err := e.parse(fs, args, 2, -1)
	if err != nil {
		return err
	}
	t, err := expr.ReadCtabFile(pos[0])
	if err != nil {
		return err
	}
	e.skipped(pos[0], t.Skipped)
	header := []string{"t_name", "FPKM"}
	var tracks []*expr.Track
	for _, p := range pos[1:] {
		trk, err := expr.ReadTrackFile(p)
		if err != nil {
			return err
		}
		e.skipped(p, trk.Skipped)
		tracks = append(tracks, trk)
		header = append(header, trk.Name)
	}
	e.out.Header(header)
	for _, row := range expr.Join(t, tracks) {
		e.out.Row(floatRow([]string{row.TName, emit.Float(row.FPKM)}, row.Means))
	}
	return nil
}

func runRegress(e *env, args []string) error {
	fs := e.flags("regress")
	logY := fs.Bool("log", false, "Regress ln(1+FPKM) instead of FPKM")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	f, err := expr.ReadFrameFile(optional(pos, 0))
	if err != nil {
		return err
	}
	fit, err := expr.RegressFPKM(f, *logY)
	if err != nil {
		return err
	}
	if dropped := len(f.Names) - fit.N; dropped > 0 {
		e.log.Debug("rows with missing values dropped", "count", dropped)
	}
	e.out.Header([]string{"term", "coef"})
	for i, term := range fit.Terms {
		e.out.Row([]string{term, emit.Float(fit.Coef[i])})
	}
	rs := fit.ResidualStats()
	mean, _ := rs.Mean()
	lo, _ := rs.Min()
	hi, _ := rs.Max()
	e.out.Line("# n\t" + emit.Int(fit.N))
	e.out.Line("# r_squared\t" + emit.Float(fit.R2))
	e.out.Line("# residual_mean\t" + emit.Float(mean))
	e.out.Line("# residual_min\t" + emit.Float(lo))
	e.out.Line("# residual_max\t" + emit.Float(hi))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func runDiffExp(e *env, args []string) error {
	fs := e.flags("diff-exp")
	early := fs.String("early", strings.Join(e.cfg.DiffExp.Early, ","), "Comma-separated early stage columns")
	late := fs.String("late", strings.Join(e.cfg.DiffExp.Late, ","), "Comma-separated late stage columns")
	alpha := fs.Float64("alpha", e.cfg.DiffExp.Alpha, "Report genes with p below this value")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	f, err := expr.ReadFrameFile(optional(pos, 0))
	if err != nil {
		return err
	}
	results, err := expr.DiffExp(f, splitList(*early), splitList(*late), *alpha)
	if err != nil {
		return err
	}
	e.log.Infof("%s of %s genes below p = %g", intWithCommas(len(results)), intWithCommas(len(f.Names)), *alpha)
	index := f.Index
	if index == "" {
		index = "gene"
	}
	e.out.Header([]string{index, "t", "pvalue"})
	for _, r := range results {
		e.out.Row([]string{r.Gene, emit.Float(r.T), emit.Float(r.P)})
	}
	return nil
}
