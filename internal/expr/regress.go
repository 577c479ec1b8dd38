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
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"cbtools/internal/accum"
	"cbtools/internal/apperr"
)

// Intercept names the constant term of a fit.
const Intercept = "const"

// Fit is an ordinary least squares result.
type Fit struct {
	Terms     []string
	Coef      []float64
	Fitted    []float64
	Residuals []float64
	R2        float64
	N         int
}

// OLS regresses y on the columns of x plus an intercept. x is row major.
func OLS(y []float64, x [][]float64, names []string) (*Fit, error) {
	n := len(y)
	if n == 0 || len(x) != n {
		return nil, apperr.InvalidArgument("regression needs matching non-empty y and x, got %d and %d rows", n, len(x))
	}
	p := len(names) + 1
	if n < p {
		return nil, apperr.InvalidArgument("regression has %d rows for %d terms", n, p)
	}
	X := mat.NewDense(n, p, nil)
	for i, row := range x {
		X.Set(i, 0, 1)
		for j, v := range row {
			X.Set(i, j+1, v)
		}
	}
	var beta mat.VecDense
	if err := beta.SolveVec(X, mat.NewVecDense(n, y)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}
	var fitted mat.VecDense
	fitted.MulVec(X, &beta)

	fit := &Fit{
		Terms:     append([]string{Intercept}, names...),
		Coef:      make([]float64, p),
		Fitted:    make([]float64, n),
		Residuals: make([]float64, n),
		N:         n,
	}
	for j := 0; j < p; j++ {
		fit.Coef[j] = beta.AtVec(j)
	}
	for i := 0; i < n; i++ {
		fit.Fitted[i] = fitted.AtVec(i)
		fit.Residuals[i] = fit.Fitted[i] - y[i]
	}
	fit.R2 = stat.RSquaredFrom(fit.Fitted, y, nil)
	return fit, nil
}

// ResidualStats summarizes the residuals.
func (f *Fit) ResidualStats() *accum.Stats {
	var s accum.Stats
	for _, r := range f.Residuals {
		s.Add(r)
	}
	return &s
}

// RegressFPKM fits FPKM, or ln(1+FPKM) when logY is set, on every other
// column of the frame. Rows with missing cells are dropped.
func RegressFPKM(f *Frame, logY bool) (*Fit, error) {
	var preds []string
	for _, c := range f.Columns {
		if c != "FPKM" {
			preds = append(preds, c)
		}
	}
	_, vals, err := f.Select(append([]string{"FPKM"}, preds...))
	if err != nil {
		return nil, err
	}
	y := make([]float64, len(vals))
	x := make([][]float64, len(vals))
	for i, row := range vals {
		y[i] = row[0]
		if logY {
			y[i] = math.Log1p(row[0])
		}
		x[i] = row[1:]
	}
	return OLS(y, x, preds)
}
