// Package regress fits the ordinary least squares model y = a + b*x and
// reports inference on the slope.
package regress

import (
	"fmt"
	"math"

	"github.com/carbocation/minigwas"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Result describes the slope of a simple linear regression. For a fit that
// cannot be estimated (no variance in x, or fewer than 3 observations) every
// field except N is NaN.
type Result struct {
	Estimate  float64 // Slope, i.e., change in y per unit x
	StdErr    float64
	Statistic float64 // Estimate / StdErr, t distributed with N-2 df
	P         float64 // Two-sided
	Intercept float64
	N         int
}

// Finite reports whether the slope, its standard error and its p-value were
// all estimable. A flat outcome has a slope and standard error of zero but no
// p-value, so it is not Finite.
func (r Result) Finite() bool {
	return !math.IsNaN(r.Estimate) && !math.IsInf(r.Estimate, 0) &&
		!math.IsNaN(r.StdErr) && !math.IsInf(r.StdErr, 0) &&
		!math.IsNaN(r.P)
}

func nonEstimable(n int) Result {
	return Result{
		Estimate:  math.NaN(),
		StdErr:    math.NaN(),
		Statistic: math.NaN(),
		P:         math.NaN(),
		Intercept: math.NaN(),
		N:         n,
	}
}

// Simple regresses y on an intercept and x.
func Simple(y, x []float64) (Result, error) {
	if len(y) != len(x) {
		return Result{}, fmt.Errorf("outcome has %d observations but predictor has %d: %w", len(y), len(x), minigwas.ErrAlignment)
	}

	n := len(y)
	if n < 3 {
		return nonEstimable(n), nil
	}

	xMean := stat.Mean(x, nil)
	sxx := 0.0
	for _, v := range x {
		sxx += (v - xMean) * (v - xMean)
	}
	if sxx == 0 || math.IsNaN(sxx) {
		return nonEstimable(n), nil
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	rss := 0.0
	for i := range y {
		resid := y[i] - (alpha + beta*x[i])
		rss += resid * resid
	}

	df := float64(n - 2)
	se := math.Sqrt(rss / df / sxx)
	t := beta / se

	out := Result{
		Estimate:  beta,
		StdErr:    se,
		Statistic: t,
		Intercept: alpha,
		N:         n,
	}

	switch {
	case math.IsNaN(t):
		// 0/0: a perfectly flat outcome
		out.P = math.NaN()
	case math.IsInf(t, 0):
		// Residual-free fit with a nonzero slope
		out.P = 0
	default:
		out.P = TwoSidedP(t, df)
	}

	return out, nil
}

// TwoSidedP is the probability of a Student's t variate with df degrees of
// freedom being at least |t| away from zero.
func TwoSidedP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	return 2 * dist.Survival(math.Abs(t))
}
