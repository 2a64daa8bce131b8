package hwe

import (
	"math"

	"github.com/tokenme/probab/dst"
)

// Approximate uses a 1 degree of freedom chi square test of observed versus
// expected genotype counts.
func (c Counts) Approximate() (p float64) {
	// The distribution package panics on some inputs, e.g., at the
	// boundaries; those are reported as NaN.
	defer func() {
		if recover() != nil {
			p = nan()
		}
	}()

	if c.N() == 0 {
		return nan()
	}

	return 1.0 - dst.ChiSquareCDF(1)(c.chiSquare())
}

// Fast uses the chi square approximation, and only computes the exact P value
// when the approximation is below cutoff.
func (c Counts) Fast(cutoff float64) float64 {
	if p := c.Approximate(); !(p < cutoff) {
		return p
	}

	return c.Exact()
}

// chiSquare is the difference between observed and expected genotypes based on
// the observed allele frequency distribution.
func (c Counts) chiSquare() float64 {
	AA, Aa, aa := float64(c.HomRef), float64(c.Het), float64(c.HomAlt)

	A := AA*2 + Aa
	a := aa*2 + Aa

	// A site that is not biallelic in this population has no deviation to
	// measure; chi square 0 gives P=1.
	if A == 0 || a == 0 {
		return 0.0
	}

	N := AA + Aa + aa
	p := A / (A + a)
	q := a / (A + a)

	eAA := p * p * N
	eAa := 2.0 * p * q * N
	eaa := q * q * N

	return math.Pow(eAA-AA, 2)/eAA +
		math.Pow(eAa-Aa, 2)/eAa +
		math.Pow(eaa-aa, 2)/eaa
}
