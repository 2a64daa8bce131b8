package hwe

import (
	"math"
	"math/big"

	"github.com/BenLubar/memoize"
)

var memoizedExactFor = memoize.Memoize(exactFor)
var memoizedFactorial = memoize.Memoize(factorial)

func nan() float64 { return math.NaN() }

// Exact computes an exact Hardy-Weinberg equilibrium P-value, based on the
// Abecasis paper, itself based on RA Fisher's method. Exact is safe to call
// from concurrent goroutines. The resources used to create this were
// http://courses.washington.edu/b516/lectures_2009/HWE_Lecture.pdf slides 21-22
// and https://www.cog-genomics.org/software/stats for sanity checks.
func (c Counts) Exact() float64 {
	if c.N() == 0 {
		return nan()
	}

	// Enforce AA common, aa rare
	AA, Aa, aa := c.HomRef, c.Het, c.HomAlt
	if aa > AA {
		AA, aa = aa, AA
	}

	exact := memoizedExactFor.(func(int64, int64, int64) float64)

	// The P value is the sum of all probabilities at this exact configuration
	// *or more extreme*.
	baseP := exact(AA, Aa, aa)
	sumP := baseP

	// Left tail: more heterozygotes than observed
	for hAA, hAa, haa := AA-1, Aa+2, aa-1; haa >= 0; hAA, hAa, haa = hAA-1, hAa+2, haa-1 {
		newest := exact(hAA, hAa, haa)
		if newest > baseP {
			continue
		}
		if newest <= math.SmallestNonzeroFloat64 {
			break
		}
		sumP += newest
	}

	// Right tail: fewer heterozygotes than observed
	for hAA, hAa, haa := AA+1, Aa-2, aa+1; hAa >= 0; hAA, hAa, haa = hAA+1, hAa-2, haa+1 {
		newest := exact(hAA, hAa, haa)
		if newest > baseP {
			continue
		}
		if newest <= math.SmallestNonzeroFloat64 {
			break
		}
		sumP += newest
	}

	return math.Min(sumP, 1)
}

// exactFor yields the probability of observing exactly Aa heterozygotes in a
// sample of AA+Aa+aa individuals with Aa+2*aa minor alleles.
func exactFor(AA, Aa, aa int64) float64 {
	A := AA*2 + Aa
	a := aa*2 + Aa
	N := AA + Aa + aa

	fact := memoizedFactorial.(func(int64, int64) *big.Int)

	// Numerator: 2^Aa * A! * a!
	var num, denom big.Int
	num.Exp(big.NewInt(2), big.NewInt(Aa), nil)
	num.Mul(&num, fact(1, A))
	num.Mul(&num, fact(1, a))

	// Denominator: (2N)!/N! * AA! * Aa! * aa!
	denom.Set(fact(N+1, 2*N))
	denom.Mul(&denom, fact(1, AA))
	denom.Mul(&denom, fact(1, Aa))
	denom.Mul(&denom, fact(1, aa))

	final, _ := new(big.Rat).SetFrac(&num, &denom).Float64()

	return final
}

func factorial(a, b int64) *big.Int {
	return big.NewInt(1).MulRange(a, b)
}
