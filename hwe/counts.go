// Package hwe tests genotype counts for Hardy-Weinberg equilibrium.
package hwe

import "fmt"

// Counts tallies participants by number of reference-allele copies.
type Counts struct {
	HomRef int64 // dosage 2
	Het    int64 // dosage 1
	HomAlt int64 // dosage 0
}

// CountDosages tallies additive dosages. Anything other than 0, 1 or 2 is an
// error.
func CountDosages(dosages []float64) (Counts, error) {
	var c Counts
	for i, d := range dosages {
		switch d {
		case 0:
			c.HomAlt++
		case 1:
			c.Het++
		case 2:
			c.HomRef++
		default:
			return c, fmt.Errorf("dosage %v at position %d is not one of 0, 1, 2", d, i)
		}
	}

	return c, nil
}

// N is the number of genotyped participants.
func (c Counts) N() int64 {
	return c.HomRef + c.Het + c.HomAlt
}

// RefFrequency is the proportion of observed alleles that are the reference
// allele. NaN when there are no participants.
func (c Counts) RefFrequency() float64 {
	alleles := 2 * c.N()
	if alleles == 0 {
		return nan()
	}

	return float64(2*c.HomRef+c.Het) / float64(alleles)
}

// Monomorphic reports whether every participant carries the same genotype.
func (c Counts) Monomorphic() bool {
	nonzero := 0
	for _, v := range []int64{c.HomRef, c.Het, c.HomAlt} {
		if v > 0 {
			nonzero++
		}
	}

	return nonzero <= 1
}
