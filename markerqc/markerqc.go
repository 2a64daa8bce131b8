// Package markerqc describes each scanned marker: genotype counts, observed
// allele frequency, Hardy-Weinberg equilibrium, and (for a case/control label)
// an allelic Fisher exact test. It reports; it never removes markers from a
// scan.
package markerqc

import (
	"fmt"
	"math"

	"github.com/carbocation/minigwas/hwe"
	"github.com/carbocation/minigwas/markers"
	"github.com/carbocation/runningvariance"
	fet "github.com/glycerine/golang-fisher-exact"
)

// HWECutoff is the chi square p-value below which the exact Hardy-Weinberg
// test is computed.
const HWECutoff = 1e-3

type DosageSource interface {
	Dosages(marker string) ([]float64, error)
}

type Row struct {
	MarkerID       string
	Counts         hwe.Counts
	ObservedFreq   float64 // Reference allele frequency in the genotypes
	ExpectedFreq   float64 // Reference allele frequency from the metadata
	FreqDifference float64 // |Observed - Expected|
	DosageMean     float64
	DosageSD       float64
	Monomorphic    bool
	HWEP           float64
	AllelicP       float64 // NaN without a case/control label
}

// Report builds one Row per marker, in the given order. meta is optional and
// supplies the expected frequency; caseControl is optional and, when given,
// must hold one 0/1 value per genotype row.
func Report(geno DosageSource, markerIDs []string, meta []markers.Marker, caseControl []float64) ([]Row, error) {
	expected := make(map[string]float64, len(meta))
	for _, m := range meta {
		expected[m.MarkerID] = m.RefFreq
	}

	out := make([]Row, 0, len(markerIDs))
	for _, id := range markerIDs {
		dosages, err := geno.Dosages(id)
		if err != nil {
			return nil, err
		}

		row, err := describe(id, dosages, caseControl)
		if err != nil {
			return nil, err
		}

		row.ExpectedFreq = math.NaN()
		if f, exists := expected[id]; exists {
			row.ExpectedFreq = f
		}
		row.FreqDifference = math.Abs(row.ObservedFreq - row.ExpectedFreq)

		out = append(out, row)
	}

	return out, nil
}

func describe(id string, dosages, caseControl []float64) (Row, error) {
	row := Row{MarkerID: id, AllelicP: math.NaN()}

	counts, err := hwe.CountDosages(dosages)
	if err != nil {
		return row, fmt.Errorf("marker %s: %w", id, err)
	}
	row.Counts = counts
	row.ObservedFreq = counts.RefFrequency()
	row.Monomorphic = counts.Monomorphic()
	row.HWEP = counts.Fast(HWECutoff)

	rs := runningvariance.NewRunningStat()
	for _, d := range dosages {
		rs.Push(d)
	}
	row.DosageMean = rs.Mean()
	row.DosageSD = rs.StandardDeviation()

	if caseControl != nil {
		row.AllelicP, err = allelicFisher(dosages, caseControl)
		if err != nil {
			return row, fmt.Errorf("marker %s: %w", id, err)
		}
	}

	return row, nil
}

// allelicFisher compares reference and alternate allele counts between cases
// (label 1) and controls (label 0) with a two-sided Fisher exact test.
func allelicFisher(dosages, caseControl []float64) (float64, error) {
	if len(dosages) != len(caseControl) {
		return math.NaN(), fmt.Errorf("%d dosages but %d case/control labels", len(dosages), len(caseControl))
	}

	var caseRef, caseAlt, controlRef, controlAlt int
	for i, d := range dosages {
		ref := int(d)
		alt := 2 - ref

		switch caseControl[i] {
		case 1:
			caseRef += ref
			caseAlt += alt
		case 0:
			controlRef += ref
			controlAlt += alt
		default:
			return math.NaN(), fmt.Errorf("case/control label %v is neither 0 nor 1", caseControl[i])
		}
	}

	_, _, _, twop := fet.FisherExactTest(caseRef, caseAlt, controlRef, controlAlt)

	return math.Min(twop, 1), nil
}
