// Package assoc runs a per-marker association scan: one simple linear
// regression of an outcome on each marker's dosage.
package assoc

import (
	"context"
	"fmt"

	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/regress"
	"golang.org/x/sync/errgroup"
)

// Outcome is the dependent variable, one value per participant. IDs may be
// nil, in which case only the row count can be checked against the genotypes.
type Outcome struct {
	IDs    []string
	Values []float64
}

// DosageSource is a participant-by-marker dosage matrix.
type DosageSource interface {
	SampleIDs() []string
	Dosages(marker string) ([]float64, error)
}

// Association is the regression of the outcome on one marker.
type Association struct {
	Marker string
	regress.Result
}

// CheckAlignment fails with ErrAlignment when outcome and genotype rows differ
// in count, or, where both carry identifiers, in identity or order.
func CheckAlignment(outcome Outcome, geno DosageSource) error {
	sampleIDs := geno.SampleIDs()

	if len(outcome.Values) != len(sampleIDs) {
		return fmt.Errorf("outcome has %d rows but genotypes have %d: %w", len(outcome.Values), len(sampleIDs), minigwas.ErrAlignment)
	}

	if outcome.IDs == nil {
		return nil
	}

	if len(outcome.IDs) != len(outcome.Values) {
		return fmt.Errorf("outcome has %d identifiers for %d values: %w", len(outcome.IDs), len(outcome.Values), minigwas.ErrAlignment)
	}

	for i, id := range outcome.IDs {
		if id != sampleIDs[i] {
			return fmt.Errorf("row %d is participant %q in the outcome but %q in the genotypes: %w", i, id, sampleIDs[i], minigwas.ErrAlignment)
		}
	}

	return nil
}

// Scan fits outcome ~ 1 + dosage for each marker, in the order given. The
// result has exactly one entry per requested marker. A marker with no dosage
// variance yields NaN statistics rather than an error; an unknown marker or
// misaligned rows abort the whole scan.
func Scan(outcome Outcome, geno DosageSource, markers []string) ([]Association, error) {
	if err := CheckAlignment(outcome, geno); err != nil {
		return nil, err
	}

	out := make([]Association, 0, len(markers))
	for _, marker := range markers {
		a, err := scanOne(outcome.Values, geno, marker)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, nil
}

// ScanParallel is Scan with the per-marker fits spread over up to workers
// goroutines. Its output is identical to Scan's.
func ScanParallel(ctx context.Context, outcome Outcome, geno DosageSource, markers []string, workers int) ([]Association, error) {
	if err := CheckAlignment(outcome, geno); err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = 1
	}

	out := make([]Association, len(markers))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, marker := range markers {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			a, err := scanOne(outcome.Values, geno, marker)
			if err != nil {
				return err
			}

			// Each goroutine owns exactly one slot
			out[i] = a

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func scanOne(y []float64, geno DosageSource, marker string) (Association, error) {
	x, err := geno.Dosages(marker)
	if err != nil {
		return Association{}, err
	}

	res, err := regress.Simple(y, x)
	if err != nil {
		return Association{}, fmt.Errorf("marker %s: %w", marker, err)
	}

	return Association{Marker: marker, Result: res}, nil
}
