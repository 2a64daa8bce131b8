package assoc

import (
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/markers"
)

// GenomeWideSignificance is the conventional p-value threshold for declaring a
// genome-wide association. It is used for annotation, never for filtering.
const GenomeWideSignificance = 5e-8

// NegLog10 returns -log10(p), the y axis of a Manhattan plot.
func NegLog10(p float64) float64 {
	return -math.Log10(p)
}

// SummaryRow is one marker's metadata joined to its association result.
type SummaryRow struct {
	markers.Marker
	Estimate  float64
	StdErr    float64
	Statistic float64
	P         float64
}

// Significant reports whether the row passes GenomeWideSignificance.
func (s SummaryRow) Significant() bool {
	return s.P < GenomeWideSignificance
}

// Join inner-joins marker metadata and association results on marker
// identifier, in metadata order. Markers found on only one side are dropped;
// identifiers repeated on either side make the join ambiguous and fail with
// ErrDuplicateKey.
func Join(meta []markers.Marker, results []Association) ([]SummaryRow, error) {
	byMarker := make(map[string]Association, len(results))
	for _, r := range results {
		if _, exists := byMarker[r.Marker]; exists {
			return nil, fmt.Errorf("marker %s has more than one association result: %w", r.Marker, minigwas.ErrDuplicateKey)
		}
		byMarker[r.Marker] = r
	}

	seen := make(map[string]struct{}, len(meta))
	out := make([]SummaryRow, 0, len(results))

	for _, m := range meta {
		if _, exists := seen[m.MarkerID]; exists {
			return nil, fmt.Errorf("marker %s appears more than once in the metadata: %w", m.MarkerID, minigwas.ErrDuplicateKey)
		}
		seen[m.MarkerID] = struct{}{}

		r, exists := byMarker[m.MarkerID]
		if !exists {
			continue
		}

		out = append(out, SummaryRow{
			Marker:    m,
			Estimate:  r.Estimate,
			StdErr:    r.StdErr,
			Statistic: r.Statistic,
			P:         r.P,
		})
	}

	return out, nil
}

// MarkerSetDiff lists the marker identifiers that Join would drop from each
// side, for callers that require both sources to cover the same markers.
func MarkerSetDiff(meta []markers.Marker, results []Association) (onlyMeta, onlyResults []string) {
	inMeta := make(map[string]struct{}, len(meta))
	for _, m := range meta {
		inMeta[m.MarkerID] = struct{}{}
	}

	inResults := make(map[string]struct{}, len(results))
	for _, r := range results {
		inResults[r.Marker] = struct{}{}
		if _, exists := inMeta[r.Marker]; !exists {
			onlyResults = append(onlyResults, r.Marker)
		}
	}

	for _, m := range meta {
		if _, exists := inResults[m.MarkerID]; !exists {
			onlyMeta = append(onlyMeta, m.MarkerID)
		}
	}

	return onlyMeta, onlyResults
}

// Rank returns a copy of rows sorted by ascending p-value. Ties keep their
// input order and NaN p-values sort last.
func Rank(rows []SummaryRow) []SummaryRow {
	out := append([]SummaryRow(nil), rows...)

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].P, out[j].P
		if math.IsNaN(pj) {
			return !math.IsNaN(pi)
		}
		return pi < pj
	})

	return out
}

// TopHit returns the row with the smallest p-value, the earliest one on ties.
// ok is false when no row has a p-value, i.e., the table is empty or every
// marker was a degenerate fit.
func TopHit(rows []SummaryRow) (top SummaryRow, ok bool) {
	if len(rows) == 0 {
		return top, false
	}

	top = Rank(rows)[0]
	if math.IsNaN(top.P) {
		return SummaryRow{}, false
	}

	return top, true
}
