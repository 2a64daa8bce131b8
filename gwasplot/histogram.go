package gwasplot

import (
	"fmt"
	"io"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/minigwas/assoc"
)

// PValueHistogram prints a text histogram of the plottable p-values. Under
// the null the bars should be roughly level.
func PValueHistogram(w io.Writer, rows []assoc.SummaryRow, bins, width int) error {
	drawable := plottable(rows)
	if len(drawable) == 0 {
		return fmt.Errorf("no p-values to summarize")
	}

	ps := make([]float64, 0, len(drawable))
	for _, r := range drawable {
		ps = append(ps, r.P)
	}

	hist := histogram.Hist(bins, ps)

	return histogram.Fprint(w, hist, histogram.Linear(width))
}
