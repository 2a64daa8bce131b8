package gwasplot

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/carbocation/minigwas/assoc"
	"github.com/wcharczuk/go-chart/v2"
)

// QQPoints returns expected and observed -log10(p), both ascending, for the
// plottable rows. The expected quantiles are those of U(0,1).
func QQPoints(rows []assoc.SummaryRow) (expected, observed []float64) {
	drawable := plottable(rows)
	n := len(drawable)

	observed = make([]float64, 0, n)
	for _, r := range drawable {
		observed = append(observed, assoc.NegLog10(r.P))
	}
	sort.Float64s(observed)

	expected = make([]float64, n)
	for i := range expected {
		// The i-th smallest observed value pairs with the i-th smallest
		// expected value, i.e., the (n-i)-th largest p.
		expected[i] = assoc.NegLog10((float64(n-i) - 0.5) / float64(n))
	}

	return expected, observed
}

// QQ plots observed against expected -log10(p) with the identity line.
func QQ(w io.Writer, rows []assoc.SummaryRow, opts Options) error {
	opts = opts.withDefaults()

	expected, observed := QQPoints(rows)
	if len(observed) == 0 {
		return fmt.Errorf("none of the %d markers has a p-value that can be plotted", len(rows))
	}

	top := math.Ceil(math.Max(expected[len(expected)-1], observed[len(observed)-1]) + 0.5)

	graph := chart.Chart{
		Title: opts.Title,
		// Square, so the identity line is at 45 degrees
		Width:  opts.Height,
		Height: opts.Height,
		XAxis: chart.XAxis{
			Name:  "Expected -log10(P)",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		YAxis: chart.YAxis{
			Name:  "Observed -log10(P)",
			Range: &chart.ContinuousRange{Min: 0, Max: top},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "identity",
				Style: chart.Style{
					StrokeWidth: 1,
					StrokeColor: thresholdColor,
				},
				XValues: []float64{0, top},
				YValues: []float64{0, top},
			},
			chart.ContinuousSeries{
				Name: "markers",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    opts.DotWidth,
					DotColor:    chromosomeColors[0],
				},
				XValues: expected,
				YValues: observed,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}
