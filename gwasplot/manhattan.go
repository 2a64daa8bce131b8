// Package gwasplot renders association summaries: Manhattan and QQ plots as
// PNG, and a p-value histogram as text.
package gwasplot

import (
	"fmt"
	"io"
	"math"

	"github.com/carbocation/minigwas/assoc"
	"github.com/carbocation/minigwas/chrpos"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chromosomeColors alternate between adjacent chromosomes.
var chromosomeColors = []drawing.Color{
	{R: 31, G: 78, B: 121, A: 255},
	{R: 132, G: 169, B: 201, A: 255},
}

var thresholdColor = drawing.Color{R: 200, G: 30, B: 30, A: 255}

type Options struct {
	Title  string
	Width  int
	Height int

	// Draw a horizontal line at -log10(assoc.GenomeWideSignificance)
	ThresholdLine bool

	// Label the marker with the smallest p-value
	AnnotateTopHit bool

	DotWidth float64
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 1024
	}
	if o.Height == 0 {
		o.Height = 512
	}
	if o.DotWidth == 0 {
		o.DotWidth = 3
	}

	return o
}

// Manhattan plots genomic position (x) against -log10(p) (y) as a PNG. Rows
// whose p-value is not a finite number in (0, 1] are not drawn.
func Manhattan(w io.Writer, rows []assoc.SummaryRow, opts Options) error {
	opts = opts.withDefaults()

	drawable := plottable(rows)
	if len(drawable) == 0 {
		return fmt.Errorf("none of the %d markers has a p-value that can be plotted", len(rows))
	}

	loci := make([]chrpos.Locus, 0, len(drawable))
	for _, r := range drawable {
		loci = append(loci, chrpos.Locus{Chromosome: r.Chromosome, Position: r.Position})
	}
	axis := chrpos.NewAxis(loci, gapFor(loci))

	// One series per chromosome so that colors can alternate
	xs := make(map[string][]float64)
	ys := make(map[string][]float64)
	xMin, xMax, yMax := math.Inf(1), math.Inf(-1), 0.0
	for _, r := range drawable {
		c := chrpos.Canonical(r.Chromosome)
		coord, _ := axis.Coordinate(chrpos.Locus{Chromosome: r.Chromosome, Position: r.Position})
		x, y := float64(coord), assoc.NegLog10(r.P)

		xs[c] = append(xs[c], x)
		ys[c] = append(ys[c], y)

		xMin, xMax, yMax = math.Min(xMin, x), math.Max(xMax, x), math.Max(yMax, y)
	}

	threshold := assoc.NegLog10(assoc.GenomeWideSignificance)
	if opts.ThresholdLine {
		yMax = math.Max(yMax, threshold)
	}

	// Pad so that single points and flat regions still have a nonzero range
	xPad := math.Max((xMax-xMin)*0.02, 1)
	xRange := &chart.ContinuousRange{Min: xMin - xPad, Max: xMax + xPad}

	series := make([]chart.Series, 0, len(axis.Chromosomes)+2)
	for i, c := range axis.Chromosomes {
		color := chromosomeColors[i%len(chromosomeColors)]
		series = append(series, chart.ContinuousSeries{
			Name: "chr" + c,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    opts.DotWidth,
				DotColor:    color,
			},
			XValues: xs[c],
			YValues: ys[c],
		})
	}

	if opts.ThresholdLine {
		series = append(series, chart.ContinuousSeries{
			Name: "genome-wide significance",
			Style: chart.Style{
				StrokeWidth:     1.5,
				StrokeColor:     thresholdColor,
				StrokeDashArray: []float64{5, 5},
			},
			XValues: []float64{xRange.Min, xRange.Max},
			YValues: []float64{threshold, threshold},
		})
	}

	if opts.AnnotateTopHit {
		if top, ok := assoc.TopHit(drawable); ok {
			coord, _ := axis.Coordinate(chrpos.Locus{Chromosome: top.Chromosome, Position: top.Position})
			series = append(series, chart.AnnotationSeries{
				Annotations: []chart.Value2{{
					XValue: float64(coord),
					YValue: assoc.NegLog10(top.P),
					Label:  top.MarkerID,
				}},
			})
		}
	}

	xAxis := chart.XAxis{
		Name:  "Position",
		Range: xRange,
	}
	if len(axis.Chromosomes) > 1 {
		xAxis.Name = "Chromosome"
		for _, c := range axis.Chromosomes {
			xAxis.Ticks = append(xAxis.Ticks, chart.Tick{Value: float64(axis.Midpoints[c]), Label: c})
		}
	} else {
		xAxis.Name = "Position on chromosome " + axis.Chromosomes[0]
		xAxis.ValueFormatter = func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0f", f+float64(positionOffset(axis)))
			}
			return ""
		}
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		XAxis:  xAxis,
		YAxis: chart.YAxis{
			Name:  "-log10(P)",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(yMax + 0.5)},
		},
		Series: series,
	}

	return graph.Render(chart.PNG, w)
}

// positionOffset undoes the axis shift for a single-chromosome plot, so that
// tick labels show base-pair positions.
func positionOffset(axis chrpos.Axis) int {
	return -axis.Offsets[axis.Chromosomes[0]]
}

// gapFor spaces chromosomes by about 2% of the plotted span.
func gapFor(loci []chrpos.Locus) int {
	span := 0
	for _, l := range loci {
		if l.Position > span {
			span = l.Position
		}
	}

	if gap := span / 50; gap > 0 {
		return gap
	}

	return 1
}

// plottable keeps rows whose p-value is in [0, 1]. A p-value of exactly 0
// (a residual-free fit) is drawn at the smallest positive float64 so that it
// has a finite -log10.
func plottable(rows []assoc.SummaryRow) []assoc.SummaryRow {
	out := make([]assoc.SummaryRow, 0, len(rows))
	for _, r := range rows {
		if math.IsNaN(r.P) || r.P < 0 || r.P > 1 {
			continue
		}
		if r.P == 0 {
			r.P = math.SmallestNonzeroFloat64
		}
		out = append(out, r)
	}

	return out
}
