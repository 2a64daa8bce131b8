package assoc

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas/markers"
	"github.com/gocarina/gocsv"
)

// csvFloat writes NaN explicitly and keeps full precision for tiny p-values,
// which gocsv's default float formatting would expand into long decimals.
type csvFloat float64

func (f csvFloat) MarshalCSV() (string, error) {
	v := float64(f)
	if math.IsNaN(v) {
		return "NaN", nil
	}

	return strconv.FormatFloat(v, 'g', -1, 64), nil
}

func (f *csvFloat) UnmarshalCSV(s string) error {
	switch strings.TrimSpace(s) {
	case "NaN", "NA", "nan", "":
		*f = csvFloat(math.NaN())
		return nil
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	*f = csvFloat(v)

	return nil
}

// summaryRecord is the on-disk column layout of a summary table.
type summaryRecord struct {
	Chromosome string   `csv:"CHR"`
	MarkerID   string   `csv:"SNP"`
	Position   int      `csv:"BP"`
	Ref        string   `csv:"REF"`
	Alt        string   `csv:"ALT"`
	RefFreq    csvFloat `csv:"REF_FREQ"`
	Estimate   csvFloat `csv:"BETA"`
	StdErr     csvFloat `csv:"SE"`
	Statistic  csvFloat `csv:"T_STAT"`
	P          csvFloat `csv:"P"`
}

// WriteSummary writes rows as a tab-delimited table with a header. Each
// comment is written first on its own line, prefixed with "# ".
func WriteSummary(w io.Writer, rows []SummaryRow, comments ...string) error {
	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "# %s\n", c); err != nil {
			return err
		}
	}

	records := make([]summaryRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, summaryRecord{
			Chromosome: r.Chromosome,
			MarkerID:   r.MarkerID,
			Position:   r.Position,
			Ref:        r.Ref,
			Alt:        r.Alt,
			RefFreq:    csvFloat(r.RefFreq),
			Estimate:   csvFloat(r.Estimate),
			StdErr:     csvFloat(r.StdErr),
			Statistic:  csvFloat(r.Statistic),
			P:          csvFloat(r.P),
		})
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	sw := gocsv.NewSafeCSVWriter(cw)

	if err := gocsv.MarshalCSV(&records, sw); err != nil {
		return err
	}
	sw.Flush()

	return sw.Error()
}

// ReadSummary reads a table written by WriteSummary. Lines starting with # are
// skipped.
func ReadSummary(r io.Reader) ([]SummaryRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'

	records := []*summaryRecord{}
	if err := gocsv.UnmarshalCSV(cr, &records); err != nil {
		return nil, err
	}

	out := make([]SummaryRow, 0, len(records))
	for _, rec := range records {
		out = append(out, SummaryRow{
			Marker: markers.Marker{
				Chromosome: rec.Chromosome,
				MarkerID:   rec.MarkerID,
				Position:   rec.Position,
				Ref:        rec.Ref,
				Alt:        rec.Alt,
				RefFreq:    float64(rec.RefFreq),
			},
			Estimate:  float64(rec.Estimate),
			StdErr:    float64(rec.StdErr),
			Statistic: float64(rec.Statistic),
			P:         float64(rec.P),
		})
	}

	return out, nil
}
