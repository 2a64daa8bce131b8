package simulate

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

const (
	IDColumn          = "IID"
	MeasurementColumn = "measurement"
	CaseColumn        = "case"
)

type phenotypeRecord struct {
	ID          string  `csv:"IID"`
	Measurement float64 `csv:"measurement"`
	Case        int     `csv:"case"`
}

type markerRecord struct {
	Chromosome string `csv:"CHR"`
	MarkerID   string `csv:"SNP"`
	Position   int    `csv:"POS"`
	Ref        string `csv:"REF"`
	Alt        string `csv:"ALT"`
	RefFreq    string `csv:"REF_FREQ"`
}

func tabWriter(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return cw
}

// WritePhenotypes writes IID, measurement and case columns.
func (d *Dataset) WritePhenotypes(w io.Writer) error {
	records := make([]phenotypeRecord, len(d.IDs))
	for i, id := range d.IDs {
		records[i] = phenotypeRecord{
			ID:          id,
			Measurement: d.Measurement[i],
			Case:        int(d.Case[i]),
		}
	}

	sw := gocsv.NewSafeCSVWriter(tabWriter(w))
	if err := gocsv.MarshalCSV(&records, sw); err != nil {
		return err
	}
	sw.Flush()

	return sw.Error()
}

// WriteGenotypes writes one row per sample: IID followed by one dosage column
// per marker.
func (d *Dataset) WriteGenotypes(w io.Writer) error {
	cw := tabWriter(w)

	header := make([]string, 0, len(d.Markers)+1)
	header = append(header, IDColumn)
	for _, m := range d.Markers {
		header = append(header, m.MarkerID)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for s, id := range d.IDs {
		row[0] = id
		for m := range d.Markers {
			row[m+1] = strconv.Itoa(int(d.Dosages[m][s]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteMarkers writes marker metadata in the FREQ layout.
func (d *Dataset) WriteMarkers(w io.Writer) error {
	records := make([]markerRecord, len(d.Markers))
	for i, m := range d.Markers {
		records[i] = markerRecord{
			Chromosome: m.Chromosome,
			MarkerID:   m.MarkerID,
			Position:   m.Position,
			Ref:        m.Ref,
			Alt:        m.Alt,
			RefFreq:    strconv.FormatFloat(m.RefFreq, 'f', 4, 64),
		}
	}

	sw := gocsv.NewSafeCSVWriter(tabWriter(w))
	if err := gocsv.MarshalCSV(&records, sw); err != nil {
		return err
	}
	sw.Flush()

	return sw.Error()
}
