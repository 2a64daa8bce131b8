package markerqc

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/gocarina/gocsv"
)

type qcFloat float64

func (f qcFloat) MarshalCSV() (string, error) {
	if math.IsNaN(float64(f)) {
		return "NA", nil
	}

	return strconv.FormatFloat(float64(f), 'g', 6, 64), nil
}

type qcRecord struct {
	MarkerID       string  `csv:"SNP"`
	HomRef         int64   `csv:"N_HOM_REF"`
	Het            int64   `csv:"N_HET"`
	HomAlt         int64   `csv:"N_HOM_ALT"`
	ObservedFreq   qcFloat `csv:"REF_FREQ_OBS"`
	ExpectedFreq   qcFloat `csv:"REF_FREQ_META"`
	FreqDifference qcFloat `csv:"REF_FREQ_DIFF"`
	DosageMean     qcFloat `csv:"DOSAGE_MEAN"`
	DosageSD       qcFloat `csv:"DOSAGE_SD"`
	Monomorphic    bool    `csv:"MONOMORPHIC"`
	HWEP           qcFloat `csv:"P_HWE"`
	AllelicP       qcFloat `csv:"P_ALLELIC_FISHER"`
}

// Write emits rows as a tab-delimited table.
func Write(w io.Writer, rows []Row) error {
	records := make([]qcRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, qcRecord{
			MarkerID:       r.MarkerID,
			HomRef:         r.Counts.HomRef,
			Het:            r.Counts.Het,
			HomAlt:         r.Counts.HomAlt,
			ObservedFreq:   qcFloat(r.ObservedFreq),
			ExpectedFreq:   qcFloat(r.ExpectedFreq),
			FreqDifference: qcFloat(r.FreqDifference),
			DosageMean:     qcFloat(r.DosageMean),
			DosageSD:       qcFloat(r.DosageSD),
			Monomorphic:    r.Monomorphic,
			HWEP:           qcFloat(r.HWEP),
			AllelicP:       qcFloat(r.AllelicP),
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
