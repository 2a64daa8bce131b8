package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/minigwas/assoc"
	"github.com/carbocation/minigwas/markers"
)

func TestFormatP(t *testing.T) {
	for p, want := range map[float64]string{
		0.5:        "5.0E-1",
		3.2e-300:   "3.2E-300",
		1e-10:      "1.0E-10",
		math.NaN(): "NA",
	} {
		if got := formatP(p); got != want {
			t.Errorf("formatP(%v) = %s, want %s", p, got, want)
		}
	}
}

func TestWriteBOLT(t *testing.T) {
	rows := []assoc.SummaryRow{{
		Marker:    markers.Marker{Chromosome: "01", Position: 1234, MarkerID: "rs1", Ref: "A", Alt: "G", RefFreq: 0.25},
		Estimate:  0.5,
		StdErr:    0.1,
		Statistic: 5,
		P:         2e-6,
	}}

	var buf bytes.Buffer
	if err := writeBOLT(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected a header and one row, saw %q", lines)
	}

	want := "rs1\t1\t1234\tNA\tA\tG\t0.25\t1.0\t25\t2.0E-6\t0.5\t0.1\t25\t2.0E-6\t25\t2.0E-6"
	if lines[1] != want {
		t.Fatalf("Got\n%s\nwant\n%s", lines[1], want)
	}
}
