package markerqc

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/carbocation/minigwas/markers"
)

type columns map[string][]float64

func (c columns) Dosages(marker string) ([]float64, error) {
	d, exists := c[marker]
	if !exists {
		return nil, fmt.Errorf("no marker %s", marker)
	}
	return d, nil
}

func TestReport(t *testing.T) {
	geno := columns{
		"rs1": {2, 2, 1, 1, 0, 0, 2, 1},
		"rs2": {1, 1, 1, 1, 1, 1, 1, 1},
	}
	meta := []markers.Marker{{MarkerID: "rs1", RefFreq: 0.5}}

	rows, err := Report(geno, []string{"rs2", "rs1"}, meta, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 || rows[0].MarkerID != "rs2" || rows[1].MarkerID != "rs1" {
		t.Fatalf("Rows out of order: %+v", rows)
	}

	rs1 := rows[1]
	if rs1.Counts.HomRef != 3 || rs1.Counts.Het != 3 || rs1.Counts.HomAlt != 2 {
		t.Fatalf("Unexpected counts %+v", rs1.Counts)
	}
	if math.Abs(rs1.ObservedFreq-9.0/16.0) > 1e-12 {
		t.Fatalf("Unexpected observed frequency %v", rs1.ObservedFreq)
	}
	if math.Abs(rs1.FreqDifference-1.0/16.0) > 1e-12 {
		t.Fatalf("Unexpected frequency difference %v", rs1.FreqDifference)
	}
	if math.Abs(rs1.DosageMean-9.0/8.0) > 1e-12 {
		t.Fatalf("Unexpected dosage mean %v", rs1.DosageMean)
	}
	if !math.IsNaN(rs1.AllelicP) {
		t.Fatalf("No case/control label was supplied, yet AllelicP=%v", rs1.AllelicP)
	}

	// All heterozygotes: one genotype class, and no metadata to compare to
	rs2 := rows[0]
	if !rs2.Monomorphic || rs2.DosageSD != 0 || !math.IsNaN(rs2.ExpectedFreq) {
		t.Fatalf("Unexpected description of a constant marker: %+v", rs2)
	}
}

func TestReportAllelicFisher(t *testing.T) {
	// Cases carry the reference allele, controls the alternate allele
	geno := columns{"rs1": {2, 2, 2, 2, 2, 0, 0, 0, 0, 0}}
	label := []float64{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}

	rows, err := Report(geno, []string{"rs1"}, nil, label)
	if err != nil {
		t.Fatal(err)
	}

	if p := rows[0].AllelicP; !(p < 1e-4) {
		t.Fatalf("Expected a strong allelic association, saw P=%v", p)
	}

	if _, err := Report(geno, []string{"rs1"}, nil, []float64{1, 2, 0, 0, 0, 0, 0, 0, 0, 0}); err == nil {
		t.Fatalf("Expected an error for a label of 2")
	}
}

func TestWrite(t *testing.T) {
	rows, err := Report(columns{"rs1": {0, 1, 2}}, []string{"rs1"}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "SNP\tN_HOM_REF\tN_HET\tN_HOM_ALT") || !strings.HasPrefix(lines[1], "rs1\t1\t1\t1\t") {
		t.Fatalf("Unexpected output:\n%s", buf.String())
	}
	if !strings.HasSuffix(lines[1], "\tNA") {
		t.Fatalf("Missing allelic P should be written as NA:\n%s", lines[1])
	}
}
