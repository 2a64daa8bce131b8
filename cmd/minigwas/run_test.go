package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/assoc"
	"github.com/carbocation/minigwas/runconfig"
	"github.com/carbocation/minigwas/simulate"
)

// simulatedRun writes a small simulated cohort into a temporary directory and
// returns settings that point at it.
func simulatedRun(t *testing.T) runconfig.Config {
	t.Helper()

	sim := simulate.DefaultConfig()
	sim.Samples, sim.Markers = 600, 25
	sim.Effects = map[string]float64{"snp7": 0.8}

	d, err := simulate.Generate(sim)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	cfg := runconfig.Default()
	cfg.Phenotypes = filepath.Join(dir, "pheno.tsv")
	cfg.Genotypes = filepath.Join(dir, "geno.tsv")
	cfg.Markers = filepath.Join(dir, "freq.tsv")
	cfg.Outcome = simulate.MeasurementColumn
	cfg.Output = filepath.Join(dir, "summary.tsv")

	for path, write := range map[string]func(*os.File) error{
		cfg.Phenotypes: func(f *os.File) error { return d.WritePhenotypes(f) },
		cfg.Genotypes:  func(f *os.File) error { return d.WriteGenotypes(f) },
		cfg.Markers:    func(f *os.File) error { return d.WriteMarkers(f) },
	} {
		if err := writeFile(path, write); err != nil {
			t.Fatal(err)
		}
	}

	return cfg
}

func readOutput(t *testing.T, path string) []assoc.SummaryRow {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := assoc.ReadSummary(f)
	if err != nil {
		t.Fatal(err)
	}

	return rows
}

func TestRun(t *testing.T) {
	cfg := simulatedRun(t)
	dir := filepath.Dir(cfg.Output)
	cfg.Workers = 3
	cfg.Manhattan = filepath.Join(dir, "manhattan.png")
	cfg.QQ = filepath.Join(dir, "qq.png")
	cfg.QC = filepath.Join(dir, "qc.tsv")
	cfg.CaseControl = simulate.CaseColumn

	if err := run(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}

	rows := readOutput(t, cfg.Output)
	if len(rows) != 25 {
		t.Fatalf("Expected 25 summary rows, saw %d", len(rows))
	}

	top, ok := assoc.TopHit(rows)
	if !ok || top.MarkerID != "snp7" {
		t.Fatalf("Expected snp7 as the top hit, saw %+v", top)
	}

	for _, path := range []string{cfg.Manhattan, cfg.QQ, cfg.QC} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("Expected %s to be written (%v)", path, err)
		}
	}
}

func TestRunSelectedSNPs(t *testing.T) {
	cfg := simulatedRun(t)
	cfg.SNPs = []string{"snp3", "snp1"}

	if err := run(context.Background(), cfg, nil); err != nil {
		t.Fatal(err)
	}

	// Metadata order, not request order
	rows := readOutput(t, cfg.Output)
	if len(rows) != 2 || rows[0].MarkerID != "snp1" || rows[1].MarkerID != "snp3" {
		t.Fatalf("Unexpected rows %+v", rows)
	}
}

func TestRunMissingOutcome(t *testing.T) {
	cfg := simulatedRun(t)
	cfg.Outcome = "height"

	err := run(context.Background(), cfg, nil)
	if !errors.Is(err, minigwas.ErrSchema) {
		t.Fatalf("Expected a schema error, saw %v", err)
	}
}

func TestRunUnknownSNP(t *testing.T) {
	cfg := simulatedRun(t)
	cfg.SNPs = []string{"snp1", "rs999"}

	err := run(context.Background(), cfg, nil)
	if !errors.Is(err, minigwas.ErrSchema) {
		t.Fatalf("Expected a schema error, saw %v", err)
	}
}
