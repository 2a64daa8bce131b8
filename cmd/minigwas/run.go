package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/assoc"
	"github.com/carbocation/minigwas/compileinfo"
	"github.com/carbocation/minigwas/gwasplot"
	"github.com/carbocation/minigwas/markerqc"
	"github.com/carbocation/minigwas/markers"
	"github.com/carbocation/minigwas/runconfig"
	"github.com/carbocation/minigwas/table"
	"github.com/carbocation/pfx"
)

const histogramBins = 10

func run(ctx context.Context, cfg runconfig.Config, client *storage.Client) error {
	traits := []string{cfg.Outcome}
	if cfg.CaseControl != "" && cfg.CaseControl != cfg.Outcome {
		traits = append(traits, cfg.CaseControl)
	}

	pheno, err := readPhenotypes(cfg.Phenotypes, client, cfg.IDColumn, traits)
	if err != nil {
		return err
	}
	log.Println("Loaded", pheno.Len(), "participants with phenotypes from", cfg.Phenotypes)

	geno, err := readGenotypes(cfg.Genotypes, client, cfg.IDColumn)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(geno.Markers), "markers for", geno.Len(), "participants from", cfg.Genotypes)

	meta, err := readMarkers(cfg.Markers, client, cfg.Layout)
	if err != nil {
		return err
	}
	log.Println("Loaded metadata for", len(meta), "markers from", cfg.Markers)

	cohort, err := table.Merge(pheno, geno)
	if err != nil {
		return fmt.Errorf("merging %s and %s: %w", cfg.Phenotypes, cfg.Genotypes, err)
	}
	log.Println(cohort.Len(), "participants have both phenotypes and genotypes")

	ids, y, err := cohort.Outcome(cfg.Outcome)
	if err != nil {
		return fmt.Errorf("outcome %s: %w", cfg.Outcome, err)
	}
	outcome := assoc.Outcome{IDs: ids, Values: y}

	snps := cfg.SNPs
	if len(snps) == 0 {
		snps = geno.Markers
	}

	var results []assoc.Association
	if cfg.Workers > 1 {
		results, err = assoc.ScanParallel(ctx, outcome, cohort.Genotypes, snps, cfg.Workers)
	} else {
		results, err = assoc.Scan(outcome, cohort.Genotypes, snps)
	}
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	log.Println("Fit", len(results), "markers")

	onlyMeta, onlyResults := assoc.MarkerSetDiff(meta, results)
	if len(onlyResults) > 0 {
		log.Println(len(onlyResults), "scanned markers have no metadata and will not be reported, e.g.,", onlyResults[0])
	}
	if len(onlyMeta) > 0 && len(cfg.SNPs) == 0 {
		log.Println(len(onlyMeta), "markers in the metadata were not genotyped")
	}

	rows, err := assoc.Join(meta, results)
	if err != nil {
		return fmt.Errorf("joining %s: %w", cfg.Markers, err)
	}

	if err := writeFile(cfg.Output, func(f *os.File) error {
		return assoc.WriteSummary(f, rows,
			compileinfo.Get().Short(),
			fmt.Sprintf("outcome=%s N=%d markers=%d", cfg.Outcome, cohort.Len(), len(rows)),
		)
	}); err != nil {
		return err
	}
	log.Println("Wrote", len(rows), "summary rows to", cfg.Output)

	degenerate, significant := 0, 0
	for _, r := range rows {
		if math.IsNaN(r.P) {
			degenerate++
		}
		if r.Significant() {
			significant++
		}
	}
	if degenerate > 0 {
		log.Println(degenerate, "markers could not be fit (no dosage variation or too few participants)")
	}

	if top, ok := assoc.TopHit(rows); ok {
		log.Printf("Top hit: %s (chr%s:%d) beta=%.4g se=%.4g P=%.3g. %d markers pass P<%g\n",
			top.MarkerID, top.Chromosome, top.Position, top.Estimate, top.StdErr, top.P, significant, assoc.GenomeWideSignificance)
	} else {
		log.Println("No reported marker has a p-value, so there is no top hit")
	}

	if len(rows) > 0 {
		if err := gwasplot.PValueHistogram(os.Stderr, rows, histogramBins, 60); err != nil {
			log.Println("Skipping the p-value histogram:", err)
		}
	}

	plotOpts := gwasplot.Options{
		Title:          cfg.Outcome,
		ThresholdLine:  cfg.ThresholdLine,
		AnnotateTopHit: true,
	}

	if cfg.Manhattan != "" {
		if err := writeFile(cfg.Manhattan, func(f *os.File) error { return gwasplot.Manhattan(f, rows, plotOpts) }); err != nil {
			return err
		}
		log.Println("Wrote Manhattan plot to", cfg.Manhattan)
	}

	if cfg.QQ != "" {
		if err := writeFile(cfg.QQ, func(f *os.File) error { return gwasplot.QQ(f, rows, plotOpts) }); err != nil {
			return err
		}
		log.Println("Wrote QQ plot to", cfg.QQ)
	}

	if cfg.QC != "" {
		var caseControl []float64
		if cfg.CaseControl != "" {
			if caseControl, err = cohort.Phenotypes.Values(cfg.CaseControl); err != nil {
				return fmt.Errorf("case_control %s: %w", cfg.CaseControl, err)
			}
		}

		qc, err := markerqc.Report(cohort.Genotypes, snps, meta, caseControl)
		if err != nil {
			return fmt.Errorf("qc: %w", err)
		}

		if err := writeFile(cfg.QC, func(f *os.File) error { return markerqc.Write(f, qc) }); err != nil {
			return err
		}
		log.Println("Wrote QC for", len(qc), "markers to", cfg.QC)
	}

	return nil
}

func readPhenotypes(path string, client *storage.Client, idColumn string, traits []string) (*table.Phenotypes, error) {
	rc, err := minigwas.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	p, err := table.ReadPhenotypes(rc, idColumn, traits...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return p, nil
}

func readGenotypes(path string, client *storage.Client, idColumn string) (*table.Genotypes, error) {
	rc, err := minigwas.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	g, err := table.ReadGenotypes(rc, idColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

func readMarkers(path string, client *storage.Client, layout string) ([]markers.Marker, error) {
	parser, err := markers.New(layout)
	if err != nil {
		return nil, err
	}

	rc, err := minigwas.OpenInput(path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	meta, err := parser.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return meta, nil
}

// writeFile creates path and hands it to write, reporting the first error
// from either writing or closing.
func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := write(f); err != nil {
		f.Close()
		return pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return pfx.Err(f.Close())
}
