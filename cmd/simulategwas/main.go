package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas/simulate"

	_ "github.com/carbocation/minigwas/compileinfoprint"
)

func main() {
	cfg := simulate.DefaultConfig()

	var outDir, effects string
	flag.StringVar(&outDir, "out", "", "Directory in which to write phenotypes.tsv, genotypes.tsv and markers.tsv")
	flag.IntVar(&cfg.Samples, "samples", cfg.Samples, "Number of participants")
	flag.IntVar(&cfg.Markers, "markers", cfg.Markers, "Number of markers, named snp1 through snpN")
	flag.StringVar(&cfg.Chromosome, "chromosome", cfg.Chromosome, "Chromosome for every marker")
	flag.IntVar(&cfg.StartPosition, "start", cfg.StartPosition, "Position of the first marker")
	flag.IntVar(&cfg.Spacing, "spacing", cfg.Spacing, "Distance between adjacent markers")
	flag.StringVar(&effects, "effects", "snp50=0.5", "Comma-separated marker=effect pairs. Effects are per copy of the reference allele.")
	flag.Float64Var(&cfg.NoiseSD, "noise", cfg.NoiseSD, "Standard deviation of the residual noise")
	flag.Float64Var(&cfg.Prevalence, "prevalence", cfg.Prevalence, "Fraction of participants labeled as cases")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.Parse()

	if outDir == "" {
		fmt.Fprintln(os.Stderr, "simulategwas writes a phenotype, genotype and marker frequency file with known effects.")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var err error
	cfg.Effects, err = parseEffects(effects)
	if err != nil {
		log.Fatalln(err)
	}

	d, err := simulate.Generate(cfg)
	if err != nil {
		log.Fatalln(err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalln(err)
	}

	for name, write := range map[string]func(*os.File) error{
		"phenotypes.tsv": func(f *os.File) error { return d.WritePhenotypes(f) },
		"genotypes.tsv":  func(f *os.File) error { return d.WriteGenotypes(f) },
		"markers.tsv":    func(f *os.File) error { return d.WriteMarkers(f) },
	} {
		path := filepath.Join(outDir, name)

		f, err := os.Create(path)
		if err != nil {
			log.Fatalln(err)
		}
		if err := write(f); err != nil {
			log.Fatalln(err)
		}
		if err := f.Close(); err != nil {
			log.Fatalln(err)
		}

		log.Println("Wrote", path)
	}
}

// parseEffects reads "snp1=0.5,snp9=-0.2".
func parseEffects(input string) (map[string]float64, error) {
	out := make(map[string]float64)

	for _, pair := range strings.Split(input, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		id, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("effect %q is not of the form marker=effect", pair)
		}

		effect, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("effect %q: %w", pair, err)
		}

		out[strings.TrimSpace(id)] = effect
	}

	return out, nil
}
