package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/minigwas/markers"
	"github.com/carbocation/minigwas/runconfig"

	_ "github.com/carbocation/minigwas/compileinfoprint"
)

func main() {
	defaults := runconfig.Default()

	var configPath string
	flag.StringVar(&configPath, "config", "", "(Optional) JSON file with run settings. Flags given on the command line override it.")
	flag.String("phenotypes", "", "Delimited phenotype file with one row per participant. May be gzipped or on gs://.")
	flag.String("genotypes", "", "Delimited dosage file: one row per participant, one column per marker. May be gzipped or on gs://.")
	flag.String("markers", "", "Marker metadata file.")
	flag.String("layout", defaults.Layout, fmt.Sprintf("Layout of the marker metadata file. One of %s", markers.LayoutNames()))
	flag.String("id_column", defaults.IDColumn, "Name of the participant identifier column in the phenotype and genotype files.")
	flag.String("outcome", "", "Name of the phenotype column to regress on dosage.")
	flag.String("snps", "", "(Optional) Comma-separated marker IDs to scan. Default is every genotyped marker.")
	flag.Int("workers", defaults.Workers, "Number of markers to fit concurrently.")
	flag.String("output", "", "Path for the tab-delimited summary file.")
	flag.String("manhattan", "", "(Optional) Path for a Manhattan plot PNG.")
	flag.String("qq", "", "(Optional) Path for a QQ plot PNG.")
	flag.String("qc", "", "(Optional) Path for a per-marker QC table.")
	flag.String("case_control", "", "(Optional) 0/1 phenotype column for the allelic test in the QC table.")
	flag.Bool("threshold_line", defaults.ThresholdLine, "Draw the genome-wide significance line on the Manhattan plot.")
	flag.Parse()

	cfg := defaults
	if configPath != "" {
		var err error
		cfg, err = runconfig.ParseFromPath(configPath)
		if err != nil {
			log.Fatalln(err)
		}
		log.Println("Loaded run settings from", configPath)
	}

	if err := cfg.Override(flag.CommandLine); err != nil {
		log.Fatalln(err)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, `minigwas fits outcome ~ 1 + dosage for every marker, joins the results to
the marker metadata, and writes one summary row per marker.`)
		flag.PrintDefaults()
		log.Fatalln(err)
	}

	var client *storage.Client
	for _, path := range []string{cfg.Phenotypes, cfg.Genotypes, cfg.Markers} {
		if !strings.HasPrefix(path, "gs://") {
			continue
		}

		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		defer client.Close()

		break
	}

	if err := run(context.Background(), cfg, client); err != nil {
		log.Fatalln(err)
	}
}
