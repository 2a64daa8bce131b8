package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/assoc"

	_ "github.com/carbocation/minigwas/compileinfoprint"
)

func main() {
	var summary string
	var n int
	var significantOnly bool
	flag.StringVar(&summary, "summary", "", "Summary file written by minigwas. May be gzipped.")
	flag.IntVar(&n, "n", 10, "Number of top-ranked markers to print")
	flag.BoolVar(&significantOnly, "significant", false, "Print only markers that pass genome-wide significance")
	flag.Parse()

	if summary == "" {
		fmt.Fprintln(os.Stderr, "gwastophit prints the best-ranked markers of a summary file, smallest P first.")
		flag.PrintDefaults()
		os.Exit(1)
	}

	rc, err := minigwas.OpenInput(summary, nil)
	if err != nil {
		log.Fatalln(err)
	}
	defer rc.Close()

	rows, err := assoc.ReadSummary(rc)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Loaded", len(rows), "markers from", summary)

	if err := printTop(os.Stdout, rows, n, significantOnly); err != nil {
		log.Fatalln(err)
	}
}

func printTop(w io.Writer, rows []assoc.SummaryRow, n int, significantOnly bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write([]string{"RANK", "SNP", "CHR", "BP", "BETA", "SE", "P", "NEG_LOG10_P", "GENOME_WIDE"}); err != nil {
		return err
	}

	for i, r := range assoc.Rank(rows) {
		if i >= n || (significantOnly && !r.Significant()) {
			break
		}

		if err := cw.Write([]string{
			strconv.Itoa(i + 1),
			r.MarkerID,
			r.Chromosome,
			strconv.Itoa(r.Position),
			strconv.FormatFloat(r.Estimate, 'g', 6, 64),
			strconv.FormatFloat(r.StdErr, 'g', 6, 64),
			strconv.FormatFloat(r.P, 'g', 4, 64),
			strconv.FormatFloat(assoc.NegLog10(r.P), 'f', 3, 64),
			strconv.FormatBool(r.Significant()),
		}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}
