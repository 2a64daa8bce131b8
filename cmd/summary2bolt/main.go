package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/assoc"

	_ "github.com/carbocation/minigwas/compileinfoprint"
)

// # BOLT (tab-delim)
// # SNP	CHR	BP	GENPOS	ALLELE1	ALLELE0	A1FREQ	INFO	CHISQ_LINREG	P_LINREG	BETA	SE	CHISQ_BOLT_LMM_INF	P_BOLT_LMM_INF	CHISQ_BOLT_LMM	P_BOLT_LMM
var boltHeader = []string{
	"SNP",
	"CHR",
	"BP",
	"GENPOS",
	"ALLELE1",
	"ALLELE0",
	"A1FREQ",
	"INFO",
	"CHISQ_LINREG",
	"P_LINREG",
	"BETA",
	"SE",
	"CHISQ_BOLT_LMM_INF",
	"P_BOLT_LMM_INF",
	"CHISQ_BOLT_LMM",
	"P_BOLT_LMM",
}

func main() {
	var summary string
	flag.StringVar(&summary, "summary", "", "Path to a minigwas summary file that you want to convert to BOLT format.")
	flag.Parse()

	if summary == "" {
		log.Println("summary2bolt")
		fmt.Fprintln(os.Stderr,
			`Consumes a minigwas summary file and reorients it so that it behaves like a BOLT-LMM summary stats file.
  1. Zeroes preceding the CHR will be removed.
  2. BOLT ALLELE1 is the effect allele, which is the minigwas REF (counted) allele. ALLELE0 is ALT.
  3. There is no mixed model, so the LINREG, BOLT_LMM_INF and BOLT_LMM columns all carry the
     least squares result. CHISQ is the squared t statistic.
  `)
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

	w := bufio.NewWriter(os.Stdout)
	if err := writeBOLT(w, rows); err != nil {
		log.Fatalln(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalln(err)
	}
}

func writeBOLT(w io.Writer, rows []assoc.SummaryRow) error {
	if _, err := fmt.Fprintln(w, strings.Join(boltHeader, "\t")); err != nil {
		return err
	}

	for _, r := range rows {
		chisq := formatFloat(r.Statistic * r.Statistic)
		p := formatP(r.P)

		_, err := fmt.Fprintln(w, strings.Join([]string{
			r.MarkerID,
			strings.TrimPrefix(r.Chromosome, "0"),
			strconv.Itoa(r.Position),
			"NA",
			r.Ref,
			r.Alt,
			formatFloat(r.RefFreq),
			// Genotypes are hard calls or exact dosages, so there is no
			// imputation uncertainty
			"1.0",
			chisq,
			p,
			formatFloat(r.Estimate),
			formatFloat(r.StdErr),
			chisq,
			p,
			chisq,
			p,
		}, "\t"))
		if err != nil {
			return err
		}
	}

	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}

	return strconv.FormatFloat(v, 'g', 6, 64)
}

// formatP writes P the way BOLT does, as [Mantissa]E[Exponent].
func formatP(p float64) string {
	if math.IsNaN(p) {
		return "NA"
	}

	return strings.Replace(strconv.FormatFloat(p, 'E', 1, 64), "E-0", "E-", 1)
}
