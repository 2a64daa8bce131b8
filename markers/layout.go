package markers

import (
	"sort"
	"strings"
)

// Layout describes where a metadata file keeps each field. When Header is
// true the Name* fields are looked up in the first row; otherwise the Col*
// positions are used directly. A negative ColRefFreq (or empty NameRefFreq)
// means the file has no frequency column. A zero Delimiter is detected from
// the file itself.
type Layout struct {
	Delimiter rune
	Comment   rune
	Header    bool

	// Whitespace-separated files with runs of spaces or tabs (PLINK style)
	Fields bool

	NameChromosome string
	NameMarkerID   string
	NamePosition   string
	NameRef        string
	NameAlt        string
	NameRefFreq    string

	ColChromosome int
	ColMarkerID   int
	ColPosition   int
	ColRef        int
	ColAlt        int
	ColRefFreq    int
}

var Layouts = map[string]Layout{
	// Allele frequency table: one header row naming each column. The
	// delimiter is detected from the file; column-aligned files are split on
	// whitespace.
	"FREQ": {
		Comment:        '#',
		Header:         true,
		NameChromosome: "CHR",
		NameMarkerID:   "SNP",
		NamePosition:   "POS",
		NameRef:        "REF",
		NameAlt:        "ALT",
		NameRefFreq:    "REF_FREQ",
	},
	// PLINK .bim: chromosome, variant ID, morgans, coordinate, allele 1,
	// allele 2. Allele 1 is taken as the counted (reference) allele.
	"BIM": {
		Comment:       '#',
		Fields:        true,
		ColChromosome: 0,
		ColMarkerID:   1,
		ColPosition:   3,
		ColRef:        4,
		ColAlt:        5,
		ColRefFreq:    -1,
	},
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}
	sort.Strings(names)

	return strings.Join(names, ", ")
}
