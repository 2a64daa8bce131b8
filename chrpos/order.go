// Package chrpos places chromosome:position coordinates on a single genome
// axis, for plotting regions that span more than one chromosome.
package chrpos

import (
	"sort"
	"strconv"
	"strings"
)

// Canonical strips a leading "chr" and normalizes the mitochondrial and sex
// chromosome names, e.g., chrM -> MT, 23 -> X.
func Canonical(chrom string) string {
	c := strings.TrimSpace(chrom)
	if len(c) > 3 && strings.EqualFold(c[:3], "chr") {
		c = c[3:]
	}
	c = strings.ToUpper(c)

	switch c {
	case "M":
		return "MT"
	case "23":
		return "X"
	case "24":
		return "Y"
	}

	return c
}

// rank orders autosomes numerically, then X, Y, MT. Anything else sorts after
// those, lexically.
func rank(chrom string) (int, string) {
	c := Canonical(chrom)
	if n, err := strconv.Atoi(c); err == nil {
		return n, ""
	}

	switch c {
	case "X":
		return 1000, ""
	case "Y":
		return 1001, ""
	case "MT":
		return 1002, ""
	}

	return 2000, c
}

// Less reports whether chromosome a comes before chromosome b in natural
// order (1, 2, ..., 22, X, Y, MT).
func Less(a, b string) bool {
	ra, sa := rank(a)
	rb, sb := rank(b)
	if ra != rb {
		return ra < rb
	}

	return sa < sb
}

// Sort orders chromosome names naturally, in place.
func Sort(chroms []string) {
	sort.SliceStable(chroms, func(i, j int) bool { return Less(chroms[i], chroms[j]) })
}
