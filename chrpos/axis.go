package chrpos

// Locus is a position on one chromosome.
type Locus struct {
	Chromosome string
	Position   int
}

// Axis maps loci onto one continuous coordinate: each chromosome starts where
// the previous one (in natural order) ended, plus a gap.
type Axis struct {
	Chromosomes []string       // Natural order
	Offsets     map[string]int // Canonical chromosome => first coordinate
	Midpoints   map[string]int // Canonical chromosome => center, for tick labels
}

// NewAxis sizes each chromosome by the largest position observed on it. gap
// separates adjacent chromosomes.
func NewAxis(loci []Locus, gap int) Axis {
	maxPos := make(map[string]int)
	minPos := make(map[string]int)
	for _, l := range loci {
		c := Canonical(l.Chromosome)
		if cur, exists := maxPos[c]; !exists || l.Position > cur {
			maxPos[c] = l.Position
		}
		if cur, exists := minPos[c]; !exists || l.Position < cur {
			minPos[c] = l.Position
		}
	}

	out := Axis{
		Chromosomes: make([]string, 0, len(maxPos)),
		Offsets:     make(map[string]int, len(maxPos)),
		Midpoints:   make(map[string]int, len(maxPos)),
	}
	for c := range maxPos {
		out.Chromosomes = append(out.Chromosomes, c)
	}
	Sort(out.Chromosomes)

	// Each chromosome's span starts at its first observed position, so a
	// region in the middle of a chromosome does not leave a blank stretch.
	cursor := 0
	for i, c := range out.Chromosomes {
		if i > 0 {
			cursor += gap
		}
		out.Offsets[c] = cursor - minPos[c]
		out.Midpoints[c] = cursor + (maxPos[c]-minPos[c])/2
		cursor += maxPos[c] - minPos[c]
	}

	return out
}

// Coordinate is the locus' position on the axis. ok is false for a chromosome
// the axis was not built with.
func (a Axis) Coordinate(l Locus) (coord int, ok bool) {
	offset, exists := a.Offsets[Canonical(l.Chromosome)]
	if !exists {
		return 0, false
	}

	return offset + l.Position, true
}
