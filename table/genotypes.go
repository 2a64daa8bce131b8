package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas"
)

// Genotypes is a participant-by-marker matrix of additive dosages (copies of
// the reference allele, 0, 1 or 2). It is stored one column per marker, since
// the scan reads it one marker at a time.
type Genotypes struct {
	IDs     []string
	Markers []string
	dosages [][]float64 // [marker][participant]
	markers map[string]int
	index   map[string]int
}

// ReadGenotypes loads a delimited table whose header holds idColumn and then
// one column per marker identifier.
func ReadGenotypes(r io.Reader, idColumn string) (*Genotypes, error) {
	cr := newRowReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("genotype table is empty: %w", minigwas.ErrSchema)
	} else if err != nil {
		return nil, err
	}

	positions, err := readHeader(header, idColumn)
	if err != nil {
		return nil, fmt.Errorf("genotypes: %w", err)
	}
	idCol := positions[idColumn]

	out := &Genotypes{
		markers: make(map[string]int),
		index:   make(map[string]int),
	}

	// Every column other than the identifier is a marker, in file order
	markerCols := make([]int, 0, len(header)-1)
	for col, name := range header {
		if col == idCol {
			continue
		}
		name = strings.TrimSpace(name)
		out.markers[name] = len(out.Markers)
		out.Markers = append(out.Markers, name)
		markerCols = append(markerCols, col)
	}
	out.dosages = make([][]float64, len(out.Markers))

	for line := 2; ; line++ {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(cols) != len(header) {
			return nil, fmt.Errorf("genotypes: line %d has %d fields but the header has %d: %w", line, len(cols), len(header), minigwas.ErrSchema)
		}

		id := strings.TrimSpace(cols[idCol])
		if _, exists := out.index[id]; exists {
			return nil, fmt.Errorf("genotypes: participant %q appears more than once (line %d): %w", id, line, minigwas.ErrDuplicateKey)
		}
		out.index[id] = len(out.IDs)
		out.IDs = append(out.IDs, id)

		for m, col := range markerCols {
			d, err := parseDosage(cols[col])
			if err != nil {
				return nil, fmt.Errorf("genotypes: line %d, marker %s: %w", line, out.Markers[m], err)
			}
			out.dosages[m] = append(out.dosages[m], d)
		}
	}

	return out, nil
}

func parseDosage(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > 2 {
		return 0, fmt.Errorf("%q is not one of 0, 1, 2: %w", raw, minigwas.ErrInvalidDosage)
	}

	return float64(v), nil
}

// Len is the number of participants.
func (g *Genotypes) Len() int {
	return len(g.IDs)
}

// SampleIDs returns the participant identifiers in row order.
func (g *Genotypes) SampleIDs() []string {
	return g.IDs
}

// Has reports whether marker is a column of the matrix.
func (g *Genotypes) Has(marker string) bool {
	_, exists := g.markers[marker]
	return exists
}

// Dosages returns a copy of one marker's column, aligned with IDs.
func (g *Genotypes) Dosages(marker string) ([]float64, error) {
	m, exists := g.markers[marker]
	if !exists {
		return nil, fmt.Errorf("marker %q is not a genotype column: %w", marker, minigwas.ErrSchema)
	}

	return append([]float64(nil), g.dosages[m]...), nil
}

func (g *Genotypes) subset(rows []int) *Genotypes {
	out := &Genotypes{
		IDs:     make([]string, 0, len(rows)),
		Markers: append([]string(nil), g.Markers...),
		dosages: make([][]float64, len(g.Markers)),
		markers: g.markers,
		index:   make(map[string]int, len(rows)),
	}

	for _, row := range rows {
		out.index[g.IDs[row]] = len(out.IDs)
		out.IDs = append(out.IDs, g.IDs[row])
	}

	for m := range g.Markers {
		col := make([]float64, 0, len(rows))
		for _, row := range rows {
			col = append(col, g.dosages[m][row])
		}
		out.dosages[m] = col
	}

	return out
}
