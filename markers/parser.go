package markers

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas"
)

type Parser struct {
	Layout Layout
}

func New(layout string) (*Parser, error) {
	l, exists := Layouts[layout]
	if !exists {
		return nil, fmt.Errorf("Layout %s is not found. Valid layout names include: %s", layout, LayoutNames())
	}

	return NewWithLayout(l)
}

func NewWithLayout(layout Layout) (*Parser, error) {
	return &Parser{Layout: layout}, nil
}

// ResolveHeader replaces the layout's column positions with the positions of
// its named columns in header.
func (p *Parser) ResolveHeader(header []string) error {
	positions := make(map[string]int, len(header))
	for i, v := range header {
		positions[strings.TrimSpace(v)] = i
	}

	l := &p.Layout
	missing := make([]string, 0)
	for _, v := range []struct {
		name string
		col  *int
	}{
		{l.NameChromosome, &l.ColChromosome},
		{l.NameMarkerID, &l.ColMarkerID},
		{l.NamePosition, &l.ColPosition},
		{l.NameRef, &l.ColRef},
		{l.NameAlt, &l.ColAlt},
		{l.NameRefFreq, &l.ColRefFreq},
	} {
		if v.name == "" {
			*v.col = -1
			continue
		}
		pos, exists := positions[v.name]
		if !exists {
			missing = append(missing, v.name)
			continue
		}
		*v.col = pos
	}

	if len(missing) > 0 {
		return fmt.Errorf("marker file header %v lacks %v: %w", header, missing, minigwas.ErrSchema)
	}

	if l.ColChromosome < 0 || l.ColMarkerID < 0 || l.ColPosition < 0 || l.ColRef < 0 || l.ColAlt < 0 {
		return fmt.Errorf("marker layout must name chromosome, marker, position, ref and alt columns: %w", minigwas.ErrSchema)
	}

	return nil
}

func (p *Parser) ParseRow(row []string) (Marker, error) {
	l := p.Layout
	m := Marker{RefFreq: math.NaN()}

	need := l.ColChromosome
	for _, c := range []int{l.ColMarkerID, l.ColPosition, l.ColRef, l.ColAlt, l.ColRefFreq} {
		if c > need {
			need = c
		}
	}
	if len(row) <= need {
		return m, fmt.Errorf("row has %d fields but the layout reads field %d: %w", len(row), need+1, minigwas.ErrSchema)
	}

	// Remove preceding zeroes from the chromosome, e.g., 01 -> 1
	m.Chromosome = strings.TrimSpace(row[l.ColChromosome])
	if len(m.Chromosome) > 1 {
		m.Chromosome = strings.TrimPrefix(m.Chromosome, "0")
	}
	m.MarkerID = strings.TrimSpace(row[l.ColMarkerID])
	m.Ref = strings.TrimSpace(row[l.ColRef])
	m.Alt = strings.TrimSpace(row[l.ColAlt])

	if pos, err := strconv.Atoi(strings.TrimSpace(row[l.ColPosition])); err != nil {
		return m, err
	} else {
		m.Position = pos
	}

	if l.ColRefFreq >= 0 {
		freq, err := strconv.ParseFloat(strings.TrimSpace(row[l.ColRefFreq]), 64)
		if err != nil {
			return m, err
		}
		if freq < 0 || freq > 1 {
			return m, fmt.Errorf("marker %s has reference allele frequency %v, outside [0,1]", m.MarkerID, freq)
		}
		m.RefFreq = freq
	}

	return m, nil
}

// ReadAll parses every row of a metadata file. Marker identifiers must be
// unique, since they are the key that association results are joined on.
func (p *Parser) ReadAll(r io.Reader) ([]Marker, error) {
	next := p.rowReader(r)

	out := make([]Marker, 0)
	seen := make(map[string]int)

	for line := 1; ; line++ {
		row, err := next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if line == 1 && p.Layout.Header {
			if err := p.ResolveHeader(row); err != nil {
				return nil, err
			}
			continue
		}

		m, err := p.ParseRow(row)
		if err != nil {
			return nil, fmt.Errorf("marker file line %d: %w", line, err)
		}

		if prev, exists := seen[m.MarkerID]; exists {
			return nil, fmt.Errorf("marker %s is on line %d and line %d: %w", m.MarkerID, prev, line, minigwas.ErrDuplicateKey)
		}
		seen[m.MarkerID] = line

		out = append(out, m)
	}

	return out, nil
}

// rowReader yields one split row per call, io.EOF at the end.
func (p *Parser) rowReader(r io.Reader) func() ([]string, error) {
	if p.Layout.Fields {
		return minigwas.NewFieldsReader(r, p.Layout.Comment).Read
	}

	if p.Layout.Delimiter == 0 {
		return minigwas.NewRowReader(r, p.Layout.Comment).Read
	}

	cr := csv.NewReader(r)
	cr.Comma = p.Layout.Delimiter
	cr.Comment = p.Layout.Comment
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return cr.Read
}
