package table

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas"
)

// Phenotypes holds one row per participant and one float64 column per trait.
// A binary case/control label is just a trait whose values are 0 and 1.
type Phenotypes struct {
	IDs    []string
	Traits []string
	values map[string][]float64
	index  map[string]int
}

// ReadPhenotypes loads idColumn and each named trait from a delimited table
// with a header row. Extra columns are ignored.
func ReadPhenotypes(r io.Reader, idColumn string, traits ...string) (*Phenotypes, error) {
	if len(traits) == 0 {
		return nil, fmt.Errorf("no phenotype columns were requested: %w", minigwas.ErrSchema)
	}

	cr := newRowReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("phenotype table is empty: %w", minigwas.ErrSchema)
	} else if err != nil {
		return nil, err
	}

	positions, err := readHeader(header, append([]string{idColumn}, traits...)...)
	if err != nil {
		return nil, fmt.Errorf("phenotypes: %w", err)
	}

	out := &Phenotypes{
		Traits: append([]string(nil), traits...),
		values: make(map[string][]float64, len(traits)),
		index:  make(map[string]int),
	}

	for line := 2; ; line++ {
		cols, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if len(cols) != len(header) {
			return nil, fmt.Errorf("phenotypes: line %d has %d fields but the header has %d: %w", line, len(cols), len(header), minigwas.ErrSchema)
		}

		id := strings.TrimSpace(cols[positions[idColumn]])
		if _, exists := out.index[id]; exists {
			return nil, fmt.Errorf("phenotypes: participant %q appears more than once (line %d): %w", id, line, minigwas.ErrDuplicateKey)
		}
		out.index[id] = len(out.IDs)
		out.IDs = append(out.IDs, id)

		for _, trait := range traits {
			raw := strings.TrimSpace(cols[positions[trait]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("phenotypes: line %d, column %s: %w", line, trait, err)
			}
			out.values[trait] = append(out.values[trait], v)
		}
	}

	return out, nil
}

// Len is the number of participants.
func (p *Phenotypes) Len() int {
	return len(p.IDs)
}

// Values returns a copy of the named trait, aligned with IDs.
func (p *Phenotypes) Values(trait string) ([]float64, error) {
	v, exists := p.values[trait]
	if !exists {
		return nil, fmt.Errorf("phenotype %q was not loaded: %w", trait, minigwas.ErrSchema)
	}

	return append([]float64(nil), v...), nil
}

// subset returns the rows at the given positions, in that order.
func (p *Phenotypes) subset(rows []int) *Phenotypes {
	out := &Phenotypes{
		IDs:    make([]string, 0, len(rows)),
		Traits: append([]string(nil), p.Traits...),
		values: make(map[string][]float64, len(p.Traits)),
		index:  make(map[string]int, len(rows)),
	}

	for _, row := range rows {
		out.index[p.IDs[row]] = len(out.IDs)
		out.IDs = append(out.IDs, p.IDs[row])
		for _, trait := range p.Traits {
			out.values[trait] = append(out.values[trait], p.values[trait][row])
		}
	}

	return out
}
