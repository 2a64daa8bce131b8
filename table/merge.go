package table

import (
	"fmt"

	"github.com/carbocation/minigwas"
)

// Cohort is a phenotype table and a genotype table restricted to the
// participants they share, with rows in the same order.
type Cohort struct {
	Phenotypes *Phenotypes
	Genotypes  *Genotypes
}

// Merge inner-joins phenotypes and genotypes on participant identifier,
// keeping the phenotype file's row order. Participants present on only one
// side are dropped.
func Merge(p *Phenotypes, g *Genotypes) (*Cohort, error) {
	phenoRows := make([]int, 0, p.Len())
	genoRows := make([]int, 0, p.Len())

	for i, id := range p.IDs {
		j, exists := g.index[id]
		if !exists {
			continue
		}
		phenoRows = append(phenoRows, i)
		genoRows = append(genoRows, j)
	}

	if len(phenoRows) == 0 {
		return nil, fmt.Errorf("none of the %d phenotyped and %d genotyped participants overlap: %w", p.Len(), g.Len(), minigwas.ErrAlignment)
	}

	return &Cohort{
		Phenotypes: p.subset(phenoRows),
		Genotypes:  g.subset(genoRows),
	}, nil
}

// Len is the number of participants in the cohort.
func (c *Cohort) Len() int {
	return c.Phenotypes.Len()
}

// Outcome returns the participant identifiers and the values of one trait,
// aligned with the cohort's genotype rows.
func (c *Cohort) Outcome(trait string) ([]string, []float64, error) {
	values, err := c.Phenotypes.Values(trait)
	if err != nil {
		return nil, nil, err
	}

	return append([]string(nil), c.Phenotypes.IDs...), values, nil
}
