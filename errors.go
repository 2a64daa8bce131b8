package minigwas

import "errors"

var (
	// ErrSchema means a required column (or requested marker) is absent from
	// an input table.
	ErrSchema = errors.New("schema error")

	// ErrInvalidDosage means a genotype cell holds something other than 0, 1
	// or 2.
	ErrInvalidDosage = errors.New("invalid dosage")

	// ErrAlignment means outcome and genotype rows disagree in count or in
	// participant identifiers.
	ErrAlignment = errors.New("alignment error")

	// ErrDuplicateKey means an identifier that must be unique (participant or
	// marker) appears more than once, making a join ambiguous.
	ErrDuplicateKey = errors.New("duplicate key")
)
