package markers

// Marker is the per-variant metadata that an association result is joined to.
type Marker struct {
	Chromosome string
	Position   int
	MarkerID   string // E.g., RSID
	Ref        string // Allele whose copies the dosage counts
	Alt        string
	RefFreq    float64 // NaN when the source file carries no frequency
}
