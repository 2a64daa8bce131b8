// Package simulate generates cohorts with known marker effects, in the flat
// file formats that the table and markers packages read.
package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/carbocation/minigwas/markers"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	MinRefFreq = 0.05
	MaxRefFreq = 0.95
)

type Config struct {
	Samples       int
	Markers       int
	Chromosome    string
	StartPosition int
	Spacing       int

	// Marker ID => change in the measurement per reference allele copy.
	// Marker IDs are "snp1" through "snp<Markers>".
	Effects map[string]float64
	NoiseSD float64

	// Fraction of samples labeled as cases by thresholding the measurement
	Prevalence float64

	Seed uint64
}

// DefaultConfig is a small cohort with one strongly associated marker.
func DefaultConfig() Config {
	return Config{
		Samples:       1000,
		Markers:       200,
		Chromosome:    "1",
		StartPosition: 1_000_000,
		Spacing:       5_000,
		Effects:       map[string]float64{"snp50": 0.5},
		NoiseSD:       1,
		Prevalence:    0.2,
		Seed:          1,
	}
}

// MarkerID names the i-th (0-based) simulated marker.
func MarkerID(i int) string {
	return fmt.Sprintf("snp%d", i+1)
}

func (c Config) Validate() error {
	if c.Samples < 3 {
		return fmt.Errorf("need at least 3 samples, have %d", c.Samples)
	}
	if c.Markers < 1 {
		return fmt.Errorf("need at least 1 marker, have %d", c.Markers)
	}
	if c.Chromosome == "" {
		return fmt.Errorf("no chromosome was named")
	}
	if c.Spacing < 1 || c.StartPosition < 1 {
		return fmt.Errorf("positions must be positive (start %d, spacing %d)", c.StartPosition, c.Spacing)
	}
	if !(c.NoiseSD > 0) {
		return fmt.Errorf("noise SD must be positive, have %v", c.NoiseSD)
	}
	if !(c.Prevalence > 0 && c.Prevalence < 1) {
		return fmt.Errorf("prevalence must be in (0, 1), have %v", c.Prevalence)
	}

	valid := make(map[string]struct{}, c.Markers)
	for i := 0; i < c.Markers; i++ {
		valid[MarkerID(i)] = struct{}{}
	}
	for id, effect := range c.Effects {
		if _, exists := valid[id]; !exists {
			return fmt.Errorf("effect given for %s, which is not among the %d simulated markers", id, c.Markers)
		}
		if math.IsNaN(effect) || math.IsInf(effect, 0) {
			return fmt.Errorf("effect for %s is not finite", id)
		}
	}

	return nil
}

type Dataset struct {
	IDs     []string
	Markers []markers.Marker

	// [marker][sample] copies of the reference allele
	Dosages [][]float64

	Measurement []float64

	// 1 for cases, 0 for controls
	Case []float64
}

// Generate draws a cohort. The same Config always yields the same Dataset.
func Generate(cfg Config) (*Dataset, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)

	out := &Dataset{
		IDs:         make([]string, cfg.Samples),
		Markers:     make([]markers.Marker, cfg.Markers),
		Dosages:     make([][]float64, cfg.Markers),
		Measurement: make([]float64, cfg.Samples),
		Case:        make([]float64, cfg.Samples),
	}

	for i := range out.IDs {
		out.IDs[i] = fmt.Sprintf("IID%06d", i+1)
	}

	freqs := distuv.Uniform{Min: MinRefFreq, Max: MaxRefFreq, Src: src}
	for m := range out.Markers {
		freq := freqs.Rand()
		out.Markers[m] = markers.Marker{
			Chromosome: cfg.Chromosome,
			Position:   cfg.StartPosition + m*cfg.Spacing,
			MarkerID:   MarkerID(m),
			Ref:        "A",
			Alt:        "G",
			RefFreq:    freq,
		}

		geno := distuv.Binomial{N: 2, P: freq, Src: src}
		dosages := make([]float64, cfg.Samples)
		for s := range dosages {
			dosages[s] = geno.Rand()
		}
		out.Dosages[m] = dosages

		effect := cfg.Effects[out.Markers[m].MarkerID]
		if effect == 0 {
			continue
		}
		for s, d := range dosages {
			out.Measurement[s] += effect * d
		}
	}

	noise := distuv.Normal{Mu: 0, Sigma: cfg.NoiseSD, Src: src}
	for s := range out.Measurement {
		out.Measurement[s] += noise.Rand()
	}

	// Liability threshold: the top Prevalence fraction are cases
	threshold, err := stats.Percentile(out.Measurement, 100*(1-cfg.Prevalence))
	if err != nil {
		return nil, err
	}
	for s, v := range out.Measurement {
		if v > threshold {
			out.Case[s] = 1
		}
	}

	return out, nil
}
