package simulate

import (
	"bytes"
	"testing"

	"github.com/carbocation/minigwas/assoc"
	"github.com/carbocation/minigwas/markers"
	"github.com/carbocation/minigwas/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Samples, cfg.Markers = 100, 20
	cfg.Effects = map[string]float64{"snp3": 1}

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)

	cfg.Seed++
	c, err := Generate(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.Measurement, c.Measurement)
}

func TestGenerateShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Samples, cfg.Markers = 2000, 10
	cfg.Effects = nil

	d, err := Generate(cfg)
	require.NoError(t, err)

	require.Len(t, d.IDs, 2000)
	require.Len(t, d.Markers, 10)
	require.Len(t, d.Dosages, 10)

	for m, marker := range d.Markers {
		assert.Equal(t, MarkerID(m), marker.MarkerID)
		assert.Equal(t, cfg.StartPosition+m*cfg.Spacing, marker.Position)
		assert.GreaterOrEqual(t, marker.RefFreq, MinRefFreq)
		assert.LessOrEqual(t, marker.RefFreq, MaxRefFreq)

		for _, dosage := range d.Dosages[m] {
			assert.Contains(t, []float64{0, 1, 2}, dosage)
		}
	}

	cases := 0.0
	for _, c := range d.Case {
		cases += c
	}
	assert.InDelta(t, cfg.Prevalence, cases/float64(len(d.Case)), 0.01)
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"samples":    func(c *Config) { c.Samples = 2 },
		"markers":    func(c *Config) { c.Markers = 0 },
		"noise":      func(c *Config) { c.NoiseSD = 0 },
		"prevalence": func(c *Config) { c.Prevalence = 1 },
		"effect":     func(c *Config) { c.Effects = map[string]float64{"rs1": 1} },
		"chromosome": func(c *Config) { c.Chromosome = "" },
	} {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}

	require.NoError(t, DefaultConfig().Validate())
}

// Write the three files, read them back the way the scanner does, and
// recover the one simulated effect.
func TestRoundTripRecoversEffect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Samples, cfg.Markers = 2000, 40
	cfg.Effects = map[string]float64{"snp10": 0.5}

	d, err := Generate(cfg)
	require.NoError(t, err)

	var pheno, geno, meta bytes.Buffer
	require.NoError(t, d.WritePhenotypes(&pheno))
	require.NoError(t, d.WriteGenotypes(&geno))
	require.NoError(t, d.WriteMarkers(&meta))

	p, err := table.ReadPhenotypes(&pheno, IDColumn, MeasurementColumn, CaseColumn)
	require.NoError(t, err)
	g, err := table.ReadGenotypes(&geno, IDColumn)
	require.NoError(t, err)

	parser, err := markers.New("FREQ")
	require.NoError(t, err)
	metadata, err := parser.ReadAll(&meta)
	require.NoError(t, err)
	require.Len(t, metadata, cfg.Markers)

	cohort, err := table.Merge(p, g)
	require.NoError(t, err)
	require.Equal(t, cfg.Samples, cohort.Len())

	ids, y, err := cohort.Outcome(MeasurementColumn)
	require.NoError(t, err)

	results, err := assoc.Scan(assoc.Outcome{IDs: ids, Values: y}, cohort.Genotypes, g.Markers)
	require.NoError(t, err)

	rows, err := assoc.Join(metadata, results)
	require.NoError(t, err)
	require.Len(t, rows, cfg.Markers)

	top, ok := assoc.TopHit(rows)
	require.True(t, ok)
	assert.Equal(t, "snp10", top.MarkerID)
	assert.True(t, top.Significant())
	assert.InDelta(t, 0.5, top.Estimate, 5*top.StdErr)
}
