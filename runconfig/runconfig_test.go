package runconfig

import (
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "run.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestParseFromPath(t *testing.T) {
	path := writeConfig(t, `{
		"phenotypes": "/data/pheno.tsv",
		"genotypes": "/data/geno.tsv.gz",
		"markers": "/data/freq.tsv",
		"outcome": "ldl",
		"snps": ["rs1", "rs2"],
		"workers": 4,
		"output": "/out/ldl.tsv",
		"threshold_line": false
	}`)

	cfg, err := ParseFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath %q", cfg.ConfigPath)
	}

	// Defaults survive when the file does not mention them
	if cfg.Layout != "FREQ" || cfg.IDColumn != "IID" {
		t.Errorf("Lost defaults: %+v", cfg)
	}

	if cfg.Workers != 4 || cfg.ThresholdLine || cfg.Outcome != "ldl" {
		t.Errorf("Unexpected config %+v", cfg)
	}

	if !reflect.DeepEqual(cfg.SNPs, []string{"rs1", "rs2"}) {
		t.Errorf("SNPs %v", cfg.SNPs)
	}

	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestParseFromPathRejectsUnknownSettings(t *testing.T) {
	path := writeConfig(t, `{"phenotype": "typo.tsv"}`)

	if _, err := ParseFromPath(path); err == nil {
		t.Fatalf("Expected an error for an unknown setting")
	}
}

func TestParseFromPathSyntaxError(t *testing.T) {
	path := writeConfig(t, `{"phenotypes": `)

	if _, err := ParseFromPath(path); err == nil {
		t.Fatalf("Expected a syntax error")
	}
}

func TestValidateNamesEveryMissingSetting(t *testing.T) {
	cfg := Default()
	cfg.Phenotypes = "p.tsv"

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("Expected an error")
	}

	for _, name := range []string{"genotypes", "markers", "outcome", "output"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("Error %q does not name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), "phenotypes") {
		t.Errorf("Error %q names a setting that was given", err)
	}
}

func TestValidateLayoutAndWorkers(t *testing.T) {
	cfg := Default()
	for _, name := range []string{"phenotypes", "genotypes", "markers", "outcome", "output"} {
		if err := cfg.Set(name, name+".tsv"); err != nil {
			t.Fatal(err)
		}
	}

	cfg.Layout = "VCF"
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected an unknown layout to fail")
	}

	cfg.Layout = "BIM"
	cfg.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected zero workers to fail")
	}
}

func TestOverride(t *testing.T) {
	cfg := Default()
	cfg.Outcome = "ldl"
	cfg.Workers = 2

	fs := flag.NewFlagSet("minigwas", flag.ContinueOnError)
	fs.String("config", "", "")
	fs.String("outcome", "", "")
	fs.Int("workers", 1, "")
	fs.String("snps", "", "")
	fs.Bool("threshold_line", true, "")
	fs.Bool("verbose", false, "")

	if err := fs.Parse([]string{"-config", "x.json", "-snps", "rs3, rs4,", "-threshold_line=false", "-verbose"}); err != nil {
		t.Fatal(err)
	}

	if err := cfg.Override(fs); err != nil {
		t.Fatal(err)
	}

	// Unset flags do not clobber file values
	if cfg.Outcome != "ldl" || cfg.Workers != 2 {
		t.Errorf("Flags that were not given changed the config: %+v", cfg)
	}

	if cfg.ThresholdLine {
		t.Errorf("threshold_line was not overridden")
	}

	if !reflect.DeepEqual(cfg.SNPs, []string{"rs3", "rs4"}) {
		t.Errorf("SNPs %v", cfg.SNPs)
	}
}

func TestSetRejectsBadValues(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("workers", "many"); err == nil {
		t.Errorf("Expected a parse error")
	}
	if err := cfg.Set("nonsense", "1"); err == nil {
		t.Errorf("Expected an unknown setting error")
	}
}
