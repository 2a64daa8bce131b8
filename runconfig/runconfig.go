// Package runconfig holds the settings of one association run. They can be
// read from a JSON file, and any of them can be overridden by a command line
// flag of the same name.
package runconfig

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/minigwas"
	"github.com/carbocation/minigwas/markers"
	"github.com/carbocation/pfx"
)

var errUnknownSetting = errors.New("not a run setting")

type Config struct {
	ConfigPath string `json:"-"`

	Phenotypes string `json:"phenotypes"`
	Genotypes  string `json:"genotypes"`
	Markers    string `json:"markers"`
	Layout     string `json:"layout"`
	IDColumn   string `json:"id_column"`
	Outcome    string `json:"outcome"`

	// Restrict the scan to these markers. Empty means every genotyped marker.
	SNPs []string `json:"snps"`

	// Above 1, markers are fit concurrently
	Workers int `json:"workers"`

	Output    string `json:"output"`
	Manhattan string `json:"manhattan"`
	QQ        string `json:"qq"`
	QC        string `json:"qc"`

	// Optional 0/1 trait used for the allelic test in the QC report
	CaseControl string `json:"case_control"`

	ThresholdLine bool `json:"threshold_line"`
}

func Default() Config {
	return Config{
		Layout:        "FREQ",
		IDColumn:      "IID",
		Workers:       1,
		ThresholdLine: true,
	}
}

// ParseFromPath reads a JSON file over the defaults.
func ParseFromPath(path string) (Config, error) {
	out := Default()
	out.ConfigPath = path

	expanded, err := minigwas.ExpandHome(path)
	if err != nil {
		return out, err
	}

	f, err := os.Open(expanded)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}
		return out, pfx.Err(err)
	}

	return out, pfx.Err(out.expandPaths())
}

// Interpret ~ if present
func (c *Config) expandPaths() error {
	for _, path := range []*string{&c.Phenotypes, &c.Genotypes, &c.Markers, &c.Output, &c.Manhattan, &c.QQ, &c.QC} {
		expanded, err := minigwas.ExpandHome(*path)
		if err != nil {
			return err
		}
		*path = expanded
	}

	return nil
}

// Set assigns one setting by its JSON name. snps takes a comma-separated list.
func (c *Config) Set(name, value string) error {
	var err error

	switch name {
	case "phenotypes":
		c.Phenotypes = value
	case "genotypes":
		c.Genotypes = value
	case "markers":
		c.Markers = value
	case "layout":
		c.Layout = value
	case "id_column":
		c.IDColumn = value
	case "outcome":
		c.Outcome = value
	case "snps":
		c.SNPs = nil
		for _, snp := range strings.Split(value, ",") {
			if snp = strings.TrimSpace(snp); snp != "" {
				c.SNPs = append(c.SNPs, snp)
			}
		}
	case "workers":
		c.Workers, err = strconv.Atoi(value)
	case "output":
		c.Output = value
	case "manhattan":
		c.Manhattan = value
	case "qq":
		c.QQ = value
	case "qc":
		c.QC = value
	case "case_control":
		c.CaseControl = value
	case "threshold_line":
		c.ThresholdLine, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%q: %w", name, errUnknownSetting)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return c.expandPaths()
}

// Override copies every flag that was set on the command line and that names
// a run setting. Flags that are not run settings (such as -config itself) are
// ignored.
func (c *Config) Override(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		if setErr := c.Set(f.Name, f.Value.String()); setErr != nil && !errors.Is(setErr, errUnknownSetting) {
			err = setErr
		}
	})

	return err
}

// Validate names every missing required setting at once.
func (c Config) Validate() error {
	missing := []string{}
	for _, field := range []struct {
		name, value string
	}{
		{"phenotypes", c.Phenotypes},
		{"genotypes", c.Genotypes},
		{"markers", c.Markers},
		{"id_column", c.IDColumn},
		{"outcome", c.Outcome},
		{"output", c.Output},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}

	if _, exists := markers.Layouts[c.Layout]; !exists {
		return fmt.Errorf("layout %q is not one of %s", c.Layout, markers.LayoutNames())
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, have %d", c.Workers)
	}

	return nil
}
