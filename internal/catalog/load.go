package catalog

import (
	_ "embed"
	"fmt"
	"log"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

// Schema is the CUE schema every catalog document must satisfy.
//
//go:embed schema.cue
var Schema []byte

type fileCatalog struct {
	Levels []fileLevel `yaml:"levels"`
}

type fileLevel struct {
	Level     int            `yaml:"level"`
	Scenarios []fileScenario `yaml:"scenarios"`
}

type fileScenario struct {
	Scenario     `yaml:",inline"`
	TotalInLevel int `yaml:"total_in_level,omitempty"`
}

// Load reads a YAML catalog and validates it against the embedded schema.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	log.Printf("[Catalog] loaded %s: levels=%v", path, c.Levels())
	return c, nil
}

// Parse validates and decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	if err := ValidateWithCue(data, Schema); err != nil {
		return nil, err
	}
	return decode(data)
}

// decode builds a Catalog from a document that already passed a schema check.
func decode(data []byte) (*Catalog, error) {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	levels := make(map[int][]Scenario, len(fc.Levels))
	for _, fl := range fc.Levels {
		if _, dup := levels[fl.Level]; dup {
			return nil, fmt.Errorf("level %d defined twice", fl.Level)
		}
		scenarios := make([]Scenario, 0, len(fl.Scenarios))
		for i, fs := range fl.Scenarios {
			if fs.TotalInLevel != 0 && fs.TotalInLevel != len(fl.Scenarios) {
				return nil, fmt.Errorf("level %d scenario %d: total_in_level %d, level has %d scenarios",
					fl.Level, i, fs.TotalInLevel, len(fl.Scenarios))
			}
			scenarios = append(scenarios, fs.Scenario)
		}
		levels[fl.Level] = scenarios
	}
	return New(levels)
}

// ValidateWithCue checks a YAML catalog document against the #Catalog
// definition of a CUE schema.
func ValidateWithCue(data, schema []byte) error {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileBytes(schema, cue.Filename("catalog.cue"))
	if err := schemaVal.Err(); err != nil {
		return fmt.Errorf("cannot compile CUE schema: %w", err)
	}

	file, err := cueyaml.Extract("catalog.yaml", data)
	if err != nil {
		return fmt.Errorf("cannot parse YAML catalog: %w", err)
	}
	dataVal := ctx.BuildFile(file)
	if err := dataVal.Err(); err != nil {
		return fmt.Errorf("cannot build YAML catalog: %w", err)
	}

	def := schemaVal.LookupPath(cue.ParsePath("#Catalog"))
	if err := def.Unify(dataVal).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// ValidateFile checks a catalog file against a schema file and returns the
// decoded catalog. An empty schemaPath selects the embedded schema.
func ValidateFile(path, schemaPath string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	schema := Schema
	if schemaPath != "" {
		if schema, err = os.ReadFile(schemaPath); err != nil {
			return nil, fmt.Errorf("read CUE schema: %w", err)
		}
	}
	if err := ValidateWithCue(data, schema); err != nil {
		return nil, err
	}
	return decode(data)
}
