// Package catalog holds the immutable scenario content of the quiz.
package catalog

import (
	"errors"
	"fmt"
	"slices"

	"scamquiz/internal/engine"
)

// Skin is the UI dressing of a scenario. The catalog and the engine treat it
// as an opaque tag; only renderers branch on it.
type Skin string

const (
	SkinEmail    Skin = "email"
	SkinTelegram Skin = "telegram"
	SkinDating   Skin = "dating"
)

// Valid reports whether s is one of the known skins.
func (s Skin) Valid() bool {
	switch s {
	case SkinEmail, SkinTelegram, SkinDating:
		return true
	}
	return false
}

// Choice is one selectable response to a scenario.
type Choice struct {
	Text    string         `yaml:"text" json:"text"`
	Outcome engine.Outcome `yaml:"outcome" json:"outcome"`
}

// Scenario is one presented situation, identified by (Level, Index).
type Scenario struct {
	Level        int      `yaml:"-" json:"level"`
	Index        int      `yaml:"-" json:"index"`
	TotalInLevel int      `yaml:"-" json:"total_in_level"`
	Type         Skin     `yaml:"type" json:"type"`
	Sender       string   `yaml:"sender" json:"sender"`
	Subject      string   `yaml:"subject,omitempty" json:"subject,omitempty"`
	Context      string   `yaml:"context" json:"context"`
	Choices      []Choice `yaml:"choices" json:"choices"`
	Explanation  string   `yaml:"explanation" json:"explanation"`
}

// NotFoundError reports a level without scenarios.
type NotFoundError struct {
	Level int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no scenarios for level %d", e.Level)
}

// Catalog is a validated, read-only set of scenarios keyed by level.
type Catalog struct {
	levels map[int][]Scenario
}

// New validates the given scenarios and fixes their identity fields.
// Levels must lie in [engine.FirstLevel, engine.MaxLevel] and hold at least
// one scenario each; every scenario needs a known skin and at least one
// choice with a known outcome.
func New(levels map[int][]Scenario) (*Catalog, error) {
	c := &Catalog{levels: make(map[int][]Scenario, len(levels))}
	var errs []error
	for level, scenarios := range levels {
		if level < engine.FirstLevel || level > engine.MaxLevel {
			errs = append(errs, fmt.Errorf("level %d out of range %d..%d", level, engine.FirstLevel, engine.MaxLevel))
			continue
		}
		if len(scenarios) == 0 {
			errs = append(errs, fmt.Errorf("level %d: %w", level, &NotFoundError{Level: level}))
			continue
		}
		out := make([]Scenario, len(scenarios))
		for i, sc := range scenarios {
			if !sc.Type.Valid() {
				errs = append(errs, fmt.Errorf("level %d scenario %d: unknown skin %q", level, i, sc.Type))
			}
			if len(sc.Choices) == 0 {
				errs = append(errs, fmt.Errorf("level %d scenario %d: no choices", level, i))
			}
			for j, ch := range sc.Choices {
				if !ch.Outcome.Valid() {
					errs = append(errs, fmt.Errorf("level %d scenario %d choice %d: unknown outcome %q", level, i, j, ch.Outcome))
				}
			}
			sc.Level = level
			sc.Index = i
			sc.TotalInLevel = len(scenarios)
			sc.Choices = slices.Clone(sc.Choices)
			out[i] = sc
		}
		c.levels[level] = out
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// ScenariosFor returns the ordered scenarios of a level.
func (c *Catalog) ScenariosFor(level int) ([]Scenario, error) {
	scenarios, ok := c.levels[level]
	if !ok {
		return nil, &NotFoundError{Level: level}
	}
	out := make([]Scenario, len(scenarios))
	for i, sc := range scenarios {
		sc.Choices = slices.Clone(sc.Choices)
		out[i] = sc
	}
	return out, nil
}

// ScenarioAt returns the scenario at (level, index). ok is false when either
// is out of range.
func (c *Catalog) ScenarioAt(level, index int) (sc Scenario, ok bool) {
	scenarios := c.levels[level]
	if index < 0 || index >= len(scenarios) {
		return Scenario{}, false
	}
	sc = scenarios[index]
	sc.Choices = slices.Clone(sc.Choices)
	return sc, true
}

// TotalInLevel returns the number of scenarios in a level, zero if undefined.
func (c *Catalog) TotalInLevel(level int) int {
	return len(c.levels[level])
}

// Levels returns the defined levels in ascending order.
func (c *Catalog) Levels() []int {
	out := make([]int, 0, len(c.levels))
	for l := range c.levels {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}
