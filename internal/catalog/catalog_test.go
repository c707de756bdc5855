package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scamquiz/internal/engine"
)

func TestLoadCatalog(t *testing.T) {
	c, err := Load("testdata/simple.yaml")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if got := c.Levels(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected levels %v", got)
	}
	sc, ok := c.ScenarioAt(1, 1)
	if !ok {
		t.Fatalf("expected scenario at (1,1)")
	}
	if sc.Type != SkinTelegram || sc.Sender != "Support" {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Level != 1 || sc.Index != 1 || sc.TotalInLevel != 2 {
		t.Fatalf("identity not set: level=%d index=%d total=%d", sc.Level, sc.Index, sc.TotalInLevel)
	}
	first, _ := c.ScenarioAt(1, 0)
	if first.Subject != "Verify your account" {
		t.Fatalf("unexpected subject %q", first.Subject)
	}
	if first.Choices[1].Outcome != engine.Safe {
		t.Fatalf("unexpected outcome %q", first.Choices[1].Outcome)
	}
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	for _, name := range []string{"bad_outcome.yaml", "total_mismatch.yaml", "empty_level.yaml", "unknown_skin.yaml"} {
		if _, err := Load(filepath.Join("testdata", name)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestScenarioLookupOutOfRange(t *testing.T) {
	c := BuiltIn()
	for _, tc := range []struct{ level, index int }{
		{0, 0}, {4, 0}, {1, -1}, {1, c.TotalInLevel(1)}, {3, 99},
	} {
		if _, ok := c.ScenarioAt(tc.level, tc.index); ok {
			t.Fatalf("expected no scenario at (%d,%d)", tc.level, tc.index)
		}
	}
}

func TestScenariosForUnknownLevel(t *testing.T) {
	c := BuiltIn()
	_, err := c.ScenariosFor(7)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Level != 7 {
		t.Fatalf("expected NotFoundError for level 7, got %v", err)
	}
}

func TestScenariosForReturnsCopy(t *testing.T) {
	c := BuiltIn()
	got, err := c.ScenariosFor(1)
	if err != nil {
		t.Fatalf("scenarios for 1: %v", err)
	}
	got[0].Sender = "changed"
	got[0].Choices[0].Text = "changed"
	again, _ := c.ScenarioAt(1, 0)
	if again.Sender == "changed" || again.Choices[0].Text == "changed" {
		t.Fatalf("catalog mutated through returned slice")
	}
}

func TestBuiltInInvariants(t *testing.T) {
	c := BuiltIn()
	for level := engine.FirstLevel; level <= engine.MaxLevel; level++ {
		scenarios, err := c.ScenariosFor(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		for i, sc := range scenarios {
			if sc.Index != i || sc.Level != level || sc.TotalInLevel != len(scenarios) {
				t.Fatalf("level %d scenario %d: bad identity %+v", level, i, sc)
			}
			if len(sc.Choices) == 0 {
				t.Fatalf("level %d scenario %d has no choices", level, i)
			}
			if sc.Explanation == "" {
				t.Fatalf("level %d scenario %d missing explanation", level, i)
			}
		}
	}
}

func TestNewRejectsBadContent(t *testing.T) {
	if _, err := New(map[int][]Scenario{4: {{Type: SkinEmail, Choices: []Choice{{Text: "x", Outcome: engine.Safe}}}}}); err == nil {
		t.Fatalf("expected error for level 4")
	}
	if _, err := New(map[int][]Scenario{1: {{Type: SkinEmail}}}); err == nil {
		t.Fatalf("expected error for scenario without choices")
	}
	for _, skin := range []Skin{"sms", ""} {
		_, err := New(map[int][]Scenario{1: {{Type: skin, Choices: []Choice{{Text: "x", Outcome: engine.Safe}}}}})
		if err == nil || !strings.Contains(err.Error(), "unknown skin") {
			t.Fatalf("skin %q: expected unknown skin error, got %v", skin, err)
		}
	}
	_, err := New(map[int][]Scenario{2: {}})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError for empty level, got %v", err)
	}
}

func TestValidateFileWithCustomSchema(t *testing.T) {
	dir := t.TempDir()
	schema := filepath.Join(dir, "strict.cue")
	strict := string(Schema) + "\n#Catalog: levels: [_, _, _]\n"
	if err := os.WriteFile(schema, []byte(strict), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	c, err := ValidateFile("testdata/simple.yaml", "")
	if err != nil {
		t.Fatalf("embedded schema: %v", err)
	}
	if got := c.Levels(); len(got) != 2 || c.TotalInLevel(1)+c.TotalInLevel(2) != 3 {
		t.Fatalf("validated catalog has levels %v", got)
	}
	if c, err := ValidateFile("testdata/simple.yaml", schema); err == nil || c != nil {
		t.Fatalf("expected strict schema to require three levels, got %v, %v", c, err)
	}
	if _, err := ValidateFile("testdata/total_mismatch.yaml", ""); err == nil {
		t.Fatalf("expected total_in_level mismatch to fail validation")
	}
}
