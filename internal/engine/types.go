package engine

import "fmt"

// Level bounds for a quiz run.
const (
	FirstLevel = 1
	MaxLevel   = 3
)

// Outcome tags a choice as safe or risky. There is no partial credit.
type Outcome string

const (
	Safe  Outcome = "safe"
	Risky Outcome = "risky"
)

// Valid reports whether o is one of the two known outcomes.
func (o Outcome) Valid() bool {
	return o == Safe || o == Risky
}

// ParseOutcome converts a raw tag into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(s)
	if !o.Valid() {
		return "", fmt.Errorf("unknown outcome %q", s)
	}
	return o, nil
}

// Classification is the outcome band of a finished level.
type Classification string

const (
	Perfect Classification = "perfect"
	Poor    Classification = "poor"
	Mixed   Classification = "mixed"
)

// State is the live progression of one session.
type State struct {
	Level        int `json:"level"`
	Index        int `json:"index"`
	Score        int `json:"score"`
	TotalInLevel int `json:"total_in_level"`
}

// Initial returns the state at the first scenario of the first level.
func Initial() State {
	return State{Level: FirstLevel}
}

// LevelResult is the derived score of a completed level.
type LevelResult struct {
	Level int `json:"level"`
	Score int `json:"score"`
	Total int `json:"total"`
}

// Classification bands the result. Total must be positive.
func (r LevelResult) Classification() Classification {
	return Classify(r.Score, r.Total)
}

// ContractViolation is raised when the engine is called with input the
// caller was required to rule out.
type ContractViolation struct {
	Op     string
	Detail string
}

func (c ContractViolation) Error() string {
	return fmt.Sprintf("engine: %s: %s", c.Op, c.Detail)
}

// Phase names the screen the session is on.
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhaseScenario Phase = "scenario"
	PhaseFeedback Phase = "feedback"
	PhaseQuiz     Phase = "quiz"
	PhaseEnd      Phase = "end"
)
