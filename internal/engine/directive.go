package engine

import "fmt"

// Directive tells the controller what comes next. The set of variants is closed.
type Directive interface {
	directive()
	fmt.Stringer
}

// ContinueScenario moves to the next scenario of the same level.
type ContinueScenario struct {
	Level int
	Index int
	Score int
}

// EnterQuiz closes the level and shows its result.
type EnterQuiz struct {
	Level int
	Score int
	Total int
}

// RetryLevel restarts a failed level from its first scenario with a zero score.
type RetryLevel struct {
	Level int
	Index int
}

// AdvanceLevel starts the given level from its first scenario with a zero score.
type AdvanceLevel struct {
	Level int
}

// Complete ends the run after the last level.
type Complete struct{}

// ReturnToIntro falls back to the start screen when no scenario exists.
type ReturnToIntro struct{}

func (ContinueScenario) directive() {}
func (EnterQuiz) directive()        {}
func (RetryLevel) directive()       {}
func (AdvanceLevel) directive()     {}
func (Complete) directive()         {}
func (ReturnToIntro) directive()    {}

func (d ContinueScenario) String() string {
	return fmt.Sprintf("continue(level=%d,index=%d,score=%d)", d.Level, d.Index, d.Score)
}

func (d EnterQuiz) String() string {
	return fmt.Sprintf("quiz(level=%d,score=%d,total=%d)", d.Level, d.Score, d.Total)
}

func (d RetryLevel) String() string {
	return fmt.Sprintf("retry(level=%d,index=%d)", d.Level, d.Index)
}

func (d AdvanceLevel) String() string {
	return fmt.Sprintf("advance(level=%d)", d.Level)
}

func (Complete) String() string { return "complete" }

func (ReturnToIntro) String() string { return "intro" }
