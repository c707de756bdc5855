// Package engine holds the pure progression and scoring rules of the quiz.
//
// Every function here is total over well-formed input. Input the caller must
// rule out (an unknown outcome, a level with no scenarios) panics with a
// ContractViolation instead of returning an error.
package engine

import "fmt"

// ResolveChoice returns the score after answering the current scenario.
func ResolveChoice(s State, o Outcome) int {
	if !o.Valid() {
		panic(ContractViolation{Op: "ResolveChoice", Detail: fmt.Sprintf("outcome %q", o)})
	}
	if o != Safe {
		return s.Score
	}
	next := s.Score + 1
	if next > s.TotalInLevel {
		panic(ContractViolation{Op: "ResolveChoice", Detail: fmt.Sprintf("score %d exceeds total %d", next, s.TotalInLevel)})
	}
	return next
}

// NextAfterFeedback decides between the next scenario and the level quiz.
// The last scenario is the one where Index+1 == TotalInLevel, whatever the score.
func NextAfterFeedback(s State, newScore int) Directive {
	if s.Index+1 < s.TotalInLevel {
		return ContinueScenario{Level: s.Level, Index: s.Index + 1, Score: newScore}
	}
	return EnterQuiz{Level: s.Level, Score: newScore, Total: s.TotalInLevel}
}

// Classify bands a level score.
func Classify(score, total int) Classification {
	if total <= 0 {
		panic(ContractViolation{Op: "Classify", Detail: fmt.Sprintf("total %d", total)})
	}
	switch {
	case score == total:
		return Perfect
	case score == 0:
		return Poor
	default:
		return Mixed
	}
}

// NextAfterQuiz decides what follows a level result. A poor level is replayed
// from scratch; anything else moves on until MaxLevel is done.
func NextAfterQuiz(level int, c Classification) Directive {
	switch c {
	case Poor:
		return RetryLevel{Level: level, Index: 0}
	case Perfect, Mixed:
	default:
		panic(ContractViolation{Op: "NextAfterQuiz", Detail: fmt.Sprintf("classification %q", c)})
	}
	if level+1 <= MaxLevel {
		return AdvanceLevel{Level: level + 1}
	}
	return Complete{}
}

// Apply returns the state a directive leads to. totalInLevel is the size of
// the level the directive lands on; it is ignored for directives that leave
// the scenario loop.
func Apply(s State, d Directive, totalInLevel int) State {
	switch d := d.(type) {
	case ContinueScenario:
		return State{Level: d.Level, Index: d.Index, Score: d.Score, TotalInLevel: totalInLevel}
	case EnterQuiz:
		return State{Level: d.Level, Index: s.Index, Score: d.Score, TotalInLevel: d.Total}
	case RetryLevel:
		return State{Level: d.Level, Index: d.Index, TotalInLevel: totalInLevel}
	case AdvanceLevel:
		return State{Level: d.Level, TotalInLevel: totalInLevel}
	case Complete:
		return s
	case ReturnToIntro:
		return Initial()
	}
	panic(ContractViolation{Op: "Apply", Detail: fmt.Sprintf("directive %T", d)})
}
