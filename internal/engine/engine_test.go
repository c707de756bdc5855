package engine

import (
	"errors"
	"testing"
)

func TestResolveChoice(t *testing.T) {
	s := State{Level: 1, Index: 0, Score: 1, TotalInLevel: 3}
	if got := ResolveChoice(s, Safe); got != 2 {
		t.Fatalf("safe: expected 2, got %d", got)
	}
	if got := ResolveChoice(s, Risky); got != 1 {
		t.Fatalf("risky: expected 1, got %d", got)
	}
}

func TestResolveChoiceScoreStaysInRange(t *testing.T) {
	for _, path := range [][]Outcome{
		{Safe, Safe, Safe},
		{Risky, Risky, Risky},
		{Safe, Risky, Safe},
		{Risky, Safe, Risky},
	} {
		s := State{Level: 2, TotalInLevel: len(path)}
		prev := 0
		for i, o := range path {
			s.Index = i
			s.Score = ResolveChoice(s, o)
			if s.Score < prev {
				t.Fatalf("score decreased from %d to %d on %v", prev, s.Score, path)
			}
			if s.Score < 0 || s.Score > s.TotalInLevel {
				t.Fatalf("score %d outside [0,%d]", s.Score, s.TotalInLevel)
			}
			prev = s.Score
		}
	}
}

func TestResolveChoiceUnknownOutcomePanics(t *testing.T) {
	defer func() {
		r := recover()
		var cv ContractViolation
		if err, ok := r.(error); !ok || !errors.As(err, &cv) {
			t.Fatalf("expected ContractViolation panic, got %v", r)
		}
	}()
	ResolveChoice(State{TotalInLevel: 1}, Outcome("maybe"))
}

func TestNextAfterFeedback(t *testing.T) {
	d := NextAfterFeedback(State{Level: 1, Index: 0, Score: 0, TotalInLevel: 2}, 1)
	want := ContinueScenario{Level: 1, Index: 1, Score: 1}
	if d != want {
		t.Fatalf("expected %v, got %v", want, d)
	}

	d = NextAfterFeedback(State{Level: 1, Index: 1, Score: 1, TotalInLevel: 2}, 2)
	if q, ok := d.(EnterQuiz); !ok || q.Score != 2 || q.Total != 2 || q.Level != 1 {
		t.Fatalf("expected quiz(1,2,2), got %v", d)
	}
}

func TestNextAfterFeedbackSingleScenarioLevel(t *testing.T) {
	d := NextAfterFeedback(State{Level: 3, Index: 0, TotalInLevel: 1}, 0)
	if _, ok := d.(EnterQuiz); !ok {
		t.Fatalf("expected EnterQuiz for totalInLevel=1, got %v", d)
	}
}

func TestClassify(t *testing.T) {
	if c := Classify(4, 4); c != Perfect {
		t.Fatalf("expected perfect, got %s", c)
	}
	if c := Classify(0, 4); c != Poor {
		t.Fatalf("expected poor, got %s", c)
	}
	for k := 1; k < 4; k++ {
		if c := Classify(k, 4); c != Mixed {
			t.Fatalf("score %d: expected mixed, got %s", k, c)
		}
	}
	if c := (LevelResult{Level: 1, Score: 1, Total: 1}).Classification(); c != Perfect {
		t.Fatalf("expected perfect for 1/1, got %s", c)
	}
}

func TestClassifyZeroTotalPanics(t *testing.T) {
	defer func() {
		if _, ok := recover().(ContractViolation); !ok {
			t.Fatalf("expected ContractViolation panic")
		}
	}()
	Classify(0, 0)
}

func TestNextAfterQuiz(t *testing.T) {
	for level := FirstLevel; level <= MaxLevel; level++ {
		d := NextAfterQuiz(level, Poor)
		if d != (RetryLevel{Level: level, Index: 0}) {
			t.Fatalf("level %d poor: expected retry, got %v", level, d)
		}
	}
	if d := NextAfterQuiz(1, Perfect); d != (AdvanceLevel{Level: 2}) {
		t.Fatalf("expected advance(2), got %v", d)
	}
	if d := NextAfterQuiz(2, Mixed); d != (AdvanceLevel{Level: 3}) {
		t.Fatalf("expected advance(3), got %v", d)
	}
	if d := NextAfterQuiz(3, Mixed); d != (Complete{}) {
		t.Fatalf("expected complete, got %v", d)
	}
	if d := NextAfterQuiz(3, Perfect); d != (Complete{}) {
		t.Fatalf("expected complete, got %v", d)
	}
}

func TestApplyResetsScoreOnRetryAndAdvance(t *testing.T) {
	s := State{Level: 3, Index: 1, Score: 0, TotalInLevel: 2}
	got := Apply(s, NextAfterQuiz(3, Poor), 2)
	if got != (State{Level: 3, Index: 0, Score: 0, TotalInLevel: 2}) {
		t.Fatalf("retry: unexpected state %+v", got)
	}

	s = State{Level: 1, Index: 1, Score: 2, TotalInLevel: 2}
	got = Apply(s, NextAfterQuiz(1, Perfect), 3)
	if got != (State{Level: 2, Index: 0, Score: 0, TotalInLevel: 3}) {
		t.Fatalf("advance: unexpected state %+v", got)
	}

	if got := Apply(s, ReturnToIntro{}, 0); got != Initial() {
		t.Fatalf("intro: unexpected state %+v", got)
	}
}

func TestLevelWithTwoSafeChoicesAdvances(t *testing.T) {
	s := State{Level: 1, TotalInLevel: 2}
	var d Directive
	for range 2 {
		score := ResolveChoice(s, Safe)
		d = NextAfterFeedback(s, score)
		s = Apply(s, d, s.TotalInLevel)
	}
	q, ok := d.(EnterQuiz)
	if !ok || q.Score != 2 || q.Total != 2 {
		t.Fatalf("expected quiz 2/2, got %v", d)
	}
	c := Classify(q.Score, q.Total)
	if c != Perfect {
		t.Fatalf("expected perfect, got %s", c)
	}
	if next := NextAfterQuiz(q.Level, c); next != (AdvanceLevel{Level: 2}) {
		t.Fatalf("expected advance(2), got %v", next)
	}
}

func TestParseOutcome(t *testing.T) {
	if o, err := ParseOutcome("risky"); err != nil || o != Risky {
		t.Fatalf("parse risky: %v %v", o, err)
	}
	if _, err := ParseOutcome("partial"); err == nil {
		t.Fatalf("expected error for unknown outcome")
	}
}
