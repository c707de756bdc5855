package session

import (
	"context"
	"fmt"

	"scamquiz/internal/catalog"
	"scamquiz/internal/engine"
)

// Screen is a display request handed to a Renderer. The set of variants is closed.
type Screen interface {
	Phase() engine.Phase
}

// IntroScreen is the start screen.
type IntroScreen struct{}

// ScenarioScreen asks the player to pick a choice.
type ScenarioScreen struct {
	Scenario catalog.Scenario
	Level    int
	Index    int
	Score    int
}

// FeedbackScreen shows the explanation after a choice. Score already
// includes the choice. Last is set when the level quiz follows.
type FeedbackScreen struct {
	Scenario catalog.Scenario
	Level    int
	Index    int
	Score    int
	Outcome  engine.Outcome
	Last     bool
}

// QuizScreen shows the result of a finished level.
type QuizScreen struct {
	Result         engine.LevelResult
	Classification engine.Classification
	Attempt        int
	Final          bool
}

// EndScreen is the summary after the last level.
type EndScreen struct {
	Results []engine.LevelResult
}

func (IntroScreen) Phase() engine.Phase    { return engine.PhaseIntro }
func (ScenarioScreen) Phase() engine.Phase { return engine.PhaseScenario }
func (FeedbackScreen) Phase() engine.Phase { return engine.PhaseFeedback }
func (QuizScreen) Phase() engine.Phase     { return engine.PhaseQuiz }
func (EndScreen) Phase() engine.Phase      { return engine.PhaseEnd }

// ActionKind is what the player did on a screen.
type ActionKind string

const (
	ActionStart    ActionKind = "start"
	ActionChoose   ActionKind = "choose"
	ActionContinue ActionKind = "continue"
	ActionRestart  ActionKind = "restart"
	ActionQuit     ActionKind = "quit"
)

// ParseActionKind converts a recorded action name.
func ParseActionKind(s string) (ActionKind, error) {
	switch k := ActionKind(s); k {
	case ActionStart, ActionChoose, ActionContinue, ActionRestart, ActionQuit:
		return k, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Action is the single user response to a Screen. Choice is the index of the
// selected choice and only meaningful for ActionChoose.
type Action struct {
	Kind   ActionKind
	Choice int
}

// Start, Choose, Continue, Restart and Quit build actions.
func Start() Action           { return Action{Kind: ActionStart, Choice: -1} }
func Choose(index int) Action { return Action{Kind: ActionChoose, Choice: index} }
func Continue() Action        { return Action{Kind: ActionContinue, Choice: -1} }
func Restart() Action         { return Action{Kind: ActionRestart, Choice: -1} }
func Quit() Action            { return Action{Kind: ActionQuit, Choice: -1} }

// Renderer draws screens and reports exactly one action per screen. Render
// blocks until the player acts or ctx is done.
type Renderer interface {
	Render(ctx context.Context, s Screen) (Action, error)
}
