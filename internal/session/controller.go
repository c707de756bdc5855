// Package session drives one quiz run: it owns the live progression state,
// feeds player actions through the engine and asks a Renderer for the next
// screen.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"scamquiz/internal/catalog"
	"scamquiz/internal/engine"
	"scamquiz/internal/logging"
	"scamquiz/internal/record"
)

var (
	// ErrUnexpectedAction is returned for an action that does not belong to the current screen.
	ErrUnexpectedAction = errors.New("unexpected action")
	// ErrInvalidChoice is returned for a choice index outside the scenario's choices.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrContractViolation is returned instead of calling the engine with input it must not see.
	ErrContractViolation = errors.New("contract violation")
)

// Option configures a Controller.
type Option func(*Controller)

// WithRecorder sends transitions and level results to r.
func WithRecorder(r record.Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// WithLogger sets the logger. Without it Run uses the logger stored in its context.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock overrides the time source used for recorded rows.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides how session IDs are produced.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// Controller owns the single live State of a session. It is not safe for
// concurrent use; Run is the only loop that should call Handle.
type Controller struct {
	catalog  *catalog.Catalog
	renderer Renderer
	recorder record.Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	id      string
	phase   engine.Phase
	state   engine.State
	current catalog.Scenario
	outcome engine.Outcome
	score   int
	pending engine.Directive
	quiz    engine.LevelResult
	class   engine.Classification

	results  map[int]engine.LevelResult
	attempts map[int]int
	seq      int
	done     bool
}

// New creates a controller on the intro screen.
func New(cat *catalog.Catalog, r Renderer, opts ...Option) *Controller {
	c := &Controller{
		catalog:  cat,
		renderer: r,
		recorder: record.Nop{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.reset()
	return c
}

// ID returns the current session ID. A restart starts a new session.
func (c *Controller) ID() string { return c.id }

// State returns a copy of the live state.
func (c *Controller) State() engine.State { return c.state }

// Phase returns the current screen kind.
func (c *Controller) Phase() engine.Phase { return c.phase }

// Done reports whether the player quit.
func (c *Controller) Done() bool { return c.done }

// Results returns the latest result per finished level, in level order.
func (c *Controller) Results() []engine.LevelResult {
	out := make([]engine.LevelResult, 0, len(c.results))
	for l := engine.FirstLevel; l <= engine.MaxLevel; l++ {
		if r, ok := c.results[l]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Screen returns the display request for the current phase.
func (c *Controller) Screen() Screen {
	switch c.phase {
	case engine.PhaseScenario:
		return ScenarioScreen{Scenario: c.current, Level: c.state.Level, Index: c.state.Index, Score: c.state.Score}
	case engine.PhaseFeedback:
		_, last := c.pending.(engine.EnterQuiz)
		return FeedbackScreen{
			Scenario: c.current, Level: c.state.Level, Index: c.state.Index,
			Score: c.score, Outcome: c.outcome, Last: last,
		}
	case engine.PhaseQuiz:
		return QuizScreen{Result: c.quiz, Classification: c.class, Attempt: c.attempts[c.quiz.Level], Final: c.quiz.Level >= engine.MaxLevel}
	case engine.PhaseEnd:
		return EndScreen{Results: c.Results()}
	default:
		return IntroScreen{}
	}
}

// Run renders screens and applies actions until the player quits or ctx is
// done. A cancelled interaction leaves the state untouched.
func (c *Controller) Run(ctx context.Context) error {
	if c.logger == nil {
		c.logger = logging.FromContext(ctx)
	}
	for !c.done {
		screen := c.Screen()
		action, err := c.renderer.Render(ctx, screen)
		if err != nil {
			if ctx.Err() != nil {
				c.log().Debug("interaction discarded", "session_id", c.id, "phase", screen.Phase())
				return ctx.Err()
			}
			return fmt.Errorf("render %s: %w", screen.Phase(), err)
		}
		if err := c.Handle(action); err != nil {
			if errors.Is(err, ErrUnexpectedAction) || errors.Is(err, ErrInvalidChoice) {
				c.log().Warn("ignoring action", "session_id", c.id, "phase", c.phase, "err", err)
				continue
			}
			return err
		}
	}
	return nil
}

// Handle applies one player action. On error the state is unchanged.
func (c *Controller) Handle(a Action) error {
	from := c.phase
	var (
		d   engine.Directive
		err error
	)
	switch {
	case a.Kind == ActionQuit:
		c.done = true
	case from == engine.PhaseIntro && a.Kind == ActionStart:
		d = c.apply(engine.AdvanceLevel{Level: engine.FirstLevel})
	case from == engine.PhaseScenario && a.Kind == ActionChoose:
		d, err = c.choose(a.Choice)
	case from == engine.PhaseFeedback && a.Kind == ActionContinue:
		d = c.apply(c.pending)
	case from == engine.PhaseQuiz && a.Kind == ActionContinue:
		d, err = c.afterQuiz()
	case from == engine.PhaseEnd && a.Kind == ActionRestart:
		c.reset()
		d = engine.ReturnToIntro{}
	default:
		err = fmt.Errorf("%w: %s on %s screen", ErrUnexpectedAction, a.Kind, from)
	}
	if err != nil {
		return err
	}
	c.recordTransition(from, a, d)
	return nil
}

func (c *Controller) choose(i int) (engine.Directive, error) {
	if i < 0 || i >= len(c.current.Choices) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidChoice, i, len(c.current.Choices))
	}
	outcome := c.current.Choices[i].Outcome
	if !outcome.Valid() {
		return nil, fmt.Errorf("%w: outcome %q", ErrContractViolation, outcome)
	}
	c.score = engine.ResolveChoice(c.state, outcome)
	c.outcome = outcome
	c.pending = engine.NextAfterFeedback(c.state, c.score)
	c.phase = engine.PhaseFeedback
	return c.pending, nil
}

func (c *Controller) afterQuiz() (engine.Directive, error) {
	if c.quiz.Total <= 0 {
		return nil, fmt.Errorf("%w: level %d has total %d", ErrContractViolation, c.quiz.Level, c.quiz.Total)
	}
	d := engine.NextAfterQuiz(c.quiz.Level, engine.Classify(c.quiz.Score, c.quiz.Total))
	return c.apply(d), nil
}

// apply moves to the screen a directive leads to and returns the directive
// that was actually applied; a missing scenario turns into ReturnToIntro.
func (c *Controller) apply(d engine.Directive) engine.Directive {
	switch d := d.(type) {
	case engine.ContinueScenario:
		return c.enter(d, d.Level, d.Index)
	case engine.RetryLevel:
		return c.enter(d, d.Level, d.Index)
	case engine.AdvanceLevel:
		return c.enter(d, d.Level, 0)
	case engine.EnterQuiz:
		if d.Total <= 0 {
			c.log().Error("level without scenarios reached quiz", "session_id", c.id, "level", d.Level)
			c.reset()
			return engine.ReturnToIntro{}
		}
		c.state = engine.Apply(c.state, d, d.Total)
		c.quiz = engine.LevelResult{Level: d.Level, Score: d.Score, Total: d.Total}
		c.class = engine.Classify(d.Score, d.Total)
		c.attempts[d.Level]++
		c.results[d.Level] = c.quiz
		c.phase = engine.PhaseQuiz
		c.recordResult()
		return d
	case engine.Complete:
		c.phase = engine.PhaseEnd
		return d
	default:
		c.reset()
		return engine.ReturnToIntro{}
	}
}

func (c *Controller) enter(d engine.Directive, level, index int) engine.Directive {
	sc, ok := c.catalog.ScenarioAt(level, index)
	if !ok {
		c.log().Warn("no scenario, returning to intro", "session_id", c.id, "level", level, "index", index)
		c.reset()
		return engine.ReturnToIntro{}
	}
	c.state = engine.Apply(c.state, d, sc.TotalInLevel)
	c.current = sc
	c.pending = nil
	c.phase = engine.PhaseScenario
	return d
}

func (c *Controller) reset() {
	c.id = c.newID()
	c.phase = engine.PhaseIntro
	c.state = engine.Initial()
	c.current = catalog.Scenario{}
	c.pending = nil
	c.results = make(map[int]engine.LevelResult)
	c.attempts = make(map[int]int)
	c.seq = 0
}

func (c *Controller) recordTransition(from engine.Phase, a Action, d engine.Directive) {
	c.seq++
	row := record.TransitionRow{
		SessionID: c.id,
		Seq:       c.seq,
		From:      from,
		To:        c.phase,
		Action:    string(a.Kind),
		Choice:    a.Choice,
		Level:     c.state.Level,
		Index:     c.state.Index,
		Score:     c.state.Score,
		Timestamp: c.now().UTC(),
	}
	if a.Kind == ActionChoose {
		row.Outcome = c.outcome
		row.Score = c.score
	} else {
		row.Choice = -1
	}
	if d != nil {
		row.Directive = d.String()
	}
	if err := c.recorder.WriteTransition(row); err != nil {
		c.log().Warn("record transition failed", "session_id", c.id, "err", err)
	}
}

func (c *Controller) recordResult() {
	row := record.LevelResultRow{
		SessionID:      c.id,
		Level:          c.quiz.Level,
		Attempt:        c.attempts[c.quiz.Level],
		Score:          c.quiz.Score,
		Total:          c.quiz.Total,
		Classification: c.class,
		Timestamp:      c.now().UTC(),
	}
	if err := c.recorder.WriteResult(row); err != nil {
		c.log().Warn("record result failed", "session_id", c.id, "err", err)
	}
}

func (c *Controller) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}
	return c.logger
}
