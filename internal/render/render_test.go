package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scamquiz/internal/catalog"
	"scamquiz/internal/engine"
	"scamquiz/internal/session"
)

type fakeProgram struct {
	msgs  []tea.Msg
	reply *session.Action
}

func (f *fakeProgram) Send(msg tea.Msg) {
	f.msgs = append(f.msgs, msg)
	if sm, ok := msg.(screenMsg); ok && f.reply != nil {
		sm.reply <- *f.reply
	}
}

func scenarioScreen(skin catalog.Skin) session.ScenarioScreen {
	return session.ScenarioScreen{
		Level: 1,
		Scenario: catalog.Scenario{
			Level: 1, TotalInLevel: 2, Type: skin,
			Sender:  "PayPal Security <security@paypa1-alerts.com>",
			Subject: "Your account has been limited",
			Context: "Confirm your identity within 24 hours.",
			Choices: []catalog.Choice{
				{Text: "Click the link", Outcome: engine.Risky},
				{Text: "Open the site directly", Outcome: engine.Safe},
				{Text: "Reply to the sender", Outcome: engine.Risky},
			},
			Explanation: "Look at the domain.",
		},
	}
}

func keyRune(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func update(t *testing.T, m tuiModel, msg tea.Msg) (tuiModel, tea.Cmd) {
	t.Helper()
	mi, cmd := m.Update(msg)
	return mi.(tuiModel), cmd
}

func TestTUIRenderReturnsReply(t *testing.T) {
	cont := session.Continue()
	p := &fakeProgram{reply: &cont}
	r := &TUI{program: p, done: make(chan struct{})}
	a, err := r.Render(context.Background(), session.QuizScreen{})
	if err != nil || a.Kind != session.ActionContinue {
		t.Fatalf("got %+v, %v", a, err)
	}
	if _, ok := p.msgs[0].(screenMsg); !ok {
		t.Fatalf("expected screenMsg, got %T", p.msgs[0])
	}
}

func TestTUIRenderAfterExit(t *testing.T) {
	done := make(chan struct{})
	close(done)
	r := &TUI{program: &fakeProgram{}, done: done}
	if _, err := r.Render(context.Background(), session.IntroScreen{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestTUIRenderCancelled(t *testing.T) {
	r := &TUI{program: &fakeProgram{}, done: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := r.Render(ctx, session.IntroScreen{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline, got %v", err)
	}
}

func TestTUIClose(t *testing.T) {
	p := &fakeProgram{}
	done := make(chan struct{})
	close(done)
	r := &TUI{program: p, done: done}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := p.msgs[0].(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", p.msgs[0])
	}
}

func TestModelCursorSelect(t *testing.T) {
	reply := make(chan session.Action, 1)
	m, _ := update(t, newTUIModel(), tea.WindowSizeMsg{Width: 80, Height: 30})
	m, _ = update(t, m, screenMsg{screen: scenarioScreen(catalog.SkinEmail), reply: reply})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	m, _ = update(t, m, keyRune('k'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if a := <-reply; a != session.Choose(1) {
		t.Fatalf("got %+v, want choose 1", a)
	}
	// a second key press on the same screen must not block or resend
	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	select {
	case a := <-reply:
		t.Fatalf("unexpected second action %+v", a)
	default:
	}
}

func TestModelNumberKeyChooses(t *testing.T) {
	reply := make(chan session.Action, 1)
	m, _ := update(t, newTUIModel(), screenMsg{screen: scenarioScreen(catalog.SkinTelegram), reply: reply})
	m, _ = update(t, m, keyRune('9'))
	select {
	case a := <-reply:
		t.Fatalf("out of range key produced %+v", a)
	default:
	}
	_, _ = update(t, m, keyRune('3'))
	if a := <-reply; a != session.Choose(2) {
		t.Fatalf("got %+v, want choose 2", a)
	}
}

func TestModelScreenActions(t *testing.T) {
	cases := []struct {
		screen session.Screen
		key    tea.KeyMsg
		want   session.Action
	}{
		{session.IntroScreen{}, tea.KeyMsg{Type: tea.KeyEnter}, session.Start()},
		{session.FeedbackScreen{Outcome: engine.Safe}, tea.KeyMsg{Type: tea.KeyEnter}, session.Continue()},
		{session.QuizScreen{Classification: engine.Poor}, tea.KeyMsg{Type: tea.KeyEnter}, session.Continue()},
		{session.EndScreen{}, keyRune('r'), session.Restart()},
	}
	for _, tc := range cases {
		reply := make(chan session.Action, 1)
		m, _ := update(t, newTUIModel(), screenMsg{screen: tc.screen, reply: reply})
		_, _ = update(t, m, tc.key)
		if a := <-reply; a != tc.want {
			t.Fatalf("%s: got %+v, want %+v", tc.screen.Phase(), a, tc.want)
		}
	}
}

func TestModelQuit(t *testing.T) {
	reply := make(chan session.Action, 1)
	m, _ := update(t, newTUIModel(), screenMsg{screen: session.IntroScreen{}, reply: reply})
	_, cmd := update(t, m, keyRune('q'))
	if a := <-reply; a.Kind != session.ActionQuit {
		t.Fatalf("expected quit, got %+v", a)
	}
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestRenderBodySkins(t *testing.T) {
	email := renderBody(scenarioScreen(catalog.SkinEmail), 0, 100)
	for _, want := range []string{"Your account has been limited", "PayPal Security", "<security@paypa1-alerts.com>", chooseHeading} {
		if !strings.Contains(email, want) {
			t.Fatalf("email view missing %q:\n%s", want, email)
		}
	}
	if tg := renderBody(scenarioScreen(catalog.SkinTelegram), 0, 100); !strings.Contains(tg, lastSeen) {
		t.Fatalf("telegram view missing status:\n%s", tg)
	}
	dating := scenarioScreen(catalog.SkinDating)
	dating.Scenario.Sender = "Sophie"
	if v := renderBody(dating, 0, 100); !strings.Contains(v, "Sophie") || strings.Contains(v, "Your account has been limited") {
		t.Fatalf("unexpected dating view:\n%s", v)
	}
}

func TestRenderBodyBands(t *testing.T) {
	q := renderBody(session.QuizScreen{Result: engine.LevelResult{Level: 3, Score: 0, Total: 3}, Classification: engine.Poor}, 0, 100)
	if !strings.Contains(q, "SECURITY BREACH") || !strings.Contains(q, "RETRY LEVEL") {
		t.Fatalf("unexpected poor quiz view:\n%s", q)
	}
	q = renderBody(session.QuizScreen{Result: engine.LevelResult{Level: 1, Score: 2, Total: 2}, Classification: engine.Perfect}, 0, 100)
	if !strings.Contains(q, "MISSION ACCOMPLISHED") || !strings.Contains(q, "NEXT MISSION") {
		t.Fatalf("unexpected perfect quiz view:\n%s", q)
	}
	end := renderBody(session.EndScreen{Results: []engine.LevelResult{{Level: 1, Score: 1, Total: 2}}}, 0, 100)
	for _, tip := range awarenessTips {
		if !strings.Contains(end, tip) {
			t.Fatalf("end view missing tip %q", tip)
		}
	}
}

func TestTextHelpers(t *testing.T) {
	if got := progressDots(1, 3); got != "● ● ○" {
		t.Fatalf("progressDots = %q", got)
	}
	name, addr := splitSender("IT Helpdesk <it@corp-support.net>")
	if name != "IT Helpdesk" || addr != "<it@corp-support.net>" {
		t.Fatalf("splitSender = %q, %q", name, addr)
	}
	if name, addr := splitSender("Mom"); name != "Mom" || addr != "" {
		t.Fatalf("splitSender without address = %q, %q", name, addr)
	}
	if got := feedbackButton(session.FeedbackScreen{Last: true}); !strings.HasPrefix(got, "VIEW FINAL RESULTS") {
		t.Fatalf("feedbackButton = %q", got)
	}
}

func TestPlainReprompts(t *testing.T) {
	var out bytes.Buffer
	p := NewPlainIO(strings.NewReader("abc\n7\n2\n"), &out, false)
	a, err := p.Render(context.Background(), scenarioScreen(catalog.SkinEmail))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if a != session.Choose(1) {
		t.Fatalf("got %+v, want choose 1", a)
	}
	if strings.Count(out.String(), "Please enter a valid option.") != 2 {
		t.Fatalf("expected two reprompts:\n%s", out.String())
	}
	if strings.Contains(out.String(), "\x1b[") {
		t.Fatalf("colorless output contains escape codes")
	}
}

func TestPlainAnswers(t *testing.T) {
	p := NewPlainIO(strings.NewReader("\n\nr\nq\n"), &bytes.Buffer{}, true)
	steps := []struct {
		screen session.Screen
		want   session.Action
	}{
		{session.IntroScreen{}, session.Start()},
		{session.FeedbackScreen{Outcome: engine.Risky}, session.Continue()},
		{session.EndScreen{}, session.Restart()},
		{session.IntroScreen{}, session.Quit()},
	}
	for _, st := range steps {
		a, err := p.Render(context.Background(), st.screen)
		if err != nil || a != st.want {
			t.Fatalf("%s: got %+v, %v, want %+v", st.screen.Phase(), a, err, st.want)
		}
	}
	a, err := p.Render(context.Background(), session.IntroScreen{})
	if err != nil || a.Kind != session.ActionQuit {
		t.Fatalf("end of input should quit, got %+v, %v", a, err)
	}
}

func TestScriptPlaysThenQuits(t *testing.T) {
	var out bytes.Buffer
	s := NewScript(session.Start(), session.Choose(0)).Echo(&out, false)
	ctx := context.Background()
	if a, _ := s.Render(ctx, session.IntroScreen{}); a != session.Start() {
		t.Fatalf("first action %+v", a)
	}
	if a, _ := s.Render(ctx, scenarioScreen(catalog.SkinEmail)); a != session.Choose(0) {
		t.Fatalf("second action %+v", a)
	}
	if a, _ := s.Render(ctx, session.FeedbackScreen{}); a.Kind != session.ActionQuit {
		t.Fatalf("exhausted script should quit, got %+v", a)
	}
	if len(s.Screens) != 3 || s.Remaining() != 0 {
		t.Fatalf("unexpected script state: %d screens, %d remaining", len(s.Screens), s.Remaining())
	}
	if !strings.Contains(out.String(), "> choose 1") || !strings.Contains(out.String(), introTitle) {
		t.Fatalf("unexpected echo:\n%s", out.String())
	}
}
