// Plain renders screens as colorized text lines and reads answers from a
// line-oriented input, for terminals without TUI support and for piped use.
package render

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"scamquiz/internal/catalog"
	"scamquiz/internal/engine"
	"scamquiz/internal/session"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
	colorBold    = "\x1b[1m"

	defaultWidth = 72
)

var skinColors = map[catalog.Skin]string{
	catalog.SkinEmail:    colorBlue,
	catalog.SkinTelegram: colorCyan,
	catalog.SkinDating:   colorMagenta,
}

// Plain prints screens to out and reads one line per answer.
type Plain struct {
	out   io.Writer
	lines chan string
	width int
	color bool
}

// NewPlain creates a Plain renderer on stdin and stdout.
func NewPlain() *Plain {
	return NewPlainIO(os.Stdin, os.Stdout, true)
}

// NewPlainIO creates a Plain renderer on the given streams.
func NewPlainIO(in io.Reader, out io.Writer, color bool) *Plain {
	p := &Plain{out: out, lines: make(chan string), width: defaultWidth, color: color}
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			p.lines <- sc.Text()
		}
		close(p.lines)
	}()
	return p
}

// Render prints s and prompts until the input yields a valid action. End of
// input counts as quitting.
func (p *Plain) Render(ctx context.Context, s session.Screen) (session.Action, error) {
	writeScreen(p.out, s, p.width, p.color)
	for {
		fmt.Fprint(p.out, p.paint(colorGray, prompt(s)))
		var line string
		select {
		case <-ctx.Done():
			return session.Action{}, ctx.Err()
		case l, ok := <-p.lines:
			if !ok {
				fmt.Fprintln(p.out)
				return session.Quit(), nil
			}
			line = l
		}
		if a, ok := parseAnswer(s, line); ok {
			return a, nil
		}
		fmt.Fprintln(p.out, p.paint(colorYellow, "Please enter a valid option."))
	}
}

func (p *Plain) paint(color, s string) string {
	if !p.color {
		return s
	}
	return color + s + colorReset
}

func prompt(s session.Screen) string {
	switch s := s.(type) {
	case session.ScenarioScreen:
		return fmt.Sprintf("choice [1-%d, q]: ", len(s.Scenario.Choices))
	case session.EndScreen:
		return "[enter/r restart, q quit]: "
	default:
		return "[enter, q quit]: "
	}
}

// parseAnswer maps one input line to an action for screen s.
func parseAnswer(s session.Screen, line string) (session.Action, bool) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "q" || line == "quit" {
		return session.Quit(), true
	}
	switch s := s.(type) {
	case session.ScenarioScreen:
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(s.Scenario.Choices) {
			return session.Action{}, false
		}
		return session.Choose(n - 1), true
	case session.EndScreen:
		if line == "" || line == "r" {
			return session.Restart(), true
		}
		return session.Action{}, false
	default:
		if line != "" {
			return session.Action{}, false
		}
		return actionFor(s, 0), true
	}
}

// writeScreen prints a screen in the line format shared by Plain and Script.
func writeScreen(w io.Writer, s session.Screen, width int, color bool) {
	c := func(code, text string) string {
		if !color {
			return text
		}
		return code + text + colorReset
	}
	fmt.Fprintln(w)
	switch s := s.(type) {
	case session.IntroScreen:
		fmt.Fprintln(w, c(colorBold+colorGreen, introTitle))
		fmt.Fprintln(w, wordwrap.String(introText, width))
	case session.ScenarioScreen:
		sc := s.Scenario
		fmt.Fprintln(w, c(colorGray, fmt.Sprintf("Level %d · Scenario %d/%d · Score %d", s.Level, s.Index+1, sc.TotalInLevel, s.Score)))
		skin := skinColors[sc.Type]
		switch sc.Type {
		case catalog.SkinEmail:
			name, addr := splitSender(sc.Sender)
			if sc.Subject != "" {
				fmt.Fprintln(w, c(colorBold, sc.Subject))
			}
			fmt.Fprintf(w, "%s %s\n", c(skin, name), c(colorGray, addr))
		case catalog.SkinTelegram:
			fmt.Fprintf(w, "%s %s\n", c(skin, sc.Sender), c(colorGray, lastSeen))
		default:
			fmt.Fprintln(w, c(skin, sc.Sender))
		}
		fmt.Fprintln(w, wordwrap.String(sc.Context, width))
		fmt.Fprintln(w, c(colorBold, chooseHeading))
		for i, ch := range sc.Choices {
			fmt.Fprintf(w, "  %d. %s\n", i+1, ch.Text)
		}
	case session.FeedbackScreen:
		status, title := feedbackHeadline(s.Outcome)
		col := colorGreen
		if s.Outcome != engine.Safe {
			col = colorRed
		}
		fmt.Fprintf(w, "%s %s\n", c(col, status), title)
		fmt.Fprintln(w, wordwrap.String(s.Scenario.Explanation, width))
		fmt.Fprintf(w, "%s  score %d\n", progressDots(s.Index, s.Scenario.TotalInLevel), s.Score)
		fmt.Fprintln(w, c(colorBold, feedbackButton(s)))
	case session.QuizScreen:
		b := bandFor(s.Classification)
		col := colorGreen
		if s.Classification == engine.Poor {
			col = colorRed
		}
		fmt.Fprintln(w, c(col, b.Badge))
		fmt.Fprintln(w, c(colorBold, b.Title))
		fmt.Fprintf(w, "Level %d: %d / %d CORRECT\n", s.Result.Level, s.Result.Score, s.Result.Total)
		fmt.Fprintln(w, wordwrap.String(b.Desc, width))
		fmt.Fprintln(w, c(colorBold, quizButton(s)))
	case session.EndScreen:
		fmt.Fprintln(w, c(colorBold+colorGreen, endTitle))
		fmt.Fprintln(w, endSubtitle)
		for _, r := range s.Results {
			fmt.Fprintf(w, "  Level %d: %d/%d %s\n", r.Level, r.Score, r.Total, c(colorGray, string(r.Classification())))
		}
		for _, tip := range awarenessTips {
			fmt.Fprintln(w, "  "+tip)
		}
	}
}
