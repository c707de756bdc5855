package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"scamquiz/internal/catalog"
	"scamquiz/internal/engine"
	"scamquiz/internal/session"
)

const (
	minCardWidth = 30
	maxCardWidth = 76
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle     = lipgloss.NewStyle().Bold(true)
	safeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	riskyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	buttonStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 2)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	skinBorders = map[catalog.Skin]lipgloss.Color{
		catalog.SkinEmail:    lipgloss.Color("12"),
		catalog.SkinTelegram: lipgloss.Color("14"),
		catalog.SkinDating:   lipgloss.Color("13"),
	}
)

func cardWidth(width int) int {
	w := width - 4
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < minCardWidth {
		w = minCardWidth
	}
	return w
}

// renderBody lays out one screen for the TUI viewport.
func renderBody(s session.Screen, cursor, width int) string {
	w := cardWidth(width)
	switch s := s.(type) {
	case session.ScenarioScreen:
		return renderScenario(s, cursor, w)
	case session.FeedbackScreen:
		return renderFeedback(s, w)
	case session.QuizScreen:
		return renderQuiz(s, w)
	case session.EndScreen:
		return renderEnd(s, w)
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			"",
			titleStyle.Render(introTitle),
			"",
			wordwrap.String(introText, w),
			"",
			buttonStyle.Render("START"),
		)
	}
}

func renderScenario(s session.ScenarioScreen, cursor, w int) string {
	var choices []string
	choices = append(choices, boldStyle.Render(chooseHeading))
	for i, ch := range s.Scenario.Choices {
		line := wordwrap.String(fmt.Sprintf("%d. %s", i+1, ch.Text), w-2)
		if i == cursor {
			choices = append(choices, selectedStyle.Render("> "+line))
		} else {
			choices = append(choices, "  "+line)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(fmt.Sprintf("Level %d · Scenario %d/%d · Score %d", s.Level, s.Index+1, s.Scenario.TotalInLevel, s.Score)),
		renderSkin(s.Scenario, w),
		"",
		strings.Join(choices, "\n"),
	)
}

// renderSkin draws the scenario the way its app would show it.
func renderSkin(sc catalog.Scenario, w int) string {
	inner := w - 4
	border, ok := skinBorders[sc.Type]
	if !ok {
		border = lipgloss.Color("8")
	}
	var lines []string
	switch sc.Type {
	case catalog.SkinEmail:
		name, addr := splitSender(sc.Sender)
		if sc.Subject != "" {
			lines = append(lines, boldStyle.Render(wordwrap.String(sc.Subject, inner)), "")
		}
		lines = append(lines,
			fmt.Sprintf("(%s) %s %s", initial(sc.Sender), boldStyle.Render(name), subtleStyle.Render(addr)),
			subtleStyle.Render(strings.Repeat("─", inner)),
			wordwrap.String(sc.Context, inner),
		)
	case catalog.SkinTelegram:
		lines = append(lines,
			fmt.Sprintf("(%s) %s", initial(sc.Sender), boldStyle.Render(sc.Sender)),
			subtleStyle.Render(lastSeen),
			"",
			lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Render(wordwrap.String(sc.Context, inner-4)),
			subtleStyle.Render("✓✓"),
		)
	case catalog.SkinDating:
		lines = append(lines,
			subtleStyle.Render("spark"),
			"",
			boldStyle.Render(sc.Sender)+" "+safeStyle.Render("✓"),
			wordwrap.String(sc.Context, inner),
			"",
			riskyStyle.Render("✖")+"   "+safeStyle.Render("♥"),
		)
	default:
		lines = append(lines, boldStyle.Render(sc.Sender), wordwrap.String(sc.Context, inner))
	}
	return cardStyle.BorderForeground(border).Width(w - 2).Render(strings.Join(lines, "\n"))
}

func renderFeedback(s session.FeedbackScreen, w int) string {
	status, title := feedbackHeadline(s.Outcome)
	style := safeStyle
	if s.Outcome != engine.Safe {
		style = riskyStyle
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		style.Render(status),
		boldStyle.Render(title),
		"",
		wordwrap.String(s.Scenario.Explanation, w-4),
		"",
		subtleStyle.Render(progressDots(s.Index, s.Scenario.TotalInLevel)),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(fmt.Sprintf("Level %d · Score %d", s.Level, s.Score)),
		cardStyle.BorderForeground(style.GetForeground()).Width(w-2).Render(body),
		"",
		buttonStyle.Render(feedbackButton(s)),
	)
}

func renderQuiz(s session.QuizScreen, w int) string {
	b := bandFor(s.Classification)
	style := safeStyle
	if s.Classification == engine.Poor {
		style = riskyStyle
	}
	attempt := ""
	if s.Attempt > 1 {
		attempt = subtleStyle.Render(fmt.Sprintf("attempt %d", s.Attempt))
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		style.Render(b.Badge),
		boldStyle.Render(b.Title),
		"",
		fmt.Sprintf("%d / %d CORRECT", s.Result.Score, s.Result.Total),
		wordwrap.String(b.Desc, w-4),
		attempt,
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(fmt.Sprintf("Level %d results", s.Result.Level)),
		cardStyle.BorderForeground(style.GetForeground()).Width(w-2).Render(body),
		"",
		buttonStyle.Render(quizButton(s)),
	)
}

func renderEnd(s session.EndScreen, w int) string {
	lines := []string{titleStyle.Render(endTitle), endSubtitle, ""}
	for _, r := range s.Results {
		lines = append(lines, fmt.Sprintf("Level %d: %d/%d %s", r.Level, r.Score, r.Total, subtleStyle.Render(string(r.Classification()))))
	}
	lines = append(lines, subtleStyle.Render(strings.Repeat("─", w-4)))
	for _, tip := range awarenessTips {
		lines = append(lines, wordwrap.String(tip, w-4))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		cardStyle.BorderForeground(lipgloss.Color("10")).Width(w-2).Render(strings.Join(lines, "\n")),
		"",
		buttonStyle.Render("RESTART GAME"),
	)
}
