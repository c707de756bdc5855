package render

import (
	"strings"

	"scamquiz/internal/engine"
	"scamquiz/internal/session"
)

const (
	introTitle    = "ONLINE SCAM RISK EVALUATION"
	introText     = "This activity focuses on identifying common online scam scenarios. Review each situation carefully and choose the most appropriate action."
	endTitle      = "CONGRATULATIONS!"
	endSubtitle   = "You've completed all levels successfully."
	chooseHeading = "CHOOSE YOUR ACTION"
	lastSeen      = "last seen recently"
)

var awarenessTips = []string{
	"Stay Vigilant: Double-check every link.",
	"Stay Secure: Use multi-factor authentication.",
	"Stay Alert: Trust your instincts online.",
}

// band is the headline shown on the quiz screen for a classification.
type band struct {
	Badge string
	Title string
	Desc  string
}

func bandFor(c engine.Classification) band {
	switch c {
	case engine.Perfect:
		return band{"MISSION ACCOMPLISHED", "Perfect Work, Detective!", "Your security awareness is flawless. You spotted every trap!"}
	case engine.Mixed:
		return band{"LEVEL COMPLETE", "Good Effort, Detective!", "You caught some scams, but some slipped through. Stay sharp!"}
	default:
		return band{"SECURITY BREACH", "Careful, Detective!", "You fell for the traps this time. Try again!"}
	}
}

func feedbackHeadline(o engine.Outcome) (status, title string) {
	if o == engine.Safe {
		return "ANALYSIS COMPLETE", "Assessment: Secure"
	}
	return "THREAT DETECTED", "Assessment: Risk Found"
}

func feedbackButton(s session.FeedbackScreen) string {
	if s.Last {
		return "VIEW FINAL RESULTS →"
	}
	return "NEXT SCENARIO →"
}

func quizButton(s session.QuizScreen) string {
	switch {
	case s.Classification == engine.Poor:
		return "RETRY LEVEL ↺"
	case s.Final:
		return "FINISH →"
	default:
		return "NEXT MISSION →"
	}
}

// progressDots marks the scenarios answered so far in the level.
func progressDots(index, total int) string {
	var b strings.Builder
	for i := range total {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i <= index {
			b.WriteString("●")
		} else {
			b.WriteString("○")
		}
	}
	return b.String()
}

// splitSender separates "Name <address>" into its parts. Senders without an
// address come back unchanged with an empty address.
func splitSender(sender string) (name, address string) {
	i := strings.Index(sender, "<")
	if i < 0 {
		return strings.TrimSpace(sender), ""
	}
	return strings.TrimSpace(sender[:i]), strings.TrimSpace(sender[i:])
}

func initial(sender string) string {
	name, _ := splitSender(sender)
	for _, r := range name {
		return strings.ToUpper(string(r))
	}
	return "?"
}
