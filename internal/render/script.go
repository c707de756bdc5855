package render

import (
	"context"
	"fmt"
	"io"

	"scamquiz/internal/session"
)

// Script answers screens from a fixed list of actions and quits once the list
// runs out. It drives replays and tests.
type Script struct {
	actions []session.Action
	echo    io.Writer
	color   bool

	// Screens holds every screen rendered so far.
	Screens []session.Screen
}

// NewScript returns a Script that plays actions in order.
func NewScript(actions ...session.Action) *Script {
	return &Script{actions: actions}
}

// Echo prints each screen and the scripted answer to w.
func (s *Script) Echo(w io.Writer, color bool) *Script {
	s.echo = w
	s.color = color
	return s
}

// Remaining reports how many actions have not been played.
func (s *Script) Remaining() int { return len(s.actions) }

// Render returns the next scripted action.
func (s *Script) Render(ctx context.Context, sc session.Screen) (session.Action, error) {
	if err := ctx.Err(); err != nil {
		return session.Action{}, err
	}
	s.Screens = append(s.Screens, sc)
	a := session.Quit()
	if len(s.actions) > 0 {
		a = s.actions[0]
		s.actions = s.actions[1:]
	}
	if s.echo != nil {
		writeScreen(s.echo, sc, defaultWidth, s.color)
		if a.Kind == session.ActionChoose {
			fmt.Fprintf(s.echo, "> %s %d\n", a.Kind, a.Choice+1)
		} else {
			fmt.Fprintf(s.echo, "> %s\n", a.Kind)
		}
	}
	return a, nil
}
