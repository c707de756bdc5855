package session

import (
	"fmt"

	"scamquiz/internal/record"
)

// ActionsFromTranscript turns recorded transitions back into the actions that
// produced them, in order. Feeding them to a fresh Controller over the same
// catalog reproduces the session.
func ActionsFromTranscript(rows []record.TransitionRow) ([]Action, error) {
	actions := make([]Action, 0, len(rows))
	for i, row := range rows {
		kind, err := ParseActionKind(row.Action)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		a := Action{Kind: kind, Choice: -1}
		if kind == ActionChoose {
			if row.Choice < 0 {
				return nil, fmt.Errorf("row %d: %w: %d", i+1, ErrInvalidChoice, row.Choice)
			}
			a.Choice = row.Choice
		}
		actions = append(actions, a)
	}
	return actions, nil
}
