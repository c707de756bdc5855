// Session transcript and level result rows
package record

import (
	"time"

	"scamquiz/internal/engine"
)

// TransitionRow describes one applied player action.
type TransitionRow struct {
	SessionID string         `json:"session_id"` // TAG
	Seq       int            `json:"seq"`
	From      engine.Phase   `json:"from"`
	To        engine.Phase   `json:"to"`
	Action    string         `json:"action"`
	Choice    int            `json:"choice"`
	Outcome   engine.Outcome `json:"outcome,omitempty"`
	Level     int            `json:"level"`
	Index     int            `json:"index"`
	Score     int            `json:"score"`
	Directive string         `json:"directive,omitempty"`
	Timestamp time.Time      `json:"ts"` // TIME INDEX
}

// LevelResultRow describes one finished level attempt.
type LevelResultRow struct {
	SessionID      string                `json:"session_id"` // TAG
	Level          int                   `json:"level"`      // TAG
	Attempt        int                   `json:"attempt"`
	Score          int                   `json:"score"`
	Total          int                   `json:"total"`
	Classification engine.Classification `json:"classification"`
	Timestamp      time.Time             `json:"ts"` // TIME INDEX
}
