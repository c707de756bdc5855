package record

import (
	"sync"

	"scamquiz/internal/engine"
)

// Stats aggregates level results per level.
type Stats struct {
	Level    int                           `json:"level"`
	Attempts int                           `json:"attempts"`
	Bands    map[engine.Classification]int `json:"bands"`
	Best     int                           `json:"best"`
	Total    int                           `json:"total"`
}

// Count returns how many attempts ended in band c.
func (s Stats) Count(c engine.Classification) int {
	return s.Bands[c]
}

// Snapshot is a copy of everything a Tracker has seen.
type Snapshot struct {
	Transitions int              `json:"transitions"`
	Results     []LevelResultRow `json:"results"`
	Levels      []Stats          `json:"levels"`
}

// Tracker keeps level results in memory for status pages. It is safe for
// concurrent use.
type Tracker struct {
	mu          sync.Mutex
	transitions int
	results     []LevelResultRow
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// WriteTransition counts a transition.
func (t *Tracker) WriteTransition(TransitionRow) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transitions++
	return nil
}

// WriteResult stores a level result.
func (t *Tracker) WriteResult(row LevelResultRow) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = append(t.results, row)
	return nil
}

// Snapshot returns a copy of the tracked data with per-level stats in level order.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	results := make([]LevelResultRow, len(t.results))
	copy(results, t.results)

	byLevel := make(map[int]*Stats)
	for _, r := range results {
		st, ok := byLevel[r.Level]
		if !ok {
			st = &Stats{Level: r.Level, Bands: make(map[engine.Classification]int)}
			byLevel[r.Level] = st
		}
		st.Attempts++
		st.Bands[r.Classification]++
		if r.Score >= st.Best {
			st.Best = r.Score
			st.Total = r.Total
		}
	}
	levels := make([]Stats, 0, len(byLevel))
	for l := engine.FirstLevel; l <= engine.MaxLevel; l++ {
		if st, ok := byLevel[l]; ok {
			levels = append(levels, *st)
		}
	}
	return Snapshot{Transitions: t.transitions, Results: results, Levels: levels}
}
