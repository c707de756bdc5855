package record

// TransitionWriter receives every applied player action.
type TransitionWriter interface {
	WriteTransition(TransitionRow) error
}

// ResultWriter receives every finished level attempt.
type ResultWriter interface {
	WriteResult(LevelResultRow) error
}

// Recorder is implemented by sinks that take both row kinds.
type Recorder interface {
	TransitionWriter
	ResultWriter
}

// Optional: writers may support batch mode for transitions.
type batchTransitionWriter interface {
	WriteTransitions([]TransitionRow) error
}

// Optional: writers may support batch mode for results.
type batchResultWriter interface {
	WriteResults([]LevelResultRow) error
}

// writeTransitions hands rows to w in one call when it supports batches and
// row by row otherwise, stopping at the first failed row.
func writeTransitions(w TransitionWriter, rows []TransitionRow) error {
	if bw, ok := w.(batchTransitionWriter); ok {
		return bw.WriteTransitions(rows)
	}
	for _, r := range rows {
		if err := w.WriteTransition(r); err != nil {
			return err
		}
	}
	return nil
}

func writeResults(w ResultWriter, rows []LevelResultRow) error {
	if bw, ok := w.(batchResultWriter); ok {
		return bw.WriteResults(rows)
	}
	for _, r := range rows {
		if err := w.WriteResult(r); err != nil {
			return err
		}
	}
	return nil
}

// Nop discards all rows.
type Nop struct{}

func (Nop) WriteTransition(TransitionRow) error { return nil }
func (Nop) WriteResult(LevelResultRow) error    { return nil }
