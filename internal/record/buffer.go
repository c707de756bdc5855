package record

import "errors"

// Buffer keeps rows in memory until Flush hands them to a sink in one batch.
// Replays use it so a re-ingested transcript reaches GreptimeDB as a single
// insert per table.
type Buffer struct {
	transitions []TransitionRow
	results     []LevelResultRow
}

func (b *Buffer) WriteTransition(row TransitionRow) error {
	b.transitions = append(b.transitions, row)
	return nil
}

func (b *Buffer) WriteResult(row LevelResultRow) error {
	b.results = append(b.results, row)
	return nil
}

// Len reports the buffered transition and result counts.
func (b *Buffer) Len() (transitions, results int) {
	return len(b.transitions), len(b.results)
}

// Flush writes the buffered rows to dst and empties the buffer, whether or
// not dst accepted them.
func (b *Buffer) Flush(dst Recorder) error {
	var errs []error
	if len(b.transitions) > 0 {
		if err := writeTransitions(dst, b.transitions); err != nil {
			errs = append(errs, err)
		}
	}
	if len(b.results) > 0 {
		if err := writeResults(dst, b.results); err != nil {
			errs = append(errs, err)
		}
	}
	b.transitions, b.results = nil, nil
	return errors.Join(errs...)
}
