package record

import "errors"

// MultiWriter fans transitions and results out to multiple writers. A failing
// writer does not keep the row from the writers after it; the failures are
// joined into the returned error.
type MultiWriter struct {
	transWriters  []TransitionWriter
	resultWriters []ResultWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(tws []TransitionWriter, rws []ResultWriter) *MultiWriter {
	return &MultiWriter{transWriters: tws, resultWriters: rws}
}

// WriteTransition sends a transition row to all transition writers.
func (mw *MultiWriter) WriteTransition(row TransitionRow) error {
	var errs []error
	for _, w := range mw.transWriters {
		if err := w.WriteTransition(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteTransitions sends multiple transition rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteTransitions(rows []TransitionRow) error {
	var errs []error
	for _, w := range mw.transWriters {
		if err := writeTransitions(w, rows); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteResult sends a level result row to all result writers.
func (mw *MultiWriter) WriteResult(row LevelResultRow) error {
	var errs []error
	for _, w := range mw.resultWriters {
		if err := w.WriteResult(row); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WriteResults sends multiple level results to all result writers, using batch if supported.
func (mw *MultiWriter) WriteResults(rows []LevelResultRow) error {
	var errs []error
	for _, w := range mw.resultWriters {
		if err := writeResults(w, rows); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
