package record

import (
	"encoding/json"
	"os"
)

// FileWriter writes transitions and level results to JSONL files.
type FileWriter struct {
	transFile  *os.File
	resultFile *os.File
	transEnc   *json.Encoder
	resultEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. resultsPath may be empty to skip level results.
func NewFileWriter(transitionsPath, resultsPath string) (*FileWriter, error) {
	tf, err := os.Create(transitionsPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{transFile: tf, transEnc: json.NewEncoder(tf)}
	if resultsPath != "" {
		rf, err := os.Create(resultsPath)
		if err != nil {
			tf.Close()
			return nil, err
		}
		fw.resultFile = rf
		fw.resultEnc = json.NewEncoder(rf)
	}
	return fw, nil
}

// WriteTransition logs a single transition row.
func (f *FileWriter) WriteTransition(row TransitionRow) error {
	return f.transEnc.Encode(row)
}

// WriteTransitions logs multiple transition rows.
func (f *FileWriter) WriteTransitions(rows []TransitionRow) error {
	for _, r := range rows {
		if err := f.WriteTransition(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteResult logs a level result row, if enabled.
func (f *FileWriter) WriteResult(row LevelResultRow) error {
	if f.resultEnc == nil {
		return nil
	}
	return f.resultEnc.Encode(row)
}

// WriteResults logs multiple level result rows.
func (f *FileWriter) WriteResults(rows []LevelResultRow) error {
	for _, r := range rows {
		if err := f.WriteResult(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes underlying files.
func (f *FileWriter) Close() error {
	var firstErr error
	if f.transFile != nil {
		if err := f.transFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if f.resultFile != nil {
		if err := f.resultFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
