package record

import (
	"encoding/json"
	"io"
	"os"
)

// ReadTranscript decodes transition rows written by FileWriter.
func ReadTranscript(r io.Reader) ([]TransitionRow, error) {
	dec := json.NewDecoder(r)
	var rows []TransitionRow
	for {
		var row TransitionRow
		if err := dec.Decode(&row); err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadTranscriptFile opens a file and decodes its transition rows.
func ReadTranscriptFile(path string) ([]TransitionRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTranscript(f)
}
