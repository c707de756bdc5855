package main

import (
	"log"

	"scamquiz/internal/config"
	"scamquiz/internal/record"
)

// newRecorders sets up the sinks for a session based on the configuration:
// an in-memory tracker always, a JSONL transcript when a path is set, GreptimeDB
// when an endpoint is set and JSON lines on stdout when printRows is true.
// It returns the combined recorder, the tracker and a cleanup function.
func newRecorders(cfg *config.Config, printRows bool) (record.Recorder, *record.Tracker, func(), error) {
	cleanup := func() {}
	tracker := record.NewTracker()
	sinks := []record.Recorder{tracker}

	if cfg.Transcript != "" {
		fw, err := record.NewFileWriter(cfg.Transcript, cfg.Transcript+".results")
		if err != nil {
			return nil, nil, nil, err
		}
		cleanup = func() { fw.Close() }
		sinks = append(sinks, fw)
	}

	if g := cfg.Greptime; g.Endpoint != "" {
		w, err := record.NewGreptimeDBWriter(g.Endpoint, g.Port, g.Database, g.TransitionsTable, g.ResultsTable)
		if err != nil {
			cleanup()
			return nil, nil, nil, err
		}
		log.Printf("[Main] Recording to GreptimeDB %s:%d/%s", g.Endpoint, g.Port, g.Database)
		sinks = append(sinks, w)
	}

	if printRows {
		sinks = append(sinks, record.NewJSONStdoutWriter())
	}

	if len(sinks) == 1 {
		return tracker, tracker, cleanup, nil
	}
	tws := make([]record.TransitionWriter, 0, len(sinks))
	rws := make([]record.ResultWriter, 0, len(sinks))
	for _, s := range sinks {
		tws = append(tws, s)
		rws = append(rws, s)
	}
	return record.NewMultiWriter(tws, rws), tracker, cleanup, nil
}
