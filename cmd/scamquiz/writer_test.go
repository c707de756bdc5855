package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"scamquiz/internal/config"
	"scamquiz/internal/engine"
	"scamquiz/internal/record"
)

func TestNewRecordersTrackerOnly(t *testing.T) {
	cfg := config.Default()
	rec, tracker, cleanup, err := newRecorders(&cfg, false)
	if err != nil {
		t.Fatalf("newRecorders returned error: %v", err)
	}
	cleanup()
	if _, ok := rec.(*record.Tracker); !ok {
		t.Fatalf("expected *record.Tracker, got %T", rec)
	}
	if rec != record.Recorder(tracker) {
		t.Fatalf("recorder and tracker should be the same sink")
	}
}

func TestNewRecordersTranscript(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Transcript = filepath.Join(dir, "session.jsonl")
	rec, tracker, cleanup, err := newRecorders(&cfg, false)
	if err != nil {
		t.Fatalf("newRecorders returned error: %v", err)
	}
	if _, ok := rec.(*record.MultiWriter); !ok {
		t.Fatalf("expected *record.MultiWriter, got %T", rec)
	}
	row := record.TransitionRow{SessionID: "s1", Seq: 1, Action: "start", Choice: -1, Timestamp: time.Now()}
	if err := rec.WriteTransition(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := rec.WriteResult(record.LevelResultRow{SessionID: "s1", Level: 1, Score: 1, Total: 1, Classification: engine.Perfect}); err != nil {
		t.Fatalf("write result failed: %v", err)
	}
	cleanup()

	info, err := os.Stat(cfg.Transcript)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected transcript to be non-empty")
	}
	resInfo, err := os.Stat(cfg.Transcript + ".results")
	if err != nil || resInfo.Size() == 0 {
		t.Fatalf("expected results file to be non-empty: %v", err)
	}
	if snap := tracker.Snapshot(); snap.Transitions != 1 || len(snap.Results) != 1 {
		t.Fatalf("tracker missed rows: %+v", snap)
	}
}

func TestNewRecordersBadTranscriptPath(t *testing.T) {
	cfg := config.Default()
	cfg.Transcript = filepath.Join(t.TempDir(), "missing", "session.jsonl")
	if _, _, _, err := newRecorders(&cfg, false); err == nil {
		t.Fatalf("expected error for unwritable transcript path")
	}
}

func TestNewRecordersGreptime(t *testing.T) {
	cfg := config.Default()
	cfg.Greptime.Endpoint = "127.0.0.1"
	rec, _, cleanup, err := newRecorders(&cfg, true)
	if err != nil {
		t.Fatalf("newRecorders returned error: %v", err)
	}
	cleanup()
	if _, ok := rec.(*record.MultiWriter); !ok {
		t.Fatalf("expected *record.MultiWriter, got %T", rec)
	}
}
