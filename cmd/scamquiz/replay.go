package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"scamquiz/internal/catalog"
	"scamquiz/internal/config"
	"scamquiz/internal/record"
	"scamquiz/internal/render"
	"scamquiz/internal/session"
)

var (
	replayInput   string
	replayCatalog string
	replayJSON    bool
	replayColor   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a recorded session transcript",
	Long:  "replay feeds the actions of a transcript through a fresh session and checks that every transition repeats.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.Transcript = ""
		if cmd.Flags().Changed("catalog") {
			cfg.Catalog = replayCatalog
		}
		cat, err := loadCatalog(cfg.Catalog)
		if err != nil {
			return err
		}
		rows, err := record.ReadTranscriptFile(replayInput)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}
		return replayTranscript(cmd.Context(), cat, cfg, rows, replayJSON, replayColor)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to transcript file")
	replayCmd.Flags().StringVar(&replayCatalog, "catalog", "", "Catalog the transcript was recorded with (built-in when empty)")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print replayed rows as JSON instead of screens")
	replayCmd.Flags().BoolVar(&replayColor, "color", true, "Colorize printed screens")
	replayCmd.MarkFlagRequired("input")
}

// replayTranscript runs the recorded actions against cat. Once the replay
// matches the transcript, the replayed rows go to the sinks from cfg in one
// batch, so a transcript can be re-ingested into GreptimeDB.
func replayTranscript(ctx context.Context, cat *catalog.Catalog, cfg *config.Config, rows []record.TransitionRow, asJSON, color bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	actions, err := session.ActionsFromTranscript(rows)
	if err != nil {
		return err
	}
	rec, _, cleanup, err := newRecorders(cfg, asJSON)
	if err != nil {
		return err
	}
	defer cleanup()

	check := &replayCheck{want: rows}
	script := render.NewScript(actions...)
	if !asJSON {
		script.Echo(os.Stdout, color)
	}
	buf := &record.Buffer{}
	ctrl := session.New(cat, script, session.WithRecorder(record.NewMultiWriter(
		[]record.TransitionWriter{check, buf},
		[]record.ResultWriter{buf},
	)))
	if err := ctrl.Run(ctx); err != nil {
		return err
	}
	if err := check.err(); err != nil {
		return err
	}
	if err := buf.Flush(rec); err != nil {
		return fmt.Errorf("write replayed rows: %w", err)
	}
	return nil
}

// replayCheck compares replayed transitions with the recorded ones.
type replayCheck struct {
	want []record.TransitionRow
	seen int
	diff error
}

func (c *replayCheck) WriteTransition(row record.TransitionRow) error {
	i := c.seen
	c.seen++
	if c.diff != nil || i >= len(c.want) {
		return nil
	}
	w := c.want[i]
	if w.To != row.To || w.Directive != row.Directive || w.Score != row.Score {
		c.diff = fmt.Errorf("replay diverged at row %d: recorded %s %q, replayed %s %q",
			i+1, w.To, w.Directive, row.To, row.Directive)
	}
	return nil
}

func (c *replayCheck) err() error {
	if c.diff != nil {
		return c.diff
	}
	if c.seen < len(c.want) {
		return fmt.Errorf("replay stopped after %d of %d rows", c.seen, len(c.want))
	}
	return nil
}
