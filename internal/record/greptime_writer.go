package record

import (
	"context"
	"log"
	"time"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

const writeTimeout = 5 * time.Second

// greptimeClient is the subset of the ingester client used by the writer.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes transitions and level results to GreptimeDB via the ingester client.
type GreptimeDBWriter struct {
	client      greptimeClient
	transTable  string
	resultTable string
}

// NewGreptimeDBWriter creates a writer for the given endpoint. Tables are
// created by GreptimeDB on first write.
func NewGreptimeDBWriter(host string, port int, database, transTable, resultTable string) (*GreptimeDBWriter, error) {
	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &GreptimeDBWriter{client: client, transTable: transTable, resultTable: resultTable}, nil
}

// WriteTransition inserts a single transition row.
func (w *GreptimeDBWriter) WriteTransition(row TransitionRow) error {
	return w.WriteTransitions([]TransitionRow{row})
}

// WriteTransitions inserts multiple transition rows.
func (w *GreptimeDBWriter) WriteTransitions(rows []TransitionRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.transTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session_id", types.STRING)
	tbl.AddFieldColumn("seq", types.INT64)
	tbl.AddFieldColumn("from_phase", types.STRING)
	tbl.AddFieldColumn("to_phase", types.STRING)
	tbl.AddFieldColumn("action", types.STRING)
	tbl.AddFieldColumn("choice", types.INT64)
	tbl.AddFieldColumn("outcome", types.STRING)
	tbl.AddFieldColumn("level", types.INT64)
	tbl.AddFieldColumn("idx", types.INT64)
	tbl.AddFieldColumn("score", types.INT64)
	tbl.AddFieldColumn("directive", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.SessionID, int64(r.Seq), string(r.From), string(r.To), r.Action,
			int64(r.Choice), string(r.Outcome), int64(r.Level), int64(r.Index), int64(r.Score),
			r.Directive, r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl, len(rows))
}

// WriteResult inserts a single level result row.
func (w *GreptimeDBWriter) WriteResult(row LevelResultRow) error {
	return w.WriteResults([]LevelResultRow{row})
}

// WriteResults inserts multiple level result rows.
func (w *GreptimeDBWriter) WriteResults(rows []LevelResultRow) error {
	if len(rows) == 0 {
		return nil
	}
	tbl, err := table.New(w.resultTable)
	if err != nil {
		return err
	}
	tbl.AddTagColumn("session_id", types.STRING)
	tbl.AddTagColumn("level", types.INT64)
	tbl.AddFieldColumn("attempt", types.INT64)
	tbl.AddFieldColumn("score", types.INT64)
	tbl.AddFieldColumn("total", types.INT64)
	tbl.AddFieldColumn("classification", types.STRING)
	tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND)

	for _, r := range rows {
		if err := tbl.AddRow(r.SessionID, int64(r.Level), int64(r.Attempt), int64(r.Score),
			int64(r.Total), string(r.Classification), r.Timestamp); err != nil {
			return err
		}
	}
	return w.write(tbl, len(rows))
}

func (w *GreptimeDBWriter) write(tbl *table.Table, n int) error {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if _, err := w.client.Write(ctx, tbl); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	log.Printf("[GreptimeDBWriter] wrote %d rows", n)
	return nil
}
