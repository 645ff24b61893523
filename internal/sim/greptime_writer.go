package sim

import (
	"context"
	"log"

	"swarmsim/internal/telemetry"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeDBWriter writes swarm telemetry and events to GreptimeDB via the
// ingester client.
type GreptimeDBWriter struct {
	client     greptime.Client
	db         string
	table      string
	eventTable string
}

// NewGreptimeDBWriter creates a new GreptimeDB writer and auto-creates the
// tables if needed. eventTable may be empty to disable event ingestion.
func NewGreptimeDBWriter(endpoint, database, tableName, eventTable string) (*GreptimeDBWriter, error) {
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	if tableName == "" {
		tableName = telemetry.SwarmTableName
	}

	ddl := `
CREATE TABLE IF NOT EXISTS ` + tableName + ` (
  cluster_id STRING TAG,
  swarm_id STRING TAG,
  x DOUBLE,
  y DOUBLE,
  z DOUBLE,
  state STRING,
  formation STRING,
  blend DOUBLE,
  health DOUBLE,
  units BIGINT,
  ambushing BOOLEAN,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
	if _, err := client.SQL(ctx, ddl); err != nil {
		return nil, err
	}

	if eventTable != "" {
		ddl := `
CREATE TABLE IF NOT EXISTS ` + eventTable + ` (
  cluster_id STRING TAG,
  swarm_id STRING TAG,
  kind STRING,
  state STRING,
  formation STRING,
  x DOUBLE,
  y DOUBLE,
  z DOUBLE,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='30d')
`
		if _, err := client.SQL(ctx, ddl); err != nil {
			return nil, err
		}
	}

	return &GreptimeDBWriter{
		client:     client,
		db:         database,
		table:      tableName,
		eventTable: eventTable,
	}, nil
}

// Write inserts a single swarm row.
func (w *GreptimeDBWriter) Write(row telemetry.SwarmRow) error {
	return w.WriteBatch([]telemetry.SwarmRow{row})
}

// WriteBatch inserts multiple swarm rows.
func (w *GreptimeDBWriter) WriteBatch(rows []telemetry.SwarmRow) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(w.table)
	tbl.AddTagColumn("cluster_id", types.StringType, 0)
	tbl.AddTagColumn("swarm_id", types.StringType, 0)
	tbl.AddFieldColumn("x", types.Float64Type)
	tbl.AddFieldColumn("y", types.Float64Type)
	tbl.AddFieldColumn("z", types.Float64Type)
	tbl.AddFieldColumn("state", types.StringType)
	tbl.AddFieldColumn("formation", types.StringType)
	tbl.AddFieldColumn("blend", types.Float64Type)
	tbl.AddFieldColumn("health", types.Float64Type)
	tbl.AddFieldColumn("units", types.Int64Type)
	tbl.AddFieldColumn("ambushing", types.BooleanType)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("cluster_id", r.ClusterID)
		tbl.AppendTagValue("swarm_id", r.SwarmID)
		tbl.AppendFieldValue("x", r.X)
		tbl.AppendFieldValue("y", r.Y)
		tbl.AppendFieldValue("z", r.Z)
		tbl.AppendFieldValue("state", r.State)
		tbl.AppendFieldValue("formation", r.Formation)
		tbl.AppendFieldValue("blend", r.Blend)
		tbl.AppendFieldValue("health", r.Health)
		tbl.AppendFieldValue("units", int64(r.Units))
		tbl.AppendFieldValue("ambushing", r.Ambushing)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] Write failed: %v", err)
		return err
	}
	return nil
}

// WriteEvent inserts a single event row.
func (w *GreptimeDBWriter) WriteEvent(e telemetry.EventRow) error {
	return w.WriteEvents([]telemetry.EventRow{e})
}

// WriteEvents inserts multiple event rows.
func (w *GreptimeDBWriter) WriteEvents(rows []telemetry.EventRow) error {
	if len(rows) == 0 || w.eventTable == "" {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(w.eventTable)
	tbl.AddTagColumn("cluster_id", types.StringType, 0)
	tbl.AddTagColumn("swarm_id", types.StringType, 0)
	tbl.AddFieldColumn("kind", types.StringType)
	tbl.AddFieldColumn("state", types.StringType)
	tbl.AddFieldColumn("formation", types.StringType)
	tbl.AddFieldColumn("x", types.Float64Type)
	tbl.AddFieldColumn("y", types.Float64Type)
	tbl.AddFieldColumn("z", types.Float64Type)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("cluster_id", r.ClusterID)
		tbl.AppendTagValue("swarm_id", r.SwarmID)
		tbl.AppendFieldValue("kind", r.Kind)
		tbl.AppendFieldValue("state", r.State)
		tbl.AppendFieldValue("formation", r.Formation)
		tbl.AppendFieldValue("x", r.X)
		tbl.AppendFieldValue("y", r.Y)
		tbl.AppendFieldValue("z", r.Z)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		log.Printf("[GreptimeDBWriter] event write failed: %v", err)
		return err
	}
	return nil
}
