package tracelog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"trace_id", "seq", "action", "phase",
	"node_id", "node_type", "node_name", "path_code", "depth", "timestamp",
}

// WriteCSV writes the trace as CSV with a header row.
func WriteCSV(w io.Writer, t *Trace) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, ev := range t.Events {
		record := []string{
			ev.TraceID,
			strconv.Itoa(ev.Seq),
			ev.Action,
			ev.Phase,
			ev.NodeID,
			ev.NodeType,
			ev.NodeName,
			ev.PathCode,
			strconv.Itoa(ev.Depth),
			ev.Timestamp.Format(time.RFC3339Nano),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing event %d: %w", ev.Seq, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads one trace from CSV produced by WriteCSV.
func ReadCSV(r io.Reader) (*Trace, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return &Trace{}, nil
	}

	trace := &Trace{}
	for i, record := range records[1:] {
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+2, len(csvHeader), len(record))
		}
		seq, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid seq: %w", i+2, err)
		}
		depth, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid depth: %w", i+2, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, record[9])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i+2, err)
		}

		ev := Event{
			TraceID:   record[0],
			Seq:       seq,
			Action:    record[2],
			Phase:     record[3],
			NodeID:    record[4],
			NodeType:  record[5],
			NodeName:  record[6],
			PathCode:  record[7],
			Depth:     depth,
			Timestamp: ts,
		}
		if trace.TraceID == "" {
			trace.TraceID = ev.TraceID
			trace.Action = ev.Action
			trace.Started = ev.Timestamp
		}
		trace.Events = append(trace.Events, ev)
	}
	return trace, nil
}
