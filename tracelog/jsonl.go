package tracelog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSONL writes the trace as JSON Lines: one event object per line.
func WriteJSONL(w io.Writer, t *Trace) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, ev := range t.Events {
		if err := enc.Encode(ev); err != nil {
			return fmt.Errorf("encoding event %d: %w", ev.Seq, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL reads one trace from JSON Lines produced by WriteJSONL. The
// trace identity is taken from the first event; events from other traces
// mixed into the stream are rejected.
func ReadJSONL(r io.Reader) (*Trace, error) {
	trace := &Trace{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if line == "" {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("line %d: invalid JSON: %w", lineNum, err)
		}

		if trace.TraceID == "" {
			trace.TraceID = ev.TraceID
			trace.Action = ev.Action
			trace.Started = ev.Timestamp
		} else if ev.TraceID != trace.TraceID {
			return nil, fmt.Errorf("line %d: event belongs to trace %s, expected %s",
				lineNum, ev.TraceID, trace.TraceID)
		}
		trace.Events = append(trace.Events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stream: %w", err)
	}
	return trace, nil
}
