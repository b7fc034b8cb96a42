package tracelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrTraceNotFound is returned when loading an unknown trace id.
var ErrTraceNotFound = errors.New("tracelog: trace not found")

// Store persists traces.
type Store interface {
	// Append stores a trace. Appending the same trace id twice is an
	// error.
	Append(ctx context.Context, t *Trace) error

	// Load retrieves a trace by id.
	Load(ctx context.Context, traceID string) (*Trace, error)

	// List returns the stored trace ids, ordered by start time.
	List(ctx context.Context) ([]string, error)

	Close() error
}

// MemoryStore keeps traces in memory. Useful for tests and short-lived
// tooling.
type MemoryStore struct {
	mu     sync.Mutex
	traces map[string]*Trace
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{traces: make(map[string]*Trace)}
}

// Append stores a copy of the trace.
func (s *MemoryStore) Append(ctx context.Context, t *Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.traces[t.TraceID]; exists {
		return fmt.Errorf("tracelog: trace %s already stored", t.TraceID)
	}
	c := *t
	c.Events = append([]Event(nil), t.Events...)
	s.traces[t.TraceID] = &c
	return nil
}

// Load retrieves a trace by id.
func (s *MemoryStore) Load(ctx context.Context, traceID string) (*Trace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.traces[traceID]
	if !ok {
		return nil, ErrTraceNotFound
	}
	c := *t
	c.Events = append([]Event(nil), t.Events...)
	return &c, nil
}

// List returns the stored trace ids ordered by start time.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*Trace, 0, len(s.traces))
	for _, t := range s.traces {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Started.Equal(all[j].Started) {
			return all[i].TraceID < all[j].TraceID
		}
		return all[i].Started.Before(all[j].Started)
	})
	ids := make([]string, len(all))
	for i, t := range all {
		ids[i] = t.TraceID
	}
	return ids, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// SQLiteStore persists traces in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) a trace database at
// the given path. Use ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// In-memory databases exist per connection; keep a single one.
	db.SetMaxOpenConns(1)

	schema := `
CREATE TABLE IF NOT EXISTS traces (
	trace_id TEXT PRIMARY KEY,
	action   TEXT NOT NULL,
	started  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS trace_events (
	trace_id  TEXT NOT NULL,
	seq       INTEGER NOT NULL,
	action    TEXT NOT NULL,
	phase     TEXT NOT NULL,
	node_id   TEXT NOT NULL,
	node_type TEXT NOT NULL,
	node_name TEXT NOT NULL,
	path_code TEXT NOT NULL,
	depth     INTEGER NOT NULL,
	timestamp TEXT NOT NULL,
	PRIMARY KEY (trace_id, seq)
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append stores a trace in one transaction.
func (s *SQLiteStore) Append(ctx context.Context, t *Trace) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Start times are stored in UTC with a fixed-width fraction, so List's
	// text ordering is chronological.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO traces (trace_id, action, started) VALUES (?, ?, ?)`,
		t.TraceID, t.Action, t.Started.UTC().Format("2006-01-02T15:04:05.000000000Z07:00"))
	if err != nil {
		return fmt.Errorf("inserting trace %s: %w", t.TraceID, err)
	}

	for _, ev := range t.Events {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO trace_events
			 (trace_id, seq, action, phase, node_id, node_type, node_name, path_code, depth, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.TraceID, ev.Seq, ev.Action, ev.Phase, ev.NodeID, ev.NodeType,
			ev.NodeName, ev.PathCode, ev.Depth, ev.Timestamp.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("inserting event %d: %w", ev.Seq, err)
		}
	}
	return tx.Commit()
}

// Load retrieves a trace by id.
func (s *SQLiteStore) Load(ctx context.Context, traceID string) (*Trace, error) {
	trace := &Trace{TraceID: traceID}

	var started string
	err := s.db.QueryRowContext(ctx,
		`SELECT action, started FROM traces WHERE trace_id = ?`, traceID).
		Scan(&trace.Action, &started)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTraceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading trace %s: %w", traceID, err)
	}
	if trace.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return nil, fmt.Errorf("parsing start time: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, action, phase, node_id, node_type, node_name, path_code, depth, timestamp
		 FROM trace_events WHERE trace_id = ? ORDER BY seq`, traceID)
	if err != nil {
		return nil, fmt.Errorf("loading events for %s: %w", traceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		ev := Event{TraceID: traceID}
		var ts string
		if err := rows.Scan(&ev.Seq, &ev.Action, &ev.Phase, &ev.NodeID, &ev.NodeType,
			&ev.NodeName, &ev.PathCode, &ev.Depth, &ts); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		if ev.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parsing event timestamp: %w", err)
		}
		trace.Events = append(trace.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return trace, nil
}

// List returns the stored trace ids ordered by start time.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT trace_id FROM traces ORDER BY started, trace_id`)
	if err != nil {
		return nil, fmt.Errorf("listing traces: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning trace id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
