// Package tracelog records scene-graph traversals as event streams: one
// trace per recorder, with an enter and a leave event for each visited
// node. Traces can be serialized to
// JSONL or CSV and persisted in an in-memory or SQLite-backed store,
// which makes traversal behavior inspectable after the fact — what ran,
// in which order, under which path codes.
package tracelog

import (
	"time"

	"github.com/google/uuid"

	"github.com/scene-xyz/go-scene/callback"
	"github.com/scene-xyz/go-scene/node"
)

// Phases of a node visit.
const (
	PhaseEnter = "enter"
	PhaseLeave = "leave"
)

// Event is one phase (enter or leave) of a node visit within a trace.
type Event struct {
	TraceID   string    `json:"trace_id"`
	Seq       int       `json:"seq"`
	Action    string    `json:"action"`
	Phase     string    `json:"phase"`
	NodeID    string    `json:"node_id"`
	NodeType  string    `json:"node_type"`
	NodeName  string    `json:"node_name,omitempty"`
	PathCode  string    `json:"path_code"`
	Depth     int       `json:"depth"`
	Timestamp time.Time `json:"timestamp"`
}

// Trace is the event stream of one traversal.
type Trace struct {
	TraceID string
	Action  string
	Started time.Time
	Events  []Event
}

// NumEvents returns the number of recorded events.
func (t *Trace) NumEvents() int {
	return len(t.Events)
}

// Nodes returns the distinct node ids in visit order.
func (t *Trace) Nodes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range t.Events {
		if !seen[ev.NodeID] {
			seen[ev.NodeID] = true
			out = append(out, ev.NodeID)
		}
	}
	return out
}

// Recorder accumulates a trace.
type Recorder struct {
	trace *Trace
}

// NewRecorder creates a recorder for a new trace of the named action.
func NewRecorder(actionName string) *Recorder {
	return &Recorder{trace: &Trace{
		TraceID: uuid.New().String(),
		Action:  actionName,
		Started: time.Now().UTC(),
	}}
}

// Trace returns the accumulated trace.
func (r *Recorder) Trace() *Trace {
	return r.trace
}

// Record appends an event, filling in the trace identity, sequence number
// and timestamp.
func (r *Recorder) Record(ev Event) {
	ev.TraceID = r.trace.TraceID
	ev.Action = r.trace.Action
	ev.Seq = len(r.trace.Events)
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}
	r.trace.Events = append(r.trace.Events, ev)
}

// Attach wires the recorder into a callback action: every node visited by
// the action is recorded on entry and exit.
func Attach(r *Recorder, ca *callback.Action) {
	record := func(phase string) callback.Callback {
		return func(a *callback.Action, n node.Node) callback.Response {
			r.Record(Event{
				Phase:    phase,
				NodeID:   n.ID().String(),
				NodeType: n.TypeId().Name(),
				NodeName: n.Name(),
				PathCode: a.CurPathCode().String(),
				Depth:    a.CurPath().Length(),
			})
			return callback.Continue
		}
	}
	ca.AddPreCallback(node.NodeType, record(PhaseEnter))
	ca.AddPostCallback(node.NodeType, record(PhaseLeave))
}
