package simulation

import (
	"github.com/google/uuid"

	"github.com/quanticsoul4772/dialectical-sim/internal/position"
	"github.com/quanticsoul4772/dialectical-sim/internal/simconfig"
)

// Event records one step of a simulation run, appended to an immutable
// trace (spec §5/§6: "append-only trace"). Events are never mutated or
// removed once recorded.
type Event struct {
	Step      int
	Kind      simconfig.EventKind
	Density   float64
	SCCPSize  int
	Positions []position.Position
}

// Trace is the append-only record of one simulation run, identified by a
// stable run ID so batch experiments can correlate traces with results
// (§6 "persisted state layout").
type Trace struct {
	RunID  string
	Events []Event
}

// NewTrace starts an empty trace with a fresh run identifier.
func NewTrace() *Trace {
	return &Trace{RunID: uuid.NewString()}
}

// Append records one event. It never overwrites or removes a prior event.
func (t *Trace) Append(e Event) {
	t.Events = append(t.Events, e)
}
