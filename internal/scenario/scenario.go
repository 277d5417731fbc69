package scenario

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Inputs maps parameter names to values for one scenario.
type Inputs map[string]float64

// Outputs maps result names to values produced by a compute function.
type Outputs map[string]float64

// Clone returns an independent copy of the inputs.
func (in Inputs) Clone() Inputs {
	if in == nil {
		return nil
	}
	out := make(Inputs, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the outputs.
func (out Outputs) Clone() Outputs {
	if out == nil {
		return nil
	}
	cp := make(Outputs, len(out))
	for k, v := range out {
		cp[k] = v
	}
	return cp
}

// Scenario is one row of the table: named inputs and a possibly stale result.
// Values handed out by the table are deep copies; mutating them never touches
// table state.
type Scenario struct {
	ID         string
	Name       string
	Inputs     Inputs
	Result     Outputs // nil until the first successful compute
	Dirty      bool
	Err        string // last compute failure, empty when none
	CreatedAt  time.Time
	ComputedAt time.Time
	Computing  bool

	// revision counts input edits; a compute ticket carries the revision it
	// snapshotted so late write-backs after an edit can be discarded.
	revision uint64

	// gen identifies this insertion uniquely within the table. A row re-added
	// under a removed row's ID gets a new gen, so tickets issued against the
	// old row never write into the new one.
	gen uint64
}

// State summarises a scenario row for display.
type State string

const (
	StateStale     State = "stale"
	StateFresh     State = "fresh"
	StateComputing State = "computing"
	StateFailed    State = "failed"
)

// State derives the display state from the row's flags.
func (s Scenario) State() State {
	switch {
	case s.Computing:
		return StateComputing
	case s.Err != "":
		return StateFailed
	case !s.Dirty && s.Result != nil:
		return StateFresh
	default:
		return StateStale
	}
}

// Icon returns the Unicode icon for the state.
func (s State) Icon() string {
	switch s {
	case StateFresh:
		return "🟢"
	case StateStale:
		return "🟡"
	case StateFailed:
		return "🔴"
	case StateComputing:
		return "🔵"
	default:
		return "⚪"
	}
}

// IconFallback returns ASCII fallback when Unicode is not supported.
func (s State) IconFallback() string {
	switch s {
	case StateFresh:
		return "[OK]"
	case StateStale:
		return "[~~]"
	case StateFailed:
		return "[XX]"
	case StateComputing:
		return "[..]"
	default:
		return "[??]"
	}
}

// Color returns the Lipgloss color for the state.
func (s State) Color() lipgloss.Color {
	switch s {
	case StateFresh:
		return lipgloss.Color("42") // green
	case StateStale:
		return lipgloss.Color("226") // yellow
	case StateFailed:
		return lipgloss.Color("196") // red
	case StateComputing:
		return lipgloss.Color("39") // blue
	default:
		return lipgloss.Color("250") // light gray
	}
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// view returns a deep copy safe to hand outside the table lock.
func (s *Scenario) view() Scenario {
	cp := *s
	cp.Inputs = s.Inputs.Clone()
	cp.Result = s.Result.Clone()
	return cp
}
