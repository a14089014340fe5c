// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

// A Timestamp counts simulated time units. It never decreases over the
// lifetime of a simulation.
//
type Timestamp uint64

// A Dir is a pin direction.
//
type Dir uint8

const (
	In Dir = iota
	Out
	InOut
)

func (d Dir) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	case InOut:
		return "inout"
	}
	return "?"
}

// A PinSpec describes one named connection point of a component. Clock marks
// the pin whose transitions trigger a sequential component's ClockEdge.
//
type PinSpec struct {
	Name  string
	Dir   Dir
	Width int
	Clock bool
}

// An Edge is a clock transition direction.
//
type Edge uint8

const (
	Rising Edge = iota
	Falling
)

func (e Edge) String() string {
	if e == Rising {
		return "rising"
	}
	return "falling"
}

// A PinReader gives a component read access to the current value of its own
// pins during Update and ClockEdge. Input pins carry the resolved value of
// the net they are wired to; output pins carry the value the component last
// drove. Unconnected pins read as all-Unknown.
//
type PinReader interface {
	PinValue(name string) Signal
}

// An UpdateResult reports the outcome of one component evaluation.
//
type UpdateResult struct {
	// Outputs maps output pin names to the new signal each should drive.
	// Pins absent from the map keep their current value. The driver only
	// schedules an event for outputs that actually differ from the pin's
	// cached value.
	Outputs map[string]Signal

	// Delay is the number of time units until the outputs take effect.
	// Zero is valid and means "within the current timestamp".
	Delay Timestamp

	// StateChanged reports whether the component's internal state changed.
	StateChanged bool

	// WakeAfter, if non-zero, asks the driver to re-trigger this component
	// WakeAfter time units from now even if none of its inputs change.
	// Self-clocking components (clock sources) use this to reschedule
	// their next toggle.
	WakeAfter Timestamp
}

// A Component is a simulated device. The engine never inspects a device
// beyond this contract, so new device kinds can be added without touching
// the engine. Implementations keep whatever internal state they need and
// expose it only through Update, ClockEdge and Reset.
//
type Component interface {
	// Pins returns the component's pin layout. It must be constant for the
	// lifetime of the component.
	Pins() []PinSpec

	// Update re-evaluates the component after one of its inputs changed or
	// a scheduled wake-up fired.
	Update(now Timestamp, in PinReader) UpdateResult

	// ClockEdge is called instead of Update when a transition occurs on the
	// component's Clock-marked pin and Sequential returns true.
	ClockEdge(edge Edge, now Timestamp, in PinReader) UpdateResult

	// Reset returns the component to its initial state.
	Reset()

	// PropagationDelay returns the component's default delay, used by
	// devices that do not compute a per-call delay.
	PropagationDelay() Timestamp

	// Sequential reports whether the component's next state depends on
	// clock transitions rather than combinational inputs alone.
	Sequential() bool
}
