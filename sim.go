// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import (
	"sort"

	"github.com/pkg/errors"
)

// DefaultSettleLimit is the per-timestamp sub-iteration cap used when the
// Config does not set one. Reaching the cap halts the driver with an
// OscillationError instead of looping forever on zero-delay feedback.
const DefaultSettleLimit = 1000

// A State is the driver's run state.
//
type State uint8

const (
	StateIdle State = iota
	StateStepping
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStepping:
		return "stepping"
	case StateHalted:
		return "halted"
	}
	return "?"
}

// Config carries the driver's explicit configuration. There is no global
// state: callers that want a different oscillation cap pass it here.
//
type Config struct {
	// SettleLimit caps the number of zero-delay sub-iterations the driver
	// runs within a single timestamp before declaring the circuit
	// oscillating. Zero selects DefaultSettleLimit.
	SettleLimit int
}

// Stats is a snapshot of driver counters, exposed to CLI/UI collaborators.
//
type Stats struct {
	EventsProcessed uint64
	Time            Timestamp
	Nodes           int
	Components      int
}

// A Simulator is the propagation driver: it owns the event queue, advances
// simulated time, applies due events to the netlist, re-evaluates affected
// components and schedules their reported outputs.
//
// A Simulator is strictly single threaded: one Step completes fully before
// the next begins, and nothing outside the driver may mutate net values
// directly. All changes flow through scheduled events, which is what makes
// replay deterministic.
type Simulator struct {
	cfg   Config
	nl    *Netlist
	q     eventQueue
	now   Timestamp
	state State
	halt  *OscillationError

	processed uint64
}

// New returns a driver for the given netlist and seeds the first wake-up
// event of every self-starting component (clock sources).
//
func New(nl *Netlist, cfg Config) *Simulator {
	if cfg.SettleLimit <= 0 {
		cfg.SettleLimit = DefaultSettleLimit
	}
	s := &Simulator{cfg: cfg, nl: nl, state: StateIdle}
	s.seedStarters()
	return s
}

// scheduleAt enqueues e. Scheduling into the past is a programming error
// (delays are non-negative by construction), so it panics rather than
// corrupting the timeline.
func (s *Simulator) scheduleAt(e *Event) {
	if e.Time < s.now {
		panic("event scheduled before current simulation time")
	}
	s.q.schedule(e)
}

// Inject schedules an external stimulus: from time at onward, net n behaves
// as if an extra driver held value on it. Injecting an all-Unknown signal
// releases a previous stimulus. This is the only way external collaborators
// (tests, the CLI front end) may influence net values.
//
func (s *Simulator) Inject(at Timestamp, n NetID, value Signal) error {
	net, err := s.nl.net(n)
	if err != nil {
		return err
	}
	if value.Width() != net.width {
		return &WidthMismatchError{Pin: net.name, PinWidth: value.Width(), NetWidth: net.width}
	}
	if at < s.now {
		return errors.Errorf("cannot inject at t=%d: simulation time is already t=%d", at, s.now)
	}
	s.q.schedule(&Event{Time: at, kind: evStim, net: n, value: value.Clone()})
	return nil
}

// Step processes all events at the earliest pending timestamp, including
// every zero-delay cascade they trigger. It returns false with a nil error
// when the queue is empty, and false with an OscillationError when the
// per-timestamp iteration cap is exceeded, leaving the driver halted until
// Reset.
//
func (s *Simulator) Step() (bool, error) {
	if s.state == StateHalted {
		return false, errors.WithMessage(s.halt, "driver halted, Reset required")
	}
	t, ok := s.q.peekTime()
	if !ok {
		s.state = StateIdle
		return false, nil
	}
	s.state = StateStepping
	s.now = t

	iters := 0
	for {
		batch := s.q.popBatchAt(t)
		if len(batch) == 0 {
			break
		}
		iters++
		if iters > s.cfg.SettleLimit {
			s.state = StateHalted
			s.halt = &OscillationError{Time: t, Iters: iters}
			measureHalt(t)
			return false, s.halt
		}
		if err := s.applyBatch(t, batch); err != nil {
			return false, err
		}
	}
	measureStep(iters)
	return true, nil
}

// applyBatch applies one same-timestamp batch of events, resolves the
// affected nets and re-evaluates their fanout.
func (s *Simulator) applyBatch(t Timestamp, batch []*Event) error {
	s.processed += uint64(len(batch))
	measureEvents(len(batch))

	var dirty []NetID
	dirtySeen := make(map[NetID]bool)
	var affected []CompID
	affectedSeen := make(map[CompID]bool)
	edges := make(map[CompID]Edge)

	markDirty := func(n NetID) {
		if !dirtySeen[n] {
			dirtySeen[n] = true
			dirty = append(dirty, n)
		}
	}
	markAffected := func(c CompID) {
		if !affectedSeen[c] {
			affectedSeen[c] = true
			affected = append(affected, c)
		}
	}

	// apply events in sequence order
	for _, e := range batch {
		switch e.kind {
		case evDrive:
			p := &s.nl.comps[e.comp].pins[e.pin]
			copy(p.value, e.value)
			if p.net >= 0 {
				markDirty(p.net)
			}
		case evStim:
			s.nl.nets[e.net].stim = e.value
			markDirty(e.net)
		case evWake:
			markAffected(e.comp)
		}
	}

	// resolve dirty nets and collect fanout of those that changed
	for _, n := range dirty {
		net := &s.nl.nets[n]
		old := net.value.Clone()
		nv, err := s.nl.Resolve(n)
		if err != nil {
			return err
		}
		if old.Equal(nv) {
			continue
		}
		fan, err := s.nl.Fanout(n)
		if err != nil {
			return err
		}
		for _, c := range fan {
			comp := &s.nl.comps[c]
			for j := range comp.pins {
				p := &comp.pins[j]
				if p.net != n || p.spec.Dir != In {
					continue
				}
				copy(p.value, nv)
				if p.spec.Clock && comp.dev.Sequential() {
					if edge, ok := clockEdge(old[0], nv[0]); ok {
						edges[c] = edge
					}
				}
			}
			markAffected(c)
		}
	}

	// re-evaluate affected components and schedule their outputs
	for _, c := range affected {
		comp := &s.nl.comps[c]
		var res UpdateResult
		if edge, ok := edges[c]; ok {
			res = comp.dev.ClockEdge(edge, t, comp)
		} else {
			res = comp.dev.Update(t, comp)
		}
		if err := s.applyResult(t, c, comp, res); err != nil {
			return err
		}
	}
	return nil
}

// applyResult schedules events for every reported output that differs from
// the pin's cached value, and the component's next wake-up if requested.
// Output names are walked in sorted order so that replay stays deterministic
// regardless of map iteration order.
func (s *Simulator) applyResult(t Timestamp, c CompID, comp *compState, res UpdateResult) error {
	if len(res.Outputs) > 0 {
		names := make([]string, 0, len(res.Outputs))
		for name := range res.Outputs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sig := res.Outputs[name]
			i, ok := comp.byName[name]
			if !ok {
				return errors.WithStack(&UnknownPinError{Comp: c, Pin: name})
			}
			p := &comp.pins[i]
			if p.spec.Dir == In {
				return errors.Errorf("component %s drove its input pin %s", comp.name, name)
			}
			if sig.Width() != p.spec.Width {
				return errors.WithStack(&WidthMismatchError{
					Pin: name, PinWidth: p.spec.Width, NetWidth: sig.Width(),
				})
			}
			if p.value.Equal(sig) {
				continue
			}
			s.scheduleAt(&Event{
				Time:  t + res.Delay,
				kind:  evDrive,
				comp:  c,
				pin:   i,
				value: sig.Clone(),
			})
		}
	}
	if res.WakeAfter > 0 {
		s.scheduleAt(&Event{Time: t + res.WakeAfter, kind: evWake, comp: c})
	}
	return nil
}

// clockEdge classifies a clock bit transition. Transitions involving
// Unknown or Error are not edges.
func clockEdge(old, cur Value) (Edge, bool) {
	switch {
	case old == Low && cur == High:
		return Rising, true
	case old == High && cur == Low:
		return Falling, true
	}
	return 0, false
}

// RunUntil steps the simulation until the queue empties, the driver halts,
// or the next pending event lies beyond limit.
//
func (s *Simulator) RunUntil(limit Timestamp) error {
	for {
		if s.state == StateHalted {
			return errors.WithMessage(s.halt, "driver halted, Reset required")
		}
		t, ok := s.q.peekTime()
		if !ok {
			s.state = StateIdle
			return nil
		}
		if t > limit {
			return nil
		}
		if _, err := s.Step(); err != nil {
			return err
		}
	}
}

// Reset discards all pending events, resets every component and net to its
// initial state, rewinds the clock to timestamp 0 and re-seeds self-starting
// components. All counters restart.
//
func (s *Simulator) Reset() {
	s.q.clear()
	s.nl.clearValues()
	for i := range s.nl.comps {
		s.nl.comps[i].dev.Reset()
	}
	s.now = 0
	s.processed = 0
	s.halt = nil
	s.state = StateIdle
	s.seedStarters()
}

// Now returns the current simulated time.
//
func (s *Simulator) Now() Timestamp { return s.now }

// NextEventTime returns the timestamp of the earliest pending event. The
// second return value is false when the queue is empty.
//
func (s *Simulator) NextEventTime() (Timestamp, bool) { return s.q.peekTime() }

// State returns the driver's run state.
//
func (s *Simulator) State() State { return s.state }

// HaltCause returns the error that halted the driver, or nil while it is
// running. The error reports the timestamp and iteration count that tripped
// the oscillation guard.
//
func (s *Simulator) HaltCause() error {
	if s.halt == nil {
		return nil
	}
	return s.halt
}

// Stats returns a snapshot of the driver's counters.
//
func (s *Simulator) Stats() Stats {
	return Stats{
		EventsProcessed: s.processed,
		Time:            s.now,
		Nodes:           s.nl.NumNodes(),
		Components:      s.nl.NumComponents(),
	}
}

// NodeIDs returns the ids of every net in the simulated circuit.
//
func (s *Simulator) NodeIDs() []NetID { return s.nl.NodeIDs() }

// Resolve recomputes and returns the value of net n. Chronogram-style
// collaborators poll this after each Step for the nodes they watch.
//
func (s *Simulator) Resolve(n NetID) (Signal, error) { return s.nl.Resolve(n) }
