// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

// A Sample is one recorded (time, value) pair for a watched node.
//
type Sample struct {
	Time  Timestamp
	Value Signal
}

// A Recorder captures the waveform of watched nodes the way a chronogram
// viewer would: it polls Resolve after each Step and records a sample
// whenever a watched node's value differs from the previous one. It has no
// privileged access to the engine.
//
type Recorder struct {
	sim     *Simulator
	watch   []NetID
	last    map[NetID]Signal
	samples map[NetID][]Sample
}

// NewRecorder returns a recorder watching the given nodes.
//
func NewRecorder(sim *Simulator, nodes ...NetID) *Recorder {
	return &Recorder{
		sim:     sim,
		watch:   nodes,
		last:    make(map[NetID]Signal, len(nodes)),
		samples: make(map[NetID][]Sample, len(nodes)),
	}
}

// Run steps the simulation until the queue empties, the driver halts or the
// next event lies beyond limit, sampling watched nodes after every step.
//
func (r *Recorder) Run(limit Timestamp) error {
	for {
		t, ok := r.sim.NextEventTime()
		if !ok || t > limit {
			return nil
		}
		if _, err := r.sim.Step(); err != nil {
			return err
		}
		if err := r.sample(); err != nil {
			return err
		}
	}
}

func (r *Recorder) sample() error {
	now := r.sim.Now()
	for _, n := range r.watch {
		v, err := r.sim.Resolve(n)
		if err != nil {
			return err
		}
		if prev, ok := r.last[n]; ok && prev.Equal(v) {
			continue
		}
		r.last[n] = v.Clone()
		r.samples[n] = append(r.samples[n], Sample{Time: now, Value: v.Clone()})
	}
	return nil
}

// Samples returns the recorded transitions of node n in time order.
//
func (r *Recorder) Samples(n NetID) []Sample {
	return r.samples[n]
}
