// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/dlsim/dlsim"
	"github.com/dlsim/dlsim/devlib"
	"github.com/dlsim/dlsim/simtest"
)

// A 2-input AND gate with propagation delay 2: inputs going High,High at t=0
// must show on the output at t=2, and the input going Low at t=2 must show
// at t=4.
func TestSimulator_gateDelay(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "and1", devlib.And(2, 1, 2), map[string]string{
		"a": "a", "b": "b", "out": "y",
	})
	c := b.Build(dlsim.Config{})

	c.Inject(t, 0, "a", "1")
	c.Inject(t, 0, "b", "1")
	c.Inject(t, 2, "a", "0")

	c.Run(t, 1)
	c.Expect(t, "y", "X") // not High at t=0

	c.Run(t, 2)
	c.Expect(t, "y", "1")

	c.Run(t, 4)
	c.Expect(t, "y", "0")
}

func TestSimulator_zeroDelayCascade(t *testing.T) {
	// two chained zero-delay inverters settle within a single timestamp
	b := simtest.NewBuilder()
	b.Add(t, "n1", devlib.Not(1, 0), map[string]string{"in": "a", "out": "w"})
	b.Add(t, "n2", devlib.Not(1, 0), map[string]string{"in": "w", "out": "y"})
	c := b.Build(dlsim.Config{})

	c.Inject(t, 0, "a", "1")
	c.Run(t, 0)
	c.Expect(t, "w", "0")
	c.Expect(t, "y", "1")
	if now := c.Sim.Now(); now != 0 {
		t.Errorf("Now() = %d after zero-delay cascade, want 0", now)
	}
}

// A zero-delay feedback loop must trip the oscillation guard and leave the
// driver halted instead of looping forever.
func TestSimulator_oscillationGuard(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "nand1", devlib.Nand(2, 1, 0), map[string]string{
		"a": "ctl", "b": "loop", "out": "loop",
	})
	c := b.Build(dlsim.Config{SettleLimit: 20})

	// Low on ctl forces the loop High regardless of feedback
	c.Inject(t, 0, "ctl", "0")
	c.Run(t, 0)
	c.Expect(t, "loop", "1")

	// releasing the control input closes the combinational loop
	c.Inject(t, 1, "ctl", "1")
	err := c.Sim.RunUntil(5)
	var osc *dlsim.OscillationError
	if !errors.As(err, &osc) {
		t.Fatalf("RunUntil = %v, want OscillationError", err)
	}
	if osc.Time != 1 {
		t.Errorf("oscillation reported at t=%d, want t=1", osc.Time)
	}
	if osc.Iters <= 20 {
		t.Errorf("oscillation reported after %d iterations, want > cap", osc.Iters)
	}
	if st := c.Sim.State(); st != dlsim.StateHalted {
		t.Errorf("State() = %s, want halted", st)
	}
	if c.Sim.HaltCause() == nil {
		t.Error("HaltCause() = nil on a halted driver")
	}

	// stepping a halted driver fails until Reset
	if _, err := c.Sim.Step(); err == nil {
		t.Error("Step succeeded on a halted driver")
	}
	c.Sim.Reset()
	if _, err := c.Sim.Step(); err != nil {
		t.Errorf("Step after Reset failed: %v", err)
	}
}

// A clock with period 10 and phase 0 toggles at t=0, 10, 20, 30 when run
// until 35.
func TestSimulator_clock(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "clk1", devlib.NewClock(10, 0), map[string]string{"out": "clk"})
	c := b.Build(dlsim.Config{})
	clk := c.NodeID(t, "clk")

	rec := dlsim.NewRecorder(c.Sim, clk)
	if err := rec.Run(35); err != nil {
		t.Fatal(err)
	}

	want := []dlsim.Sample{
		{Time: 0, Value: dlsim.Signal{dlsim.High}},
		{Time: 10, Value: dlsim.Signal{dlsim.Low}},
		{Time: 20, Value: dlsim.Signal{dlsim.High}},
		{Time: 30, Value: dlsim.Signal{dlsim.Low}},
	}
	if diff := cmp.Diff(want, rec.Samples(clk)); diff != "" {
		t.Errorf("clock samples mismatch (-want +got):\n%s", diff)
	}
}

func TestSimulator_clockPhase(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "clk1", devlib.NewClock(10, 3), map[string]string{"out": "clk"})
	c := b.Build(dlsim.Config{})
	clk := c.NodeID(t, "clk")

	rec := dlsim.NewRecorder(c.Sim, clk)
	if err := rec.Run(25); err != nil {
		t.Fatal(err)
	}
	got := rec.Samples(clk)
	wantTimes := []dlsim.Timestamp{3, 13, 23}
	if len(got) != len(wantTimes) {
		t.Fatalf("got %d samples, want %d", len(got), len(wantTimes))
	}
	for i, s := range got {
		if s.Time != wantTimes[i] {
			t.Errorf("toggle %d at t=%d, want t=%d", i, s.Time, wantTimes[i])
		}
	}
}

// A D flip-flop latches d only on rising clock edges, delayed by its
// propagation delay.
func TestSimulator_dff(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "clk1", devlib.NewClock(10, 0), map[string]string{"out": "clk"})
	b.Add(t, "ff", devlib.NewDFF(1, 1), map[string]string{
		"d": "d", "clk": "clk", "q": "q",
	})
	c := b.Build(dlsim.Config{})

	// the clock's first transition is Unknown->High, which is not an edge;
	// the first detected rising edge is at t=20
	c.Inject(t, 0, "d", "1")
	c.Inject(t, 25, "d", "0")

	c.Run(t, 19)
	c.Expect(t, "q", "X")

	c.Run(t, 21)
	c.Expect(t, "q", "1")

	// d going Low between edges does not propagate
	c.Run(t, 39)
	c.Expect(t, "q", "1")

	c.Run(t, 41)
	c.Expect(t, "q", "0")
}

func TestSimulator_reset(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "clk1", devlib.NewClock(10, 0), map[string]string{"out": "clk"})
	b.Add(t, "inv", devlib.Not(1, 1), map[string]string{"in": "clk", "out": "nclk"})
	c := b.Build(dlsim.Config{})

	c.Run(t, 42)
	if st := c.Sim.Stats(); st.EventsProcessed == 0 || st.Time == 0 {
		t.Fatalf("expected a non-trivial run before Reset, got %+v", st)
	}

	c.Sim.Reset()

	if now := c.Sim.Now(); now != 0 {
		t.Errorf("Now() = %d after Reset, want 0", now)
	}
	st := c.Sim.Stats()
	if st.EventsProcessed != 0 {
		t.Errorf("Stats().EventsProcessed = %d after Reset, want 0", st.EventsProcessed)
	}
	c.Expect(t, "clk", "X")
	c.Expect(t, "nclk", "X")

	// clocks are re-seeded: the run replays identically
	c.Run(t, 42)
	c.Expect(t, "clk", "1") // toggles at 0,10,20,30,40
	c.Expect(t, "nclk", "0")
}

func TestSimulator_stats(t *testing.T) {
	b := simtest.NewBuilder()
	b.Add(t, "n1", devlib.Not(1, 1), map[string]string{"in": "a", "out": "y"})
	c := b.Build(dlsim.Config{})
	st := c.Sim.Stats()
	if st.Nodes != 2 || st.Components != 1 {
		t.Errorf("Stats() = %+v, want 2 nodes, 1 component", st)
	}
	if got := len(c.Sim.NodeIDs()); got != 2 {
		t.Errorf("len(NodeIDs()) = %d, want 2", got)
	}
}

// replaying the same circuit and stimulus twice yields identical waveforms.
func TestSimulator_deterministicReplay(t *testing.T) {
	run := func() []dlsim.Sample {
		b := simtest.NewBuilder()
		b.Add(t, "clk1", devlib.NewClock(7, 0), map[string]string{"out": "clk"})
		b.Add(t, "g1", devlib.Nand(2, 1, 1), map[string]string{"a": "clk", "b": "d", "out": "y"})
		b.Add(t, "ff", devlib.NewDFF(1, 2), map[string]string{"d": "y", "clk": "clk", "q": "d"})
		c := b.Build(dlsim.Config{})
		y := c.NodeID(t, "y")
		rec := dlsim.NewRecorder(c.Sim, y)
		if err := rec.Run(100); err != nil {
			t.Fatal(err)
		}
		return rec.Samples(y)
	}
	first, second := run(), run()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay diverged (-first +second):\n%s", diff)
	}
}

func TestSimulator_injectValidation(t *testing.T) {
	b := simtest.NewBuilder()
	b.Node("bus", 4)
	c := b.Build(dlsim.Config{})

	if err := c.Sim.Inject(0, c.NodeID(t, "bus"), dlsim.MakeSignal(2, dlsim.High)); err == nil {
		t.Error("Inject accepted a signal of the wrong width")
	}
	if err := c.Sim.Inject(0, dlsim.NetID(99), dlsim.MakeSignal(4, dlsim.High)); err == nil {
		t.Error("Inject accepted an unknown node id")
	}
}
