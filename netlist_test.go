// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import (
	"testing"

	"github.com/pkg/errors"
)

// stubComp implements Component with a fixed pin layout and no behavior.
type stubComp struct {
	pins []PinSpec
}

func (s *stubComp) Pins() []PinSpec                          { return s.pins }
func (s *stubComp) Update(Timestamp, PinReader) UpdateResult { return UpdateResult{} }
func (s *stubComp) ClockEdge(Edge, Timestamp, PinReader) UpdateResult {
	return UpdateResult{}
}
func (s *stubComp) Reset()                      {}
func (s *stubComp) PropagationDelay() Timestamp { return 1 }
func (s *stubComp) Sequential() bool            { return false }

func driver1() *stubComp {
	return &stubComp{pins: []PinSpec{{Name: "out", Dir: Out, Width: 1}}}
}

func sink1() *stubComp {
	return &stubComp{pins: []PinSpec{{Name: "in", Dir: In, Width: 1}}}
}

func TestNetlist_connect(t *testing.T) {
	nl := NewNetlist()
	n := nl.AddNode("w", 1)
	c := nl.AddComponent("g", driver1())

	if err := nl.Connect(c, "out", n); err != nil {
		t.Fatal(err)
	}
	// idempotent
	if err := nl.Connect(c, "out", n); err != nil {
		t.Errorf("repeated Connect failed: %v", err)
	}
	fan, err := nl.Fanout(n)
	if err != nil {
		t.Fatal(err)
	}
	if len(fan) != 0 {
		t.Errorf("Fanout of output-only net = %v, want empty", fan)
	}

	// re-wiring to another net is rejected
	n2 := nl.AddNode("w2", 1)
	if err := nl.Connect(c, "out", n2); err == nil {
		t.Error("Connect re-wired a connected pin")
	}
}

func TestNetlist_connect_widthMismatch(t *testing.T) {
	nl := NewNetlist()
	n := nl.AddNode("bus", 8)
	c := nl.AddComponent("g", driver1())

	err := nl.Connect(c, "out", n)
	var wm *WidthMismatchError
	if !errors.As(err, &wm) {
		t.Fatalf("Connect error = %v, want WidthMismatchError", err)
	}
	if wm.PinWidth != 1 || wm.NetWidth != 8 {
		t.Errorf("WidthMismatchError = %+v, want pin 1, net 8", wm)
	}
}

func TestNetlist_unknownRefs(t *testing.T) {
	nl := NewNetlist()
	n := nl.AddNode("w", 1)
	c := nl.AddComponent("g", driver1())

	if err := nl.Connect(c, "nope", n); err == nil {
		t.Error("Connect accepted an unknown pin name")
	}
	if err := nl.Connect(CompID(42), "out", n); err == nil {
		t.Error("Connect accepted an unknown component id")
	}
	if err := nl.Connect(c, "out", NetID(42)); err == nil {
		t.Error("Connect accepted an unknown net id")
	}
	if _, err := nl.Resolve(NetID(42)); err == nil {
		t.Error("Resolve accepted an unknown net id")
	}
	var un *UnknownNodeError
	_, err := nl.Fanout(NetID(42))
	if !errors.As(err, &un) {
		t.Errorf("Fanout error = %v, want UnknownNodeError", err)
	}
}

func TestNetlist_resolve(t *testing.T) {
	nl := NewNetlist()
	n := nl.AddNode("w", 1)
	a := nl.AddComponent("a", driver1())
	b := nl.AddComponent("b", driver1())
	if err := nl.Connect(a, "out", n); err != nil {
		t.Fatal(err)
	}
	if err := nl.Connect(b, "out", n); err != nil {
		t.Fatal(err)
	}

	set := func(c CompID, v Value) {
		nl.comps[c].pins[0].value[0] = v
	}

	td := []struct {
		name string
		a, b Value
		want Value
	}{
		{"both unknown", Unknown, Unknown, Unknown},
		{"one driving", High, Unknown, High},
		{"agreeing", Low, Low, Low},
		{"contention", High, Low, Error},
		{"error wins", Error, High, Error},
	}
	for _, tt := range td {
		t.Run(tt.name, func(t *testing.T) {
			set(a, tt.a)
			set(b, tt.b)
			v, err := nl.Resolve(n)
			if err != nil {
				t.Fatal(err)
			}
			if v[0] != tt.want {
				t.Errorf("Resolve(%s, %s) = %s, want %s", tt.a, tt.b, v[0], tt.want)
			}
		})
	}
}

func TestNetlist_fanout(t *testing.T) {
	nl := NewNetlist()
	n := nl.AddNode("w", 1)
	d := nl.AddComponent("drv", driver1())
	s1 := nl.AddComponent("s1", sink1())
	s2 := nl.AddComponent("s2", sink1())
	for _, c := range []struct {
		id  CompID
		pin string
	}{{d, "out"}, {s1, "in"}, {s2, "in"}} {
		if err := nl.Connect(c.id, c.pin, n); err != nil {
			t.Fatal(err)
		}
	}
	fan, err := nl.Fanout(n)
	if err != nil {
		t.Fatal(err)
	}
	if len(fan) != 2 || fan[0] != s1 || fan[1] != s2 {
		t.Errorf("Fanout = %v, want [%d %d]", fan, s1, s2)
	}
}

func TestNetlist_addComponent_badPins(t *testing.T) {
	for _, tt := range []struct {
		name string
		pins []PinSpec
	}{
		{"duplicate", []PinSpec{{Name: "x", Dir: In, Width: 1}, {Name: "x", Dir: Out, Width: 1}}},
		{"empty name", []PinSpec{{Name: "", Dir: In, Width: 1}}},
		{"zero width", []PinSpec{{Name: "x", Dir: In, Width: 0}}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("AddComponent accepted a malformed pin layout")
				}
			}()
			NewNetlist().AddComponent("bad", &stubComp{pins: tt.pins})
		})
	}
}
