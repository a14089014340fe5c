// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package simtest provides utility functions for building and checking
// circuits in tests.
//
package simtest

import (
	"testing"

	"github.com/dlsim/dlsim"
)

// A Builder assembles a netlist from devices and named nodes, creating nodes
// on first use with the width of the pin wired to them.
//
type Builder struct {
	nl    *dlsim.Netlist
	nodes map[string]dlsim.NetID
}

// NewBuilder returns an empty circuit builder.
//
func NewBuilder() *Builder {
	return &Builder{
		nl:    dlsim.NewNetlist(),
		nodes: make(map[string]dlsim.NetID),
	}
}

// Node creates a node of the given width, or returns the existing one
// registered under name.
//
func (b *Builder) Node(name string, width int) dlsim.NetID {
	if id, ok := b.nodes[name]; ok {
		return id
	}
	id := b.nl.AddNode(name, width)
	b.nodes[name] = id
	return id
}

// Add registers dev under the given instance name and wires its pins to the
// named nodes in wires (pin name to node name). Nodes are created as needed.
//
func (b *Builder) Add(t *testing.T, name string, dev dlsim.Component, wires map[string]string) dlsim.CompID {
	t.Helper()
	id := b.nl.AddComponent(name, dev)
	for _, p := range dev.Pins() {
		node, ok := wires[p.Name]
		if !ok {
			continue
		}
		if err := b.nl.Connect(id, p.Name, b.Node(node, p.Width)); err != nil {
			t.Fatalf("wire %s.%s to %s: %v", name, p.Name, node, err)
		}
	}
	return id
}

// Build returns a runnable circuit around the assembled netlist.
//
func (b *Builder) Build(cfg dlsim.Config) *Circuit {
	return &Circuit{
		Sim:   dlsim.New(b.nl, cfg),
		nodes: b.nodes,
	}
}

// A Circuit wraps a simulator with name-based helpers for tests.
//
type Circuit struct {
	Sim   *dlsim.Simulator
	nodes map[string]dlsim.NetID
}

// NodeID returns the id of the named node.
//
func (c *Circuit) NodeID(t *testing.T, name string) dlsim.NetID {
	t.Helper()
	id, ok := c.nodes[name]
	if !ok {
		t.Fatalf("no node named %q", name)
	}
	return id
}

// Inject schedules a stimulus on the named node, parsing lit as a signal
// literal ("1", "0X10", ...).
//
func (c *Circuit) Inject(t *testing.T, at dlsim.Timestamp, node, lit string) {
	t.Helper()
	v, err := dlsim.ParseSignal(lit)
	if err != nil {
		t.Fatalf("inject %s: %v", node, err)
	}
	if err := c.Sim.Inject(at, c.NodeID(t, node), v); err != nil {
		t.Fatalf("inject %s: %v", node, err)
	}
}

// Run advances the simulation up to and including limit and fails the test
// on any driver error.
//
func (c *Circuit) Run(t *testing.T, limit dlsim.Timestamp) {
	t.Helper()
	if err := c.Sim.RunUntil(limit); err != nil {
		t.Fatalf("run until %d: %v", limit, err)
	}
}

// Value returns the current resolved value of the named node.
//
func (c *Circuit) Value(t *testing.T, node string) dlsim.Signal {
	t.Helper()
	v, err := c.Sim.Resolve(c.NodeID(t, node))
	if err != nil {
		t.Fatalf("resolve %s: %v", node, err)
	}
	return v
}

// Expect fails the test unless the named node currently holds the value
// described by lit.
//
func (c *Circuit) Expect(t *testing.T, node, lit string) {
	t.Helper()
	want, err := dlsim.ParseSignal(lit)
	if err != nil {
		t.Fatalf("expect %s: %v", node, err)
	}
	if got := c.Value(t, node); !got.Equal(want) {
		t.Errorf("node %s = %s, want %s at t=%d", node, got, want, c.Sim.Now())
	}
}
