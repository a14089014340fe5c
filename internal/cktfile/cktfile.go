// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cktfile loads circuit descriptions from YAML and builds the
// corresponding netlist through the engine's construction API. It is the
// file-loading collaborator: it runs once per circuit, before any Step.
//
package cktfile

import (
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dlsim/dlsim"
	"github.com/dlsim/dlsim/devlib"
)

// An UnknownKindPolicy selects what Load does with a component whose kind
// has no registered factory.
//
type UnknownKindPolicy int

const (
	// UnknownKindError fails the load.
	UnknownKindError UnknownKindPolicy = iota
	// UnknownKindIgnore skips the component, leaving its nets undriven.
	UnknownKindIgnore
)

// Options configures a load.
//
type Options struct {
	// Registry resolves component kinds. Nil selects the devlib catalog.
	Registry *devlib.Registry
	// UnknownKind selects the policy for unregistered kinds.
	UnknownKind UnknownKindPolicy
}

// A Stimulus is an external value injection read from the circuit file.
//
type Stimulus struct {
	Node  dlsim.NetID
	Time  dlsim.Timestamp
	Value dlsim.Signal
}

// A Circuit is a loaded, fully wired netlist plus its file-declared
// stimuli, ready to be handed to a simulator.
//
type Circuit struct {
	Name    string
	Netlist *dlsim.Netlist
	Nodes   map[string]dlsim.NetID
	Stimuli []Stimulus
}

// NewSimulator builds a driver for the circuit and schedules its declared
// stimuli.
//
func (c *Circuit) NewSimulator(cfg dlsim.Config) (*dlsim.Simulator, error) {
	sim := dlsim.New(c.Netlist, cfg)
	for _, st := range c.Stimuli {
		if err := sim.Inject(st.Time, st.Node, st.Value); err != nil {
			return nil, errors.Wrap(err, "schedule stimulus")
		}
	}
	return sim, nil
}

// on-disk schema
type fileCircuit struct {
	Name       string          `yaml:"name"`
	Nodes      []fileNode      `yaml:"nodes"`
	Components []fileComponent `yaml:"components"`
	Stimuli    []fileStimulus  `yaml:"stimuli"`
}

type fileNode struct {
	Name  string `yaml:"name"`
	Width int    `yaml:"width"`
}

type fileComponent struct {
	Name  string            `yaml:"name"`
	Kind  string            `yaml:"kind"`
	Attrs map[string]any    `yaml:"attrs"`
	Pins  map[string]string `yaml:"pins"`
}

type fileStimulus struct {
	Node  string `yaml:"node"`
	Time  uint64 `yaml:"time"`
	Value string `yaml:"value"`
}

// Load reads a YAML circuit description and builds its netlist.
//
func Load(r io.Reader, opts Options) (*Circuit, error) {
	reg := opts.Registry
	if reg == nil {
		reg = devlib.NewRegistry()
	}

	var f fileCircuit
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode circuit file")
	}

	c := &Circuit{
		Name:    f.Name,
		Netlist: dlsim.NewNetlist(),
		Nodes:   make(map[string]dlsim.NetID, len(f.Nodes)),
	}

	for _, n := range f.Nodes {
		if n.Name == "" {
			return nil, errors.New("node with empty name")
		}
		if _, ok := c.Nodes[n.Name]; ok {
			return nil, errors.Errorf("duplicate node %q", n.Name)
		}
		w := n.Width
		if w == 0 {
			w = 1
		}
		if w < 0 {
			return nil, errors.Errorf("node %q: invalid width %d", n.Name, w)
		}
		c.Nodes[n.Name] = c.Netlist.AddNode(n.Name, w)
	}

	for _, fc := range f.Components {
		if fc.Name == "" {
			return nil, errors.New("component with empty name")
		}
		if !reg.Known(fc.Kind) && opts.UnknownKind == UnknownKindIgnore {
			continue
		}
		dev, err := reg.New(fc.Kind, devlib.Attrs(fc.Attrs))
		if err != nil {
			return nil, errors.Wrapf(err, "component %q", fc.Name)
		}
		id := c.Netlist.AddComponent(fc.Name, dev)
		// wire in sorted pin order so that net attachment order, and with it
		// event ordering, is identical on every load of the same file
		pins := make([]string, 0, len(fc.Pins))
		for pin := range fc.Pins {
			pins = append(pins, pin)
		}
		sort.Strings(pins)
		for _, pin := range pins {
			node := fc.Pins[pin]
			nid, ok := c.Nodes[node]
			if !ok {
				return nil, errors.Errorf("component %q: pin %s wired to undeclared node %q",
					fc.Name, pin, node)
			}
			if err := c.Netlist.Connect(id, pin, nid); err != nil {
				return nil, errors.Wrapf(err, "component %q", fc.Name)
			}
		}
	}

	for _, st := range f.Stimuli {
		nid, ok := c.Nodes[st.Node]
		if !ok {
			return nil, errors.Errorf("stimulus on undeclared node %q", st.Node)
		}
		v, err := dlsim.ParseSignal(st.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "stimulus on node %q", st.Node)
		}
		c.Stimuli = append(c.Stimuli, Stimulus{
			Node:  nid,
			Time:  dlsim.Timestamp(st.Time),
			Value: v,
		})
	}

	return c, nil
}

// LoadFile is Load on the named file.
//
func LoadFile(path string, opts Options) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open circuit file")
	}
	defer f.Close()
	c, err := Load(f, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return c, nil
}
