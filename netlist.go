// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import (
	"github.com/pkg/errors"
)

// A NetID identifies a net in a netlist. External collaborators (the file
// loader, the chronogram viewer) address nets exclusively through these ids.
//
type NetID int

// A CompID identifies a component in a netlist.
//
type CompID int

// a pinRef addresses one pin of one component.
type pinRef struct {
	comp CompID
	pin  int
}

type pinState struct {
	spec PinSpec
	net  NetID // -1 while unconnected
	// cached value: for input pins the resolved value of the wired net,
	// for output and inout pins the value the component currently drives.
	value Signal
}

type compState struct {
	name   string
	dev    Component
	pins   []pinState
	byName map[string]int
}

// PinValue implements PinReader over the component's cached pin values.
func (c *compState) PinValue(name string) Signal {
	i, ok := c.byName[name]
	if !ok {
		return nil
	}
	return c.pins[i].value
}

type netState struct {
	name  string
	width int
	pins  []pinRef
	value Signal
	// stim is an injected external driver (test stimulus), merged with the
	// attached output pins during Resolve. nil when none is present.
	stim Signal
}

// A Netlist owns the circuit topology: the arenas of nets and components and
// the wiring between their pins. Relationships are stored as index lists, so
// feedback loops are ordinary data.
//
// A netlist is built once, by the file-loading collaborator, before the
// simulation starts; the propagation driver then mutates net and pin values
// exclusively through scheduled events.
type Netlist struct {
	nets  []netState
	comps []compState
}

// NewNetlist returns an empty netlist.
//
func NewNetlist() *Netlist {
	return &Netlist{}
}

// AddNode creates a named net of the given width and returns its id.
//
func (nl *Netlist) AddNode(name string, width int) NetID {
	if width <= 0 {
		panic("node width must be positive")
	}
	nl.nets = append(nl.nets, netState{
		name:  name,
		width: width,
		value: MakeSignal(width, Unknown),
	})
	return NetID(len(nl.nets) - 1)
}

// AddComponent adds dev to the component table under the given instance name
// and returns its id. The pin layout is captured once from dev.Pins; it
// panics on duplicate or malformed pin specs since those are programming
// errors in the device implementation, not runtime conditions.
//
func (nl *Netlist) AddComponent(name string, dev Component) CompID {
	specs := dev.Pins()
	c := compState{
		name:   name,
		dev:    dev,
		pins:   make([]pinState, len(specs)),
		byName: make(map[string]int, len(specs)),
	}
	for i, p := range specs {
		if p.Name == "" {
			panic("component " + name + ": empty pin name")
		}
		if p.Width <= 0 {
			panic("component " + name + ": pin " + p.Name + " has no width")
		}
		if _, ok := c.byName[p.Name]; ok {
			panic("component " + name + ": duplicate pin " + p.Name)
		}
		c.byName[p.Name] = i
		c.pins[i] = pinState{
			spec:  p,
			net:   -1,
			value: MakeSignal(p.Width, Unknown),
		}
	}
	nl.comps = append(nl.comps, c)
	return CompID(len(nl.comps) - 1)
}

// Connect wires the named pin of component c to net n. Connecting a pin to
// the net it is already wired to is a no-op; re-wiring to a different net or
// wiring across widths is an error.
//
func (nl *Netlist) Connect(c CompID, pin string, n NetID) error {
	comp, err := nl.comp(c)
	if err != nil {
		return err
	}
	net, err := nl.net(n)
	if err != nil {
		return err
	}
	i, ok := comp.byName[pin]
	if !ok {
		return &UnknownPinError{Comp: c, Pin: pin}
	}
	p := &comp.pins[i]
	if p.spec.Width != net.width {
		return &WidthMismatchError{Pin: pin, PinWidth: p.spec.Width, NetWidth: net.width}
	}
	if p.net == n {
		return nil
	}
	if p.net >= 0 {
		return errors.Errorf("pin %s of component %s already wired to node %d",
			pin, comp.name, p.net)
	}
	p.net = n
	net.pins = append(net.pins, pinRef{comp: c, pin: i})
	return nil
}

// Resolve recomputes the value of net n by merging, bit by bit, the signal
// of every output and inout pin attached to it (plus any injected stimulus),
// caches the result on the net and returns it. The result is a pure function
// of the current drivers; no history is kept.
//
func (nl *Netlist) Resolve(n NetID) (Signal, error) {
	net, err := nl.net(n)
	if err != nil {
		return nil, err
	}
	drivers := make([]Signal, 0, len(net.pins)+1)
	for _, r := range net.pins {
		p := &nl.comps[r.comp].pins[r.pin]
		if p.spec.Dir == In {
			continue
		}
		drivers = append(drivers, p.value)
	}
	if net.stim != nil {
		drivers = append(drivers, net.stim)
	}
	bits := make([]Value, len(drivers))
	for i := 0; i < net.width; i++ {
		for j, d := range drivers {
			bits[j] = d[i]
		}
		net.value[i] = MergeDrivers(bits)
	}
	return net.value, nil
}

// Fanout returns the components with at least one input or inout pin on net
// n, in attachment order. These are the components that must be re-evaluated
// when the net's value changes.
//
func (nl *Netlist) Fanout(n NetID) ([]CompID, error) {
	net, err := nl.net(n)
	if err != nil {
		return nil, err
	}
	var out []CompID
	seen := make(map[CompID]bool, len(net.pins))
	for _, r := range net.pins {
		p := &nl.comps[r.comp].pins[r.pin]
		if p.spec.Dir == Out || seen[r.comp] {
			continue
		}
		seen[r.comp] = true
		out = append(out, r.comp)
	}
	return out, nil
}

// Value returns the current resolved value of net n without recomputing it.
//
func (nl *Netlist) Value(n NetID) (Signal, error) {
	net, err := nl.net(n)
	if err != nil {
		return nil, err
	}
	return net.value, nil
}

// NodeName returns the name net n was created with.
//
func (nl *Netlist) NodeName(n NetID) (string, error) {
	net, err := nl.net(n)
	if err != nil {
		return "", err
	}
	return net.name, nil
}

// NodeWidth returns the declared width of net n.
//
func (nl *Netlist) NodeWidth(n NetID) (int, error) {
	net, err := nl.net(n)
	if err != nil {
		return 0, err
	}
	return net.width, nil
}

// NodeIDs returns the ids of all nets in creation order.
//
func (nl *Netlist) NodeIDs() []NetID {
	ids := make([]NetID, len(nl.nets))
	for i := range ids {
		ids[i] = NetID(i)
	}
	return ids
}

// Component returns the device registered under id c.
//
func (nl *Netlist) Component(c CompID) (Component, error) {
	comp, err := nl.comp(c)
	if err != nil {
		return nil, err
	}
	return comp.dev, nil
}

// NumNodes returns the number of nets in the netlist.
//
func (nl *Netlist) NumNodes() int { return len(nl.nets) }

// NumComponents returns the number of components in the netlist.
//
func (nl *Netlist) NumComponents() int { return len(nl.comps) }

func (nl *Netlist) comp(c CompID) (*compState, error) {
	if c < 0 || int(c) >= len(nl.comps) {
		return nil, &UnknownComponentError{ID: c}
	}
	return &nl.comps[c], nil
}

func (nl *Netlist) net(n NetID) (*netState, error) {
	if n < 0 || int(n) >= len(nl.nets) {
		return nil, &UnknownNodeError{ID: n}
	}
	return &nl.nets[n], nil
}

// clearValues returns every net, pin and stimulus to the undriven state.
// Used by the driver's Reset.
func (nl *Netlist) clearValues() {
	for i := range nl.nets {
		net := &nl.nets[i]
		net.stim = nil
		for j := range net.value {
			net.value[j] = Unknown
		}
	}
	for i := range nl.comps {
		for j := range nl.comps[i].pins {
			p := &nl.comps[i].pins[j]
			for k := range p.value {
				p.value[k] = Unknown
			}
		}
	}
}
