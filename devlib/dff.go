// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package devlib

import (
	"github.com/dlsim/dlsim"
)

// A DFF is a rising-edge D flip-flop.
//
//	Inputs: d, clk
//	Outputs: q
//	Function: q latches d on every rising clk edge.
//
type DFF struct {
	base
	q dlsim.Signal
}

// NewDFF returns a D flip-flop of the given data width.
//
func NewDFF(width int, delay dlsim.Timestamp) *DFF {
	return &DFF{
		base: base{
			pins: []dlsim.PinSpec{
				{Name: pD, Dir: dlsim.In, Width: width},
				{Name: pClk, Dir: dlsim.In, Width: 1, Clock: true},
				{Name: pQ, Dir: dlsim.Out, Width: width},
			},
			delay: delay,
		},
		q: dlsim.MakeSignal(width, dlsim.Unknown),
	}
}

// Sequential implements dlsim.Component.
func (d *DFF) Sequential() bool { return true }

// Update implements dlsim.Component. Data input changes do not propagate;
// the flip-flop only reacts to clock edges.
func (d *DFF) Update(dlsim.Timestamp, dlsim.PinReader) dlsim.UpdateResult {
	return dlsim.UpdateResult{}
}

// ClockEdge implements dlsim.Component.
func (d *DFF) ClockEdge(edge dlsim.Edge, now dlsim.Timestamp, in dlsim.PinReader) dlsim.UpdateResult {
	if edge != dlsim.Rising {
		return dlsim.UpdateResult{}
	}
	next := in.PinValue(pD).Clone()
	changed := !d.q.Equal(next)
	d.q = next
	return dlsim.UpdateResult{
		Outputs:      map[string]dlsim.Signal{pQ: next},
		Delay:        d.delay,
		StateChanged: changed,
	}
}

// Reset implements dlsim.Component.
func (d *DFF) Reset() {
	d.q = dlsim.MakeSignal(d.q.Width(), dlsim.Unknown)
}

// A Register is a D flip-flop with a load-enable input: it latches d on a
// rising clk edge only while en is High.
//
type Register struct {
	base
	q dlsim.Signal
}

// NewRegister returns an n-bit register.
//
func NewRegister(width int, delay dlsim.Timestamp) *Register {
	return &Register{
		base: base{
			pins: []dlsim.PinSpec{
				{Name: pD, Dir: dlsim.In, Width: width},
				{Name: pEn, Dir: dlsim.In, Width: 1},
				{Name: pClk, Dir: dlsim.In, Width: 1, Clock: true},
				{Name: pQ, Dir: dlsim.Out, Width: width},
			},
			delay: delay,
		},
		q: dlsim.MakeSignal(width, dlsim.Unknown),
	}
}

// Sequential implements dlsim.Component.
func (r *Register) Sequential() bool { return true }

// Update implements dlsim.Component.
func (r *Register) Update(dlsim.Timestamp, dlsim.PinReader) dlsim.UpdateResult {
	return dlsim.UpdateResult{}
}

// ClockEdge implements dlsim.Component.
func (r *Register) ClockEdge(edge dlsim.Edge, now dlsim.Timestamp, in dlsim.PinReader) dlsim.UpdateResult {
	if edge != dlsim.Rising {
		return dlsim.UpdateResult{}
	}
	if en := in.PinValue(pEn); en[0] != dlsim.High {
		return dlsim.UpdateResult{}
	}
	next := in.PinValue(pD).Clone()
	changed := !r.q.Equal(next)
	r.q = next
	return dlsim.UpdateResult{
		Outputs:      map[string]dlsim.Signal{pQ: next},
		Delay:        r.delay,
		StateChanged: changed,
	}
}

// Reset implements dlsim.Component.
func (r *Register) Reset() {
	r.q = dlsim.MakeSignal(r.q.Width(), dlsim.Unknown)
}
