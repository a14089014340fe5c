// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package devlib

import (
	"github.com/dlsim/dlsim"
)

// An Input is a function-driven stimulus source. Its function is sampled
// when the device wakes: once at t=0, and then every Every time units if
// Every is non-zero.
//
type Input struct {
	base
	fn    func(now dlsim.Timestamp) dlsim.Signal
	every dlsim.Timestamp
	width int
}

// NewInput returns a stimulus source of the given width. every may be zero
// for a one-shot input sampled at t=0.
//
func NewInput(width int, every dlsim.Timestamp, fn func(now dlsim.Timestamp) dlsim.Signal) *Input {
	return &Input{
		base: base{
			pins: []dlsim.PinSpec{{Name: pOut, Dir: dlsim.Out, Width: width}},
		},
		fn:    fn,
		every: every,
		width: width,
	}
}

// FirstWake implements dlsim.Starter.
func (i *Input) FirstWake() (dlsim.Timestamp, bool) { return 0, true }

// Update implements dlsim.Component.
func (i *Input) Update(now dlsim.Timestamp, _ dlsim.PinReader) dlsim.UpdateResult {
	v := i.fn(now)
	if v.Width() != i.width {
		v = dlsim.MakeSignal(i.width, dlsim.Error)
	}
	return dlsim.UpdateResult{
		Outputs:   map[string]dlsim.Signal{pOut: v},
		WakeAfter: i.every,
	}
}

// Const returns an input that drives a fixed signal from t=0 on.
//
func Const(v dlsim.Signal) *Input {
	v = v.Clone()
	return NewInput(v.Width(), 0, func(dlsim.Timestamp) dlsim.Signal { return v })
}

// A Probe is an output: its callback is invoked with the current time and
// input value whenever the watched net changes.
//
type Probe struct {
	base
	fn func(now dlsim.Timestamp, v dlsim.Signal)
}

// NewProbe returns a probe of the given width.
//
func NewProbe(width int, fn func(now dlsim.Timestamp, v dlsim.Signal)) *Probe {
	return &Probe{
		base: base{
			pins: []dlsim.PinSpec{{Name: pIn, Dir: dlsim.In, Width: width}},
		},
		fn: fn,
	}
}

// Update implements dlsim.Component.
func (p *Probe) Update(now dlsim.Timestamp, in dlsim.PinReader) dlsim.UpdateResult {
	p.fn(now, in.PinValue(pIn).Clone())
	return dlsim.UpdateResult{}
}
