// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package devlib

import (
	"strconv"

	"github.com/dlsim/dlsim"
)

// A Gate is a combinational gate: it folds a four-valued binary operator
// over its inputs bit by bit, optionally inverting the result, and drives
// the outcome on its single output after its propagation delay.
//
type Gate struct {
	base
	name   string
	op     func(a, b dlsim.Value) dlsim.Value
	invert bool
	ins    []string
	width  int
}

// gateInputs returns the input pin names for an n-input gate: "a, b" for
// two inputs, "in0..inN-1" otherwise.
func gateInputs(n int) []string {
	if n == 2 {
		return []string{pA, pB}
	}
	ins := make([]string, n)
	for i := range ins {
		ins[i] = pIn + strconv.Itoa(i)
	}
	return ins
}

func newGate(name string, op func(a, b dlsim.Value) dlsim.Value, invert bool, inputs, width int, delay dlsim.Timestamp) *Gate {
	if inputs < 2 {
		panic("gate " + name + " needs at least 2 inputs")
	}
	if width < 1 {
		panic("gate " + name + " needs a positive width")
	}
	ins := gateInputs(inputs)
	pins := make([]dlsim.PinSpec, 0, inputs+1)
	for _, in := range ins {
		pins = append(pins, dlsim.PinSpec{Name: in, Dir: dlsim.In, Width: width})
	}
	pins = append(pins, dlsim.PinSpec{Name: pOut, Dir: dlsim.Out, Width: width})
	return &Gate{
		base:   base{pins: pins, delay: delay},
		name:   name,
		op:     op,
		invert: invert,
		ins:    ins,
		width:  width,
	}
}

// Update implements dlsim.Component.
func (g *Gate) Update(now dlsim.Timestamp, in dlsim.PinReader) dlsim.UpdateResult {
	out := in.PinValue(g.ins[0]).Clone()
	for _, name := range g.ins[1:] {
		v := in.PinValue(name)
		for i := range out {
			out[i] = g.op(out[i], v[i])
		}
	}
	if g.invert {
		for i := range out {
			out[i] = dlsim.Not(out[i])
		}
	}
	return dlsim.UpdateResult{
		Outputs: map[string]dlsim.Signal{pOut: out},
		Delay:   g.delay,
	}
}

// And returns an AND gate.
//
//	Inputs: a, b (or in0..inN-1)
//	Outputs: out
//	Function: out = a & b
//
func And(inputs, width int, delay dlsim.Timestamp) *Gate {
	return newGate("AND", dlsim.And, false, inputs, width, delay)
}

// Nand returns a NAND gate.
//
//	Function: out = !(a & b)
//
func Nand(inputs, width int, delay dlsim.Timestamp) *Gate {
	return newGate("NAND", dlsim.And, true, inputs, width, delay)
}

// Or returns an OR gate.
//
//	Function: out = a | b
//
func Or(inputs, width int, delay dlsim.Timestamp) *Gate {
	return newGate("OR", dlsim.Or, false, inputs, width, delay)
}

// Nor returns a NOR gate.
//
//	Function: out = !(a | b)
//
func Nor(inputs, width int, delay dlsim.Timestamp) *Gate {
	return newGate("NOR", dlsim.Or, true, inputs, width, delay)
}

// Xor returns a XOR gate.
//
//	Function: out = a ^ b
//
func Xor(inputs, width int, delay dlsim.Timestamp) *Gate {
	return newGate("XOR", dlsim.Xor, false, inputs, width, delay)
}

// Xnor returns a XNOR gate.
//
//	Function: out = !(a ^ b)
//
func Xnor(inputs, width int, delay dlsim.Timestamp) *Gate {
	return newGate("XNOR", dlsim.Xor, true, inputs, width, delay)
}

// An Inverter is a single-input gate.
type Inverter struct {
	base
	invert bool
}

func newInverter(name string, invert bool, width int, delay dlsim.Timestamp) *Inverter {
	if width < 1 {
		panic("gate " + name + " needs a positive width")
	}
	return &Inverter{
		base: base{
			pins: []dlsim.PinSpec{
				{Name: pIn, Dir: dlsim.In, Width: width},
				{Name: pOut, Dir: dlsim.Out, Width: width},
			},
			delay: delay,
		},
		invert: invert,
	}
}

// Update implements dlsim.Component.
func (g *Inverter) Update(now dlsim.Timestamp, in dlsim.PinReader) dlsim.UpdateResult {
	out := in.PinValue(pIn).Clone()
	if g.invert {
		for i := range out {
			out[i] = dlsim.Not(out[i])
		}
	}
	return dlsim.UpdateResult{
		Outputs: map[string]dlsim.Signal{pOut: out},
		Delay:   g.delay,
	}
}

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not(width int, delay dlsim.Timestamp) *Inverter {
	return newInverter("NOT", true, width, delay)
}

// Buf returns a non-inverting buffer, useful to add delay on a wire.
//
//	Function: out = in
//
func Buf(width int, delay dlsim.Timestamp) *Inverter {
	return newInverter("BUF", false, width, delay)
}
