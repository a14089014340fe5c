// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import (
	"strings"

	"github.com/pkg/errors"
)

// A Value is the state of a single wire bit. Simulation uses four-valued
// logic: besides the two driven levels, Unknown represents a floating or
// undriven wire and Error represents bus contention.
//
type Value uint8

const (
	Low Value = iota
	High
	Unknown
	Error
)

const valueChars = "01XE"

func (v Value) String() string {
	if v > Error {
		return "?"
	}
	return valueChars[v : v+1]
}

// Defined returns true if v is one of the two driven levels.
//
func (v Value) Defined() bool { return v <= High }

// Truth tables for the combinational operators. Error is absorbing; Unknown
// propagates unless an identity operand fixes the result (Low on an AND,
// High on an OR).
var (
	andTable = [4][4]Value{
		{Low, Low, Low, Error},
		{Low, High, Unknown, Error},
		{Low, Unknown, Unknown, Error},
		{Error, Error, Error, Error},
	}
	orTable = [4][4]Value{
		{Low, High, Unknown, Error},
		{High, High, High, Error},
		{Unknown, High, Unknown, Error},
		{Error, Error, Error, Error},
	}
	xorTable = [4][4]Value{
		{Low, High, Unknown, Error},
		{High, Low, Unknown, Error},
		{Unknown, Unknown, Unknown, Error},
		{Error, Error, Error, Error},
	}
	notTable = [4]Value{High, Low, Unknown, Error}
)

// And returns the four-valued conjunction of a and b.
//
func And(a, b Value) Value { return andTable[a][b] }

// Or returns the four-valued disjunction of a and b.
//
func Or(a, b Value) Value { return orTable[a][b] }

// Xor returns the four-valued exclusive or of a and b.
//
func Xor(a, b Value) Value { return xorTable[a][b] }

// Not returns the four-valued negation of v.
//
func Not(v Value) Value { return notTable[v] }

// MergeDrivers resolves the value of a wire bit driven by every value in vs.
// An empty or all-Unknown driver set leaves the bit Unknown, agreeing defined
// drivers win, disagreeing defined drivers short the bit to Error, and Error
// on any driver is contagious.
//
func MergeDrivers(vs []Value) Value {
	r := Unknown
	for _, v := range vs {
		switch {
		case v == Error:
			return Error
		case v == Unknown:
		case r == Unknown:
			r = v
		case r != v:
			return Error
		}
	}
	return r
}

// A Signal is a fixed-width bus of Values, least significant bit first.
// Width is fixed at creation; assigning signals of different widths is a
// WidthMismatch error at the API that attempts it.
//
type Signal []Value

// MakeSignal returns a signal of the given width with every bit set to v.
//
func MakeSignal(width int, v Value) Signal {
	s := make(Signal, width)
	for i := range s {
		s[i] = v
	}
	return s
}

// SignalFromUint64 returns a signal of the given width holding the low width
// bits of x.
//
func SignalFromUint64(x uint64, width int) Signal {
	s := make(Signal, width)
	for i := range s {
		if x&(1<<uint(i)) != 0 {
			s[i] = High
		}
	}
	return s
}

// ParseSignal parses a bus literal such as "1010" or "1X0E", most significant
// bit first.
//
func ParseSignal(lit string) (Signal, error) {
	s := make(Signal, len(lit))
	for i, r := range lit {
		j := strings.IndexRune(valueChars, r)
		if j < 0 {
			return nil, errors.Errorf("invalid bit %q in signal literal %q", r, lit)
		}
		s[len(lit)-1-i] = Value(j)
	}
	return s, nil
}

// Width returns the signal's bus width.
//
func (s Signal) Width() int { return len(s) }

// Uint64 converts a fully defined bus to an unsigned integer. The second
// return value is false if any bit is Unknown or Error, or if the bus is
// wider than 64 bits.
//
func (s Signal) Uint64() (uint64, bool) {
	if len(s) > 64 {
		return 0, false
	}
	var x uint64
	for i, v := range s {
		if !v.Defined() {
			return 0, false
		}
		if v == High {
			x |= 1 << uint(i)
		}
	}
	return x, true
}

// Equal returns true if t has the same width and bits as s.
//
func (s Signal) Equal(t Signal) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
//
func (s Signal) Clone() Signal {
	if s == nil {
		return nil
	}
	t := make(Signal, len(s))
	copy(t, s)
	return t
}

func (s Signal) String() string {
	var b strings.Builder
	for i := len(s) - 1; i >= 0; i-- {
		b.WriteString(s[i].String())
	}
	return b.String()
}
