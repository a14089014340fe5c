// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

// Package devlib provides a library of reusable devices for dlsim.
//
// All devices implement the dlsim.Component contract; the simulation engine
// never knows their concrete types.
//
package devlib

import (
	"github.com/dlsim/dlsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pOut = "out"
	pD   = "d"
	pQ   = "q"
	pClk = "clk"
	pEn  = "en"
)

// DefaultDelay is the propagation delay of devices created without an
// explicit one.
const DefaultDelay dlsim.Timestamp = 1

// base carries the pin layout and default delay plumbing shared by all
// catalog devices.
type base struct {
	pins  []dlsim.PinSpec
	delay dlsim.Timestamp
}

func (b *base) Pins() []dlsim.PinSpec             { return b.pins }
func (b *base) Reset()                            {}
func (b *base) PropagationDelay() dlsim.Timestamp { return b.delay }
func (b *base) Sequential() bool                  { return false }

func (b *base) ClockEdge(dlsim.Edge, dlsim.Timestamp, dlsim.PinReader) dlsim.UpdateResult {
	return dlsim.UpdateResult{}
}
