// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package devlib

import (
	"github.com/dlsim/dlsim"
)

// A Clock toggles its output every period time units, starting at its phase
// offset. It ignores its inputs entirely: the engine seeds its first trigger
// at build time and the clock reschedules itself through WakeAfter.
//
//	Outputs: out
//
type Clock struct {
	base
	period dlsim.Timestamp
	phase  dlsim.Timestamp
	level  dlsim.Value
}

// NewClock returns a clock source. The output starts Low and makes its first
// toggle (to High) at time phase.
//
func NewClock(period, phase dlsim.Timestamp) *Clock {
	if period == 0 {
		panic("clock period must be positive")
	}
	return &Clock{
		base: base{
			pins: []dlsim.PinSpec{{Name: pOut, Dir: dlsim.Out, Width: 1}},
		},
		period: period,
		phase:  phase,
		level:  dlsim.Low,
	}
}

// FirstWake implements dlsim.Starter.
func (c *Clock) FirstWake() (dlsim.Timestamp, bool) { return c.phase, true }

// Update implements dlsim.Component.
func (c *Clock) Update(now dlsim.Timestamp, _ dlsim.PinReader) dlsim.UpdateResult {
	c.level = dlsim.Not(c.level)
	return dlsim.UpdateResult{
		Outputs:      map[string]dlsim.Signal{pOut: dlsim.Signal{c.level}},
		StateChanged: true,
		WakeAfter:    c.period,
	}
}

// Reset implements dlsim.Component.
func (c *Clock) Reset() { c.level = dlsim.Low }

// Period returns the clock's toggle period.
//
func (c *Clock) Period() dlsim.Timestamp { return c.period }

// Phase returns the clock's initial phase offset.
//
func (c *Clock) Phase() dlsim.Timestamp { return c.phase }
