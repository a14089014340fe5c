// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import "fmt"

// A WidthMismatchError reports an attempt to wire a pin to a net of a
// different width, or to drive a net with a signal of the wrong width.
//
type WidthMismatchError struct {
	Pin      string
	PinWidth int
	NetWidth int
}

func (e *WidthMismatchError) Error() string {
	return fmt.Sprintf("width mismatch: pin %s has width %d, net has width %d",
		e.Pin, e.PinWidth, e.NetWidth)
}

// An UnknownNodeError reports a reference to a NetID that was never created.
//
type UnknownNodeError struct {
	ID NetID
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node id %d", e.ID)
}

// An UnknownComponentError reports a reference to a CompID that was never
// created.
//
type UnknownComponentError struct {
	ID CompID
}

func (e *UnknownComponentError) Error() string {
	return fmt.Sprintf("unknown component id %d", e.ID)
}

// An UnknownPinError reports a reference to a pin name a component does not
// have.
//
type UnknownPinError struct {
	Comp CompID
	Pin  string
}

func (e *UnknownPinError) Error() string {
	return fmt.Sprintf("component %d has no pin %q", e.Comp, e.Pin)
}

// An OscillationError reports that the circuit failed to settle within the
// configured number of sub-iterations at a single timestamp. The driver is
// halted; the caller must Reset before stepping again.
//
type OscillationError struct {
	Time  Timestamp
	Iters int
}

func (e *OscillationError) Error() string {
	return fmt.Sprintf("oscillating feedback detected at t=%d after %d iterations",
		e.Time, e.Iters)
}
