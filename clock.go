// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

// A Starter is implemented by components that need an initial wake-up event
// seeded before any input ever changes. Clock sources return their phase
// offset here; everything else about a clock runs through the ordinary event
// queue, since a clock's own UpdateResult reschedules its next toggle via
// WakeAfter.
//
type Starter interface {
	// FirstWake returns the time of the component's first trigger. The
	// second return value is false for components that do not need one.
	FirstWake() (Timestamp, bool)
}

// seedStarters schedules the initial trigger of every self-starting
// component. This is the whole of the clock source manager: it runs when the
// simulator is created and again after Reset; there is no separate clock
// queue.
func (s *Simulator) seedStarters() {
	for i := range s.nl.comps {
		st, ok := s.nl.comps[i].dev.(Starter)
		if !ok {
			continue
		}
		if t, ok := st.FirstWake(); ok {
			s.scheduleAt(&Event{Time: t, kind: evWake, comp: CompID(i)})
		}
	}
}
