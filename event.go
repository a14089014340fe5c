// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import "container/heap"

// an eventKind selects what applying an event does.
type eventKind uint8

const (
	// evDrive sets the driving signal of one output pin.
	evDrive eventKind = iota
	// evStim sets an injected stimulus on a net.
	evStim
	// evWake re-triggers a component's Update without any value change.
	evWake
)

// An Event is one pending change, ordered by (Time, seq). The sequence
// number is assigned at enqueue time and only breaks ties among events
// sharing a timestamp, which makes replay of a circuit plus stimulus
// deterministic.
//
type Event struct {
	Time  Timestamp
	seq   uint64
	kind  eventKind
	comp  CompID // evDrive, evWake
	pin   int    // evDrive
	net   NetID  // evStim
	value Signal // evDrive, evStim
}

// eventQueue is a binary heap keyed by (Time, seq).
type eventQueue struct {
	events  []*Event
	nextSeq uint64
}

func (q *eventQueue) Len() int { return len(q.events) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.events[i], q.events[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	return a.seq < b.seq
}

func (q *eventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

func (q *eventQueue) Push(x any) {
	q.events = append(q.events, x.(*Event))
}

func (q *eventQueue) Pop() any {
	old := q.events
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	q.events = old[:n-1]
	return e
}

// schedule enqueues e and stamps its sequence number.
func (q *eventQueue) schedule(e *Event) {
	e.seq = q.nextSeq
	q.nextSeq++
	heap.Push(q, e)
}

func (q *eventQueue) empty() bool { return len(q.events) == 0 }

// peekTime returns the earliest pending timestamp.
func (q *eventQueue) peekTime() (Timestamp, bool) {
	if len(q.events) == 0 {
		return 0, false
	}
	return q.events[0].Time, true
}

// popBatchAt removes and returns, in sequence order, every pending event
// scheduled exactly at time t. It returns nil if the earliest pending event
// is later than t.
func (q *eventQueue) popBatchAt(t Timestamp) []*Event {
	var batch []*Event
	for len(q.events) > 0 && q.events[0].Time == t {
		batch = append(batch, heap.Pop(q).(*Event))
	}
	return batch
}

// clear drops all pending events. The sequence counter restarts so that a
// reset run replays identically to a fresh one.
func (q *eventQueue) clear() {
	q.events = q.events[:0]
	q.nextSeq = 0
}
