// Copyright 2026 The dlsim authors
// Licensed under the MIT license. See license text in the LICENSE file.

package dlsim

import "testing"

func TestEventQueue_ordering(t *testing.T) {
	var q eventQueue
	for i, at := range []Timestamp{5, 3, 3, 7} {
		q.schedule(&Event{Time: at, net: NetID(i), kind: evStim})
	}

	pops := func(at Timestamp) []NetID {
		t.Helper()
		pt, ok := q.peekTime()
		if !ok {
			t.Fatal("queue unexpectedly empty")
		}
		if pt != at {
			t.Fatalf("peekTime() = %d, want %d", pt, at)
		}
		var ids []NetID
		for _, e := range q.popBatchAt(at) {
			ids = append(ids, e.net)
		}
		return ids
	}

	// time 3 first, in insertion order, never time 5 before time 3
	if got := pops(3); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("batch at t=3 = %v, want [1 2]", got)
	}
	if got := pops(5); len(got) != 1 || got[0] != 0 {
		t.Errorf("batch at t=5 = %v, want [0]", got)
	}
	if got := pops(7); len(got) != 1 || got[0] != 3 {
		t.Errorf("batch at t=7 = %v, want [3]", got)
	}
	if !q.empty() {
		t.Error("queue not empty after popping all batches")
	}
}

func TestEventQueue_popBatchAt_earlierTime(t *testing.T) {
	var q eventQueue
	q.schedule(&Event{Time: 4})
	if batch := q.popBatchAt(2); batch != nil {
		t.Errorf("popBatchAt(2) = %v, want nil", batch)
	}
	if q.Len() != 1 {
		t.Errorf("queue length = %d after failed pop, want 1", q.Len())
	}
}

func TestEventQueue_clear(t *testing.T) {
	var q eventQueue
	q.schedule(&Event{Time: 1})
	q.schedule(&Event{Time: 2})
	q.clear()
	if !q.empty() {
		t.Error("queue not empty after clear")
	}
	q.schedule(&Event{Time: 0})
	if q.events[0].seq != 0 {
		t.Errorf("sequence counter = %d after clear, want 0", q.events[0].seq)
	}
}

func TestEventQueue_seqTieBreak(t *testing.T) {
	var q eventQueue
	const n = 100
	for i := 0; i < n; i++ {
		q.schedule(&Event{Time: 9, net: NetID(i)})
	}
	batch := q.popBatchAt(9)
	if len(batch) != n {
		t.Fatalf("batch length = %d, want %d", len(batch), n)
	}
	for i, e := range batch {
		if e.net != NetID(i) {
			t.Fatalf("batch[%d].net = %d, want %d (insertion order)", i, e.net, i)
		}
	}
}
