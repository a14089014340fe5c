/*
Package dlsim provides an event-driven simulation engine for digital logic
circuits.

Signals use four-valued logic per bit (Low, High, Unknown, Error), circuits
are netlists of components wired pin-to-net, and all value changes flow
through a timestamp-ordered event queue with deterministic tie-breaking.
The propagation driver repeatedly applies due events and re-evaluates the
affected components until the circuit settles, guarding against zero-delay
combinational feedback with a per-timestamp iteration cap.

Concrete devices (see package devlib) implement the Component interface; the
engine only ever talks to that contract.

*/
package dlsim
