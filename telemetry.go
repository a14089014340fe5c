package dlsim

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("github.com/dlsim/dlsim")

var (
	// eventsProcessed counts events drained from the queue, across all
	// timestamps.
	eventsProcessed metric.Int64Counter
	// settleIterations measures how many zero-delay sub-iterations each
	// Step needed before the circuit reached a fixed point. A distribution
	// creeping toward the configured cap is an early warning for feedback
	// loops.
	settleIterations metric.Int64Histogram
	// oscillationHalts counts Steps that tripped the oscillation guard.
	oscillationHalts metric.Int64Counter
)

func init() {
	var err error
	eventsProcessed, err = meter.Int64Counter(
		"sim.events.processed",
		metric.WithDescription("The number of scheduled events applied to the netlist."),
	)
	if err != nil {
		panic("dlsim: failed to init 'sim.events.processed' instrument")
	}

	settleIterations, err = meter.Int64Histogram(
		"sim.step.settle_iterations",
		metric.WithDescription("The number of same-timestamp sub-iterations needed for one Step to settle."),
	)
	if err != nil {
		panic("dlsim: failed to init 'sim.step.settle_iterations' instrument")
	}

	oscillationHalts, err = meter.Int64Counter(
		"sim.oscillation.halts",
		metric.WithDescription("The number of Steps halted by the oscillation guard."),
	)
	if err != nil {
		panic("dlsim: failed to init 'sim.oscillation.halts' instrument")
	}
}

func measureEvents(n int) {
	eventsProcessed.Add(context.Background(), int64(n))
}

func measureStep(iters int) {
	settleIterations.Record(context.Background(), int64(iters))
}

func measureHalt(t Timestamp) {
	attrs := attribute.NewSet(attribute.Int64("sim.time", int64(t)))
	oscillationHalts.Add(context.Background(), 1, metric.WithAttributeSet(attrs))
}
