package urx

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument counts the events flowing through this point of the chain
// on the given meter: urx.stream.items, urx.stream.errors and
// urx.stream.completions, each tagged with the stage name. A failure
// creating the instruments is delivered through the stream's error path
// at subscribe time.
func (o Observable[T]) Instrument(meter metric.Meter, stage string) Observable[T] {
	items, err := meter.Int64Counter("urx.stream.items",
		metric.WithDescription("values delivered through the stage"))
	var errors, completions metric.Int64Counter
	if err == nil {
		errors, err = meter.Int64Counter("urx.stream.errors",
			metric.WithDescription("terminal errors delivered through the stage"))
	}
	if err == nil {
		completions, err = meter.Int64Counter("urx.stream.completions",
			metric.WithDescription("completions delivered through the stage"))
	}
	attrs := metric.WithAttributes(attribute.String("stage", stage))

	return o.derive(func(down *Subscriber[T]) {
		if err != nil {
			down.Error(err)
			return
		}
		ctx := context.Background()
		up := NewSubscriber(observerFuncs[T]{
			next: func(v T) {
				items.Add(ctx, 1, attrs)
				down.Next(v)
			},
			err: func(e error) {
				errors.Add(ctx, 1, attrs)
				down.Error(e)
			},
			complete: func() {
				completions.Add(ctx, 1, attrs)
				down.Complete()
			},
		}, down.Subscription())
		o.subscribeWith(up)
	})
}
