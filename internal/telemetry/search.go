package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-solo/internal/service/bot"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/iamasit07/connect4-solo/internal/service/bot"

// SearchObserver records every AI move selection as a span plus metrics.
type SearchObserver struct {
	tracer   trace.Tracer
	duration metric.Float64Histogram
	nodes    metric.Int64Histogram
	moves    metric.Int64Counter
}

var _ bot.Observer = (*SearchObserver)(nil)

func NewSearchObserver(mp metric.MeterProvider, tp trace.TracerProvider) (*SearchObserver, error) {
	meter := mp.Meter(scopeName)

	duration, err := meter.Float64Histogram("connect4.ai.search.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Time spent choosing the computer's column"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	nodes, err := meter.Int64Histogram("connect4.ai.search.nodes",
		metric.WithDescription("Positions visited by the minimax search"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create nodes histogram: %w", err)
	}

	moves, err := meter.Int64Counter("connect4.ai.moves",
		metric.WithDescription("AI moves selected, by strategy and reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create moves counter: %w", err)
	}

	return &SearchObserver{
		tracer:   tp.Tracer(scopeName),
		duration: duration,
		nodes:    nodes,
		moves:    moves,
	}, nil
}

func (o *SearchObserver) MoveSelected(ctx context.Context, r bot.MoveReport) {
	attrs := []attribute.KeyValue{
		attribute.String("ai.strategy", string(r.Strategy)),
		attribute.String("ai.reason", string(r.Choice.Reason)),
	}

	// the span is emitted after the fact, backdated to when the search began
	end := time.Now()
	_, span := o.tracer.Start(ctx, "bot.SelectMove",
		trace.WithTimestamp(end.Add(-r.Duration)),
		trace.WithAttributes(attrs...),
		trace.WithAttributes(
			attribute.Int("ai.column", r.Choice.Column),
			attribute.Int("ai.score", r.Choice.Score),
			attribute.Int("ai.nodes", r.Choice.Nodes),
			attribute.Int("board.disks", r.Disks),
		),
	)
	span.End(trace.WithTimestamp(end))

	set := metric.WithAttributes(attrs...)
	o.duration.Record(ctx, float64(r.Duration)/float64(time.Millisecond), set)
	if r.Strategy == bot.StrategyMinimax {
		o.nodes.Record(ctx, int64(r.Choice.Nodes), set)
	}
	o.moves.Add(ctx, 1, set)
}
