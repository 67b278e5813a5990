package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/Mrsumitborade/safe-earth-response/internal/metrics"
	"github.com/Mrsumitborade/safe-earth-response/internal/models"
	"github.com/Mrsumitborade/safe-earth-response/internal/worker"
)

const sinkTimeout = 5 * time.Second

// Sink receives every published event outside the process.
type Sink interface {
	Publish(ctx context.Context, e *models.Event) error
	Close() error
}

type PublisherConfig struct {
	Workers    int
	BufferSize int
}

// Publisher broadcasts events to stream subscribers and, when a sink is
// configured, forwards them to it through a worker pool.
type Publisher struct {
	broadcaster *Broadcaster
	sink        Sink
	pool        *worker.Pool[*models.Event]
}

func NewPublisher(b *Broadcaster, sink Sink, cfg PublisherConfig) *Publisher {
	p := &Publisher{
		broadcaster: b,
		sink:        sink,
	}
	if sink != nil {
		p.pool = worker.NewPool("events", cfg.Workers, cfg.BufferSize, p.deliver)
	}
	return p
}

func (p *Publisher) Start(ctx context.Context) {
	if p.pool != nil {
		p.pool.Start(ctx)
	}
}

// Publish never blocks or fails the caller. Events that find the sink queue
// full are dropped and counted.
func (p *Publisher) Publish(_ context.Context, e *models.Event) {
	if p == nil {
		return
	}
	if p.broadcaster != nil {
		p.broadcaster.Broadcast(e)
	}
	if p.pool == nil {
		return
	}
	if err := p.pool.TrySubmit(e); err != nil {
		metrics.EventsPublished.WithLabelValues("dropped").Inc()
		slog.Warn("event dropped", "type", e.Type, "error", err)
	}
}

func (p *Publisher) deliver(ctx context.Context, e *models.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	if err := p.sink.Publish(ctx, e); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
	return nil
}

// Stop drains pending sink deliveries and closes the sink.
func (p *Publisher) Stop() error {
	if p.pool == nil {
		return nil
	}
	p.pool.Stop()
	return p.sink.Close()
}
