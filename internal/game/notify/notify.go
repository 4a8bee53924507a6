package notify

import (
	"fmt"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
)

// Publisher stamps payloads with a source name and publishes them. Handler
// errors are logged, never returned: gameplay keeps going.
type Publisher struct {
	bus    bus.EventBus
	source string
	logger log.Log
}

func NewPublisher(b bus.EventBus, source string, logger log.Log) *Publisher {
	return &Publisher{bus: b, source: source, logger: logger}
}

// Bus returns the underlying event bus.
func (p *Publisher) Bus() bus.EventBus {
	return p.bus
}

// WithSource returns a publisher sharing the bus under another source name.
func (p *Publisher) WithSource(source string) *Publisher {
	return &Publisher{bus: p.bus, source: source, logger: p.logger}
}

func (p *Publisher) Emit(payload Payload) {
	if err := p.bus.Publish(bus.NewEvent(payload.EventType(), p.source, payload)); err != nil {
		p.logger.Error("notification handler failed",
			log.String("type", payload.EventType()),
			log.String("source", p.source),
			log.Error(err),
		)
	}
}

// On subscribes fn to the notification type of T and records the
// subscription in subs.
func On[T Payload](subs *bus.Subscriptions, fn func(T)) error {
	var zero T
	return subs.Subscribe(zero.EventType(), func(ev bus.Event) error {
		payload, ok := ev.Data().(T)
		if !ok {
			return fmt.Errorf("notify: %s carried %T", ev.Type(), ev.Data())
		}
		fn(payload)
		return nil
	})
}
