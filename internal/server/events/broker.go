package events

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

const queueSize = 256

// Broker fans catalog events out to transport subscribers. Events are
// delivered in publish order; each event reaches all subscribers before
// the next one is sent.
type Broker struct {
	mu      sync.RWMutex
	subs    []Subscriber
	stopped bool

	queue  chan Event
	logger *zerolog.Logger

	published atomic.Int64
	dropped   atomic.Int64
}

// NewBroker returns a broker. Subscribe may be called before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		queue:  make(chan Event, queueSize),
		logger: logger,
	}
}

// Run delivers queued events until ctx ends, then closes every subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.stop()
			return
		case ev := <-b.queue:
			b.deliver(ev)
		}
	}
}

func (b *Broker) stop() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.stopped = true
	b.mu.Unlock()

	for _, s := range subs {
		_ = s.Close()
	}
	b.logger.Debug().Int("subscribers", len(subs)).Msg("event broker stopped")
}

func (b *Broker) deliver(ev Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	var wg conc.WaitGroup
	for _, s := range subs {
		wg.Go(func() {
			if err := s.Send(ev); err != nil {
				b.logger.Warn().Err(err).Str("event_type", string(ev.Type)).Msg("subscriber rejected event")
			}
		})
	}
	wg.Wait()
}

// Publish stamps data as an event of type t and queues it. It never
// blocks; a full queue counts the event as dropped.
func (b *Broker) Publish(t EventType, data any) {
	ev := Event{ID: uuid.NewString(), Type: t, Timestamp: time.Now().UTC(), Data: data}
	select {
	case b.queue <- ev:
		b.published.Add(1)
	default:
		b.dropped.Add(1)
		b.logger.Warn().Str("event_type", string(t)).Msg("event queue full, event dropped")
	}
}

// Subscribe adds s. After the broker stopped, s is closed instead.
func (b *Broker) Subscribe(s Subscriber) {
	b.mu.Lock()
	if !b.stopped {
		b.subs = append(b.subs, s)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	_ = s.Close()
}

// Unsubscribe removes s and closes it. Unknown subscribers are ignored.
func (b *Broker) Unsubscribe(s Subscriber) {
	b.mu.Lock()
	i := slices.Index(b.subs, s)
	if i < 0 {
		b.mu.Unlock()
		return
	}
	b.subs = slices.Delete(b.subs, i, i+1)
	b.mu.Unlock()
	_ = s.Close()
}

func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// EventsPublished counts queued events.
func (b *Broker) EventsPublished() int64 { return b.published.Load() }

// EventsDropped counts events lost to a full queue.
func (b *Broker) EventsDropped() int64 { return b.dropped.Load() }
