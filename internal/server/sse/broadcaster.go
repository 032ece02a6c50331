// Package sse streams card events to Server-Sent Events clients.
package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const streamBuffer = 256

// Broadcaster writes card events to every open event stream.
type Broadcaster struct {
	mu      sync.Mutex
	streams map[chan Event]struct{}
	stopped bool

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
	logger   *zerolog.Logger
}

// NewBroadcaster returns a broadcaster that delivers nothing until Run.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		streams: make(map[chan Event]struct{}),
		events:  make(chan Event, streamBuffer),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Run delivers queued events until ctx ends, then closes every stream.
func (b *Broadcaster) Run(ctx context.Context) {
	defer b.stopOnce.Do(func() { close(b.done) })

	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			b.stopped = true
			for s := range b.streams {
				close(s)
			}
			clear(b.streams)
			b.mu.Unlock()
			b.logger.Debug().Msg("sse broadcaster stopped")
			return
		case ev := <-b.events:
			b.deliver(ev)
		}
	}
}

// deliver skips streams whose buffer is full; they stay attached.
func (b *Broadcaster) deliver(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.streams {
		select {
		case s <- ev:
		default:
			b.logger.Warn().Str("event", ev.Event).Msg("sse stream lagging, event skipped")
		}
	}
}

func (b *Broadcaster) attach() (chan Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil, false
	}
	s := make(chan Event, streamBuffer)
	b.streams[s] = struct{}{}
	b.logger.Debug().Int("clients", len(b.streams)).Msg("sse stream opened")
	return s, true
}

func (b *Broadcaster) detach(s chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.streams[s]; !ok {
		return
	}
	delete(b.streams, s)
	close(s)
	b.logger.Debug().Int("clients", len(b.streams)).Msg("sse stream closed")
}

// Broadcast queues ev without blocking. A full queue drops it.
func (b *Broadcaster) Broadcast(ev Event) {
	select {
	case b.events <- ev:
	default:
		b.logger.Warn().Str("event", ev.Event).Msg("sse queue full, event dropped")
	}
}

// ClientCount reports open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.streams)
}

// ServeHTTP holds the response open and writes one frame per event. It
// returns when the request is cancelled or the broadcaster stops.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	stream, ok := b.attach()
	if !ok {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer b.detach(stream)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")

	hello := Event{Event: "connected", Data: map[string]any{"timestamp": time.Now().UTC()}}
	if !b.write(w, flusher, hello) {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-stream:
			if !open || !b.write(w, flusher, ev) {
				return
			}
		}
	}
}

// write reports false once the client can no longer be written to.
func (b *Broadcaster) write(w http.ResponseWriter, f http.Flusher, ev Event) bool {
	frame, err := ev.encode()
	if err != nil {
		b.logger.Error().Err(err).Str("event", ev.Event).Msg("encoding sse event")
		return true
	}
	if _, err := w.Write(frame); err != nil {
		return false
	}
	f.Flush()
	return true
}

// Event is one SSE frame. Data is JSON encoded into the data field.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

func (e Event) encode() ([]byte, error) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if e.Event != "" {
		buf.WriteString("event: " + e.Event + "\n")
	}
	if e.ID != "" {
		buf.WriteString("id: " + e.ID + "\n")
	}
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}
