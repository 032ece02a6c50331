package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/cardmap/internal/server/events"
	"github.com/agentstation/cardmap/internal/server/sse"
	ws "github.com/agentstation/cardmap/internal/server/websocket"
)

func TestAdapters_ForwardThroughBroker(t *testing.T) {
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	broker := events.NewBroker(&logger)
	hub := ws.NewHub(&logger)
	b := sse.NewBroadcaster(&logger)
	go broker.Run(ctx)
	go hub.Run(ctx)
	go b.Run(ctx)

	broker.Subscribe(NewWebSocketSubscriber(hub))
	broker.Subscribe(NewSSESubscriber(b))
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 2 }, time.Second, 5*time.Millisecond)

	client := ws.NewClient("c1", hub, nil)
	hub.Register(client)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	broker.Publish(events.ErrorChanged, "network down")

	var msg ws.Message
	select {
	case msg = <-client.Messages():
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
	assert.Equal(t, string(events.ErrorChanged), msg.Type)
	assert.Equal(t, "network down", msg.Data)
	assert.NotEmpty(t, msg.ID)
}

func TestAdapters_CloseIsNoop(t *testing.T) {
	logger := zerolog.Nop()
	assert.NoError(t, NewWebSocketSubscriber(ws.NewHub(&logger)).Close())
	assert.NoError(t, NewSSESubscriber(sse.NewBroadcaster(&logger)).Close())
}
