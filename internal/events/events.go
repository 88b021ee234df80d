package events

import (
	"context"
	"encoding/json"
	"registry/internal/database"
	"registry/internal/logger"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

const eventChannel = "registry:events"

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	UserID    string         `json:"userId,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// EventBus fans events out to in-process subscribers and mirrors them onto a
// valkey pub/sub channel so other instances see them too.
type EventBus struct {
	client database.CacheClient
	log    logger.Logger

	mu          sync.RWMutex
	subscribers map[string][]chan Event
	cancel      context.CancelFunc
	closed      bool
}

func New(client database.CacheClient) *EventBus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &EventBus{
		client:      client,
		log:         logger.New("events"),
		subscribers: make(map[string][]chan Event),
		cancel:      cancel,
	}

	go bus.receive(ctx)

	return bus
}

func (b *EventBus) Publish(channel string, event Event) error {
	log := b.log.Function("Publish")

	event.Channel = channel

	payload, err := json.Marshal(event)
	if err != nil {
		return log.Err("failed to marshal event", err, "event", event)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.client.Do(ctx, b.client.B().Publish().
		Channel(eventChannel).
		Message(string(payload)).
		Build()).Error(); err != nil {
		return log.Err("failed to publish event", err, "channel", channel)
	}

	return nil
}

// Subscribe returns a channel of events for the given logical channel and a
// function releasing the subscription. The special channel "*" receives all.
func (b *EventBus) Subscribe(channel string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[channel]
		for i, sub := range subs {
			if sub == ch {
				b.subscribers[channel] = append(subs[:i], subs[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return ch, unsubscribe
}

func (b *EventBus) receive(ctx context.Context) {
	log := b.log.Function("receive")

	err := b.client.Receive(ctx, b.client.B().Subscribe().Channel(eventChannel).Build(),
		func(msg valkey.PubSubMessage) {
			var event Event
			if err := json.Unmarshal([]byte(msg.Message), &event); err != nil {
				log.Er("failed to unmarshal event", err)
				return
			}
			b.dispatch(event)
		})
	if err != nil && ctx.Err() == nil {
		log.Er("event subscription ended", err)
	}
}

func (b *EventBus) dispatch(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers[event.Channel] {
		select {
		case ch <- event:
		default:
		}
	}
	for _, ch := range b.subscribers["*"] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.cancel()

	for channel, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(b.subscribers, channel)
	}

	return nil
}
