package push

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
)

// RedisFeed carries insert events over Redis pub/sub so every service
// instance sees inserts made by any of them. Reconnection is go-redis's
// concern; this type only reports the outage to its listeners.
type RedisFeed struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     zerolog.Logger

	mu         sync.Mutex
	nextListen int
	onDrop     map[int]func(error)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisFeed connects, subscribes and starts the delivery loop. The
// returned cleanup tears the subscription down.
func NewRedisFeed(ctx context.Context, addr, channel string, log zerolog.Logger) (*RedisFeed, func(), error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	f := &RedisFeed{
		client:  client,
		channel: channel,
		hub:     NewHub(),
		log:     log,
		onDrop:  make(map[int]func(error)),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	pubsub := client.Subscribe(runCtx, channel)
	if _, err := pubsub.Receive(runCtx); err != nil {
		cancel()
		client.Close()
		return nil, nil, err
	}
	go f.run(runCtx, pubsub)

	cleanup := func() {
		cancel()
		<-f.done
		pubsub.Close()
		client.Close()
	}
	return f, cleanup, nil
}

func (f *RedisFeed) Publish(ctx context.Context, msg messaging.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return f.client.Publish(ctx, f.channel, payload).Err()
}

func (f *RedisFeed) Subscribe(fn func(messaging.Message)) func() {
	return f.hub.Subscribe(fn)
}

// OnDisconnect registers a degraded-connectivity listener and returns its
// teardown.
func (f *RedisFeed) OnDisconnect(fn func(error)) func() {
	f.mu.Lock()
	id := f.nextListen
	f.nextListen++
	f.onDrop[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.onDrop, id)
		f.mu.Unlock()
	}
}

func (f *RedisFeed) run(ctx context.Context, pubsub *redis.PubSub) {
	defer close(f.done)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				f.log.Warn().Msg("insert feed channel closed")
				f.notifyDrop()
				return
			}
			var msg messaging.Message
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				f.log.Warn().Err(err).Msg("discarding malformed insert event")
				continue
			}
			_ = f.hub.Publish(ctx, msg)
		}
	}
}

func (f *RedisFeed) notifyDrop() {
	f.mu.Lock()
	listeners := make([]func(error), 0, len(f.onDrop))
	for _, fn := range f.onDrop {
		listeners = append(listeners, fn)
	}
	f.mu.Unlock()

	for _, fn := range listeners {
		fn(common.ErrTransportDisconnected)
	}
}
