// Package pubsub bridges channel subscriptions to the driver's blocking
// notification loop. It is a pass-through: no scheduling, no buffering
// beyond the driver's own, and deliberately none of the dispatcher's
// failure recovery.
package pubsub

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/vortex-fintech/go-redisreg/registry"
)

var ErrNoChannels = errors.New("pubsub: at least one channel is required")

// Handler receives one message payload and the channel it arrived on.
// Invoked synchronously on the subscribing goroutine.
type Handler func(payload, channel string)

// Subscribe opens a SUBSCRIBE loop on the named connection and blocks,
// invoking fn for every plain message, until ctx is done or the stream
// ends (e.g. on disconnect). Callers needing concurrency run it on a
// goroutine of their own choosing.
func Subscribe(ctx context.Context, reg *registry.Registry, conn string, channels []string, fn Handler) error {
	return run(ctx, reg, conn, channels, fn, false)
}

// SubscribePatterns is Subscribe with PSUBSCRIBE pattern matching.
func SubscribePatterns(ctx context.Context, reg *registry.Registry, conn string, patterns []string, fn Handler) error {
	return run(ctx, reg, conn, patterns, fn, true)
}

func run(ctx context.Context, reg *registry.Registry, conn string, channels []string, fn Handler, patterns bool) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}

	h, err := reg.Connection(ctx, conn)
	if err != nil {
		return err
	}

	var ps *redis.PubSub
	if patterns {
		ps = h.Client().PSubscribe(ctx, channels...)
	} else {
		ps = h.Client().Subscribe(ctx, channels...)
	}
	defer ps.Close()

	// Channel() already filters the stream down to *redis.Message, i.e.
	// plain and pattern messages; subscription confirmations never reach fn.
	msgs := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			fn(m.Payload, m.Channel)
		}
	}
}
