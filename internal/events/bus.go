// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("event bus closed")

// Config selects and tunes the transport.
type Config struct {
	// NATSURL selects the NATS transport (requires -tags=nats).
	NATSURL string
	// Buffer is the gochannel per-subscriber output buffer.
	Buffer int64
}

// Bus publishes and subscribes to session events.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	transport  string

	mu     sync.RWMutex
	closed bool
}

// NewBus opens the configured transport.
func NewBus(cfg Config) (*Bus, error) {
	logger := logging.NewWatermillLogger()

	if cfg.NATSURL != "" {
		pub, sub, err := newNATSTransport(cfg.NATSURL, logger)
		if err != nil {
			return nil, err
		}
		return &Bus{publisher: pub, subscriber: sub, transport: "nats"}, nil
	}

	buffer := cfg.Buffer
	if buffer <= 0 {
		buffer = 64
	}
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, logger)
	return &Bus{publisher: ch, subscriber: ch, transport: "gochannel"}, nil
}

// Transport names the active transport for logs.
func (b *Bus) Transport() string {
	return b.transport
}

// Publish sends e on the topic named by its type. Errors are logged and
// counted before they are returned; callers are free to ignore them.
// A nil Bus drops the event.
func (b *Bus) Publish(ctx context.Context, e *Event) error {
	if b == nil {
		return nil
	}
	err := b.publish(e)
	metrics.RecordEventPublish(e.Type, err)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("topic", e.Type).Msg("event publish failed")
	}
	return err
}

func (b *Bus) publish(e *Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	payload, err := e.marshal()
	if err != nil {
		return err
	}
	msg := message.NewMessage(e.EventID, payload)
	msg.Metadata.Set("type", e.Type)
	if err := b.publisher.Publish(e.Type, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

// Subscribe returns the message stream for topic. The channel closes when
// ctx is canceled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrClosed
	}
	return b.subscriber.Subscribe(ctx, topic)
}

// Close shuts the transport down. It is safe to call more than once.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	// gochannel uses one value for both sides.
	if any(b.subscriber) != any(b.publisher) {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
