// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

// AuditConsumer writes every session event to the security log and counts
// it by type.
type AuditConsumer struct {
	bus      *Bus
	security *logging.SecurityLogger
	// handled observes each decoded event (tests).
	handled func(*Event)
}

// NewAuditConsumer returns a consumer reading from bus.
func NewAuditConsumer(bus *Bus, security *logging.SecurityLogger) *AuditConsumer {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	return &AuditConsumer{bus: bus, security: security}
}

// Run subscribes to every topic and blocks until ctx is canceled or the
// transport closes every subscription. The latter returns nil so the
// supervisor can resubscribe.
func (c *AuditConsumer) Run(ctx context.Context) error {
	streams, err := c.subscribe(ctx)
	if err != nil {
		return err
	}
	return c.consume(ctx, streams)
}

func (c *AuditConsumer) subscribe(ctx context.Context) ([]<-chan *message.Message, error) {
	streams := make([]<-chan *message.Message, 0, len(Topics))
	for _, topic := range Topics {
		ch, err := c.bus.Subscribe(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("subscribe to %s: %w", topic, err)
		}
		streams = append(streams, ch)
	}
	return streams, nil
}

func (c *AuditConsumer) consume(ctx context.Context, streams []<-chan *message.Message) error {
	var wg sync.WaitGroup
	for _, ch := range streams {
		wg.Add(1)
		go func(ch <-chan *message.Message) {
			defer wg.Done()
			for msg := range ch {
				c.handle(msg)
			}
		}(ch)
	}

	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()

	select {
	case <-ctx.Done():
		<-drained
		return ctx.Err()
	case <-drained:
		if err := ctx.Err(); err != nil {
			return err
		}
		logging.Warn().Msg("session event subscriptions closed by transport")
		return nil
	}
}

// handle acks every message, including undecodable ones: redelivering a
// malformed audit record cannot fix it.
func (c *AuditConsumer) handle(msg *message.Message) {
	defer msg.Ack()

	e, err := Decode(msg.Payload)
	if err != nil {
		logging.Error().Err(err).Str("message_uuid", msg.UUID).Msg("dropping malformed session event")
		return
	}

	c.security.LogEvent(&logging.SecurityEvent{
		Event:     e.Type,
		UserID:    e.UserID,
		Email:     e.EmailMasked,
		IPAddress: e.ClientIP,
		Success:   e.Success(),
		Reason:    e.Reason,
		Details:   map[string]string{"event_id": e.EventID},
	})
	metrics.RecordAuthEvent(e.Type)

	if c.handled != nil {
		c.handled(e)
	}
}
