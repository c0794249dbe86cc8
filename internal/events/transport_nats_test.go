// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

//go:build nats

package events

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"

	"github.com/tomtom215/marquee/internal/logging"
)

// startEmbeddedNATS runs a core-NATS broker on a random local port.
func startEmbeddedNATS(t *testing.T) string {
	t.Helper()
	ns, err := server.NewServer(&server.Options{
		ServerName: "marquee-test",
		Host:       "127.0.0.1",
		Port:       server.RANDOM_PORT,
		NoLog:      true,
		NoSigs:     true,
	})
	if err != nil {
		t.Fatalf("create NATS server: %v", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		ns.Shutdown()
		t.Fatal("NATS server not ready within timeout")
	}
	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns.ClientURL()
}

func TestNATSTransportPublishSubscribe(t *testing.T) {
	bus, err := NewBus(Config{NATSURL: startEmbeddedNATS(t)})
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	if bus.Transport() != "nats" {
		t.Fatalf("Transport() = %q, want nats", bus.Transport())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs, err := bus.Subscribe(ctx, TypeLogout)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	// Core NATS drops messages published before the subscription reaches
	// the broker, so keep publishing until one arrives.
	sent := map[string]bool{}
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)
	for {
		e := NewEvent(TypeLogout, "u1", "alice@example.com", "203.0.113.7", "")
		if err := bus.Publish(ctx, e); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		sent[e.EventID] = true

		select {
		case msg := <-msgs:
			msg.Ack()
			got, err := Decode(msg.Payload)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !sent[got.EventID] || got.Type != TypeLogout {
				t.Errorf("received %+v, not one of the published events", got)
			}
			if msg.Metadata.Get("type") != TypeLogout {
				t.Errorf("metadata type = %q, want %q", msg.Metadata.Get("type"), TypeLogout)
			}
			return
		case <-ticker.C:
		case <-deadline:
			t.Fatal("timed out waiting for event over NATS")
		}
	}
}

func TestNATSTransportFeedsAuditConsumer(t *testing.T) {
	bus, err := NewBus(Config{NATSURL: startEmbeddedNATS(t)})
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	var out syncBuffer
	consumer := NewAuditConsumer(bus, logging.NewSecurityLoggerWithLogger(logging.NewTestLogger(&out)))
	handled := make(chan *Event, 1)
	consumer.handled = func(e *Event) {
		select {
		case handled <- e:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- consumer.Run(ctx) }()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(5 * time.Second)
wait:
	for {
		_ = bus.Publish(ctx, NewEvent(TypeLoginFailed, "", "bob@example.com", "198.51.100.2", "invalid_credentials"))
		select {
		case e := <-handled:
			if e.Type != TypeLoginFailed || e.Reason != "invalid_credentials" {
				t.Errorf("handled %+v", e)
			}
			break wait
		case <-ticker.C:
		case <-deadline:
			t.Fatal("audit consumer never saw an event over NATS")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
