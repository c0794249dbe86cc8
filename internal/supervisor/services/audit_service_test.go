// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/events"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestAuditService_Interface(t *testing.T) {
	var _ suture.Service = (*AuditService)(nil)
	var _ AuditRunner = (*events.AuditConsumer)(nil)
}

func TestAuditService_Serve(t *testing.T) {
	boom := errors.New("subscribe to auth.login.failed: transport down")

	tests := []struct {
		name    string
		run     runnerFunc
		cancel  bool
		wantErr error
	}{
		{
			name:    "cancellation",
			run:     func(ctx context.Context) error { <-ctx.Done(); return ctx.Err() },
			cancel:  true,
			wantErr: context.Canceled,
		},
		{
			name:    "subscribe failure is wrapped",
			run:     func(context.Context) error { return boom },
			wantErr: boom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancel {
				cancel()
			}

			err := NewAuditService(tt.run).Serve(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Serve() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuditService_ClosedSubscriptionRestarts(t *testing.T) {
	svc := NewAuditService(runnerFunc(func(context.Context) error { return nil }))
	if err := svc.Serve(context.Background()); err == nil {
		t.Error("Serve() = nil, want an error so the supervisor restarts the consumer")
	}
}

func TestAuditService_WithBus(t *testing.T) {
	bus, err := events.NewBus(events.Config{})
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	sup := suture.New("events-layer", suture.Spec{FailureBackoff: 10 * time.Millisecond, Timeout: time.Second})
	sup.Add(NewAuditService(events.NewAuditConsumer(bus, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := sup.ServeBackground(ctx)

	time.Sleep(50 * time.Millisecond)
	if err := bus.Publish(ctx, events.NewEvent(events.TypeLogout, "user1", "admin@example.com", "192.0.2.1", "")); err != nil {
		t.Errorf("Publish: %v", err)
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop")
	}
	if report, _ := sup.UnstoppedServiceReport(); len(report) != 0 {
		t.Errorf("audit consumer did not stop: %v", report)
	}
}

func TestAuditService_String(t *testing.T) {
	if got := NewAuditService(runnerFunc(func(context.Context) error { return nil })).String(); got != "audit-consumer" {
		t.Errorf("String() = %q", got)
	}
}

func TestAuditService_FailsWhenBusCloses(t *testing.T) {
	bus, err := events.NewBus(events.Config{})
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	svc := NewAuditService(events.NewAuditConsumer(bus, nil))

	done := make(chan error, 1)
	go func() { done <- svc.Serve(context.Background()) }()

	time.Sleep(50 * time.Millisecond)
	_ = bus.Close()

	select {
	case err := <-done:
		if err == nil {
			t.Error("Serve() = nil, want an error the supervisor restarts on")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve still blocked after the bus closed")
	}
}
