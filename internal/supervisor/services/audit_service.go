// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
)

// AuditRunner is satisfied by *events.AuditConsumer.
type AuditRunner interface {
	Run(ctx context.Context) error
}

// AuditService runs the session audit consumer. The consumer subscribes on
// every start, so a restart after a transport failure resubscribes.
type AuditService struct {
	consumer AuditRunner
	name     string
}

// NewAuditService wraps consumer.
func NewAuditService(consumer AuditRunner) *AuditService {
	return &AuditService{consumer: consumer, name: "audit-consumer"}
}

// Serve implements suture.Service.
func (s *AuditService) Serve(ctx context.Context) error {
	err := s.consumer.Run(ctx)
	switch {
	case err == nil:
		// The subscription closed under us; let the supervisor resubscribe.
		if ctx.Err() == nil {
			return fmt.Errorf("%s: subscription closed", s.name)
		}
		return ctx.Err()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%s: %w", s.name, err)
	}
}

// String implements fmt.Stringer for supervisor logs.
func (s *AuditService) String() string {
	return s.name
}
