// Marquee - Media Catalog Server
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/marquee/internal/logging"
)

// Event types double as topic names.
const (
	TypeLoginSucceeded  = "auth.login.succeeded"
	TypeLoginFailed     = "auth.login.failed"
	TypeLogout          = "auth.logout"
	TypeSessionRejected = "session.rejected"
)

// Topics lists every topic the audit consumer subscribes to.
var Topics = []string{TypeLoginSucceeded, TypeLoginFailed, TypeLogout, TypeSessionRejected}

// Event is the payload of every session event. The email is masked before
// the event is built; the delegated credential is never part of it.
type Event struct {
	EventID     string    `json:"eventId"`
	Type        string    `json:"type"`
	OccurredAt  time.Time `json:"occurredAt"`
	UserID      string    `json:"userId,omitempty"`
	EmailMasked string    `json:"emailMasked,omitempty"`
	ClientIP    string    `json:"clientIp,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType, userID, email, clientIP, reason string) *Event {
	return &Event{
		EventID:     uuid.New().String(),
		Type:        eventType,
		OccurredAt:  time.Now().UTC(),
		UserID:      userID,
		EmailMasked: logging.MaskEmail(email),
		ClientIP:    clientIP,
		Reason:      reason,
	}
}

// Success reports whether the event records a successful action.
func (e *Event) Success() bool {
	return e.Type == TypeLoginSucceeded || e.Type == TypeLogout
}

func (e *Event) marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", e.Type, err)
	}
	return data, nil
}

// Decode parses a message payload.
func Decode(payload []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" || e.EventID == "" {
		return nil, fmt.Errorf("decode event: missing type or eventId")
	}
	return &e, nil
}
