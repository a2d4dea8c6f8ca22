// Package events defines the change notifications the registry emits when a
// client registration is created, updated or deleted, and the broker-backed
// publisher that delivers them.
package events

import (
	"context"
	"time"
)

// Routing keys for published events. Consumers bind queues with patterns like
// "client.*" to receive every change.
const (
	ActionCreated = "client.created"
	ActionUpdated = "client.updated"
	ActionDeleted = "client.deleted"
)

// Event describes one change to a client registration. It carries only public
// identifying data, never secrets.
type Event struct {
	Action   string    `json:"action"`
	ClientID string    `json:"client_id"`
	Name     string    `json:"name,omitempty"`
	At       time.Time `json:"at"`
}

// Publisher delivers registry change events to interested consumers. Delivery
// is best effort: the registry treats publish failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}
