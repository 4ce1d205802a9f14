// Package events publishes change notifications for successful writes.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
	"github.com/nats-io/nats.go"
)

// Static errors for err113 compliance.
var (
	ErrConnectionRequired = errors.New("NATS connection required")
	ErrEventRequired      = errors.New("change event required")
)

// Conn is the subset of *nats.Conn used for publishing.
type Conn interface {
	Publish(subj string, data []byte) error
}

var _ baser.EventPublisher = (*NATSPublisher)(nil)

// NATSPublisher publishes change events as JSON to
// "<prefix>.<endpoint>.<action>".
type NATSPublisher struct {
	conn   Conn
	prefix string
}

// NewNATSPublisher creates a publisher. An empty prefix falls back to
// constants.DefaultSubjectPrefix.
func NewNATSPublisher(conn Conn, prefix string) (*NATSPublisher, error) {
	if conn == nil {
		return nil, ErrConnectionRequired
	}

	prefix = strings.Trim(prefix, ".")
	if prefix == "" {
		prefix = constants.DefaultSubjectPrefix
	}

	return &NATSPublisher{conn: conn, prefix: prefix}, nil
}

// Connect dials a NATS server with a client name set.
func Connect(url string, opts ...nats.Option) (*nats.Conn, error) {
	opts = append([]nats.Option{nats.Name(constants.DefaultUserAgent)}, opts...)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	return conn, nil
}

// Subject returns the subject an event is published on.
func (p *NATSPublisher) Subject(event *baser.ChangeEvent) string {
	return p.prefix + "." + event.Endpoint + "." + event.Action
}

// Publish implements baser.EventPublisher.
func (p *NATSPublisher) Publish(ctx context.Context, event *baser.ChangeEvent) error {
	if event == nil {
		return ErrEventRequired
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("publish cancelled: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	subject := p.Subject(event)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}
