package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fivetwenty-io/baser-client/internal/constants"
	baserhttp "github.com/fivetwenty-io/baser-client/internal/http"
	"github.com/fivetwenty-io/baser-client/pkg/baser"
)

// Dispatcher resolves a baser.CallRequest into one HTTP round trip.
type Dispatcher struct {
	httpClient *baserhttp.Client
	routes     *baser.RouteRegistry
	events     baser.EventPublisher
	logger     baser.Logger
	now        func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithEvents publishes a change event after every successful write.
func WithEvents(events baser.EventPublisher) DispatcherOption {
	return func(d *Dispatcher) {
		d.events = events
	}
}

// WithDispatcherLogger sets the logger used for event failures.
func WithDispatcherLogger(logger baser.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a dispatcher. A nil registry uses baser.DefaultRoutes.
func NewDispatcher(httpClient *baserhttp.Client, routes *baser.RouteRegistry, opts ...DispatcherOption) *Dispatcher {
	if routes == nil {
		routes = baser.DefaultRoutes()
	}

	dispatcher := &Dispatcher{
		httpClient: httpClient,
		routes:     routes,
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(dispatcher)
	}

	return dispatcher
}

// Routes returns the registry the dispatcher resolves endpoints against.
func (d *Dispatcher) Routes() *baser.RouteRegistry {
	return d.routes
}

// Dispatch performs op against req.Endpoint and returns the decoded body.
// Unknown endpoints and missing ids fail before any network activity.
func (d *Dispatcher) Dispatch(ctx context.Context, op baser.Operation, req *baser.CallRequest) (baser.Record, error) {
	if req == nil {
		req = &baser.CallRequest{}
	}

	route, err := d.routes.Resolve(req.Endpoint)
	if err != nil {
		return nil, err
	}

	if op.String() == "unknown" {
		return nil, fmt.Errorf("%w: %d", baser.ErrUnknownOperation, op)
	}

	if op.NeedsID() && req.ID == "" {
		return nil, fmt.Errorf("%s %s: %w", op, req.Endpoint, baser.ErrRecordIDRequired)
	}

	httpReq := &baserhttp.Request{
		Method: http.MethodPost,
		Path:   BuildPath(route, op, req.ID, op.IsWrite() || req.Options.HasAdmin()),
	}

	// Writes carry everything in the body; options only select the prefix.
	if op.IsWrite() {
		httpReq.Body = baser.NewPayload(writeBody(op, req))
	} else {
		httpReq.Method = http.MethodGet

		httpReq.Query, err = req.Options.Query()
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", op, req.Endpoint, err)
		}
	}

	resp, err := d.httpClient.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, req.Endpoint, err)
	}

	record, err := baserhttp.DecodeRecord(resp)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, req.Endpoint, err)
	}

	if op.IsWrite() {
		d.publish(ctx, op, req)
	}

	return record, nil
}

// BuildPath returns the API path of op on route.
func BuildPath(route baser.Route, op baser.Operation, id string, admin bool) string {
	path := constants.APIRoot
	if admin {
		path += constants.AdminSegment
	}

	action := op.String()
	if op.NeedsID() {
		action += "/" + url.PathEscape(id)
	}

	return path + "/" + route.Plugin + "/" + route.Controller + "/" + action + constants.ActionSuffix
}

// writeBody returns the record sent for a write. Edit injects the id and
// delete sends the id merged over any payload.
func writeBody(op baser.Operation, req *baser.CallRequest) baser.Record {
	body := make(baser.Record, len(req.Payload)+1)
	for key, value := range req.Payload {
		body[key] = value
	}

	if op == baser.OpEdit || op == baser.OpDelete {
		body["id"] = req.ID
	}

	return body
}

func (d *Dispatcher) publish(ctx context.Context, op baser.Operation, req *baser.CallRequest) {
	if d.events == nil {
		return
	}

	event := &baser.ChangeEvent{
		Endpoint:   req.Endpoint,
		Action:     op.String(),
		ID:         req.ID,
		OccurredAt: d.now().UTC(),
	}

	err := d.events.Publish(ctx, event)
	if err != nil && d.logger != nil {
		d.logger.Warn("Failed to publish change event", map[string]interface{}{
			"endpoint": event.Endpoint,
			"action":   event.Action,
			"error":    err.Error(),
		})
	}
}
